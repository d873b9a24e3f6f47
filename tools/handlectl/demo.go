package main

import "fmt"

import "github.com/spf13/cobra"

var demoopts struct {
	capacity int64
	size     int64
	message  string
}

func init() {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Allocate a block, copy a message through it",
		Long: `demo initializes a table, allocates one block, copies a
message into the block and reads it back. The table is released by the
exit hook.

Example:
  handlectl demo
  handlectl demo --capacity 64 --size 32 --message "hello"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rundemo()
		},
	}
	cmd.Flags().Int64Var(&demoopts.capacity, "capacity", 1024,
		"number of slots including the reserved slot")
	cmd.Flags().Int64Var(&demoopts.size, "size", 128, "block size to allocate")
	cmd.Flags().StringVar(&demoopts.message, "message",
		"message copied through a handle", "bytes to copy into the block")
	rootCmd.AddCommand(cmd)
}

func rundemo() error {
	table, err := newtable("demo", demoopts.capacity)
	if err != nil {
		return err
	}
	table.Atexit()

	fmt.Printf("table initialized: %v, capacity %v\n",
		table.Isinitialized(), table.Capacity())
	printcounts(table)

	hnd, err := table.Alloc(demoopts.size)
	if err != nil {
		return err
	}
	fmt.Printf("allocated %v at handle %v, valid:%v free:%v\n",
		bytestr(demoopts.size), hnd, table.Isvalid(hnd), table.Isfree(hnd))

	slot, err := table.Lookup(hnd)
	if err != nil {
		return err
	}
	fmt.Printf("handle %v holds %v\n", hnd, slot)

	msg := []byte(demoopts.message)
	n := int64(len(msg))
	if err := table.Copyto(msg, n, 0, n, hnd, 0); err != nil {
		return err
	}
	readback := make([]byte, n)
	if err := table.Copyfrom(hnd, 0, readback, 0, n); err != nil {
		return err
	}
	fmt.Printf("read back %q\n", readback)

	printcounts(table)
	return nil
}
