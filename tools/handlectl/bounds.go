package main

import "fmt"
import "bytes"
import "errors"

import "github.com/bnclabs/handles"
import "github.com/spf13/cobra"

var boundsopts struct {
	size   int64
	buflen int64
}

func init() {
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Copy a buffer larger than the block",
		Long: `bounds allocates a block and copies a larger buffer into it.
The copy is refused and the block is left untouched.

Example:
  handlectl bounds --size 128 --buflen 512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runbounds()
		},
	}
	cmd.Flags().Int64Var(&boundsopts.size, "size", 128, "block size to allocate")
	cmd.Flags().Int64Var(&boundsopts.buflen, "buflen", 512, "bytes to copy")
	rootCmd.AddCommand(cmd)
}

func runbounds() error {
	table, err := newtable("bounds", 1024)
	if err != nil {
		return err
	}
	defer table.Release()

	hnd, err := table.Alloc(boundsopts.size)
	if err != nil {
		return err
	}
	fill := bytes.Repeat([]byte{'a'}, int(boundsopts.size))
	if err := table.Copyto(fill, boundsopts.size, 0, boundsopts.size, hnd, 0); err != nil {
		return err
	}

	n := boundsopts.buflen
	buf := bytes.Repeat([]byte{'z'}, int(n))
	err = table.Copyto(buf, n, 0, n, hnd, 0)
	fmt.Printf("copy %v into %v at handle %v: %v\n",
		bytestr(n), bytestr(boundsopts.size), hnd, err)
	if n <= boundsopts.size {
		return nil
	} else if !errors.Is(err, handles.ErrDestOverrun) {
		return fmt.Errorf("expected %v, got %v", handles.ErrDestOverrun, err)
	}

	readback := make([]byte, boundsopts.size)
	if err := table.Copyfrom(hnd, 0, readback, 0, boundsopts.size); err != nil {
		return err
	}
	fmt.Printf("block untouched: %v\n", bytes.Equal(readback, fill))
	printstats(table)
	return nil
}
