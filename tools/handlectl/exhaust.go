package main

import "fmt"
import "errors"

import "github.com/bnclabs/handles"
import "github.com/bnclabs/handles/api"
import "github.com/spf13/cobra"

var exhaustopts struct {
	capacity int64
	size     int64
}

func init() {
	cmd := &cobra.Command{
		Use:   "exhaust",
		Short: "Fill the table, free every other handle and refill",
		Long: `exhaust allocates until the table has no free slot, frees
every other handle, then allocates again to show freed slots being
reused lowest first.

Example:
  handlectl exhaust --capacity 16 --size 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runexhaust()
		},
	}
	cmd.Flags().Int64Var(&exhaustopts.capacity, "capacity", 16,
		"number of slots including the reserved slot")
	cmd.Flags().Int64Var(&exhaustopts.size, "size", 64, "block size to allocate")
	rootCmd.AddCommand(cmd)
}

func runexhaust() error {
	table, err := newtable("exhaust", exhaustopts.capacity)
	if err != nil {
		return err
	}
	table.Atexit()

	hnds, err := fill(table, exhaustopts.size)
	if err != nil {
		return err
	}
	fmt.Printf("filled %v handles\n", len(hnds))
	printcounts(table)

	freed := []api.Handle{}
	for i := 0; i < len(hnds); i += 2 {
		if err := table.Free(hnds[i]); err != nil {
			return err
		}
		freed = append(freed, hnds[i])
	}
	fmt.Printf("freed handles %v\n", freed)
	printcounts(table)

	reused, err := fill(table, exhaustopts.size*2)
	if err != nil {
		return err
	}
	fmt.Printf("reallocated handles %v\n", reused)
	printcounts(table)
	printstats(table)

	if err := table.Validate(); err != nil {
		return err
	}
	return table.Release()
}

// fill allocate `size` blocks until the table is exhausted.
func fill(table *handles.Table, size int64) ([]api.Handle, error) {
	hnds := []api.Handle{}
	for {
		hnd, err := table.Alloc(size)
		if errors.Is(err, handles.ErrExhausted) {
			fmt.Printf("alloc returned handle %v: %v\n", hnd, err)
			return hnds, nil
		} else if err != nil {
			return hnds, err
		}
		hnds = append(hnds, hnd)
	}
}
