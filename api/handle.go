// Package api define types and interfaces shared by the handle table,
// its memory backends and applications embedding them.
package api

// Handle identifies a block of memory managed by a handle table. It
// doubles as the index of the table slot backing the block.
type Handle uint16

// Nohandle is never allocated, returned by Alloc on failure.
const Nohandle = Handle(0)

// Handletable interface for indirect memory management, where
// applications address blocks by Handle instead of pointers.
type Handletable interface {
	// Init table with `capacity` slots, including the reserved
	// slot 0. A live table is released before initializing again.
	Init(capacity int64) error

	// Release every allocated block and the table itself.
	Release() error

	// Isinitialized return true between Init and Release.
	Isinitialized() bool

	// Alloc reserve `size` bytes in the lowest free slot. Return
	// Nohandle along with an error on failure.
	Alloc(size int64) (Handle, error)

	// Free block held by `hnd`, slot is immediately reusable.
	Free(hnd Handle) error

	// Isvalid return true if `hnd` is within [1, capacity).
	Isvalid(hnd Handle) bool

	// Isfree return true if slot for `hnd` holds no block.
	Isfree(hnd Handle) bool

	// Usedsize return sum of all allocated block sizes.
	Usedsize() int64

	// Allusedsize return Usedsize plus the memory held by slot records.
	Allusedsize() int64

	// Freehandles return number of free slots.
	Freehandles() int64

	// Usedhandles return number of allocated slots.
	Usedhandles() int64

	// Copyto copy `n` bytes from src[srcoff:] into block `hnd` at
	// `dstoff`, bounds are checked against srclen and the block size.
	Copyto(src []byte, srclen, srcoff, n int64, hnd Handle, dstoff int64) error

	// Copyfrom copy `n` bytes from block `hnd` at `srcoff` into
	// dst[dstoff:].
	Copyfrom(hnd Handle, srcoff int64, dst []byte, dstoff, n int64) error
}
