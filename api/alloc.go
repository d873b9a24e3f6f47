package api

// Mallocer interface for memory reservation backends. A handle table
// reserves every block it hands out through a Mallocer.
type Mallocer interface {
	// Alloc reserve a block of exactly `n` bytes, zero initialized.
	// Returned slice has len and cap equal to `n`.
	Alloc(n int64) ([]byte, error)

	// Free block obtained from Alloc. Block must not be used after
	// this call.
	Free(block []byte) error

	// Allocated return bytes currently reserved by this backend.
	Allocated() int64

	// Available return bytes that can still be reserved.
	Available() int64

	// Capacity return maximum number of bytes this backend can reserve.
	Capacity() int64

	// Release backend, blocks still reserved are leaked to the backend.
	Release()
}
