package malloc

import "errors"

// ErrorOutofMemory reservation exceeds backend capacity or the host
// could not satisfy it.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrInvalidSize size of a block or capacity is not a positive number.
var ErrInvalidSize = errors.New("malloc.invalidsize")

// ErrInvalidBlock block given to Free was not reserved by the backend.
var ErrInvalidBlock = errors.New("malloc.invalidblock")

// ErrUnknownAllocator "allocator" setting names no backend.
var ErrUnknownAllocator = errors.New("malloc.unknownallocator")

// ErrReleased backend already released.
var ErrReleased = errors.New("malloc.released")

// ErrUnsupported backend not available on this platform.
var ErrUnsupported = errors.New("malloc.unsupported")

func roundup(n, to int64) int64 {
	if rem := n % to; rem != 0 {
		return n + (to - rem)
	}
	return n
}
