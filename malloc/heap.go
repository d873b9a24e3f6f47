package malloc

import "fmt"
import "unsafe"

// heapMallocer reserve blocks on the Go heap, bounded by capacity.
type heapMallocer struct {
	capacity   int64
	allocated  int64
	zeroblocks bool
	blocks     map[*byte]int64 // base pointer -> block size
}

func newheap(capacity int64, zeroblocks bool) *heapMallocer {
	return &heapMallocer{
		capacity:   capacity,
		zeroblocks: zeroblocks,
		blocks:     make(map[*byte]int64),
	}
}

// Alloc implement api.Mallocer{} interface.
func (h *heapMallocer) Alloc(n int64) ([]byte, error) {
	if h.blocks == nil {
		return nil, ErrReleased
	} else if n <= 0 {
		return nil, fmt.Errorf("%w: alloc %v bytes", ErrInvalidSize, n)
	} else if n > h.capacity-h.allocated {
		fmsg := "%w: alloc %v bytes, %v available"
		return nil, fmt.Errorf(fmsg, ErrorOutofMemory, n, h.capacity-h.allocated)
	}
	block := make([]byte, n)
	h.blocks[unsafe.SliceData(block)] = n
	h.allocated += n
	return block, nil
}

// Free implement api.Mallocer{} interface.
func (h *heapMallocer) Free(block []byte) error {
	if h.blocks == nil {
		return ErrReleased
	} else if cap(block) == 0 {
		return fmt.Errorf("%w: empty block", ErrInvalidBlock)
	}
	block = block[:cap(block)]
	base := unsafe.SliceData(block)
	n, ok := h.blocks[base]
	if !ok || n != int64(len(block)) {
		return fmt.Errorf("%w: %p", ErrInvalidBlock, base)
	}
	releaseblock(block, h.zeroblocks)
	delete(h.blocks, base)
	h.allocated -= n
	return nil
}

// Allocated implement api.Mallocer{} interface.
func (h *heapMallocer) Allocated() int64 {
	return h.allocated
}

// Available implement api.Mallocer{} interface.
func (h *heapMallocer) Available() int64 {
	return h.capacity - h.allocated
}

// Capacity implement api.Mallocer{} interface.
func (h *heapMallocer) Capacity() int64 {
	return h.capacity
}

// Release implement api.Mallocer{} interface.
func (h *heapMallocer) Release() {
	h.blocks, h.allocated = nil, 0
}
