//go:build unix

package malloc

import "fmt"
import "unsafe"

import "github.com/bnclabs/golog"
import "github.com/bnclabs/handles/api"

import "golang.org/x/sys/unix"

// mmapMallocer reserve every block as an anonymous private mapping.
// Accounting is in whole pages, since that is what the host reserves.
type mmapMallocer struct {
	capacity  int64
	allocated int64
	pagesize  int64
	blocks    map[*byte]mapping

	n_unmapfails int64
}

type mapping struct {
	length int64 // as requested, the length of the mmap'ed slice
	mapped int64 // length rounded up to pagesize
}

func newmmap(capacity int64) (api.Mallocer, error) {
	m := &mmapMallocer{
		capacity: capacity,
		pagesize: int64(unix.Getpagesize()),
		blocks:   make(map[*byte]mapping),
	}
	return m, nil
}

// Alloc implement api.Mallocer{} interface.
func (m *mmapMallocer) Alloc(n int64) ([]byte, error) {
	if m.blocks == nil {
		return nil, ErrReleased
	} else if n <= 0 {
		return nil, fmt.Errorf("%w: alloc %v bytes", ErrInvalidSize, n)
	}
	mapped := roundup(n, m.pagesize)
	if mapped > m.capacity-m.allocated {
		fmsg := "%w: mmap %v bytes, %v available"
		return nil, fmt.Errorf(fmsg, ErrorOutofMemory, mapped, m.capacity-m.allocated)
	}
	prot, flags := unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE
	block, err := unix.Mmap(-1, 0, int(n), prot, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %v bytes: %v", ErrorOutofMemory, n, err)
	}
	m.blocks[unsafe.SliceData(block)] = mapping{length: n, mapped: mapped}
	m.allocated += mapped
	return block, nil
}

// Free implement api.Mallocer{} interface.
func (m *mmapMallocer) Free(block []byte) error {
	if m.blocks == nil {
		return ErrReleased
	} else if cap(block) == 0 {
		return fmt.Errorf("%w: empty block", ErrInvalidBlock)
	}
	block = block[:cap(block)]
	base := unsafe.SliceData(block)
	mp, ok := m.blocks[base]
	if !ok || mp.length != int64(len(block)) {
		return fmt.Errorf("%w: %p", ErrInvalidBlock, base)
	}
	if err := unix.Munmap(block); err != nil {
		return fmt.Errorf("munmap %p: %w", base, err)
	}
	delete(m.blocks, base)
	m.allocated -= mp.mapped
	return nil
}

// Allocated implement api.Mallocer{} interface.
func (m *mmapMallocer) Allocated() int64 {
	return m.allocated
}

// Available implement api.Mallocer{} interface.
func (m *mmapMallocer) Available() int64 {
	return m.capacity - m.allocated
}

// Capacity implement api.Mallocer{} interface.
func (m *mmapMallocer) Capacity() int64 {
	return m.capacity
}

// Release implement api.Mallocer{} interface. Mappings still held by
// the application are unmapped, failures are logged and counted.
func (m *mmapMallocer) Release() {
	for base, mp := range m.blocks {
		if err := unix.Munmap(unsafe.Slice(base, mp.length)); err != nil {
			m.n_unmapfails++
			log.Errorf("malloc: munmap %p of %v bytes: %v\n", base, mp.length, err)
		}
	}
	m.blocks, m.allocated = nil, 0
}
