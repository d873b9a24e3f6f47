package handles

import "fmt"

import "github.com/bnclabs/handles/api"

// Alloc reserve `size` bytes in the lowest numbered free slot and
// return its handle. If the backend cannot reserve the block the
// slot stays free and no other slot is tried. On failure returned
// handle is api.Nohandle.
func (t *Table) Alloc(size int64) (api.Handle, error) {
	if !t.Isinitialized() {
		return api.Nohandle, fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	} else if size <= 0 {
		t.n_allocfails++
		return api.Nohandle, fmt.Errorf("%v: %w: %v", t.logprefix, ErrInvalidSize, size)
	}

	i, ok := t.occupied.NextClear(1)
	if !ok || i >= uint(len(t.slots)) {
		t.n_allocfails++
		debugf("%v exhausted, %v slots in use\n", t.logprefix, len(t.slots)-1)
		return api.Nohandle, fmt.Errorf("%v: %w", t.logprefix, ErrExhausted)
	}
	hnd := api.Handle(i)
	t.assertf(t.Isfree(hnd), "first clear bit %v is not a free slot", hnd)

	block, err := t.mallocer.Alloc(size)
	if err != nil {
		t.n_allocfails++
		errorf("%v alloc %v bytes at handle %v: %v\n", t.logprefix, size, hnd, err)
		return api.Nohandle, fmt.Errorf("%v: handle %v: %w", t.logprefix, hnd, err)
	}
	slot := &t.slots[hnd]
	slot.size, slot.block = size, block
	t.occupied.Set(i)

	t.n_allocs++
	t.h_allocsz.Add(size)
	tracef("%v alloc %v bytes at handle %v\n", t.logprefix, size, hnd)
	t.assertvalid()
	return hnd, nil
}

// Free block held by `hnd`, slot is immediately reusable. Freeing
// a free slot is a no-op. If the backend fails to take the block back
// the slot keeps the block and the error is returned.
func (t *Table) Free(hnd api.Handle) error {
	if !t.Isinitialized() {
		return fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	} else if !t.Isvalid(hnd) {
		debugf("%v free on invalid handle %v\n", t.logprefix, hnd)
		return fmt.Errorf("%v: %w: %v", t.logprefix, ErrInvalidHandle, hnd)
	}

	slot := &t.slots[hnd]
	if slot.Isfree() {
		return nil
	}
	if err := t.mallocer.Free(slot.block); err != nil {
		errorf("%v free handle %v: %v\n", t.logprefix, hnd, err)
		return fmt.Errorf("%v: handle %v: %w", t.logprefix, hnd, err)
	}
	slot.size, slot.block = 0, nil
	t.occupied.Clear(uint(hnd))
	t.n_frees++
	tracef("%v free handle %v\n", t.logprefix, hnd)
	t.assertvalid()
	return nil
}

// Isvalid return true if `hnd` is within [1, capacity). It is a range
// check, false for every handle if table is not initialized.
func (t *Table) Isvalid(hnd api.Handle) bool {
	return hnd > api.Nohandle && int64(hnd) < int64(len(t.slots))
}

// Isnotvalid negation of Isvalid.
func (t *Table) Isnotvalid(hnd api.Handle) bool {
	return !t.Isvalid(hnd)
}

// Isfree return true if slot for `hnd` holds no block. Handle must
// be valid, check Isvalid first. Return false for invalid handles or
// if table is not initialized.
func (t *Table) Isfree(hnd api.Handle) bool {
	t.assertf(t.Isvalid(hnd), "Isfree on invalid handle %v", hnd)
	if !t.Isinitialized() || !t.Isvalid(hnd) {
		return false
	}
	return t.slots[hnd].Isfree()
}

// Isnotfree return true if `hnd` is a valid handle holding a block.
func (t *Table) Isnotfree(hnd api.Handle) bool {
	if !t.Isinitialized() || !t.Isvalid(hnd) {
		return false
	}
	return !t.slots[hnd].Isfree()
}

// Lookup return the slot record for `hnd`. Returned slot is
// borrowed, it must not be used after `hnd` is freed or the table
// released.
func (t *Table) Lookup(hnd api.Handle) (*Slot, error) {
	if !t.Isinitialized() {
		return nil, fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	} else if !t.Isvalid(hnd) {
		return nil, fmt.Errorf("%v: %w: %v", t.logprefix, ErrInvalidHandle, hnd)
	}
	return &t.slots[hnd], nil
}
