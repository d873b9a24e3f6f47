package handles

import "fmt"

import "github.com/bnclabs/handles/api"

// Copyto copy `n` bytes from src[srcoff:srcoff+n] into the block held
// by `hnd`, at [dstoff:dstoff+n]. The read is bounded by `srclen`,
// which cannot exceed len(src), and the write is bounded by the size
// recorded in the handle's slot. Nothing is copied if either bound
// would be crossed.
func (t *Table) Copyto(
	src []byte, srclen, srcoff, n int64, hnd api.Handle, dstoff int64) error {

	if !t.Isinitialized() {
		return fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	} else if !t.Isvalid(hnd) {
		return fmt.Errorf("%v: %w: %v", t.logprefix, ErrInvalidHandle, hnd)
	} else if src == nil {
		return fmt.Errorf("%v: %w: copy to handle %v", t.logprefix, ErrNilBuffer, hnd)
	}

	if srclen > int64(len(src)) {
		return t.boundfail(ErrSourceOverrun, "srclen %v > len(src) %v", srclen, len(src))
	} else if !inbounds(srcoff, n, srclen) {
		return t.boundfail(ErrSourceOverrun, "src[%v:+%v] of %v", srcoff, n, srclen)
	}
	slot := &t.slots[hnd]
	if !inbounds(dstoff, n, slot.size) {
		fmsg := "handle %v [%v:+%v] of %v"
		return t.boundfail(ErrDestOverrun, fmsg, hnd, dstoff, n, slot.size)
	}

	copy(slot.block[dstoff:dstoff+n], src[srcoff:srcoff+n])
	t.n_copies++
	return nil
}

// Copyfrom copy `n` bytes from the block held by `hnd`, at
// [srcoff:srcoff+n], into dst[dstoff:dstoff+n]. The read is bounded by
// the size recorded in the handle's slot and the write by len(dst).
// Nothing is copied if either bound would be crossed.
func (t *Table) Copyfrom(
	hnd api.Handle, srcoff int64, dst []byte, dstoff, n int64) error {

	if !t.Isinitialized() {
		return fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	} else if !t.Isvalid(hnd) {
		return fmt.Errorf("%v: %w: %v", t.logprefix, ErrInvalidHandle, hnd)
	} else if dst == nil {
		return fmt.Errorf("%v: %w: copy from handle %v", t.logprefix, ErrNilBuffer, hnd)
	}

	slot := &t.slots[hnd]
	if !inbounds(srcoff, n, slot.size) {
		fmsg := "handle %v [%v:+%v] of %v"
		return t.boundfail(ErrSourceOverrun, fmsg, hnd, srcoff, n, slot.size)
	} else if !inbounds(dstoff, n, int64(len(dst))) {
		fmsg := "dst[%v:+%v] of %v"
		return t.boundfail(ErrDestOverrun, fmsg, dstoff, n, len(dst))
	}

	copy(dst[dstoff:dstoff+n], slot.block[srcoff:srcoff+n])
	t.n_copies++
	return nil
}

func (t *Table) boundfail(err error, fmsg string, args ...interface{}) error {
	t.n_boundfails++
	msg := fmt.Sprintf(fmsg, args...)
	errorf("%v copy: %v: %v\n", t.logprefix, err, msg)
	return fmt.Errorf("%v: %w: %v", t.logprefix, err, msg)
}

// inbounds return true if [off, off+n) lies within [0, limit), without
// overflowing on large inputs.
func inbounds(off, n, limit int64) bool {
	if off < 0 || n < 0 || limit < 0 {
		return false
	}
	return n <= limit && off <= limit-n
}
