package handles

import "fmt"

// Validate sweep the whole table and check its invariants:
//
//   - slot 0 describes the table, its size is the capacity and its
//     block holds capacity*Slotsize bytes reserved for slot records.
//   - every other slot is either free, size 0 without a block, or
//     allocated, a block of exactly size bytes.
//   - occupancy map agrees with the slot records.
//   - backend has reserved at least the bytes held by the slots.
func (t *Table) Validate() error {
	if !t.Isinitialized() {
		return fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	}

	corrupted := func(fmsg string, args ...interface{}) error {
		msg := fmt.Sprintf(fmsg, args...)
		return fmt.Errorf("%v: %w: %v", t.logprefix, ErrCorrupted, msg)
	}

	capacity := int64(len(t.slots))
	if x := int64(len(t.desc.block)); x != capacity*Slotsize {
		return corrupted("slot 0 block of %v bytes, expected %v", x, capacity*Slotsize)
	} else if !t.occupied.Test(0) {
		return corrupted("slot 0 not marked in occupancy map")
	} else if x := int64(t.occupied.Len()); x != capacity {
		return corrupted("occupancy map for %v slots, expected %v", x, capacity)
	}

	usedsize, usedhandles := int64(0), int64(0)
	for i := int64(1); i < capacity; i++ {
		slot, occupied := &t.slots[i], t.occupied.Test(uint(i))
		switch {
		case slot.size == 0 && slot.block == nil:
			if occupied {
				return corrupted("free slot %v marked occupied", i)
			}
		case slot.size > 0 && int64(len(slot.block)) == slot.size:
			if !occupied {
				return corrupted("allocated slot %v not marked occupied", i)
			}
			usedsize += slot.size
			usedhandles++
		default:
			fmsg := "slot %v size %v with block of %v bytes"
			return corrupted(fmsg, i, slot.size, len(slot.block))
		}
	}

	if x := t.Usedhandles(); x != usedhandles {
		return corrupted("usedhandles %v, expected %v", x, usedhandles)
	} else if x := t.Usedsize(); x != usedsize {
		return corrupted("usedsize %v, expected %v", x, usedsize)
	} else if x := t.mallocer.Allocated(); x < usedsize+capacity*Slotsize {
		fmsg := "backend allocated %v < usedsize %v + slot records %v"
		return corrupted(fmsg, x, usedsize, capacity*Slotsize)
	}
	return nil
}
