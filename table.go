package handles

import "fmt"
import "errors"

import "github.com/bnclabs/handles/api"
import "github.com/bnclabs/handles/lib"
import "github.com/bnclabs/handles/malloc"
import s "github.com/bnclabs/gosettings"
import "github.com/willf/bitset"

// Slot is one record in the table, either free or backing exactly
// one allocated block.
type Slot struct {
	size  int64  // 0 when free, capacity for slot 0
	block []byte // len size, nil when free, slot records for slot 0
}

// Size return the number of bytes allocated at this slot, 0 if free.
func (slot *Slot) Size() int64 {
	return slot.size
}

// Bytes return the block owned by this slot. The slice is borrowed,
// it must not be used after the slot is freed or the table released.
func (slot *Slot) Bytes() []byte {
	return slot.block
}

// Isfree return true if slot holds no block.
func (slot *Slot) Isfree() bool {
	return slot.size == 0 && slot.block == nil
}

func (slot *Slot) String() string {
	if slot.Isfree() {
		return "slot{free}"
	}
	return fmt.Sprintf("slot{size:%v}", slot.size)
}

// Table manage a fixed number of slots, each slot can own one block of
// memory addressed by its api.Handle. Table is not thread safe, calls
// must be serialized by the application.
type Table struct {
	tablestats
	h_allocsz *lib.HistogramInt64

	name     string
	slots    []Slot         // slots[0] is the self descriptor
	desc     *Slot          // &slots[0] while initialized
	occupied *bitset.BitSet // bit i set if slot i owns a block
	mallocer api.Mallocer

	// settings
	capacity     int64
	zeroblocks   bool
	assertpolicy string
	setts        s.Settings
	logprefix    string
}

var _ api.Handletable = (*Table)(nil)

// NewTable create an uninitialized handle table, along with its memory
// backend. Call Init before using the table.
func NewTable(name string, setts s.Settings) (*Table, error) {
	t := &Table{name: name}
	t.logprefix = fmt.Sprintf("TABLE [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	t.readsettings(setts)
	mallocsetts := setts.Section("malloc.").Trim("malloc.")
	mallocsetts["zeroblocks"] = t.zeroblocks
	mallocer, err := malloc.New(mallocsetts)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", t.logprefix, err)
	}
	t.mallocer, t.setts = mallocer, setts
	t.h_allocsz = lib.NewhistogramInt64(Maxclass)
	return t, nil
}

// New create a handle table and initialize it with "capacity" slots
// from settings.
func New(name string, setts s.Settings) (*Table, error) {
	t, err := NewTable(name, setts)
	if err != nil {
		return nil, err
	} else if err = t.Init(t.capacity); err != nil {
		t.mallocer.Release()
		return nil, err
	}
	return t, nil
}

// Name of this table.
func (t *Table) Name() string {
	return t.name
}

// Init table with `capacity` slots, slot 0 is reserved so handles
// range over [1, capacity). Capacity must be in [1, MaxHandles). If
// the table is live it is released first. Slot records are charged
// to the backend, capacity*Slotsize bytes reserved as slot 0's block,
// if that reservation fails a live table stays released.
func (t *Table) Init(capacity int64) error {
	if capacity <= 0 || capacity >= MaxHandles {
		errorf("%v init with capacity %v\n", t.logprefix, capacity)
		fmsg := "%v: %w: %v not in [1,%v)"
		return fmt.Errorf(fmsg, t.logprefix, ErrInvalidCapacity, capacity, MaxHandles)
	}
	if overhead := capacity * Slotsize; overhead > t.mallocer.Capacity() {
		errorf("%v init %v slots needs %v bytes\n", t.logprefix, capacity, overhead)
		fmsg := "%v: %w: %v slots need %v bytes, backend capacity %v"
		err := ErrorOutofMemory
		return fmt.Errorf(fmsg, t.logprefix, err, capacity, overhead, t.mallocer.Capacity())
	}

	if t.slots != nil {
		warnf("%v re-initializing live table of %v slots\n", t.logprefix, len(t.slots))
		t.n_reinits++
		if err := t.Release(); err != nil {
			warnf("%v release before re-init: %v\n", t.logprefix, err)
		}
	}

	overhead := capacity * Slotsize
	block, err := t.mallocer.Alloc(overhead)
	if err != nil {
		errorf("%v init %v slots: %v\n", t.logprefix, capacity, err)
		return fmt.Errorf("%v: init %v slots: %w", t.logprefix, capacity, err)
	}

	slots := make([]Slot, capacity)
	slots[0].size, slots[0].block = capacity, block
	t.slots, t.desc = slots, &slots[0]
	t.occupied = bitset.New(uint(capacity))
	t.occupied.Set(0)
	t.capacity = capacity
	infof("%v initialized with %v slots\n", t.logprefix, capacity)
	t.assertvalid()
	return nil
}

// Release every allocated block, then the slot records. A slot that
// fails to free does not stop the sweep, all failures are returned
// together after the table is released. Blocks the backend refused
// are left with the backend.
func (t *Table) Release() error {
	if !t.Isinitialized() {
		debugf("%v release on uninitialized table\n", t.logprefix)
		return fmt.Errorf("%v: %w", t.logprefix, ErrUninitialized)
	}

	var errs []error
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].Isfree() {
			continue
		} else if err := t.Free(api.Handle(i)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := t.mallocer.Free(t.desc.block); err != nil {
		errs = append(errs, fmt.Errorf("%v: slot records: %w", t.logprefix, err))
	}
	t.slots, t.desc, t.occupied = nil, nil, nil
	if len(errs) > 0 {
		errorf("%v released with %v failures\n", t.logprefix, len(errs))
		return fmt.Errorf("%v: release: %w", t.logprefix, errors.Join(errs...))
	}
	infof("%v released\n", t.logprefix)
	return nil
}

// Isinitialized return true if table is live, that is, between a
// successful Init and Release.
func (t *Table) Isinitialized() bool {
	if len(t.slots) == 0 || t.desc != &t.slots[0] {
		return false
	}
	return t.desc.size > 0 && t.desc.size == int64(len(t.slots))
}

// Isnotinitialized negation of Isinitialized.
func (t *Table) Isnotinitialized() bool {
	return !t.Isinitialized()
}

// Capacity return number of slots including the reserved slot 0, 0 if
// table is not initialized.
func (t *Table) Capacity() int64 {
	return int64(len(t.slots))
}

// Mallocer return the memory backend for this table.
func (t *Table) Mallocer() api.Mallocer {
	return t.mallocer
}
