package handles

import "testing"

import "github.com/bnclabs/handles/api"
import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestDefaultsettings(t *testing.T) {
	setts := Defaultsettings()
	assert.Equal(t, int64(1024), setts.Int64("capacity"))
	assert.Equal(t, "panic", setts.String("assert"))
	assert.True(t, setts.Bool("zeroblocks"))
	assert.Equal(t, "heap", setts.String("malloc.allocator"))
	assert.True(t, setts.Int64("malloc.capacity") > 0)
}

func TestNewTable(t *testing.T) {
	table, err := NewTable("new", testsettings())
	require.NoError(t, err)
	assert.Equal(t, "new", table.Name())
	assert.False(t, table.Isinitialized())
	assert.True(t, table.Isnotinitialized())
	assert.Equal(t, int64(0), table.Capacity())

	setts := testsettings().Mixin(s.Settings{"malloc.allocator": "flist"})
	_, err = NewTable("bad", setts)
	assert.Error(t, err)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewTable("bad", testsettings().Mixin(s.Settings{"assert": "abort"}))
	}()
}

func TestNew(t *testing.T) {
	setts := testsettings().Mixin(s.Settings{"capacity": int64(16)})
	table, err := New("new", setts)
	require.NoError(t, err)
	assert.True(t, table.Isinitialized())
	assert.Equal(t, int64(16), table.Capacity())
	assert.Equal(t, int64(15), table.Freehandles())
	require.NoError(t, table.Release())

	setts = testsettings().Mixin(s.Settings{"capacity": int64(0)})
	_, err = New("new", setts)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestInitCapacity(t *testing.T) {
	table, err := NewTable("init", testsettings())
	require.NoError(t, err)

	for _, capacity := range []int64{1, 2, 4, 100, 1024, MaxHandles - 1} {
		require.NoError(t, table.Init(capacity), "capacity %v", capacity)
		assert.True(t, table.Isinitialized())
		assert.Equal(t, capacity, table.Capacity())
		x := table.Usedhandles() + table.Freehandles()
		assert.Equal(t, capacity-1, x, "capacity %v", capacity)
		require.NoError(t, table.Validate())
		require.NoError(t, table.Release())
	}
}

func TestInitInvalid(t *testing.T) {
	table, err := NewTable("init", testsettings())
	require.NoError(t, err)

	for _, capacity := range []int64{0, -1, MaxHandles, MaxHandles + 1} {
		err := table.Init(capacity)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %v", capacity)
		assert.False(t, table.Isinitialized())
	}

	// invalid capacity does not touch a live table.
	require.NoError(t, table.Init(8))
	hnd, err := table.Alloc(10)
	require.NoError(t, err)
	assert.ErrorIs(t, table.Init(0), ErrInvalidCapacity)
	assert.True(t, table.Isinitialized())
	assert.Equal(t, int64(8), table.Capacity())
	assert.True(t, table.Isnotfree(hnd))
	require.NoError(t, table.Release())
}

func TestInitOutofMemory(t *testing.T) {
	setts := testsettings().Mixin(s.Settings{"malloc.capacity": 4 * Slotsize})
	table, err := NewTable("oom", setts)
	require.NoError(t, err)

	assert.ErrorIs(t, table.Init(5), ErrorOutofMemory)
	assert.False(t, table.Isinitialized())
	require.NoError(t, table.Init(4))
	require.NoError(t, table.Release())

	setts = setts.Mixin(s.Settings{"capacity": int64(5)})
	_, err = New("oom", setts)
	assert.ErrorIs(t, err, ErrorOutofMemory)
}

func TestReinit(t *testing.T) {
	table, err := NewTable("reinit", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(4))
	for i := 0; i < 3; i++ {
		_, err := table.Alloc(64)
		require.NoError(t, err)
	}
	assert.Equal(t, 192+4*Slotsize, table.Mallocer().Allocated())

	require.NoError(t, table.Init(8))
	assert.True(t, table.Isinitialized())
	assert.Equal(t, int64(8), table.Capacity())
	assert.Equal(t, int64(0), table.Usedhandles())
	assert.Equal(t, int64(7), table.Freehandles())
	assert.Equal(t, int64(0), table.Usedsize())
	assert.Equal(t, 8*Slotsize, table.Mallocer().Allocated())
	assert.Equal(t, int64(1), table.Stats()["n_reinits"])
	require.NoError(t, table.Release())
}

func TestRelease(t *testing.T) {
	table, err := NewTable("release", testsettings())
	require.NoError(t, err)

	assert.ErrorIs(t, table.Release(), ErrUninitialized)

	require.NoError(t, table.Init(16))
	hnds := []api.Handle{}
	for i := int64(1); i <= 10; i++ {
		hnd, err := table.Alloc(i * 10)
		require.NoError(t, err)
		hnds = append(hnds, hnd)
	}
	require.NoError(t, table.Free(hnds[3]))

	require.NoError(t, table.Release())
	assert.False(t, table.Isinitialized())
	assert.Equal(t, int64(0), table.Mallocer().Allocated())

	// second release fails, does not crash.
	assert.ErrorIs(t, table.Release(), ErrUninitialized)

	// every query fails or returns zero.
	for _, hnd := range hnds {
		assert.False(t, table.Isvalid(hnd))
		assert.False(t, table.Isfree(hnd))
		assert.False(t, table.Isnotfree(hnd))
		assert.ErrorIs(t, table.Free(hnd), ErrUninitialized)
		_, err := table.Lookup(hnd)
		assert.ErrorIs(t, err, ErrUninitialized)
	}
	assert.Equal(t, int64(0), table.Usedsize())
	assert.Equal(t, int64(0), table.Allusedsize())
	assert.Equal(t, int64(0), table.Usedhandles())
	assert.Equal(t, int64(0), table.Freehandles())
	hnd, err := table.Alloc(10)
	assert.ErrorIs(t, err, ErrUninitialized)
	assert.Equal(t, api.Nohandle, hnd)
}

func TestReleaseBackendFailure(t *testing.T) {
	table, err := NewTable("release", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(8))
	for i := 0; i < 4; i++ {
		_, err := table.Alloc(32)
		require.NoError(t, err)
	}
	// backend released under the table, every free fails.
	table.Mallocer().Release()

	err = table.Release()
	require.Error(t, err)
	assert.False(t, table.Isinitialized())
}

func TestScenarioSmall(t *testing.T) {
	table, err := NewTable("scenario", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(4))

	hnd, err := table.Alloc(128)
	require.NoError(t, err)
	assert.Equal(t, api.Handle(1), hnd)
	assert.Equal(t, int64(128), table.Usedsize())
	assert.Equal(t, int64(128)+4*Slotsize, table.Allusedsize())
	assert.Equal(t, int64(2), table.Freehandles())
	assert.Equal(t, int64(1), table.Usedhandles())

	require.NoError(t, table.Free(1))
	assert.Equal(t, int64(0), table.Usedsize())
	require.NoError(t, table.Release())
}

func TestSlotRecordsCharged(t *testing.T) {
	mcapacity := 4*Slotsize + 64
	setts := testsettings().Mixin(s.Settings{"malloc.capacity": mcapacity})
	table, err := NewTable("budget", setts)
	require.NoError(t, err)
	require.NoError(t, table.Init(4))
	assert.Equal(t, 4*Slotsize, table.Mallocer().Allocated())
	assert.Equal(t, int64(64), table.Mallocer().Available())

	// blocks share what is left after the slot records.
	_, err = table.Alloc(64)
	require.NoError(t, err)
	_, err = table.Alloc(1)
	assert.ErrorIs(t, err, ErrorOutofMemory)
	assert.Equal(t, int64(64)+4*Slotsize, table.Allusedsize())
	assert.True(t, table.Allusedsize() <= mcapacity)
	require.NoError(t, table.Validate())

	require.NoError(t, table.Release())
	assert.Equal(t, int64(0), table.Mallocer().Allocated())

	// slot records alone fill the backend.
	setts = testsettings().Mixin(s.Settings{"malloc.capacity": 4 * Slotsize})
	table, err = NewTable("budget", setts)
	require.NoError(t, err)
	require.NoError(t, table.Init(4))
	hnd, err := table.Alloc(128)
	assert.ErrorIs(t, err, ErrorOutofMemory)
	assert.Equal(t, api.Nohandle, hnd)
	assert.True(t, table.Allusedsize() <= 4*Slotsize)
	require.NoError(t, table.Release())
}

func TestZeroblocksSetting(t *testing.T) {
	table, err := NewTable("zero", testsettings())
	require.NoError(t, err)
	assert.True(t, table.zeroblocks)

	setts := testsettings().Mixin(s.Settings{"zeroblocks": false})
	table, err = NewTable("zero", setts)
	require.NoError(t, err)
	assert.False(t, table.zeroblocks)
}
