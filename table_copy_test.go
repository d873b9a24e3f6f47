package handles

import "bytes"
import "testing"

import "github.com/bnclabs/handles/api"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestCopyto(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(8))
	defer table.Release()

	hnd, err := table.Alloc(16)
	require.NoError(t, err)

	src := []byte("hello world, handle table")
	require.NoError(t, table.Copyto(src, int64(len(src)), 6, 5, hnd, 2))
	slot, err := table.Lookup(hnd)
	require.NoError(t, err)
	ref := make([]byte, 16)
	copy(ref[2:], "world")
	assert.Equal(t, ref, slot.Bytes())

	// exact fit at the tail, and a zero length copy.
	require.NoError(t, table.Copyto(src, 16, 0, 16, hnd, 0))
	assert.Equal(t, src[:16], slot.Bytes())
	require.NoError(t, table.Copyto(src, 0, 0, 0, hnd, 16))

	dst := make([]byte, 32)
	require.NoError(t, table.Copyfrom(hnd, 0, dst, 10, 16))
	assert.Equal(t, src[:16], dst[10:26])
	assert.Equal(t, int64(4), table.Stats()["n_copies"])
}

func TestCopyRoundtrip(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(64))
	defer table.Release()

	hnds := []api.Handle{}
	for i := 1; i < 64; i++ {
		hnd, err := table.Alloc(int64(i * 4))
		require.NoError(t, err)
		hnds = append(hnds, hnd)
		src := bytes.Repeat([]byte{byte(i)}, i*4)
		n := int64(len(src))
		require.NoError(t, table.Copyto(src, n, 0, n, hnd, 0))
	}
	for i, hnd := range hnds {
		n := (i + 1) * 4
		dst := make([]byte, n)
		require.NoError(t, table.Copyfrom(hnd, 0, dst, 0, int64(n)))
		assert.Equal(t, bytes.Repeat([]byte{byte(i + 1)}, n), dst)
	}
}

func TestCopytoDestOverrun(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(1024))
	defer table.Release()

	hnd, err := table.Alloc(128)
	require.NoError(t, err)
	fill := bytes.Repeat([]byte{0xab}, 128)
	require.NoError(t, table.Copyto(fill, 128, 0, 128, hnd, 0))

	buf := bytes.Repeat([]byte{0x11}, 512)
	err = table.Copyto(buf, 512, 0, 512, hnd, 0)
	assert.ErrorIs(t, err, ErrDestOverrun)
	slot, err := table.Lookup(hnd)
	require.NoError(t, err)
	assert.Equal(t, fill, slot.Bytes())

	err = table.Copyto(buf, 512, 0, 1, hnd, 128)
	assert.ErrorIs(t, err, ErrDestOverrun)
	err = table.Copyto(buf, 512, 0, 10, hnd, 120)
	assert.ErrorIs(t, err, ErrDestOverrun)
	err = table.Copyto(buf, 512, 0, 10, hnd, -1)
	assert.ErrorIs(t, err, ErrDestOverrun)
	assert.Equal(t, fill, slot.Bytes())
	assert.Equal(t, int64(4), table.Stats()["n_boundfails"])

	// free slot has no room.
	err = table.Copyto(buf, 512, 0, 1, 2, 0)
	assert.ErrorIs(t, err, ErrDestOverrun)
}

func TestCopytoSourceOverrun(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(8))
	defer table.Release()

	hnd, err := table.Alloc(128)
	require.NoError(t, err)
	fill := bytes.Repeat([]byte{0xab}, 128)
	require.NoError(t, table.Copyto(fill, 128, 0, 128, hnd, 0))

	buf := make([]byte, 64)
	testcases := [][3]int64{ // srclen, srcoff, n
		{64, 0, 65},
		{64, 60, 5},
		{32, 0, 33},
		{65, 0, 10},
		{64, -1, 10},
		{64, 0, -1},
		{64, 1 << 62, 1 << 62},
	}
	for _, tcase := range testcases {
		srclen, srcoff, n := tcase[0], tcase[1], tcase[2]
		err := table.Copyto(buf, srclen, srcoff, n, hnd, 0)
		assert.ErrorIs(t, err, ErrSourceOverrun, "case %v", tcase)
	}
	slot, err := table.Lookup(hnd)
	require.NoError(t, err)
	assert.Equal(t, fill, slot.Bytes())
	assert.Equal(t, int64(1), table.Stats()["n_copies"])
}

func TestCopytoInvalid(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)

	buf := make([]byte, 8)
	assert.ErrorIs(t, table.Copyto(buf, 8, 0, 8, 1, 0), ErrUninitialized)
	assert.ErrorIs(t, table.Copyfrom(1, 0, buf, 0, 8), ErrUninitialized)

	require.NoError(t, table.Init(8))
	defer table.Release()
	hnd, err := table.Alloc(8)
	require.NoError(t, err)

	assert.ErrorIs(t, table.Copyto(buf, 8, 0, 8, 0, 0), ErrInvalidHandle)
	assert.ErrorIs(t, table.Copyto(buf, 8, 0, 8, 8, 0), ErrInvalidHandle)
	assert.ErrorIs(t, table.Copyto(nil, 0, 0, 0, hnd, 0), ErrNilBuffer)
	assert.ErrorIs(t, table.Copyfrom(0, 0, buf, 0, 8), ErrInvalidHandle)
	assert.ErrorIs(t, table.Copyfrom(hnd, 0, nil, 0, 0), ErrNilBuffer)
}

func TestCopyfromOverrun(t *testing.T) {
	table, err := NewTable("copy", testsettings())
	require.NoError(t, err)
	require.NoError(t, table.Init(8))
	defer table.Release()

	hnd, err := table.Alloc(32)
	require.NoError(t, err)

	dst := bytes.Repeat([]byte{0x22}, 64)
	ref := append([]byte(nil), dst...)
	assert.ErrorIs(t, table.Copyfrom(hnd, 0, dst, 0, 33), ErrSourceOverrun)
	assert.ErrorIs(t, table.Copyfrom(hnd, 30, dst, 0, 3), ErrSourceOverrun)
	assert.ErrorIs(t, table.Copyfrom(hnd, 0, dst, 40, 32), ErrDestOverrun)
	assert.ErrorIs(t, table.Copyfrom(hnd, 0, dst[:16], 0, 32), ErrDestOverrun)
	assert.Equal(t, ref, dst)
}

func TestInbounds(t *testing.T) {
	assert.True(t, inbounds(0, 0, 0))
	assert.True(t, inbounds(0, 10, 10))
	assert.True(t, inbounds(10, 0, 10))
	assert.False(t, inbounds(11, 0, 10))
	assert.False(t, inbounds(1, 10, 10))
	assert.False(t, inbounds(-1, 1, 10))
	assert.False(t, inbounds(0, -1, 10))
	assert.False(t, inbounds(0, 1, -1))
	assert.False(t, inbounds(1<<62, 1<<62, 1<<62))
}
