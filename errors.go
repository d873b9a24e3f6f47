package handles

import "errors"

import "github.com/bnclabs/handles/malloc"

// ErrorOutofMemory memory backend could not reserve a block or the
// slot records.
var ErrorOutofMemory = malloc.ErrorOutofMemory

// ErrUninitialized operation on a table before Init or after Release.
var ErrUninitialized = errors.New("handles.uninitialized")

// ErrInvalidCapacity capacity for Init is outside [1, MaxHandles).
var ErrInvalidCapacity = errors.New("handles.invalidcapacity")

// ErrInvalidSize allocation size is not a positive number.
var ErrInvalidSize = errors.New("handles.invalidsize")

// ErrInvalidHandle handle is outside [1, capacity).
var ErrInvalidHandle = errors.New("handles.invalidhandle")

// ErrExhausted no free slot left in the table.
var ErrExhausted = errors.New("handles.exhausted")

// ErrNilBuffer caller supplied buffer is missing.
var ErrNilBuffer = errors.New("handles.nilbuffer")

// ErrSourceOverrun copy would read past the end of the source.
var ErrSourceOverrun = errors.New("handles.sourceoverrun")

// ErrDestOverrun copy would write past the end of the destination.
var ErrDestOverrun = errors.New("handles.destoverrun")

// ErrCorrupted table invariants do not hold.
var ErrCorrupted = errors.New("handles.corrupted")
