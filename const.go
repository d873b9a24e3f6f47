package handles

import "math"
import "unsafe"

// MaxHandles is the largest value an api.Handle can take. It is
// reserved, a table's capacity is always strictly less than MaxHandles.
const MaxHandles = int64(math.MaxUint16)

// Slotsize is the memory held by one slot record, including the
// reserved slot 0.
const Slotsize = int64(unsafe.Sizeof(Slot{}))

// Maxclass of the allocation size histogram, requests larger than
// 2^Maxclass bytes are counted together.
const Maxclass = 20
