// Package handles implement a fixed capacity, indirect memory manager.
// Applications request blocks of memory and get back an api.Handle, a
// small integer, instead of a pointer. The table owns every block and
// does all allocation, lookup, bounds checked copy and release.
//
// A table has `capacity` slots. Slot 0 is reserved and describes the
// table itself, handles range over [1, capacity). Handle 0 is never
// allocated and is returned when Alloc fails. Allocation picks the
// lowest numbered free slot, a freed slot is reused by the next Alloc,
// hence a handle held across Free and Alloc refers to the new block.
//
// Types and functions exported by this package are not thread safe,
// applications sharing a table between goroutines must serialize
// calls.
//
// api:
//
// Handle type and interfaces shared by tables, memory backends and
// applications.
//
// malloc:
//
// Memory backends, on the Go heap or as anonymous mappings, bounded by
// a capacity.
//
// lib:
//
// Statistical helpers used for allocation statistics.
//
// tools/handlectl:
//
// Console driver exercising the table.
package handles
