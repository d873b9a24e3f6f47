// Package malloc supplies memory reservation backends for the handle
// table, with a limited scope:
//
//   - Types and Functions exported by this package are not thread safe.
//   - Every backend is bounded by a capacity, in bytes, fixed when the
//     backend is created. Reservations beyond capacity fail with
//     ErrorOutofMemory instead of growing.
//   - Blocks are handed out zero initialized and are exclusively owned
//     by the caller until they are given back with Free.
//   - There is no pooling, no compaction and no pointer re-write.
//
// Two backends are available, selected with the "allocator" setting:
//
//	heap : blocks are allocated on the Go heap.
//	mmap : each block is an anonymous private mapping, outside the Go
//	       heap, accounted in whole pages. Available on unix.
//
// Heap blocks are cleared when they are freed, unless "zeroblocks" is
// false. Builds tagged with `debug` poison them instead, so that a
// stale reference reads 0xdd instead of the old contents.
package malloc
