// Package page provides views over page-sized buffers for the three page
// kinds described by heap/geometry.
//
// Each view keeps its entire state inside the buffer: the header written at
// offset 0 and the link records stored in free cells. A page can be wrapped
// again later with the matching Wrap function.
//
// Blocks and slots are addressed by cell index (a uint32 "ref"). The views do
// not mark objects; Sweep asks the caller which allocated refs are still live
// through a LiveFunc and reclaims the rest. Memory handed out by TryAllocate
// is always zeroed.
//
// A page view is not safe for concurrent use. The page pool that owns pages
// is responsible for handing each page to one goroutine at a time.
package page

// LiveFunc reports whether the allocated block or slot at ref survived marking.
type LiveFunc func(ref uint32) bool
