// Package geometry computes the page and cell geometry of the allocator.
//
// # Overview
//
// The heap is built from three page kinds, each a fixed-size region with a
// small header followed by an array of uniform cells:
//
//   - Fixed-block pages serve small requests (1..127 cells). Each page is
//     dedicated to one size class ("bucket") and carves its cells into blocks
//     of that class's size. The page size is configurable.
//   - Next-fit pages (256 KiB) serve medium requests with variable-length
//     blocks found by a next-fit scan.
//   - Extra-object pages (64 KiB) hold uniform slots of per-object metadata.
//
// Requests too large for a next-fit page go to the large-object path, which
// lives outside this package.
//
// # Resolution
//
// All values are computed once by Resolve from a Provider and kept in an
// immutable Geometry that is passed to every consumer:
//
//	g, err := geometry.Resolve(config.Static(128))
//	if err != nil {
//	    return err // fatal: the heap cannot start with a broken layout
//	}
//	cls, err := g.Classify(96) // 12 cells -> fixed-block bucket 9
//
// A Geometry is safe for concurrent use; nothing in it changes after Resolve.
//
// # Buckets
//
// Block sizes 1..8 each have their own bucket. Above that every power-of-two
// octave is split into four buckets using the two bits below the leading bit:
//
//	Bucket:  0  1 ..  7 |  8  9 10 11 | 12 13 14 15 | ... | 20  21  22  23
//	Cells:   1  2 ..  8 | 10 12 14 16 | 20 24 28 32 | ... | 80  96 112 128
//
// A request is served by the smallest bucket whose block size covers it, so
// the largest fixed-block request (127 cells) lands in bucket 23.
package geometry
