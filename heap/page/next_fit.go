package page

import (
	"fmt"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/format"
)

// sentinel is the permanent zero-sized allocated block at cell 0. It anchors
// the wrap-around part of the next-fit scan and is never swept.
const sentinel = 0

// NextFitPage serves variable-length blocks from a fixed 256 KiB page.
//
// Every block starts with a one-cell header (allocated flag, payload size in
// cells) and blocks tile the whole cell array. Allocation carves from the end
// of the current block and, when that fails, scans forward for the next free
// block that fits, wrapping around to the start of the page.
type NextFitPage struct {
	buf      []byte
	cells    uint32
	maxBlock uint32
	cur      uint32
}

// NewNextFitPage formats buf as an empty next-fit page: the sentinel at cell 0
// followed by one free block covering the rest of the page.
func NewNextFitPage(buf []byte, g *geometry.Geometry) (*NextFitPage, error) {
	if len(buf) != format.NextFitPageSize {
		return nil, fmt.Errorf("next-fit page: len %d, want %d: %w", len(buf), format.NextFitPageSize, ErrPageSize)
	}
	p := &NextFitPage{
		buf:      buf,
		cells:    uint32(g.NextFitPageCellCount),
		maxBlock: uint32(g.NextFitPageMaxBlockSize),
		cur:      sentinel + 1,
	}
	clear(buf)
	p.setHeader(sentinel, format.BlockHeader{Allocated: true, Size: 0})
	p.setHeader(p.cur, format.BlockHeader{Size: p.maxBlock})
	p.saveCursor()
	return p, nil
}

// WrapNextFitPage opens a page previously formatted by NewNextFitPage.
func WrapNextFitPage(buf []byte, g *geometry.Geometry) (*NextFitPage, error) {
	if len(buf) != format.NextFitPageSize {
		return nil, fmt.Errorf("next-fit page: len %d, want %d: %w", len(buf), format.NextFitPageSize, ErrPageSize)
	}
	p := &NextFitPage{
		buf:      buf,
		cells:    uint32(g.NextFitPageCellCount),
		maxBlock: uint32(g.NextFitPageMaxBlockSize),
		cur:      format.ReadU32(buf, format.NextFitCurBlockOffset),
	}
	if s := p.header(sentinel); !s.Allocated || s.Size != 0 || p.cur >= p.cells {
		return nil, fmt.Errorf("next-fit page: sentinel %+v cursor %d: %w", s, p.cur, format.ErrCorrupt)
	}
	return p, nil
}

// MaxBlockSize returns the largest payload, in cells, one block can hold.
func (p *NextFitPage) MaxBlockSize() uint32 { return p.maxBlock }

// TryAllocate returns the ref of a zeroed block with a payload of cells cells.
func (p *NextFitPage) TryAllocate(cells uint32) (uint32, error) {
	if cells == 0 {
		return 0, fmt.Errorf("next-fit allocate 0 cells: %w", ErrInvalidBlockSize)
	}
	if cells > p.maxBlock {
		return 0, fmt.Errorf("next-fit allocate %d cells (max %d): %w", cells, p.maxBlock, ErrBlockTooLarge)
	}
	if ref, ok := p.carve(p.cur, cells); ok {
		return ref, nil
	}
	if !p.updateCursor(cells) {
		return 0, fmt.Errorf("next-fit allocate %d cells: %w", cells, ErrPageFull)
	}
	ref, _ := p.carve(p.cur, cells)
	return ref, nil
}

// Payload returns the payload bytes of the allocated block at ref.
func (p *NextFitPage) Payload(ref uint32) ([]byte, error) {
	if ref == sentinel || ref >= p.cells {
		return nil, fmt.Errorf("next-fit ref %d: %w", ref, ErrBadRef)
	}
	h := p.header(ref)
	if !h.Allocated || ref+1+h.Size > p.cells {
		return nil, fmt.Errorf("next-fit ref %d: %w", ref, ErrBadRef)
	}
	return p.payload(ref, h.Size), nil
}

// FreeCells returns the total payload of all free blocks and the largest one.
func (p *NextFitPage) FreeCells() (total, largest uint32) {
	for b := p.next(sentinel); b < p.cells; b = p.next(b) {
		if h := p.header(b); !h.Allocated {
			total += h.Size
			largest = max(largest, h.Size)
		}
	}
	return total, largest
}

// Sweep frees every allocated block live reports dead, merges adjacent free
// blocks and parks the cursor on the largest free block. It returns the
// number of live blocks.
func (p *NextFitPage) Sweep(live LiveFunc) int {
	alive := 0
	run, inRun := uint32(0), false
	var runSize uint32
	best, bestSize := uint32(sentinel), uint32(0)

	for b := p.next(sentinel); b < p.cells; {
		h := p.header(b)
		next := b + 1 + h.Size
		if h.Allocated && live(b) {
			alive++
			inRun = false
			b = next
			continue
		}
		if h.Allocated {
			clear(p.payload(b, h.Size))
		}
		if inRun {
			// b's header cell becomes payload of the run.
			clear(p.cell(b))
			runSize += 1 + h.Size
		} else {
			run, runSize, inRun = b, h.Size, true
		}
		p.setHeader(run, format.BlockHeader{Size: runSize})
		if best == sentinel || runSize > bestSize {
			best, bestSize = run, runSize
		}
		b = next
	}

	p.cur = best
	p.saveCursor()
	return alive
}

// carve allocates cells from the end of the free block b.
func (p *NextFitPage) carve(b, cells uint32) (uint32, bool) {
	h := p.header(b)
	if h.Allocated || h.Size < cells {
		return 0, false
	}
	if h.Size == cells {
		p.setHeader(b, format.BlockHeader{Allocated: true, Size: cells})
		return b, true
	}
	rest := h.Size - cells - 1
	p.setHeader(b, format.BlockHeader{Size: rest})
	ref := b + 1 + rest
	p.setHeader(ref, format.BlockHeader{Allocated: true, Size: cells})
	return ref, true
}

// updateCursor moves the cursor to the first free block after it that fits,
// wrapping around to the start of the page. When nothing fits the cursor is
// parked on the sentinel so the next attempt fails fast.
func (p *NextFitPage) updateCursor(cells uint32) bool {
	for b := p.next(p.cur); b < p.cells; b = p.next(b) {
		if p.fits(b, cells) {
			p.cur = b
			p.saveCursor()
			return true
		}
	}
	for b := uint32(sentinel); b < p.cur; b = p.next(b) {
		if p.fits(b, cells) {
			p.cur = b
			p.saveCursor()
			return true
		}
	}
	p.cur = sentinel
	p.saveCursor()
	return false
}

func (p *NextFitPage) fits(b, cells uint32) bool {
	h := p.header(b)
	return !h.Allocated && h.Size >= cells
}

func (p *NextFitPage) next(b uint32) uint32 {
	return b + 1 + p.header(b).Size
}

func (p *NextFitPage) cell(idx uint32) []byte {
	off := format.CellOffset(format.NextFitPageHeaderSize, idx, format.CellSize)
	return p.buf[off : off+format.CellSize]
}

func (p *NextFitPage) payload(b, size uint32) []byte {
	off := format.CellOffset(format.NextFitPageHeaderSize, b+1, format.CellSize)
	return p.buf[off : off+int(size)*format.CellSize]
}

func (p *NextFitPage) header(b uint32) format.BlockHeader {
	return format.DecodeBlockHeader(p.cell(b))
}

func (p *NextFitPage) setHeader(b uint32, h format.BlockHeader) {
	h.Encode(p.cell(b))
}

func (p *NextFitPage) saveCursor() {
	format.PutU32(p.buf, format.NextFitCurBlockOffset, p.cur)
}
