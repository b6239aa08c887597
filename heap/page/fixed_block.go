package page

import (
	"fmt"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/format"
)

// FixedBlockPage serves blocks of a single bucket's size.
//
// Free blocks form a list of ascending ranges. The header holds the range
// currently being bump-allocated; the last block of every range holds the
// link to the next one, and a link with First == InvalidIndex ends the list.
type FixedBlockPage struct {
	buf []byte
	hdr format.FixedBlockHeader
}

// NewFixedBlockPage formats buf as an empty fixed-block page for bucket.
func NewFixedBlockPage(buf []byte, g *geometry.Geometry, bucket uint32) (*FixedBlockPage, error) {
	if len(buf) != g.FixedBlockPageSize {
		return nil, fmt.Errorf("fixed-block page: len %d, want %d: %w", len(buf), g.FixedBlockPageSize, ErrPageSize)
	}
	blockSize, err := geometry.BucketBlockSize(bucket)
	if err != nil {
		return nil, err
	}
	cells := uint32(g.FixedBlockPageCellCount)
	if blockSize > cells {
		return nil, fmt.Errorf("fixed-block page: %d-cell block in %d cells: %w", blockSize, cells, ErrBlockTooLarge)
	}

	end := cells - blockSize
	last := end - end%blockSize
	p := &FixedBlockPage{
		buf: buf,
		hdr: format.FixedBlockHeader{
			BlockSize: blockSize,
			End:       end,
			NextFree:  format.FreeRange{First: 0, Last: last},
		},
	}
	clear(buf)
	p.hdr.Encode(buf)
	p.writeLink(last, endOfList)
	return p, nil
}

// WrapFixedBlockPage opens a page previously formatted by NewFixedBlockPage.
func WrapFixedBlockPage(buf []byte, g *geometry.Geometry) (*FixedBlockPage, error) {
	if len(buf) != g.FixedBlockPageSize {
		return nil, fmt.Errorf("fixed-block page: len %d, want %d: %w", len(buf), g.FixedBlockPageSize, ErrPageSize)
	}
	hdr, err := format.DecodeFixedBlockHeader(buf)
	if err != nil {
		return nil, err
	}
	cells := uint32(g.FixedBlockPageCellCount)
	if hdr.BlockSize > cells || hdr.End != cells-hdr.BlockSize {
		return nil, fmt.Errorf("fixed-block page: block %d end %d: %w", hdr.BlockSize, hdr.End, format.ErrCorrupt)
	}
	return &FixedBlockPage{buf: buf, hdr: hdr}, nil
}

var endOfList = format.FreeRange{First: format.InvalidIndex, Last: format.InvalidIndex}

// BlockSize returns the block size in cells.
func (p *FixedBlockPage) BlockSize() uint32 { return p.hdr.BlockSize }

// TryAllocate returns the ref of a zeroed free block, or false when the page
// is full.
func (p *FixedBlockPage) TryAllocate() (uint32, bool) {
	next := p.hdr.NextFree.First
	if next > p.hdr.End {
		return 0, false
	}
	if next < p.hdr.NextFree.Last {
		p.hdr.NextFree.First += p.hdr.BlockSize
	} else {
		// Last block of the range: it carries the link to the next range.
		p.hdr.NextFree = p.readLink(next)
		clear(p.block(next))
	}
	p.hdr.Encode(p.buf)
	return next, true
}

// Block returns the bytes of the block at ref.
func (p *FixedBlockPage) Block(ref uint32) ([]byte, error) {
	if ref > p.hdr.End || ref%p.hdr.BlockSize != 0 {
		return nil, fmt.Errorf("fixed-block ref %d: %w", ref, ErrBadRef)
	}
	return p.block(ref), nil
}

// FreeBlocks counts the blocks on the free list.
func (p *FixedBlockPage) FreeBlocks() int {
	n := 0
	for r := p.hdr.NextFree; r.First <= p.hdr.End; r = p.readLink(r.Last) {
		n += int((r.Last-r.First)/p.hdr.BlockSize) + 1
	}
	return n
}

// Sweep frees every allocated block live reports dead and rebuilds the free
// list. It returns the number of live blocks; zero means the page is empty.
func (p *FixedBlockPage) Sweep(live LiveFunc) int {
	bs := p.hdr.BlockSize
	old := p.hdr.NextFree

	var (
		alive   int
		head    = endOfList
		run     format.FreeRange
		inRun   bool
		prevEnd = uint32(format.InvalidIndex)
	)
	closeRun := func() {
		if !inRun {
			return
		}
		if prevEnd == format.InvalidIndex {
			head = run
		} else {
			p.writeLink(prevEnd, run)
		}
		prevEnd = run.Last
		inRun = false
	}

	for idx := uint32(0); idx <= p.hdr.End; idx += bs {
		free := old.First <= idx && idx <= old.Last
		if free && idx == old.Last {
			old = p.readLink(idx)
			clear(p.block(idx))
		}
		if !free {
			if live(idx) {
				alive++
				closeRun()
				continue
			}
			clear(p.block(idx))
		}
		if inRun {
			run.Last = idx
		} else {
			run = format.FreeRange{First: idx, Last: idx}
			inRun = true
		}
	}
	closeRun()
	if prevEnd != format.InvalidIndex {
		p.writeLink(prevEnd, endOfList)
	}

	p.hdr.NextFree = head
	p.hdr.Encode(p.buf)
	return alive
}

func (p *FixedBlockPage) block(ref uint32) []byte {
	off := format.CellOffset(format.FixedBlockPageHeaderSize, ref, format.FixedBlockCellSize)
	return p.buf[off : off+int(p.hdr.BlockSize)*format.FixedBlockCellSize]
}

func (p *FixedBlockPage) readLink(ref uint32) format.FreeRange {
	return format.DecodeFreeRange(p.block(ref))
}

func (p *FixedBlockPage) writeLink(ref uint32, r format.FreeRange) {
	r.Encode(p.block(ref))
}
