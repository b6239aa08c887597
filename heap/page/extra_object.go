package page

import (
	"fmt"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/format"
)

// slotAllocated marks a slot in use; free slots have state 0.
const slotAllocated = 1

// ExtraObjectPage holds uniform slots of per-object metadata. Free slots are
// chained through their next field, lowest index first.
type ExtraObjectPage struct {
	buf   []byte
	count uint32
	hdr   format.ExtraObjectHeader
}

// NewExtraObjectPage formats buf as an extra-object page with every slot free.
func NewExtraObjectPage(buf []byte, g *geometry.Geometry) (*ExtraObjectPage, error) {
	if len(buf) != format.ExtraObjectPageSize {
		return nil, fmt.Errorf("extra-object page: len %d, want %d: %w", len(buf), format.ExtraObjectPageSize, ErrPageSize)
	}
	p := &ExtraObjectPage{buf: buf, count: uint32(g.ExtraObjectCount)}
	clear(buf)
	p.hdr.NextFree = p.relink(func(uint32) bool { return false })
	p.hdr.Encode(buf)
	return p, nil
}

// WrapExtraObjectPage opens a page previously formatted by NewExtraObjectPage.
func WrapExtraObjectPage(buf []byte, g *geometry.Geometry) (*ExtraObjectPage, error) {
	if len(buf) != format.ExtraObjectPageSize {
		return nil, fmt.Errorf("extra-object page: len %d, want %d: %w", len(buf), format.ExtraObjectPageSize, ErrPageSize)
	}
	hdr, err := format.DecodeExtraObjectHeader(buf)
	if err != nil {
		return nil, err
	}
	count := uint32(g.ExtraObjectCount)
	if (hdr.NextFree != format.InvalidIndex && hdr.NextFree >= count) || hdr.Allocated > count {
		return nil, fmt.Errorf("extra-object page: %+v: %w", hdr, format.ErrCorrupt)
	}
	return &ExtraObjectPage{buf: buf, count: count, hdr: hdr}, nil
}

// Allocated returns the number of slots in use.
func (p *ExtraObjectPage) Allocated() int { return int(p.hdr.Allocated) }

// TryAllocate returns the ref of a zeroed free slot, or false when the page is full.
func (p *ExtraObjectPage) TryAllocate() (uint32, bool) {
	ref := p.hdr.NextFree
	if ref == format.InvalidIndex {
		return 0, false
	}
	s := p.slot(ref)
	p.hdr.NextFree = format.ReadU32(s, format.SlotNextOffset)
	p.hdr.Allocated++
	clear(s)
	format.PutU32(s, format.SlotStateOffset, slotAllocated)
	p.hdr.Encode(p.buf)
	return ref, true
}

// Slot returns the metadata payload of the allocated slot at ref.
func (p *ExtraObjectPage) Slot(ref uint32) ([]byte, error) {
	if ref >= p.count {
		return nil, fmt.Errorf("extra-object ref %d: %w", ref, ErrBadRef)
	}
	s := p.slot(ref)
	if format.ReadU32(s, format.SlotStateOffset) != slotAllocated {
		return nil, fmt.Errorf("extra-object ref %d not allocated: %w", ref, ErrBadRef)
	}
	return s[format.SlotDataOffset:], nil
}

// Sweep frees every allocated slot live reports dead and relinks the free
// list. It returns the number of live slots.
func (p *ExtraObjectPage) Sweep(live LiveFunc) int {
	p.hdr.NextFree = p.relink(live)
	p.hdr.Encode(p.buf)
	return int(p.hdr.Allocated)
}

// relink rebuilds the free list from the highest slot down so the head ends
// up at the lowest free index, and recounts allocated slots.
func (p *ExtraObjectPage) relink(live LiveFunc) uint32 {
	head := uint32(format.InvalidIndex)
	p.hdr.Allocated = 0
	for i := p.count; i > 0; i-- {
		ref := i - 1
		s := p.slot(ref)
		if format.ReadU32(s, format.SlotStateOffset) == slotAllocated && live(ref) {
			p.hdr.Allocated++
			continue
		}
		clear(s)
		format.PutU32(s, format.SlotNextOffset, head)
		head = ref
	}
	return head
}

func (p *ExtraObjectPage) slot(ref uint32) []byte {
	off := format.CellOffset(format.ExtraObjectPageHeaderSize, ref, format.ExtraObjectCellSize)
	return p.buf[off : off+format.ExtraObjectCellSize]
}
