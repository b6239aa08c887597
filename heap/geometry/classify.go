package geometry

import (
	"fmt"

	"github.com/joshuapare/pagekit/internal/format"
)

// PageKind identifies which kind of page serves a request.
type PageKind uint8

const (
	KindFixedBlock PageKind = iota + 1
	KindNextFit
	KindLarge
)

func (k PageKind) String() string {
	switch k {
	case KindFixedBlock:
		return "fixed-block"
	case KindNextFit:
		return "next-fit"
	case KindLarge:
		return "large"
	default:
		return fmt.Sprintf("PageKind(%d)", uint8(k))
	}
}

// Class is the routing decision for one allocation request.
type Class struct {
	Kind PageKind
	// Cells is the request rounded up to whole cells.
	Cells uint64
	// Bucket and BlockSize are set for KindFixedBlock only.
	Bucket    uint32
	BlockSize uint32
}

// Classify routes a request of size bytes to the page kind that serves it.
// A request never goes to a page kind whose maximum block size it exceeds.
func (g *Geometry) Classify(size uint64) (Class, error) {
	if size == 0 {
		return Class{}, fmt.Errorf("classify 0 bytes: %w", ErrInvalidRequest)
	}
	cells := format.CellsFor(size)
	switch {
	case cells <= format.FixedBlockPageMaxBlockSize:
		b := bucketIndex(uint32(cells))
		return Class{
			Kind:      KindFixedBlock,
			Cells:     cells,
			Bucket:    b,
			BlockSize: bucketBlockSize(b),
		}, nil
	case cells <= uint64(g.NextFitPageMaxBlockSize):
		return Class{Kind: KindNextFit, Cells: cells}, nil
	default:
		return Class{Kind: KindLarge, Cells: cells}, nil
	}
}
