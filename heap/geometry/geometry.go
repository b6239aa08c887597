package geometry

import (
	"fmt"
	"math"

	"github.com/joshuapare/pagekit/internal/format"
	"github.com/joshuapare/pagekit/internal/logger"
)

// Provider supplies the tunable part of the geometry. It is read once by
// Resolve.
type Provider interface {
	// FixedBlockPageSizeKiB returns the fixed-block page size in KiB.
	FixedBlockPageSizeKiB() int
}

// Geometry is the resolved page and cell layout of every page kind. It is
// built once by Resolve and never modified.
type Geometry struct {
	// FixedBlockPageSize is the configured fixed-block page size in bytes.
	FixedBlockPageSize int
	// FixedBlockPageCellCount is the number of FixedBlockCells after the header.
	FixedBlockPageCellCount int
	// FixedBlockPageMaxBucket is the bucket of the largest fixed block.
	FixedBlockPageMaxBucket uint32

	// NextFitPageCellCount is the number of Cells after the next-fit header.
	NextFitPageCellCount int
	// NextFitPageMaxBlockSize is the largest payload, in cells, one next-fit
	// block can have: the cell count minus the block header cell and the
	// zero-sized sentinel block at cell 0.
	NextFitPageMaxBlockSize int

	// ExtraObjectCount is the number of slots in an extra-object page.
	ExtraObjectCount int
}

// CellCount returns how many cells of cellSize bytes fit in a page of
// pageSize bytes after a header of headerSize bytes.
func CellCount(pageSize, headerSize, cellSize int) (int, error) {
	if cellSize <= 0 || headerSize < 0 {
		return 0, fmt.Errorf("cell count: header %d, cell %d: %w", headerSize, cellSize, ErrInvalidConfig)
	}
	if pageSize < headerSize+cellSize {
		return 0, fmt.Errorf("cell count: page %d < header %d + cell %d: %w",
			pageSize, headerSize, cellSize, ErrPageTooSmall)
	}
	return (pageSize - headerSize) / cellSize, nil
}

// MaxFixedBlockPageSizeKiB is the largest fixed-block page whose cell
// indexes all stay below format.InvalidIndex.
const MaxFixedBlockPageSizeKiB = (1 << 32) / (format.KiB / format.FixedBlockCellSize)

// Resolve reads the provider and computes the geometry of every page kind.
// Any error is fatal for the heap: nothing can be allocated without a valid
// layout.
func Resolve(p Provider) (*Geometry, error) {
	kib := p.FixedBlockPageSizeKiB()
	if kib <= 0 || kib > MaxFixedBlockPageSizeKiB || kib > math.MaxInt/format.KiB {
		return nil, fmt.Errorf("fixed-block page size %d KiB: %w", kib, ErrInvalidConfig)
	}
	return resolve(kib * format.KiB)
}

func resolve(fixedBlockPageSize int) (*Geometry, error) {
	fixedCells, err := CellCount(fixedBlockPageSize, format.FixedBlockPageHeaderSize, format.FixedBlockCellSize)
	if err != nil {
		return nil, fmt.Errorf("fixed-block page: %w", err)
	}
	nextFitCells, err := CellCount(format.NextFitPageSize, format.NextFitPageHeaderSize, format.CellSize)
	if err != nil {
		return nil, fmt.Errorf("next-fit page: %w", err)
	}
	extraCount, err := CellCount(format.ExtraObjectPageSize, format.ExtraObjectPageHeaderSize, format.ExtraObjectCellSize)
	if err != nil {
		return nil, fmt.Errorf("extra-object page: %w", err)
	}

	maxBucket := bucketIndex(format.FixedBlockPageMaxBlockSize)
	if maxBucket != MaxBucket {
		return nil, fmt.Errorf("bucket(%d) = %d, want %d: %w",
			format.FixedBlockPageMaxBlockSize, maxBucket, MaxBucket, ErrBucketDrift)
	}

	g := &Geometry{
		FixedBlockPageSize:      fixedBlockPageSize,
		FixedBlockPageCellCount: fixedCells,
		FixedBlockPageMaxBucket: maxBucket,
		NextFitPageCellCount:    nextFitCells,
		NextFitPageMaxBlockSize: nextFitMaxBlockSize(nextFitCells),
		ExtraObjectCount:        extraCount,
	}

	logger.Debug("geometry resolved",
		"fixed_block_page_size", g.FixedBlockPageSize,
		"fixed_block_cells", g.FixedBlockPageCellCount,
		"max_bucket", g.FixedBlockPageMaxBucket,
		"next_fit_cells", g.NextFitPageCellCount,
		"next_fit_max_block", g.NextFitPageMaxBlockSize,
		"extra_objects", g.ExtraObjectCount,
	)
	return g, nil
}

// BlocksPerPage returns how many blocks of bucket b one fixed-block page holds.
func (g *Geometry) BlocksPerPage(b uint32) (int, error) {
	size, err := BucketBlockSize(b)
	if err != nil {
		return 0, err
	}
	return g.FixedBlockPageCellCount / int(size), nil
}

// nextFitMaxBlockSize reserves one cell for the block header and one for the
// sentinel block at cell 0.
func nextFitMaxBlockSize(cellCount int) int {
	return cellCount - 2
}
