// Package format describes the byte layout of allocator pages: the page
// headers, the cells that follow them, and the small link records stored
// inside free cells. Everything is little-endian and addressed by offset so
// the page views in heap/page can operate directly on page-sized buffers.
package format

const (
	// KiB is the unit page sizes are expressed in.
	KiB = 1024

	// CellSize is the size of one allocation unit. Both FixedBlockCell and the
	// next-fit Cell are one CellSize wide, and request sizes are rounded up to
	// a whole number of cells.
	CellSize = 8

	// CellAlignmentMask is the bitmask used for rounding up to CellSize (CellSize - 1).
	CellAlignmentMask = CellSize - 1
)

// ============================================================================
// Fixed-block page
// ============================================================================
// FixedBlockPage header layout:
//
//	Offset  Size  Field
//	0x00    4     Block size in cells (the bucket's size class)
//	0x04    4     End: last cell index a block may start at
//	0x08    4     Current free range, first block
//	0x0C    4     Current free range, last block (holds the link to the next range)
const (
	FixedBlockBlockSizeOffset = 0x00
	FixedBlockEndOffset       = 0x04
	FixedBlockFreeFirstOffset = 0x08
	FixedBlockFreeLastOffset  = 0x0C

	// FixedBlockPageHeaderSize is the size of the FixedBlockPage header.
	FixedBlockPageHeaderSize = 0x10

	// FixedBlockCellSize is the size of one FixedBlockCell.
	FixedBlockCellSize = CellSize

	// FixedBlockPageMaxBlockSize is the largest block, in cells, served by a
	// fixed-block page. Anything larger goes to a next-fit page.
	FixedBlockPageMaxBlockSize = 127

	// FixedBlockPageBucketBitLength is the number of bits below the leading
	// bit that select a sub-bucket, giving four buckets per power of two.
	FixedBlockPageBucketBitLength = 2

	// FixedBlockPageBucketBitMask selects the sub-bucket bits.
	FixedBlockPageBucketBitMask = (1 << FixedBlockPageBucketBitLength) - 1
)

// A free range link is written into the last block of every free range:
//
//	Offset  Size  Field
//	0x00    4     First block of the next range
//	0x04    4     Last block of the next range
const (
	RangeFirstOffset = 0x00
	RangeLastOffset  = 0x04
	RangeSize        = 0x08
)

// ============================================================================
// Next-fit page
// ============================================================================
// NextFitPage header layout:
//
//	Offset  Size  Field
//	0x00    4     Cell index of the current block (next-fit cursor)
//	0x04    4     Reserved
//
// Every block inside the page starts with a one-cell block header:
//
//	Offset  Size  Field
//	0x00    4     Allocated flag (0 free, 1 allocated)
//	0x04    4     Payload size in cells, excluding this header cell
const (
	NextFitCurBlockOffset = 0x00

	// NextFitPageHeaderSize is the size of the NextFitPage header.
	NextFitPageHeaderSize = 0x08

	// NextFitPageSize is the fixed size of every next-fit page.
	NextFitPageSize = 256 * KiB

	BlockAllocatedOffset = 0x00
	BlockSizeOffset      = 0x04

	// BlockHeaderSize is the size of the header at the start of each block.
	BlockHeaderSize = CellSize
)

// ============================================================================
// Extra-object page
// ============================================================================
// ExtraObjectPage header layout:
//
//	Offset  Size  Field
//	0x00    4     Slot index of the first free slot
//	0x04    4     Number of allocated slots
//	0x08    8     Reserved
//
// ExtraObjectCell layout:
//
//	Offset  Size  Field
//	0x00    4     Next free slot (only meaningful while the slot is free)
//	0x04    4     State (0 free, 1 allocated)
//	0x08    56    Metadata payload
const (
	ExtraObjectNextFreeOffset  = 0x00
	ExtraObjectAllocatedOffset = 0x04

	// ExtraObjectPageHeaderSize is the size of the ExtraObjectPage header.
	ExtraObjectPageHeaderSize = 0x10

	// ExtraObjectPageSize is the fixed size of every extra-object page.
	ExtraObjectPageSize = 64 * KiB

	SlotNextOffset  = 0x00
	SlotStateOffset = 0x04
	SlotDataOffset  = 0x08

	// ExtraObjectCellSize is the size of one ExtraObjectCell.
	ExtraObjectCellSize = 0x40

	// SlotDataSize is the metadata payload carried by one slot.
	SlotDataSize = ExtraObjectCellSize - SlotDataOffset
)

const (
	// InvalidIndex terminates free lists stored inside a page.
	InvalidIndex = 0xFFFFFFFF
)
