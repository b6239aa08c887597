package format

import "fmt"

// FreeRange is a run of free blocks in a fixed-block page. Blocks First,
// First+blockSize, ..., Last are free. The block at Last stores the link to
// the following range.
type FreeRange struct {
	First uint32
	Last  uint32
}

// FixedBlockHeader is the decoded FixedBlockPage header.
type FixedBlockHeader struct {
	BlockSize uint32
	End       uint32
	NextFree  FreeRange
}

// DecodeFixedBlockHeader reads the header at the start of a fixed-block page.
func DecodeFixedBlockHeader(b []byte) (FixedBlockHeader, error) {
	if err := CheckLen(b, FixedBlockPageHeaderSize, "fixed-block header"); err != nil {
		return FixedBlockHeader{}, err
	}
	h := FixedBlockHeader{
		BlockSize: ReadU32(b, FixedBlockBlockSizeOffset),
		End:       ReadU32(b, FixedBlockEndOffset),
		NextFree: FreeRange{
			First: ReadU32(b, FixedBlockFreeFirstOffset),
			Last:  ReadU32(b, FixedBlockFreeLastOffset),
		},
	}
	if h.BlockSize == 0 {
		return FixedBlockHeader{}, fmt.Errorf("fixed-block header: zero block size: %w", ErrCorrupt)
	}
	return h, nil
}

// Encode writes h into the first FixedBlockPageHeaderSize bytes of b.
func (h FixedBlockHeader) Encode(b []byte) {
	PutU32(b, FixedBlockBlockSizeOffset, h.BlockSize)
	PutU32(b, FixedBlockEndOffset, h.End)
	h.NextFree.Encode(b[FixedBlockFreeFirstOffset:])
}

// DecodeFreeRange reads a range link.
func DecodeFreeRange(b []byte) FreeRange {
	return FreeRange{
		First: ReadU32(b, RangeFirstOffset),
		Last:  ReadU32(b, RangeLastOffset),
	}
}

// Encode writes r as a range link.
func (r FreeRange) Encode(b []byte) {
	PutU32(b, RangeFirstOffset, r.First)
	PutU32(b, RangeLastOffset, r.Last)
}

// BlockHeader is the one-cell header in front of every next-fit block.
type BlockHeader struct {
	Allocated bool
	Size      uint32 // payload cells
}

// DecodeBlockHeader reads a block header from the start of b.
func DecodeBlockHeader(b []byte) BlockHeader {
	return BlockHeader{
		Allocated: ReadU32(b, BlockAllocatedOffset) != 0,
		Size:      ReadU32(b, BlockSizeOffset),
	}
}

// Encode writes h into the start of b.
func (h BlockHeader) Encode(b []byte) {
	var flag uint32
	if h.Allocated {
		flag = 1
	}
	PutU32(b, BlockAllocatedOffset, flag)
	PutU32(b, BlockSizeOffset, h.Size)
}

// ExtraObjectHeader is the decoded ExtraObjectPage header.
type ExtraObjectHeader struct {
	NextFree  uint32
	Allocated uint32
}

// DecodeExtraObjectHeader reads the header at the start of an extra-object page.
func DecodeExtraObjectHeader(b []byte) (ExtraObjectHeader, error) {
	if err := CheckLen(b, ExtraObjectPageHeaderSize, "extra-object header"); err != nil {
		return ExtraObjectHeader{}, err
	}
	return ExtraObjectHeader{
		NextFree:  ReadU32(b, ExtraObjectNextFreeOffset),
		Allocated: ReadU32(b, ExtraObjectAllocatedOffset),
	}, nil
}

// Encode writes h into the first ExtraObjectPageHeaderSize bytes of b.
func (h ExtraObjectHeader) Encode(b []byte) {
	PutU32(b, ExtraObjectNextFreeOffset, h.NextFree)
	PutU32(b, ExtraObjectAllocatedOffset, h.Allocated)
	PutU64(b, ExtraObjectAllocatedOffset+4, 0)
}
