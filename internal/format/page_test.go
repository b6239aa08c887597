package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedBlockHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, FixedBlockPageHeaderSize)
	want := FixedBlockHeader{BlockSize: 10, End: 32756, NextFree: FreeRange{First: 20, Last: 32750}}
	want.Encode(buf)

	got, err := DecodeFixedBlockHeader(buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, uint32(20), ReadU32(buf, FixedBlockFreeFirstOffset))
}

func TestDecodeFixedBlockHeaderErrors(t *testing.T) {
	_, err := DecodeFixedBlockHeader(make([]byte, FixedBlockPageHeaderSize-1))
	require.True(t, errors.Is(err, ErrTruncated))

	_, err = DecodeFixedBlockHeader(make([]byte, FixedBlockPageHeaderSize))
	require.ErrorIs(t, err, ErrCorrupt, "zero block size must be rejected")
}

func TestBlockHeader(t *testing.T) {
	buf := make([]byte, BlockHeaderSize)
	BlockHeader{Allocated: true, Size: 7}.Encode(buf)
	require.Equal(t, BlockHeader{Allocated: true, Size: 7}, DecodeBlockHeader(buf))

	BlockHeader{Size: 3}.Encode(buf)
	require.Equal(t, uint32(0), ReadU32(buf, BlockAllocatedOffset))
	require.False(t, DecodeBlockHeader(buf).Allocated)
}

func TestExtraObjectHeader(t *testing.T) {
	buf := make([]byte, ExtraObjectPageHeaderSize)
	for i := range buf {
		buf[i] = 0xff
	}
	ExtraObjectHeader{NextFree: 4, Allocated: 2}.Encode(buf)

	got, err := DecodeExtraObjectHeader(buf)
	require.NoError(t, err)
	require.Equal(t, ExtraObjectHeader{NextFree: 4, Allocated: 2}, got)
	require.Equal(t, make([]byte, 8), buf[8:16], "reserved word is cleared")

	_, err = DecodeExtraObjectHeader(buf[:4])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestLayoutSizes(t *testing.T) {
	require.Equal(t, FixedBlockPageHeaderSize, FixedBlockFreeLastOffset+4)
	require.Equal(t, RangeSize, FixedBlockCellSize, "a range link must fit in the smallest block")
	require.Equal(t, BlockHeaderSize, BlockSizeOffset+4)
	require.Equal(t, 56, SlotDataSize)
	require.Equal(t, 3, FixedBlockPageBucketBitMask)
}

func TestCellsFor(t *testing.T) {
	tests := []struct {
		bytes uint64
		cells uint64
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{1016, 127},
		{1017, 128},
		{^uint64(0), 1 << 61},
	}
	for _, tt := range tests {
		require.Equal(t, tt.cells, CellsFor(tt.bytes), "bytes=%d", tt.bytes)
	}
	require.Equal(t, 16+3*8, CellOffset(FixedBlockPageHeaderSize, 3, CellSize))
}
