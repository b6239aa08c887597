package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagekit/internal/format"
)

func TestBucketIndexKnownSizes(t *testing.T) {
	tests := []struct {
		size   uint32
		bucket uint32
	}{
		{1, 0},
		{2, 1},
		{8, 7},
		{9, 8},
		{10, 8},
		{11, 9},
		{16, 11},
		{17, 12},
		{32, 15},
		{33, 16},
		{64, 19},
		{65, 20},
		{96, 21},
		{97, 22},
		{112, 22},
		{113, 23},
		{127, 23},
	}
	for _, tt := range tests {
		got, err := BucketIndex(tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.bucket, got, "size=%d", tt.size)
	}
}

func TestBucketIndexMaxMatchesConstant(t *testing.T) {
	b, err := BucketIndex(format.FixedBlockPageMaxBlockSize)
	require.NoError(t, err)
	require.Equal(t, uint32(MaxBucket), b)
}

func TestBucketIndexMonotonic(t *testing.T) {
	prev := uint32(0)
	for s := uint32(1); s <= format.FixedBlockPageMaxBlockSize; s++ {
		b, err := BucketIndex(s)
		require.NoError(t, err)
		require.GreaterOrEqual(t, b, prev, "size=%d", s)
		require.LessOrEqual(t, b, uint32(MaxBucket))
		prev = b
	}
}

func TestBucketIndexRejectsOutOfRange(t *testing.T) {
	for _, s := range []uint32{0, 128, 1000, ^uint32(0)} {
		_, err := BucketIndex(s)
		require.ErrorIs(t, err, ErrInvalidBlockSize, "size=%d", s)
	}
	// The unchecked function folds 128 into the last bucket; the checked one must not.
	require.Equal(t, uint32(MaxBucket), bucketIndex(128))
}

func TestBucketBlockSizeCoversRequests(t *testing.T) {
	for s := uint32(1); s <= format.FixedBlockPageMaxBlockSize; s++ {
		b, err := BucketIndex(s)
		require.NoError(t, err)
		size, err := BucketBlockSize(b)
		require.NoError(t, err)
		require.GreaterOrEqual(t, size, s, "bucket %d too small for %d", b, s)
		if b > 0 {
			below, _ := BucketBlockSize(b - 1)
			require.Less(t, below, s, "size %d fits a smaller bucket", s)
		}
	}
}

func TestBucketBlockSizeTable(t *testing.T) {
	want := []uint32{
		1, 2, 3, 4, 5, 6, 7, 8,
		10, 12, 14, 16,
		20, 24, 28, 32,
		40, 48, 56, 64,
		80, 96, 112, 128,
	}
	require.Len(t, want, BucketCount)
	for b, size := range want {
		got, err := BucketBlockSize(uint32(b))
		require.NoError(t, err)
		assert.Equal(t, size, got, "bucket=%d", b)
		idx, err := BucketIndex(min(size, format.FixedBlockPageMaxBlockSize))
		require.NoError(t, err)
		assert.Equal(t, uint32(b), idx)
	}

	_, err := BucketBlockSize(BucketCount)
	require.ErrorIs(t, err, ErrInvalidBucket)
}

func BenchmarkBucketIndex(b *testing.B) {
	var sink uint32
	for i := 0; i < b.N; i++ {
		sink += bucketIndex(uint32(i%format.FixedBlockPageMaxBlockSize) + 1)
	}
	_ = sink
}
