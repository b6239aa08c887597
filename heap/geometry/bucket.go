package geometry

import (
	"fmt"
	"math/bits"

	"github.com/joshuapare/pagekit/internal/format"
)

const (
	// MaxBucket is the bucket the largest fixed block must land in. Resolve
	// checks it against BucketIndex(FixedBlockPageMaxBlockSize).
	MaxBucket = 23

	// BucketCount is the number of fixed-block size classes.
	BucketCount = MaxBucket + 1

	// exactBuckets is the number of block sizes with a bucket of their own.
	exactBuckets = 2 << format.FixedBlockPageBucketBitLength
)

// bucketIndex maps a block size in cells to its bucket without range checks.
// size must be at least 1.
func bucketIndex(size uint32) uint32 {
	v := size - 1
	if v < exactBuckets {
		return v
	}
	l := uint32(bits.Len32(v))
	sub := (v >> (l - 1 - format.FixedBlockPageBucketBitLength)) & format.FixedBlockPageBucketBitMask
	return (l-format.FixedBlockPageBucketBitLength)<<format.FixedBlockPageBucketBitLength | sub
}

// BucketIndex returns the bucket serving blocks of size cells. Sizes outside
// [1, FixedBlockPageMaxBlockSize] are rejected with ErrInvalidBlockSize; the
// raw bucket function would fold 128 into the last bucket, which cannot hold it.
func BucketIndex(size uint32) (uint32, error) {
	if size == 0 || size > format.FixedBlockPageMaxBlockSize {
		return 0, fmt.Errorf("bucket for %d cells: %w", size, ErrInvalidBlockSize)
	}
	return bucketIndex(size), nil
}

// BucketBlockSize returns the block size in cells served by bucket b.
func BucketBlockSize(b uint32) (uint32, error) {
	if b > MaxBucket {
		return 0, fmt.Errorf("block size of bucket %d: %w", b, ErrInvalidBucket)
	}
	return bucketBlockSize(b), nil
}

// bucketBlockSize is the inverse of bucketIndex: the largest size mapped to b.
func bucketBlockSize(b uint32) uint32 {
	if b < exactBuckets {
		return b + 1
	}
	l := b>>format.FixedBlockPageBucketBitLength + format.FixedBlockPageBucketBitLength
	sub := b & format.FixedBlockPageBucketBitMask
	lead := uint32(1) << format.FixedBlockPageBucketBitLength
	return (lead + sub + 1) << (l - 1 - format.FixedBlockPageBucketBitLength)
}
