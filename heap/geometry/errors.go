package geometry

import "errors"

var (
	// ErrInvalidConfig indicates the provider returned an unusable page size.
	ErrInvalidConfig = errors.New("geometry: invalid configuration")

	// ErrPageTooSmall indicates a page cannot host its header plus one cell.
	ErrPageTooSmall = errors.New("geometry: page too small for header and one cell")

	// ErrBucketDrift indicates the bucket function no longer maps the largest
	// fixed block to the expected last bucket.
	ErrBucketDrift = errors.New("geometry: max bucket does not match bucket function")

	// ErrInvalidBlockSize indicates a block size outside [1, FixedBlockPageMaxBlockSize].
	ErrInvalidBlockSize = errors.New("geometry: block size out of fixed-block range")

	// ErrInvalidBucket indicates a bucket index outside [0, MaxBucket].
	ErrInvalidBucket = errors.New("geometry: bucket out of range")

	// ErrInvalidRequest indicates an allocation request of zero bytes.
	ErrInvalidRequest = errors.New("geometry: invalid allocation request")
)
