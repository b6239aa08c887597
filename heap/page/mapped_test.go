package page

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagekit/heap/geometry"
)

func TestMapFixedBlockPage(t *testing.T) {
	g := testGeometry(t, 8)
	p, unmap, err := MapFixedBlockPage(g, 9)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, unmap()) })

	require.Equal(t, uint32(12), p.BlockSize())
	refs := drainFixed(p)
	require.Len(t, refs, 85)
	require.Zero(t, p.Sweep(func(uint32) bool { return false }))
	require.Equal(t, 85, p.FreeBlocks())
}

func TestMapFixedBlockPageBadBucket(t *testing.T) {
	g := testGeometry(t, 8)
	_, unmap, err := MapFixedBlockPage(g, geometry.BucketCount)
	require.ErrorIs(t, err, geometry.ErrInvalidBucket)
	require.Nil(t, unmap)
}

func TestMapNextFitPage(t *testing.T) {
	g := testGeometry(t, 8)
	p, unmap, err := MapNextFitPage(g)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, unmap()) })

	ref, err := p.TryAllocate(p.MaxBlockSize())
	require.NoError(t, err)
	payload, err := p.Payload(ref)
	require.NoError(t, err)
	require.Equal(t, make([]byte, len(payload)), payload)

	require.Zero(t, p.Sweep(func(uint32) bool { return false }))
	total, _ := p.FreeCells()
	require.Equal(t, p.MaxBlockSize(), total)
}

func TestMapExtraObjectPage(t *testing.T) {
	g := testGeometry(t, 128)
	p, unmap, err := MapExtraObjectPage(g)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, unmap()) })

	ref, ok := p.TryAllocate()
	require.True(t, ok)
	require.Equal(t, uint32(0), ref)
	require.Equal(t, 1, p.Allocated())
}
