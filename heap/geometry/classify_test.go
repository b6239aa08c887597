package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	g, err := Resolve(kib(128))
	require.NoError(t, err)

	tests := []struct {
		name   string
		bytes  uint64
		kind   PageKind
		cells  uint64
		bucket uint32
		block  uint32
	}{
		{"one byte", 1, KindFixedBlock, 1, 0, 1},
		{"one cell", 8, KindFixedBlock, 1, 0, 1},
		{"rounds up", 9, KindFixedBlock, 2, 1, 2},
		{"mid octave", 96, KindFixedBlock, 12, 9, 12},
		{"largest fixed", 127 * 8, KindFixedBlock, 127, 23, 128},
		{"first next-fit", 127*8 + 1, KindNextFit, 128, 0, 0},
		{"largest next-fit", 32765 * 8, KindNextFit, 32765, 0, 0},
		{"first large", 32765*8 + 1, KindLarge, 32766, 0, 0},
		{"huge", 1 << 40, KindLarge, 1 << 37, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := g.Classify(tt.bytes)
			require.NoError(t, err)
			require.Equal(t, tt.kind, c.Kind)
			require.Equal(t, tt.cells, c.Cells)
			require.Equal(t, tt.bucket, c.Bucket)
			require.Equal(t, tt.block, c.BlockSize)
		})
	}
}

func TestClassifyZero(t *testing.T) {
	g, err := Resolve(kib(128))
	require.NoError(t, err)
	_, err = g.Classify(0)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestClassifyNeverExceedsKindMaximum(t *testing.T) {
	g, err := Resolve(kib(16))
	require.NoError(t, err)

	for bytes := uint64(1); bytes <= uint64(g.NextFitPageMaxBlockSize+4)*8; bytes += 7 {
		c, err := g.Classify(bytes)
		require.NoError(t, err)
		switch c.Kind {
		case KindFixedBlock:
			require.LessOrEqual(t, c.Cells, uint64(127))
			require.GreaterOrEqual(t, uint64(c.BlockSize), c.Cells)
		case KindNextFit:
			require.LessOrEqual(t, c.Cells, uint64(g.NextFitPageMaxBlockSize))
		case KindLarge:
			require.Greater(t, c.Cells, uint64(g.NextFitPageMaxBlockSize))
		}
	}
}

func TestPageKindString(t *testing.T) {
	require.Equal(t, "fixed-block", KindFixedBlock.String())
	require.Equal(t, "next-fit", KindNextFit.String())
	require.Equal(t, "large", KindLarge.String())
	require.Equal(t, "PageKind(9)", PageKind(9).String())
}
