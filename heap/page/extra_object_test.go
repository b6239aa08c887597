package page

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagekit/internal/format"
)

func TestExtraObjectPageLifecycle(t *testing.T) {
	g := testGeometry(t, 128)
	p, unmap, err := MapExtraObjectPage(g)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, unmap()) })

	var refs []uint32
	for {
		ref, ok := p.TryAllocate()
		if !ok {
			break
		}
		refs = append(refs, ref)
	}
	require.Len(t, refs, g.ExtraObjectCount)
	require.Equal(t, g.ExtraObjectCount, p.Allocated())
	for i, ref := range refs {
		require.Equal(t, uint32(i), ref)
	}

	slot, err := p.Slot(refs[10])
	require.NoError(t, err)
	require.Len(t, slot, format.SlotDataSize)
	copy(slot, "finalizer")

	alive := p.Sweep(func(ref uint32) bool { return ref%3 == 0 })
	require.Equal(t, (g.ExtraObjectCount+2)/3, alive)
	require.Equal(t, alive, p.Allocated())

	_, err = p.Slot(10)
	require.ErrorIs(t, err, ErrBadRef, "swept slot is no longer addressable")

	ref, ok := p.TryAllocate()
	require.True(t, ok)
	require.Equal(t, uint32(1), ref, "lowest free slot is reused first")
	reused, err := p.Slot(ref)
	require.NoError(t, err)
	require.Equal(t, make([]byte, format.SlotDataSize), reused)
}

func TestExtraObjectPageWrap(t *testing.T) {
	g := testGeometry(t, 128)
	buf := make([]byte, format.ExtraObjectPageSize)
	p, err := NewExtraObjectPage(buf, g)
	require.NoError(t, err)
	_, _ = p.TryAllocate()
	_, _ = p.TryAllocate()

	w, err := WrapExtraObjectPage(buf, g)
	require.NoError(t, err)
	require.Equal(t, 2, w.Allocated())
	ref, ok := w.TryAllocate()
	require.True(t, ok)
	require.Equal(t, uint32(2), ref)

	bad := make([]byte, format.ExtraObjectPageSize)
	format.PutU32(bad, format.ExtraObjectNextFreeOffset, uint32(g.ExtraObjectCount))
	_, err = WrapExtraObjectPage(bad, g)
	require.ErrorIs(t, err, format.ErrCorrupt)

	_, err = NewExtraObjectPage(make([]byte, 1024), g)
	require.ErrorIs(t, err, ErrPageSize)
}

func TestExtraObjectPageSlotBadRef(t *testing.T) {
	g := testGeometry(t, 128)
	p, err := NewExtraObjectPage(make([]byte, format.ExtraObjectPageSize), g)
	require.NoError(t, err)

	_, err = p.Slot(0)
	require.ErrorIs(t, err, ErrBadRef)
	_, err = p.Slot(uint32(g.ExtraObjectCount))
	require.ErrorIs(t, err, ErrBadRef)
}
