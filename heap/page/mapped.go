package page

import (
	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/format"
	"github.com/joshuapare/pagekit/internal/mmpage"
)

// MapFixedBlockPage maps a fresh fixed-block page for bucket. The returned
// unmap releases the page; the view must not be used afterwards.
func MapFixedBlockPage(g *geometry.Geometry, bucket uint32) (*FixedBlockPage, func() error, error) {
	return mapPage(g.FixedBlockPageSize, func(buf []byte) (*FixedBlockPage, error) {
		return NewFixedBlockPage(buf, g, bucket)
	})
}

// MapNextFitPage maps a fresh next-fit page.
func MapNextFitPage(g *geometry.Geometry) (*NextFitPage, func() error, error) {
	return mapPage(format.NextFitPageSize, func(buf []byte) (*NextFitPage, error) {
		return NewNextFitPage(buf, g)
	})
}

// MapExtraObjectPage maps a fresh extra-object page.
func MapExtraObjectPage(g *geometry.Geometry) (*ExtraObjectPage, func() error, error) {
	return mapPage(format.ExtraObjectPageSize, func(buf []byte) (*ExtraObjectPage, error) {
		return NewExtraObjectPage(buf, g)
	})
}

func mapPage[P any](size int, init func([]byte) (P, error)) (P, func() error, error) {
	var zero P
	buf, unmap, err := mmpage.Map(size)
	if err != nil {
		return zero, nil, err
	}
	p, err := init(buf)
	if err != nil {
		_ = unmap()
		return zero, nil, err
	}
	return p, unmap, nil
}
