// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

// Pattern tiles an image in user space.
type Pattern struct {
	img                image.Image
	repetition         string
	repeatX, repeatY   bool
	transform, inverse AffineMatrix
}

// NewPattern returns a pattern of img. repetition is one of "repeat",
// "repeat-x", "repeat-y" or "no-repeat"; the empty string means "repeat".
func NewPattern(img image.Image, repetition string) (*Pattern, error) {
	if img == nil {
		return nil, fmt.Errorf("pattern image: %w", ErrInvalidArgument)
	}
	p := &Pattern{img: img, transform: Identity, inverse: Identity}
	switch repetition {
	case "", "repeat":
		p.repetition, p.repeatX, p.repeatY = "repeat", true, true
	case "repeat-x":
		p.repetition, p.repeatX = repetition, true
	case "repeat-y":
		p.repetition, p.repeatY = repetition, true
	case "no-repeat":
		p.repetition = repetition
	default:
		return nil, fmt.Errorf("pattern repetition %q: %w", repetition, ErrSyntax)
	}
	return p, nil
}

// Repetition returns the normalized repetition mode.
func (p *Pattern) Repetition() string { return p.repetition }

// SetTransform sets the pattern's own transform, applied before the surface
// transform. A singular matrix leaves the pattern unchanged.
func (p *Pattern) SetTransform(m AffineMatrix) {
	if !m.IsInvertible() {
		return
	}
	p.transform, p.inverse = m, m.Invert()
}

// Transform returns the pattern transform.
func (p *Pattern) Transform() AffineMatrix { return p.transform }

// wrap maps v into [0, n) when repeating, reporting false outside the
// image otherwise.
func wrap(v float64, n int, repeat bool) (int, bool) {
	i := int(math.Floor(v))
	if repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	}
	return i, i >= 0 && i < n
}

func (p *Pattern) colorFunc(inv AffineMatrix, opacity float64) interface{} {
	b := p.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{}
	}
	m := p.inverse.Multiply(inv)
	img := p.img
	repeatX, repeatY := p.repeatX, p.repeatY
	return rasterx.ColorFunc(func(xi, yi int) color.Color {
		u, v := m.Apply(float64(xi)+0.5, float64(yi)+0.5)
		ix, okx := wrap(u, w, repeatX)
		iy, oky := wrap(v, h, repeatY)
		if !okx || !oky {
			return color.NRGBA{}
		}
		c := img.At(b.Min.X+ix, b.Min.Y+iy)
		if opacity >= 1 {
			return c
		}
		return ApplyOpacity(c, opacity)
	})
}
