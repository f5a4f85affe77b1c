// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

// GradStop is a color at an offset along a gradient.
type GradStop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear or two-circle radial gradient in user units. Colors
// are padded beyond the first and last stop.
type Gradient struct {
	x0, y0, r0 float64
	x1, y1, r1 float64
	radial     bool
	stops      []GradStop
}

// NewLinearGradient returns a gradient along the line (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{x0: x0, y0: y0, x1: x1, y1: y1}
}

// NewRadialGradient returns a gradient between the circle at (x0, y0) of
// radius r0 and the circle at (x1, y1) of radius r1.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	if r0 < 0 || r1 < 0 {
		return nil, fmt.Errorf("radial gradient radii %v, %v: %w", r0, r1, ErrIndexSize)
	}
	return &Gradient{x0: x0, y0: y0, r0: r0, x1: x1, y1: y1, r1: r1, radial: true}, nil
}

// IsRadial reports whether g is a radial gradient.
func (g *Gradient) IsRadial() bool { return g.radial }

// Stops returns a copy of the color stops in offset order.
func (g *Gradient) Stops() []GradStop {
	return append([]GradStop(nil), g.stops...)
}

// AddColorStop adds a stop. Stops at equal offsets keep the order they were
// added in.
func (g *Gradient) AddColorStop(offset float64, css string) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return fmt.Errorf("color stop offset %v: %w", offset, ErrIndexSize)
	}
	c, err := ParseColor(css)
	if err != nil {
		return err
	}
	i := len(g.stops)
	for i > 0 && g.stops[i-1].Offset > offset {
		i--
	}
	g.stops = append(g.stops, GradStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = GradStop{Offset: offset, Color: c}
	return nil
}

// ColorAt returns the color at parameter t.
func (g *Gradient) ColorAt(t float64) color.NRGBA {
	return g.tColor(t, 1)
}

// tColor takes the parameterized value along the gradient's stops and
// returns the padded color.
func (g *Gradient) tColor(t, opacity float64) color.NRGBA {
	d := len(g.stops)
	if d == 0 {
		return color.NRGBA{}
	}
	if t >= g.stops[d-1].Offset {
		return ApplyOpacity(g.stops[d-1].Color, opacity)
	}
	if t < g.stops[0].Offset {
		return ApplyOpacity(g.stops[0].Color, opacity)
	}
	place := 0 // advance to the first stop past t
	for place != d && t >= g.stops[place].Offset {
		place++
	}
	return g.blendStops(t, opacity, g.stops[place-1], g.stops[place])
}

func (g *Gradient) blendStops(t, opacity float64, s1, s2 GradStop) color.NRGBA {
	if s2.Offset == s1.Offset {
		return ApplyOpacity(s2.Color, opacity)
	}
	tp := (t - s1.Offset) / (s2.Offset - s1.Offset)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-tp) + float64(b)*tp))
	}
	return ApplyOpacity(color.NRGBA{
		mix(s1.Color.R, s2.Color.R),
		mix(s1.Color.G, s2.Color.G),
		mix(s1.Color.B, s2.Color.B),
		mix(s1.Color.A, s2.Color.A)}, opacity)
}

// param returns the gradient parameter at user point (x, y), or false where
// the gradient paints nothing.
func (g *Gradient) param(x, y float64) (float64, bool) {
	if !g.radial {
		dx, dy := g.x1-g.x0, g.y1-g.y0
		d := dx*dx + dy*dy
		if d == 0 {
			return 0, false
		}
		return ((x-g.x0)*dx + (y-g.y0)*dy) / d, true
	}
	// Largest t with r(t) >= 0 for which (x, y) lies on the circle
	// centered at c0 + t(c1-c0) of radius r0 + t(r1-r0).
	cdx, cdy, dr := g.x1-g.x0, g.y1-g.y0, g.r1-g.r0
	pdx, pdy := x-g.x0, y-g.y0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := pdx*cdx + pdy*cdy + g.r0*dr
	c := pdx*pdx + pdy*pdy - g.r0*g.r0
	valid := func(t float64) bool { return g.r0+t*dr >= 0 }
	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, valid(t)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if valid(t1) {
		return t1, true
	}
	return t2, valid(t2)
}

// colorFunc evaluates g at device pixel centers mapped through inv.
func (g *Gradient) colorFunc(inv AffineMatrix, opacity float64) interface{} {
	if len(g.stops) == 0 {
		return color.NRGBA{}
	}
	if g.x0 == g.x1 && g.y0 == g.y1 && (!g.radial || g.r0 == g.r1) {
		return color.NRGBA{}
	}
	stops := append([]GradStop(nil), g.stops...)
	gc := &Gradient{x0: g.x0, y0: g.y0, r0: g.r0, x1: g.x1, y1: g.y1, r1: g.r1, radial: g.radial, stops: stops}
	return rasterx.ColorFunc(func(xi, yi int) color.Color {
		x, y := inv.Apply(float64(xi)+0.5, float64(yi)+0.5)
		t, ok := gc.param(x, y)
		if !ok {
			return color.NRGBA{}
		}
		return gc.tColor(t, opacity)
	})
}
