// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// pathBuilder accumulates canvas path commands into a rasterx.Path. Points
// are mapped through m as they are added, so a context builds its path in
// device pixels while a Path2D, with m the identity, keeps user units.
type pathBuilder struct {
	path rasterx.Path
	m    AffineMatrix

	cur, start Point // mapped
	hasCurrent bool
	inSub      bool
}

func toFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

func (b *pathBuilder) reset() {
	b.path.Clear()
	b.hasCurrent, b.inSub = false, false
}

func (b *pathBuilder) empty() bool { return len(b.path) == 0 }

// userCurrent is the current point in the builder's input space.
func (b *pathBuilder) userCurrent() (x, y float64) {
	if !b.m.IsInvertible() {
		return b.cur.X, b.cur.Y
	}
	return b.m.Invert().Apply(b.cur.X, b.cur.Y)
}

func (b *pathBuilder) startAt(p Point) {
	b.path.Start(toFixed(p))
	b.cur, b.start = p, p
	b.hasCurrent, b.inSub = true, true
}

// ensure starts a subpath at p when there is no current point and reopens
// one at the current point after a close. It reports whether a current
// point already existed.
func (b *pathBuilder) ensure(p Point) bool {
	if !b.hasCurrent {
		b.startAt(p)
		return false
	}
	if !b.inSub {
		b.startAt(b.cur)
	}
	return true
}

func (b *pathBuilder) moveTo(x, y float64) {
	b.startAt(b.m.ApplyToPoint(Point{x, y}))
}

func (b *pathBuilder) lineTo(x, y float64) {
	p := b.m.ApplyToPoint(Point{x, y})
	if !b.ensure(p) {
		return
	}
	b.path.Line(toFixed(p))
	b.cur = p
}

// connect joins (x, y) to the current point unless they coincide.
func (b *pathBuilder) connect(x, y float64) {
	p := b.m.ApplyToPoint(Point{x, y})
	if !b.ensure(p) {
		return
	}
	if math.Abs(p.X-b.cur.X) < 1.0/128 && math.Abs(p.Y-b.cur.Y) < 1.0/128 {
		return
	}
	b.path.Line(toFixed(p))
	b.cur = p
}

func (b *pathBuilder) quadTo(cpx, cpy, x, y float64) {
	c := b.m.ApplyToPoint(Point{cpx, cpy})
	b.ensure(c)
	p := b.m.ApplyToPoint(Point{x, y})
	b.path.QuadBezier(toFixed(c), toFixed(p))
	b.cur = p
}

func (b *pathBuilder) cubicTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c1 := b.m.ApplyToPoint(Point{cp1x, cp1y})
	b.ensure(c1)
	c2 := b.m.ApplyToPoint(Point{cp2x, cp2y})
	p := b.m.ApplyToPoint(Point{x, y})
	b.path.CubeBezier(toFixed(c1), toFixed(c2), toFixed(p))
	b.cur = p
}

func (b *pathBuilder) closePath() {
	if !b.inSub {
		return
	}
	b.path.Stop(true)
	b.inSub = false
	b.cur = b.start
}

func (b *pathBuilder) rect(x, y, w, h float64) {
	b.moveTo(x, y)
	b.lineTo(x+w, y)
	b.lineTo(x+w, y+h)
	b.lineTo(x, y+h)
	b.closePath()
}

func (b *pathBuilder) arc(x, y, r, start, end float64, ccw bool) error {
	if r < 0 {
		return fmt.Errorf("arc radius %v: %w", r, ErrIndexSize)
	}
	b.ellipseArc(x, y, r, r, 0, start, canvasSweep(start, end, ccw))
	return nil
}

func (b *pathBuilder) ellipse(x, y, rx, ry, rot, start, end float64, ccw bool) error {
	if rx < 0 || ry < 0 {
		return fmt.Errorf("ellipse radii %v, %v: %w", rx, ry, ErrIndexSize)
	}
	b.ellipseArc(x, y, rx, ry, rot, start, canvasSweep(start, end, ccw))
	return nil
}

// arcTo adds a circular arc of radius r tangent to the lines from the
// current point to (x1, y1) and from (x1, y1) to (x2, y2).
func (b *pathBuilder) arcTo(x1, y1, x2, y2, r float64) error {
	if r < 0 {
		return fmt.Errorf("arcTo radius %v: %w", r, ErrIndexSize)
	}
	if !b.ensure(b.m.ApplyToPoint(Point{x1, y1})) {
		return nil
	}
	x0, y0 := b.userCurrent()
	v1x, v1y := x0-x1, y0-y1
	v2x, v2y := x2-x1, y2-y1
	l1, l2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
	cross := v1x*v2y - v1y*v2x
	if r == 0 || l1 == 0 || l2 == 0 || math.Abs(cross) < 1e-9*l1*l2 {
		b.lineTo(x1, y1)
		return nil
	}
	v1x, v1y, v2x, v2y = v1x/l1, v1y/l1, v2x/l2, v2y/l2
	theta := math.Acos(math.Max(-1, math.Min(1, v1x*v2x+v1y*v2y)))
	dist := r / math.Tan(theta/2)
	t1x, t1y := x1+v1x*dist, y1+v1y*dist
	t2x, t2y := x1+v2x*dist, y1+v2y*dist

	bx, by := v1x+v2x, v1y+v2y
	bl := math.Hypot(bx, by)
	h := r / math.Sin(theta/2)
	cx, cy := x1+bx/bl*h, y1+by/bl*h

	a0 := math.Atan2(t1y-cy, t1x-cx)
	a1 := math.Atan2(t2y-cy, t2x-cx)
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}
	b.ellipseArc(cx, cy, r, r, 0, a0, sweep)
	return nil
}

// addPath appends src, mapped through m and then the builder's matrix.
func (b *pathBuilder) addPath(src rasterx.Path, m AffineMatrix) {
	if len(src) == 0 {
		return
	}
	src.AddTo(&matrixAdder{Adder: &b.path, M: b.m.Multiply(m)})
	b.hasCurrent, b.inSub = false, false
}
