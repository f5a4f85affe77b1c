// Copyright 2022 The okcanvas Authors. All rights reserved.
//
// Implements canvas style affine matrix transformations.
// https://developer.mozilla.org/en-US/docs/Web/API/DOMMatrix
package okcanvas

import (
	"fmt"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// AffineMatrix is a 2d affine transformation matrix, very similar to the
// DOM's SVGMatrix. Fields are laid out as
//
//	| A, C, E |
//	| B, D, F |
//
// and map (x, y) to (A*x + C*y + E, B*x + D*y + F). Every method has a value
// receiver and returns a new matrix.
type AffineMatrix struct {
	A, B, C, D, E, F float64
}

// Point is a 2d coordinate.
type Point struct {
	X, Y float64
}

// XY returns the coordinates of p.
func (p Point) XY() (float64, float64) { return p.X, p.Y }

// Identity is the matrix that leaves every point unchanged.
var Identity = AffineMatrix{1, 0, 0, 1, 0, 0}

// NewAffineMatrix builds a matrix from its six components.
func NewAffineMatrix(a, b, c, d, e, f float64) AffineMatrix {
	return AffineMatrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// MatrixFrom returns a copy of m.
func MatrixFrom(m AffineMatrix) AffineMatrix {
	return AffineMatrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// MatrixFromSlice reads the components a, b, c, d, e, f from the first six
// elements of s, the layout produced by ToArray.
func MatrixFromSlice(s []float64) (AffineMatrix, error) {
	if len(s) != 6 {
		return Identity, fmt.Errorf("matrix needs 6 components, got %d: %w", len(s), ErrInvalidArgument)
	}
	return AffineMatrix{s[0], s[1], s[2], s[3], s[4], s[5]}, nil
}

// MatrixFromRasterx converts a rasterx matrix.
func MatrixFromRasterx(m rasterx.Matrix2D) AffineMatrix {
	return AffineMatrix{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Rasterx converts m into the rasterx representation.
func (m AffineMatrix) Rasterx() rasterx.Matrix2D {
	return rasterx.Matrix2D{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// Multiply returns the product m*o, the transform that applies o first and
// then m.
func (m AffineMatrix) Multiply(o AffineMatrix) AffineMatrix {
	return AffineMatrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F}
}

// Apply transforms the point (x, y).
func (m AffineMatrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyToPoint transforms p.
func (m AffineMatrix) ApplyToPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ApplyTo transforms a vector passed either as two numbers or as a single
// point-like value: a Point, a *Point, a fixed.Point26_6 or anything with an
// XY() (float64, float64) method. Other argument shapes return
// ErrInvalidArgument.
func (m AffineMatrix) ApplyTo(args ...interface{}) (Point, error) {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case Point:
			return m.ApplyToPoint(v), nil
		case *Point:
			if v != nil {
				return m.ApplyToPoint(*v), nil
			}
		case fixed.Point26_6:
			return m.ApplyToPoint(Point{float64(v.X) / 64, float64(v.Y) / 64}), nil
		case interface{ XY() (float64, float64) }:
			x, y := v.XY()
			return m.ApplyToPoint(Point{x, y}), nil
		}
	case 2:
		x, okx := toFloat(args[0])
		y, oky := toFloat(args[1])
		if okx && oky {
			return m.ApplyToPoint(Point{x, y}), nil
		}
	}
	return Point{}, fmt.Errorf("cannot apply matrix to %v: %w", args, ErrInvalidArgument)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// TFixed transforms a fixed.Point26_6 by the matrix
func (m AffineMatrix) TFixed(a fixed.Point26_6) (b fixed.Point26_6) {
	b.X = fixed.Int26_6((float64(a.X)*m.A + float64(a.Y)*m.C) + m.E*64)
	b.Y = fixed.Int26_6((float64(a.X)*m.B + float64(a.Y)*m.D) + m.F*64)
	return
}

// Rotate returns m rotated by theta radians. In the y-down canvas
// coordinate system positive angles turn clockwise on screen.
func (m AffineMatrix) Rotate(theta float64) AffineMatrix {
	sin, cos := math.Sincos(theta)
	return m.Multiply(AffineMatrix{
		A: cos,
		B: sin,
		C: -sin,
		D: cos,
		E: 0,
		F: 0})
}

func (m AffineMatrix) Scale(x, y float64) AffineMatrix {
	return m.Multiply(AffineMatrix{
		A: x,
		B: 0,
		C: 0,
		D: y,
		E: 0,
		F: 0})
}

func (m AffineMatrix) Translate(x, y float64) AffineMatrix {
	return m.Multiply(AffineMatrix{
		A: 1,
		B: 0,
		C: 0,
		D: 1,
		E: x,
		F: y})
}

func (m AffineMatrix) SkewX(theta float64) AffineMatrix {
	return m.Multiply(AffineMatrix{
		A: 1,
		B: 0,
		C: math.Tan(theta),
		D: 1,
		E: 0,
		F: 0})
}

func (m AffineMatrix) SkewY(theta float64) AffineMatrix {
	return m.Multiply(AffineMatrix{
		A: 1,
		B: math.Tan(theta),
		C: 0,
		D: 1,
		E: 0,
		F: 0})
}

// Determinant of the linear part.
func (m AffineMatrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. A singular matrix yields
// non-finite components.
func (m AffineMatrix) Invert() AffineMatrix {
	det := m.Determinant()
	return AffineMatrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det}
}

// IsInvertible reports whether m has a finite inverse.
func (m AffineMatrix) IsInvertible() bool {
	det := m.Determinant()
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// ScaleFactor is the geometric mean of the axis scale factors; line widths
// and font sizes use it to move between user and device units.
func (m AffineMatrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// ApproxEqual compares the components of m and o within eps.
func (m AffineMatrix) ApproxEqual(o AffineMatrix, eps float64) bool {
	a, b := m.ToArray(), o.ToArray()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// ToArray returns the components in the order a, b, c, d, e, f.
func (m AffineMatrix) ToArray() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

func (m AffineMatrix) String() string {
	return fmt.Sprintf("| %v, %v, %v |\n| %v, %v, %v |", m.A, m.C, m.E, m.B, m.D, m.F)
}

// matrixAdder transforms every point with M before handing it to Adder.
type matrixAdder struct {
	rasterx.Adder
	M AffineMatrix
}

func (t *matrixAdder) Start(a fixed.Point26_6) {
	t.Adder.Start(t.M.TFixed(a))
}

// Line adds a linear segment to the current curve.
func (t *matrixAdder) Line(b fixed.Point26_6) {
	t.Adder.Line(t.M.TFixed(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (t *matrixAdder) QuadBezier(b, c fixed.Point26_6) {
	t.Adder.QuadBezier(t.M.TFixed(b), t.M.TFixed(c))
}

// CubeBezier adds a cubic segment to the current curve.
func (t *matrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	t.Adder.CubeBezier(t.M.TFixed(b), t.M.TFixed(c), t.M.TFixed(d))
}
