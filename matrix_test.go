package okcanvas_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	. "github.com/raykov/okcanvas"
)

const eps = 1e-9

var testMatrices = []AffineMatrix{
	Identity,
	NewAffineMatrix(2, 0, 0, 3, 0, 0),
	NewAffineMatrix(1, 2, 3, 4, 5, 6),
	Identity.Translate(10, -4).Rotate(0.7).Scale(2, 0.5),
	NewAffineMatrix(-1.5, 0.25, 4, 2, -7, 11),
}

func TestIdentityLaw(t *testing.T) {
	for _, m := range testMatrices {
		require.Equal(t, m, m.Multiply(Identity))
		require.Equal(t, m, Identity.Multiply(m))
	}
}

func TestMultiplyOrder(t *testing.T) {
	// translate then rotate rotates around the translated origin
	m := Identity.Translate(10, 20).Rotate(math.Pi / 2)
	p := m.ApplyToPoint(Point{X: 0, Y: 0})
	require.InDelta(t, 10, p.X, eps)
	require.InDelta(t, 20, p.Y, eps)

	p = m.ApplyToPoint(Point{X: 1, Y: 0})
	require.InDelta(t, 10, p.X, eps)
	require.InDelta(t, 21, p.Y, eps)

	// rotate then translate moves along the rotated x axis
	m = Identity.Rotate(math.Pi / 2).Translate(10, 0)
	p = m.ApplyToPoint(Point{X: 0, Y: 0})
	require.InDelta(t, 0, p.X, eps)
	require.InDelta(t, 10, p.Y, eps)
}

func TestMultiplyComponents(t *testing.T) {
	a := NewAffineMatrix(1, 2, 3, 4, 5, 6)
	b := NewAffineMatrix(7, 8, 9, 10, 11, 12)
	require.Equal(t, NewAffineMatrix(31, 46, 39, 58, 52, 76), a.Multiply(b))
}

func TestInverseRoundTrip(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}, {-3.5, 12}, {1e3, -1e3}}
	for _, m := range testMatrices {
		require.True(t, m.IsInvertible())
		inv := m.Invert()
		for _, p := range pts {
			q := m.ApplyToPoint(inv.ApplyToPoint(p))
			require.InDelta(t, p.X, q.X, 1e-6)
			require.InDelta(t, p.Y, q.Y, 1e-6)
		}
		require.True(t, m.Multiply(inv).ApproxEqual(Identity, 1e-9))
	}
	require.False(t, NewAffineMatrix(1, 2, 2, 4, 0, 0).IsInvertible())
}

func TestRotateUnrotate(t *testing.T) {
	for _, theta := range []float64{0, 0.1, 1, math.Pi / 3, math.Pi, -2.5, 10} {
		m := Identity.Rotate(theta).Rotate(-theta)
		require.True(t, m.ApproxEqual(Identity, eps), "theta %v: %v", theta, m)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	for _, m := range testMatrices {
		a := m.ToArray()
		n, err := MatrixFromSlice(a[:])
		require.NoError(t, err)
		require.Equal(t, m, n)
	}
	_, err := MatrixFromSlice([]float64{1, 2, 3})
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestConstructors(t *testing.T) {
	m := NewAffineMatrix(1, 2, 3, 4, 5, 6)
	require.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, m.ToArray())
	require.Equal(t, m, MatrixFrom(m))
	require.Equal(t, m, MatrixFromRasterx(m.Rasterx()))
	require.Equal(t, AffineMatrix{1, 0, 0, 1, 0, 0}, Identity)
}

func TestScaleTranslate(t *testing.T) {
	m := Identity.Scale(2, 3).Translate(1, 1)
	x, y := m.Apply(1, 1)
	require.InDelta(t, 4, x, eps)
	require.InDelta(t, 6, y, eps)

	m = Identity.Translate(1, 1).Scale(2, 3)
	x, y = m.Apply(1, 1)
	require.InDelta(t, 3, x, eps)
	require.InDelta(t, 4, y, eps)
}

func TestSkew(t *testing.T) {
	x, y := Identity.SkewX(math.Pi/4).Apply(0, 2)
	require.InDelta(t, 2, x, eps)
	require.InDelta(t, 2, y, eps)
	x, y = Identity.SkewY(math.Pi/4).Apply(3, 0)
	require.InDelta(t, 3, x, eps)
	require.InDelta(t, 3, y, eps)
}

type xy struct{ x, y float64 }

func (v xy) XY() (float64, float64) { return v.x, v.y }

func TestApplyTo(t *testing.T) {
	m := Identity.Translate(1, 2)
	want := Point{X: 4, Y: 6}
	for _, args := range [][]interface{}{
		{3.0, 4.0},
		{3, 4},
		{float32(3), int64(4)},
		{Point{3, 4}},
		{&Point{3, 4}},
		{xy{3, 4}},
		{fixed.Point26_6{X: 3 * 64, Y: 4 * 64}},
	} {
		p, err := m.ApplyTo(args...)
		require.NoError(t, err, "%v", args)
		require.Equal(t, want, p)
	}
	for _, args := range [][]interface{}{
		{},
		{"3", 4.0},
		{3.0},
		{3.0, 4.0, 5.0},
		{(*Point)(nil)},
		{struct{ X, Y float64 }{3, 4}},
	} {
		_, err := m.ApplyTo(args...)
		require.True(t, errors.Is(err, ErrInvalidArgument), "%v", args)
	}
}

func TestTFixed(t *testing.T) {
	m := Identity.Translate(1, 2).Scale(2, 2)
	p := m.TFixed(fixed.Point26_6{X: 64, Y: 64})
	require.Equal(t, fixed.Int26_6(3*64), p.X)
	require.Equal(t, fixed.Int26_6(4*64), p.Y)
}

func TestString(t *testing.T) {
	require.Equal(t, "| 1, 3, 5 |\n| 2, 4, 6 |", NewAffineMatrix(1, 2, 3, 4, 5, 6).String())
}

func TestImmutable(t *testing.T) {
	m := NewAffineMatrix(1, 2, 3, 4, 5, 6)
	before := m
	_ = m.Rotate(1)
	_ = m.Scale(2, 2)
	_ = m.Translate(3, 3)
	_ = m.Multiply(Identity.Scale(4, 4))
	require.Equal(t, before, m)
}
