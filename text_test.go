package okcanvas_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

// paintedIn reports whether any pixel of r has non-zero alpha.
func paintedIn(img *image.RGBA, r image.Rectangle) bool {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				return true
			}
		}
	}
	return false
}

func TestMeasureText(t *testing.T) {
	_, ctx := newRaster(10, 10)
	m, err := ctx.MeasureText("")
	require.NoError(t, err)
	require.Equal(t, 0.0, m.Width)
	require.Greater(t, m.Ascent, 0.0)
	require.Greater(t, m.Descent, 0.0)

	small, _ := ctx.MeasureText("Hello")
	ctx.SetFont("20px sans-serif")
	require.Equal(t, "20px sans-serif", ctx.Font())
	big, _ := ctx.MeasureText("Hello")
	require.InEpsilon(t, 2*small.Width, big.Width, 0.05)

	one, _ := ctx.MeasureText("H")
	two, _ := ctx.MeasureText("HH")
	require.InDelta(t, 2*one.Width, two.Width, 0.1)

	// tabs and newlines measure as spaces
	tab, _ := ctx.MeasureText("a\tb")
	space, _ := ctx.MeasureText("a b")
	require.Equal(t, space.Width, tab.Width)
}

func TestFontFamilies(t *testing.T) {
	_, ctx := newRaster(10, 10)
	ctx.SetFont("20px sans-serif")
	regular, _ := ctx.MeasureText("iiii")
	ctx.SetFont("20px monospace")
	mono, _ := ctx.MeasureText("iiii")
	require.Greater(t, mono.Width, regular.Width)

	ctx.SetFont("15pt sans-serif")
	pt, _ := ctx.MeasureText("iiii")
	require.InEpsilon(t, regular.Width, pt.Width, 0.05)
}

func TestFillText(t *testing.T) {
	el, ctx := newRaster(40, 40)
	ctx.SetFont("20px sans-serif")
	ctx.FillText("H", 2, 25)
	require.True(t, painted(el.Image()))
	require.False(t, paintedIn(el.Image(), image.Rect(0, 26, 40, 40)))

	el, ctx = newRaster(40, 40)
	ctx.SetFont("20px sans-serif")
	ctx.StrokeText("H", 2, 25)
	require.True(t, painted(el.Image()))
}

func TestTextAlign(t *testing.T) {
	el, ctx := newRaster(40, 40)
	ctx.SetFont("20px sans-serif")
	ctx.SetTextAlign("right")
	ctx.FillText("HH", 0, 25)
	require.False(t, painted(el.Image()))

	ctx.SetTextAlign("center")
	ctx.FillText("HH", 0, 25)
	require.True(t, painted(el.Image()))
	require.False(t, paintedIn(el.Image(), image.Rect(20, 0, 40, 40)))
}

func TestTextBaseline(t *testing.T) {
	el, ctx := newRaster(40, 40)
	ctx.SetFont("20px sans-serif")
	ctx.FillText("H", 2, 0)
	require.False(t, painted(el.Image()))

	ctx.SetTextBaseline("top")
	ctx.FillText("H", 2, 0)
	require.True(t, painted(el.Image()))

	el, ctx = newRaster(40, 40)
	ctx.SetFont("20px sans-serif")
	ctx.SetTextBaseline("bottom")
	ctx.FillText("H", 2, 40)
	require.True(t, painted(el.Image()))
}

func TestTextMaxWidth(t *testing.T) {
	el, ctx := newRaster(100, 40)
	ctx.SetFont("20px sans-serif")
	ctx.FillText("HHHHHHHH", 0, 25, 10)
	require.True(t, painted(el.Image()))
	require.False(t, paintedIn(el.Image(), image.Rect(11, 0, 100, 40)))

	el, ctx = newRaster(100, 40)
	ctx.SetFont("20px sans-serif")
	ctx.FillText("H", 0, 25, 0)
	ctx.FillText("H", 0, 25, -5)
	require.False(t, painted(el.Image()))
}
