package okcanvas_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/raykov/okcanvas"
)

// recorder is a surface that logs transform calls and keeps its own
// matrix stack, the way a native context would.
type recorder struct {
	*MockContext
	calls  []string
	matrix AffineMatrix
	stack  []AffineMatrix
	reset  bool // implements ResetTransform when set
}

func newRecorder() *recorder {
	return &recorder{MockContext: &MockContext{}, matrix: Identity}
}

func (r *recorder) log(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Save() {
	r.log("save")
	r.stack = append(r.stack, r.matrix)
}

func (r *recorder) Restore() {
	r.log("restore")
	if len(r.stack) == 0 {
		return
	}
	r.matrix = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *recorder) Scale(x, y float64) {
	r.log("scale %v %v", x, y)
	r.matrix = r.matrix.Scale(x, y)
}

func (r *recorder) Rotate(rad float64) {
	r.log("rotate %v", rad)
	r.matrix = r.matrix.Rotate(rad)
}

func (r *recorder) Translate(x, y float64) {
	r.log("translate %v %v", x, y)
	r.matrix = r.matrix.Translate(x, y)
}

func (r *recorder) Transform(a, b, c, d, e, f float64) {
	r.log("transform %v %v %v %v %v %v", a, b, c, d, e, f)
	r.matrix = r.matrix.Multiply(NewAffineMatrix(a, b, c, d, e, f))
}

func (r *recorder) SetTransform(a, b, c, d, e, f float64) {
	r.log("setTransform %v %v %v %v %v %v", a, b, c, d, e, f)
	r.matrix = NewAffineMatrix(a, b, c, d, e, f)
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.log("clearRect %v %v %v %v", x, y, w, h)
}

func (r *recorder) FillRect(x, y, w, h float64) {
	r.log("fillRect %v %v %v %v", x, y, w, h)
}

// resettingRecorder adds a native ResetTransform.
type resettingRecorder struct {
	*recorder
}

func (r resettingRecorder) ResetTransform() {
	r.log("resetTransform")
	r.matrix = Identity
}

type recorderElement struct {
	MockElement
	surface DrawingSurface
	err     error
}

func (e *recorderElement) Context2D() (DrawingSurface, error) {
	return e.surface, e.err
}

func newCanvas(t *testing.T, ratio float64) (*Canvas, *recorder) {
	t.Helper()
	rec := newRecorder()
	c, err := New(
		WithElement(&recorderElement{surface: rec}),
		WithDevicePixelRatio(ratio))
	require.NoError(t, err)
	return c, rec
}

func TestNewDefaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	el, ok := c.Element().(*RasterElement)
	require.True(t, ok, "default element should be a raster element")
	require.Equal(t, DefaultWidth, el.Width())
	require.Equal(t, DefaultHeight, el.Height())
	require.Equal(t, Identity, c.CurrentTransform())
	require.Equal(t, 0, c.SaveDepth())
	require.True(t, el.Context().ImageSmoothingEnabled())

	c, err = New(WithFactory(MockFactory))
	require.NoError(t, err)
	_, ok = c.Element().(*MockElement)
	require.True(t, ok)
}

func TestNewErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(WithFactory(func() (Element, error) { return nil, boom }))
	require.ErrorIs(t, err, boom)

	_, err = New(WithElement(&recorderElement{err: ErrNotImplemented}))
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestSize(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Size(200, 100, 2)

	require.Equal(t, 200.0, c.Width())
	require.Equal(t, 100.0, c.Height())
	require.Equal(t, 2.0, c.Scaling())
	require.Equal(t, 2.0, c.Ratio())

	el := c.Element()
	require.Equal(t, 400, el.Width())
	require.Equal(t, 200, el.Height())
	require.Equal(t, "400px", c.Style().Width)
	require.Equal(t, "200px", c.Style().Height)
	require.Equal(t, []string{"scale 2 2"}, rec.calls)
	require.Equal(t, Identity.Scale(2, 2), c.CurrentTransform())
}

func TestSizeDensity(t *testing.T) {
	c, rec := newCanvas(t, 1.5)
	c.Size(100, 50)

	// CSS size ignores the density, the backing store does not
	require.Equal(t, "100px", c.Style().Width)
	require.Equal(t, "50px", c.Style().Height)
	require.Equal(t, 150, c.Element().Width())
	require.Equal(t, 75, c.Element().Height())
	require.Equal(t, 1.5, c.Ratio())
	require.Equal(t, []string{"scale 1.5 1.5"}, rec.calls)

	c.ResetTransform()
	require.Equal(t, Identity, c.CurrentTransform())
}

func TestSizeBadDensity(t *testing.T) {
	for _, d := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		c, _ := newCanvas(t, d)
		c.Size(10, 10, 3)
		require.Equal(t, 3.0, c.Ratio(), "density %v", d)
	}
}

func TestStyleWithoutStyler(t *testing.T) {
	el := &plainElement{w: 1, h: 1, ctx: newRecorder()}
	c, err := New(WithElement(el))
	require.NoError(t, err)
	c.Size(10, 20, 1.5)
	require.Equal(t, "15px", c.Style().Width)
	require.Equal(t, "30px", c.Style().Height)
	require.Equal(t, 15, el.w)
	require.Equal(t, 30, el.h)
}

type plainElement struct {
	w, h int
	ctx  DrawingSurface
}

func (e *plainElement) Width() int                         { return e.w }
func (e *plainElement) SetWidth(w int)                     { e.w = w }
func (e *plainElement) Height() int                        { return e.h }
func (e *plainElement) SetHeight(h int)                    { e.h = h }
func (e *plainElement) Context2D() (DrawingSurface, error) { return e.ctx, nil }

func TestSaveRestoreIdempotent(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Translate(3, 4)
	before := c.CurrentTransform()

	c.Save()
	require.Equal(t, 1, c.SaveDepth())
	c.Restore()

	require.Equal(t, before, c.CurrentTransform())
	require.Equal(t, 0, c.SaveDepth())
	require.Equal(t, []string{"translate 3 4", "save", "restore"}, rec.calls)
}

func TestRestoreOnFreshCanvas(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Restore()
	c.Restore()
	require.Equal(t, 0, c.SaveDepth())
	require.Equal(t, Identity, c.CurrentTransform())
	require.Empty(t, rec.calls, "extra restores must not reach the surface")
}

func TestExtraRestoresIgnored(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Save()
	c.Scale(2)
	c.Save()
	c.Rotate(1)
	c.Restore()
	c.Restore()
	c.Restore()
	c.Restore()
	require.Equal(t, 0, c.SaveDepth())
	require.Equal(t, Identity, c.CurrentTransform())
	require.Len(t, rec.stack, 0)

	restores := 0
	for _, call := range rec.calls {
		if call == "restore" {
			restores++
		}
	}
	require.Equal(t, 2, restores)
}

func TestSavePushesCopy(t *testing.T) {
	c, _ := newCanvas(t, 1)
	c.Translate(1, 1)
	c.Save()
	c.Scale(5, 5)
	c.Rotate(0.3)
	c.Restore()
	require.Equal(t, Identity.Translate(1, 1), c.CurrentTransform())
}

func TestTranslateRotate(t *testing.T) {
	c, _ := newCanvas(t, 1)
	c.Translate(10, 20)
	c.Rotate(math.Pi / 2)
	p := c.CurrentTransform().ApplyToPoint(Point{X: 0, Y: 0})
	require.InDelta(t, 10, p.X, eps)
	require.InDelta(t, 20, p.Y, eps)
}

func TestScaleDefaultsY(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Scale(3)
	c.Scale(2, 5)
	require.Equal(t, Identity.Scale(6, 15), c.CurrentTransform())
	require.Equal(t, []string{"scale 3 3", "scale 2 5"}, rec.calls)
}

func TestTrackedMatchesNative(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Size(100, 100, 2)
	c.ResetTransform()
	require.True(t, rec.matrix.ApproxEqual(c.CurrentTransform(), eps))

	steps := []func(){
		func() { c.Translate(5, -3) },
		func() { c.Save() },
		func() { c.Rotate(0.4) },
		func() { c.Scale(1.5, 0.5) },
		func() { c.Transform(1, 0.2, -0.3, 1, 7, 8) },
		func() { c.Save() },
		func() { c.Translate(-10, 4) },
		func() { c.Restore() },
		func() { c.Rotate(-1.2) },
		func() { c.Restore() },
		func() { c.Restore() },
		func() { c.Scale(3) },
	}
	for i, step := range steps {
		step()
		require.True(t, rec.matrix.ApproxEqual(c.CurrentTransform(), 1e-9),
			"step %d: native\n%v\ntracked\n%v", i, rec.matrix, c.CurrentTransform())
		require.Equal(t, len(rec.stack), c.SaveDepth(), "step %d", i)
	}
}

func TestResetTransform(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Size(50, 50, 2)
	c.Save()
	c.Translate(4, 4)
	c.Save()
	c.Rotate(1)
	rec.calls = nil

	c.ResetTransform()
	require.Equal(t, Identity.Scale(2, 2), c.CurrentTransform())
	require.Equal(t, 0, c.SaveDepth())
	require.Equal(t, []string{"setTransform 1 0 0 1 0 0", "scale 2 2"}, rec.calls)

	// collapsed: further restores are ignored
	rec.calls = nil
	c.Restore()
	require.Empty(t, rec.calls)
}

func TestResetTransformNative(t *testing.T) {
	rec := newRecorder()
	c, err := New(WithElement(&recorderElement{surface: resettingRecorder{rec}}))
	require.NoError(t, err)
	c.Size(10, 10, 3)
	c.Translate(1, 2)
	rec.calls = nil

	c.ResetTransform()
	require.Equal(t, []string{"resetTransform", "scale 3 3"}, rec.calls)
	require.Equal(t, Identity.Scale(3, 3), c.CurrentTransform())
}

func TestSetTransform(t *testing.T) {
	c, rec := newCanvas(t, 2)
	c.Size(10, 10, 2)
	c.Translate(100, 100)
	rec.calls = nil

	c.SetTransform(1, 0, 0, 1, 5, 6)
	require.Equal(t, Identity.Scale(2, 2).Multiply(NewAffineMatrix(1, 0, 0, 1, 5, 6)), c.CurrentTransform())
	require.Equal(t, []string{"setTransform 1 0 0 1 5 6"}, rec.calls)
}

func TestTransformComposes(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Scale(2, 2)
	c.Transform(1, 0, 0, 1, 3, 4)
	x, y := c.CurrentTransform().Apply(0, 0)
	require.InDelta(t, 6, x, eps)
	require.InDelta(t, 8, y, eps)
	require.Equal(t, "transform 1 0 0 1 3 4", rec.calls[1])
}

func TestCurrentTransformIsCopy(t *testing.T) {
	c, _ := newCanvas(t, 1)
	c.Translate(1, 2)
	m := c.CurrentTransform()
	m.A, m.E = 99, 99
	require.Equal(t, Identity.Translate(1, 2), c.CurrentTransform())
}

func TestClear(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.Size(30, 20)
	c.SetGlobalAlpha(0.5)
	c.SetGlobalCompositeOperation("xor")
	c.SetTextAlign("center")
	c.Save()
	rec.calls = nil

	c.Clear()
	require.Equal(t, []string{"setTransform 1 0 0 1 0 0", "scale 1 1", "clearRect 0 0 30 20"}, rec.calls)
	require.Equal(t, 1.0, c.GlobalAlpha())
	require.Equal(t, "source-over", c.GlobalCompositeOperation())
	require.Equal(t, "left", c.TextAlign())
	require.Equal(t, 0, c.SaveDepth())
}

func TestForwarding(t *testing.T) {
	c, rec := newCanvas(t, 1)
	c.FillRect(1, 2, 3, 4)
	require.Equal(t, []string{"fillRect 1 2 3 4"}, rec.calls)
	require.Equal(t, Identity, c.CurrentTransform(), "drawing must not touch the tracked transform")

	c.SetFillStyle("red")
	require.Equal(t, "red", c.FillStyle())
	c.SetLineWidth(4)
	require.Equal(t, 4.0, c.LineWidth())
	c.SetFont("12px serif")
	require.Equal(t, "12px serif", c.Font())

	_, err := c.MeasureText("x")
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = c.GetImageData(0, 0, 1, 1)
	require.ErrorIs(t, err, ErrNotImplemented)
	_, err = c.CreateLinearGradient(0, 0, 1, 1)
	require.ErrorIs(t, err, ErrNotImplemented)
}
