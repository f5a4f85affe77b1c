// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// RasterElement is an in-memory canvas element backed by an *image.RGBA.
// Changing its width or height reallocates the backing store and resets
// the drawing state of its context.
type RasterElement struct {
	img   *image.RGBA
	style Style
	ctx   *RasterContext
}

// NewRasterElement returns a w by h element cleared to transparent black.
func NewRasterElement(w, h int) *RasterElement {
	e := &RasterElement{}
	e.ctx = newRasterContext(e)
	e.resize(w, h)
	return e
}

func (e *RasterElement) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.img = image.NewRGBA(image.Rect(0, 0, w, h))
	e.ctx.resetState()
}

func (e *RasterElement) Width() int      { return e.img.Rect.Dx() }
func (e *RasterElement) Height() int     { return e.img.Rect.Dy() }
func (e *RasterElement) SetWidth(w int)  { e.resize(w, e.Height()) }
func (e *RasterElement) SetHeight(h int) { e.resize(e.Width(), h) }
func (e *RasterElement) Style() *Style   { return &e.style }

// Context2D returns the element's only context.
func (e *RasterElement) Context2D() (DrawingSurface, error) { return e.ctx, nil }

// Context is Context2D without the interface conversion.
func (e *RasterElement) Context() *RasterContext { return e.ctx }

// Image returns the backing store. It is replaced on resize.
func (e *RasterElement) Image() *image.RGBA { return e.img }

func (e *RasterElement) ColorModel() color.Model { return color.RGBAModel }
func (e *RasterElement) Bounds() image.Rectangle { return e.img.Rect }
func (e *RasterElement) At(x, y int) color.Color { return e.img.At(x, y) }

// Encode writes the backing store as mime: image/png (the default for
// unknown types), image/jpeg, image/bmp or image/tiff.
func (e *RasterElement) Encode(w io.Writer, mime string) error {
	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(w, e.img, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case "image/bmp":
		err = bmp.Encode(w, e.img)
	case "image/tiff":
		err = tiff.Encode(w, e.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(w, e.img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", mimeOrPNG(mime), err)
	}
	return nil
}

func mimeOrPNG(mime string) string {
	switch mime {
	case "image/jpeg", "image/bmp", "image/tiff":
		return mime
	}
	return "image/png"
}

// DataURL returns the backing store as a base64 data URL.
func (e *RasterElement) DataURL(mime string) (string, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, mime); err != nil {
		return "", err
	}
	return "data:" + mimeOrPNG(mime) + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// rasterState is the drawing state saved and restored by Save and Restore.
type rasterState struct {
	matrix AffineMatrix

	fillStyle, strokeStyle interface{} // as set
	fill, stroke           interface{} // parsed

	alpha     float64
	composite string

	lineWidth, miterLimit float64
	lineCap, lineJoin     string
	dash                  []float64
	dashOffset            float64

	font                    fontFace
	textAlign, textBaseline string

	shadowX, shadowY, shadowBlur float64
	shadowColor                  string

	smoothing bool
	clip      *image.Alpha // never modified in place
}

func defaultState() rasterState {
	f, err := parseFont(DefaultFont)
	if err != nil {
		panic(err)
	}
	return rasterState{
		matrix:       Identity,
		fillStyle:    "#000000",
		strokeStyle:  "#000000",
		fill:         color.NRGBA{A: 0xFF},
		stroke:       color.NRGBA{A: 0xFF},
		alpha:        1,
		composite:    "source-over",
		lineWidth:    1,
		miterLimit:   10,
		lineCap:      "butt",
		lineJoin:     "miter",
		font:         f,
		textAlign:    "start",
		textBaseline: "alphabetic",
		shadowColor:  "rgba(0, 0, 0, 0)",
		smoothing:    true,
	}
}

func (s rasterState) copy() rasterState {
	s.dash = append([]float64(nil), s.dash...)
	return s
}

// RasterContext renders the canvas API into its element's backing store
// with rasterx. Only the source-over composite operation is rendered and
// shadows are not drawn.
type RasterContext struct {
	el     *RasterElement
	state  rasterState
	stack  []rasterState
	path   pathBuilder
	warned map[string]bool
}

func newRasterContext(e *RasterElement) *RasterContext {
	return &RasterContext{el: e, warned: map[string]bool{}}
}

func (c *RasterContext) resetState() {
	c.state = defaultState()
	c.stack = nil
	c.path = pathBuilder{m: Identity}
}

// Element returns the owning element.
func (c *RasterContext) Element() *RasterElement { return c.el }

// SaveDepth is the number of saved states.
func (c *RasterContext) SaveDepth() int { return len(c.stack) }

// Matrix returns the current transform.
func (c *RasterContext) Matrix() AffineMatrix { return c.state.matrix }

func (c *RasterContext) Save() {
	c.stack = append(c.stack, c.state.copy())
}

func (c *RasterContext) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
	c.path.m = c.state.matrix
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c *RasterContext) setMatrix(m AffineMatrix) {
	c.state.matrix = m
	c.path.m = m
}

func (c *RasterContext) Scale(x, y float64) {
	if finite(x, y) {
		c.setMatrix(c.state.matrix.Scale(x, y))
	}
}

func (c *RasterContext) Rotate(rad float64) {
	if finite(rad) {
		c.setMatrix(c.state.matrix.Rotate(rad))
	}
}

func (c *RasterContext) Translate(x, y float64) {
	if finite(x, y) {
		c.setMatrix(c.state.matrix.Translate(x, y))
	}
}

func (c *RasterContext) Transform(a, b, cc, d, e, f float64) {
	if finite(a, b, cc, d, e, f) {
		c.setMatrix(c.state.matrix.Multiply(NewAffineMatrix(a, b, cc, d, e, f)))
	}
}

func (c *RasterContext) SetTransform(a, b, cc, d, e, f float64) {
	if finite(a, b, cc, d, e, f) {
		c.setMatrix(NewAffineMatrix(a, b, cc, d, e, f))
	}
}

func (c *RasterContext) ResetTransform() { c.setMatrix(Identity) }

func (c *RasterContext) SetImageSmoothingEnabled(v bool) { c.state.smoothing = v }
func (c *RasterContext) ImageSmoothingEnabled() bool     { return c.state.smoothing }

func (c *RasterContext) GlobalAlpha() float64 { return c.state.alpha }

func (c *RasterContext) SetGlobalAlpha(a float64) {
	if finite(a) && a >= 0 && a <= 1 {
		c.state.alpha = a
	}
}

func (c *RasterContext) GlobalCompositeOperation() string { return c.state.composite }

func (c *RasterContext) SetGlobalCompositeOperation(op string) {
	if op == "" {
		return
	}
	c.state.composite = op
}

// warnComposite logs once per operation name that it is drawn as
// source-over.
func (c *RasterContext) warnComposite() {
	op := c.state.composite
	if op == "source-over" || c.warned[op] {
		return
	}
	c.warned[op] = true
	Logger().Warn("okcanvas: composite operation drawn as source-over", "op", op)
}

func (c *RasterContext) StrokeStyle() interface{} { return c.state.strokeStyle }
func (c *RasterContext) FillStyle() interface{}   { return c.state.fillStyle }

func (c *RasterContext) SetStrokeStyle(v interface{}) {
	p, err := toPaint(v)
	if err != nil {
		Logger().Debug("okcanvas: ignoring stroke style", "value", v, "err", err)
		return
	}
	c.state.strokeStyle, c.state.stroke = v, p
}

func (c *RasterContext) SetFillStyle(v interface{}) {
	p, err := toPaint(v)
	if err != nil {
		Logger().Debug("okcanvas: ignoring fill style", "value", v, "err", err)
		return
	}
	c.state.fillStyle, c.state.fill = v, p
}

func (c *RasterContext) CreateLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error) {
	return NewLinearGradient(x0, y0, x1, y1), nil
}

func (c *RasterContext) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	return NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

func (c *RasterContext) CreatePattern(img image.Image, repetition string) (*Pattern, error) {
	return NewPattern(img, repetition)
}

func (c *RasterContext) ShadowOffsetX() float64 { return c.state.shadowX }
func (c *RasterContext) ShadowOffsetY() float64 { return c.state.shadowY }
func (c *RasterContext) ShadowBlur() float64    { return c.state.shadowBlur }
func (c *RasterContext) ShadowColor() string    { return c.state.shadowColor }

func (c *RasterContext) SetShadowOffsetX(v float64) {
	if finite(v) {
		c.state.shadowX = v
	}
}

func (c *RasterContext) SetShadowOffsetY(v float64) {
	if finite(v) {
		c.state.shadowY = v
	}
}

func (c *RasterContext) SetShadowBlur(v float64) {
	if finite(v) && v >= 0 {
		c.state.shadowBlur = v
	}
}

func (c *RasterContext) SetShadowColor(v string) {
	if _, err := ParseColor(v); err == nil {
		c.state.shadowColor = v
	}
}

func (c *RasterContext) LineWidth() float64      { return c.state.lineWidth }
func (c *RasterContext) LineCap() string         { return c.state.lineCap }
func (c *RasterContext) LineJoin() string        { return c.state.lineJoin }
func (c *RasterContext) MiterLimit() float64     { return c.state.miterLimit }
func (c *RasterContext) LineDashOffset() float64 { return c.state.dashOffset }

func (c *RasterContext) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		c.state.lineWidth = w
	}
}

func (c *RasterContext) SetLineCap(v string) {
	if _, ok := lineCaps[v]; ok {
		c.state.lineCap = v
	}
}

func (c *RasterContext) SetLineJoin(v string) {
	if _, ok := lineJoins[v]; ok {
		c.state.lineJoin = v
	}
}

func (c *RasterContext) SetMiterLimit(v float64) {
	if finite(v) && v > 0 {
		c.state.miterLimit = v
	}
}

func (c *RasterContext) SetLineDashOffset(v float64) {
	if finite(v) {
		c.state.dashOffset = v
	}
}

// SetLineDash sets the dash pattern. An odd number of segments is repeated
// to make it even; negative or non-finite segments reject the call.
func (c *RasterContext) SetLineDash(segments []float64) error {
	for _, s := range segments {
		if !finite(s) || s < 0 {
			return fmt.Errorf("line dash %v: %w", segments, ErrInvalidArgument)
		}
	}
	d := append([]float64(nil), segments...)
	if len(d)%2 == 1 {
		d = append(d, segments...)
	}
	c.state.dash = d
	return nil
}

func (c *RasterContext) LineDash() ([]float64, error) {
	return append([]float64{}, c.state.dash...), nil
}

func (c *RasterContext) Font() string         { return c.state.font.css }
func (c *RasterContext) TextAlign() string    { return c.state.textAlign }
func (c *RasterContext) TextBaseline() string { return c.state.textBaseline }

func (c *RasterContext) SetFont(v string) {
	f, err := parseFont(v)
	if err != nil {
		Logger().Debug("okcanvas: ignoring font", "value", v, "err", err)
		return
	}
	c.state.font = f
}

func (c *RasterContext) SetTextAlign(v string) {
	if textAligns[v] {
		c.state.textAlign = v
	}
}

func (c *RasterContext) SetTextBaseline(v string) {
	if textBaselines[v] {
		c.state.textBaseline = v
	}
}

func (c *RasterContext) BeginPath()              { c.path.reset() }
func (c *RasterContext) ClosePath()              { c.path.closePath() }
func (c *RasterContext) MoveTo(x, y float64)     { c.path.moveTo(x, y) }
func (c *RasterContext) LineTo(x, y float64)     { c.path.lineTo(x, y) }
func (c *RasterContext) Rect(x, y, w, h float64) { c.path.rect(x, y, w, h) }

func (c *RasterContext) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.path.quadTo(cpx, cpy, x, y)
}

func (c *RasterContext) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.cubicTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *RasterContext) ArcTo(x1, y1, x2, y2, radius float64) error {
	return c.path.arcTo(x1, y1, x2, y2, radius)
}

func (c *RasterContext) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) error {
	return c.path.arc(x, y, radius, startAngle, endAngle, counterClockwise)
}

func (c *RasterContext) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterClockwise bool) error {
	return c.path.ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle, counterClockwise)
}
