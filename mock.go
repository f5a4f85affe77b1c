// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import "image"

// MockElement is an element without pixels. Its context accepts every call
// and draws nothing; operations that must produce a value return
// ErrNotImplemented.
type MockElement struct {
	W, H  int
	style Style
	ctx   *MockContext
}

// NewMockElement creates a DefaultWidth x DefaultHeight mock element.
func NewMockElement() *MockElement {
	return &MockElement{W: DefaultWidth, H: DefaultHeight}
}

func (e *MockElement) Width() int      { return e.W }
func (e *MockElement) SetWidth(w int)  { e.W = w }
func (e *MockElement) Height() int     { return e.H }
func (e *MockElement) SetHeight(h int) { e.H = h }
func (e *MockElement) Style() *Style   { return &e.style }

// Context2D returns the element's single mock context.
func (e *MockElement) Context2D() (DrawingSurface, error) {
	if e.ctx == nil {
		e.ctx = &MockContext{}
	}
	return e.ctx, nil
}

// DataURL is not available without pixels.
func (e *MockElement) DataURL(mime string) (string, error) {
	return "", ErrNotImplemented
}

// MockContext stores the plain properties it is given so that reads return
// what was written, and ignores everything else.
type MockContext struct {
	globalAlpha              float64
	globalCompositeOperation string
	fillStyle, strokeStyle   interface{}
	shadowOffsetX            float64
	shadowOffsetY            float64
	shadowBlur               float64
	shadowColor              string
	font                     string
	textAlign, textBaseline  string
	lineWidth, miterLimit    float64
	lineCap, lineJoin        string
	lineDashOffset           float64
}

func (m *MockContext) Save()                                 {}
func (m *MockContext) Restore()                              {}
func (m *MockContext) Scale(x, y float64)                    {}
func (m *MockContext) Rotate(rad float64)                    {}
func (m *MockContext) Translate(x, y float64)                {}
func (m *MockContext) Transform(a, b, c, d, e, f float64)    {}
func (m *MockContext) SetTransform(a, b, c, d, e, f float64) {}

func (m *MockContext) GlobalAlpha() float64                 { return m.globalAlpha }
func (m *MockContext) SetGlobalAlpha(v float64)             { m.globalAlpha = v }
func (m *MockContext) GlobalCompositeOperation() string     { return m.globalCompositeOperation }
func (m *MockContext) SetGlobalCompositeOperation(v string) { m.globalCompositeOperation = v }

func (m *MockContext) StrokeStyle() interface{}     { return m.strokeStyle }
func (m *MockContext) SetStrokeStyle(v interface{}) { m.strokeStyle = v }
func (m *MockContext) FillStyle() interface{}       { return m.fillStyle }
func (m *MockContext) SetFillStyle(v interface{})   { m.fillStyle = v }

func (m *MockContext) CreateLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error) {
	return nil, ErrNotImplemented
}

func (m *MockContext) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	return nil, ErrNotImplemented
}

func (m *MockContext) CreatePattern(img image.Image, repetition string) (*Pattern, error) {
	return nil, ErrNotImplemented
}

func (m *MockContext) ShadowOffsetX() float64     { return m.shadowOffsetX }
func (m *MockContext) SetShadowOffsetX(v float64) { m.shadowOffsetX = v }
func (m *MockContext) ShadowOffsetY() float64     { return m.shadowOffsetY }
func (m *MockContext) SetShadowOffsetY(v float64) { m.shadowOffsetY = v }
func (m *MockContext) ShadowBlur() float64        { return m.shadowBlur }
func (m *MockContext) SetShadowBlur(v float64)    { m.shadowBlur = v }
func (m *MockContext) ShadowColor() string        { return m.shadowColor }
func (m *MockContext) SetShadowColor(v string)    { m.shadowColor = v }

func (m *MockContext) ClearRect(x, y, w, h float64)  {}
func (m *MockContext) FillRect(x, y, w, h float64)   {}
func (m *MockContext) StrokeRect(x, y, w, h float64) {}

func (m *MockContext) BeginPath()                                         {}
func (m *MockContext) ClosePath()                                         {}
func (m *MockContext) MoveTo(x, y float64)                                {}
func (m *MockContext) LineTo(x, y float64)                                {}
func (m *MockContext) QuadraticCurveTo(cpx, cpy, x, y float64)            {}
func (m *MockContext) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {}
func (m *MockContext) ArcTo(x1, y1, x2, y2, radius float64) error         { return nil }
func (m *MockContext) Rect(x, y, w, h float64)                            {}
func (m *MockContext) Fill(rule FillRule)                                 {}
func (m *MockContext) Stroke()                                            {}
func (m *MockContext) Clip(rule FillRule)                                 {}
func (m *MockContext) FillPath(p *Path2D, rule FillRule)                  {}
func (m *MockContext) ClipPath(p *Path2D, rule FillRule)                  {}
func (m *MockContext) StrokePath(p *Path2D)                               {}

func (m *MockContext) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) error {
	return nil
}

func (m *MockContext) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterClockwise bool) error {
	return nil
}

func (m *MockContext) IsPointInPath(x, y float64, rule FillRule) (bool, error) {
	return false, ErrNotImplemented
}

func (m *MockContext) FillText(text string, x, y float64, maxWidth ...float64)   {}
func (m *MockContext) StrokeText(text string, x, y float64, maxWidth ...float64) {}

func (m *MockContext) MeasureText(text string) (TextMetrics, error) {
	return TextMetrics{}, ErrNotImplemented
}

func (m *MockContext) Font() string             { return m.font }
func (m *MockContext) SetFont(v string)         { m.font = v }
func (m *MockContext) TextAlign() string        { return m.textAlign }
func (m *MockContext) SetTextAlign(v string)    { m.textAlign = v }
func (m *MockContext) TextBaseline() string     { return m.textBaseline }
func (m *MockContext) SetTextBaseline(v string) { m.textBaseline = v }

func (m *MockContext) LineWidth() float64           { return m.lineWidth }
func (m *MockContext) SetLineWidth(v float64)       { m.lineWidth = v }
func (m *MockContext) LineCap() string              { return m.lineCap }
func (m *MockContext) SetLineCap(v string)          { m.lineCap = v }
func (m *MockContext) LineJoin() string             { return m.lineJoin }
func (m *MockContext) SetLineJoin(v string)         { m.lineJoin = v }
func (m *MockContext) MiterLimit() float64          { return m.miterLimit }
func (m *MockContext) SetMiterLimit(v float64)      { m.miterLimit = v }
func (m *MockContext) SetLineDash([]float64) error  { return nil }
func (m *MockContext) LineDash() ([]float64, error) { return nil, ErrNotImplemented }
func (m *MockContext) LineDashOffset() float64      { return m.lineDashOffset }
func (m *MockContext) SetLineDashOffset(v float64)  { m.lineDashOffset = v }

func (m *MockContext) DrawImage(img image.Image, dx, dy float64) error { return nil }

func (m *MockContext) DrawImageScaled(img image.Image, dx, dy, dw, dh float64) error {
	return nil
}

func (m *MockContext) DrawImageRect(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	return nil
}

func (m *MockContext) CreateImageData(w, h int) (*ImageData, error) {
	return nil, ErrNotImplemented
}

func (m *MockContext) GetImageData(sx, sy, sw, sh int) (*ImageData, error) {
	return nil, ErrNotImplemented
}

func (m *MockContext) PutImageData(img *ImageData, dx, dy int) {}

func (m *MockContext) PutImageDataDirty(img *ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int) {
}
