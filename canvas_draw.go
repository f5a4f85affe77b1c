// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image"
)

// The rest here is directly delegated to the DrawingSurface.

// Compositing

func (c *Canvas) GlobalAlpha() float64     { return c.ctx.GlobalAlpha() }
func (c *Canvas) SetGlobalAlpha(v float64) { c.ctx.SetGlobalAlpha(v) }
func (c *Canvas) GlobalCompositeOperation() string {
	return c.ctx.GlobalCompositeOperation()
}
func (c *Canvas) SetGlobalCompositeOperation(op string) { c.ctx.SetGlobalCompositeOperation(op) }

// Colors and styles

func (c *Canvas) StrokeStyle() interface{}     { return c.ctx.StrokeStyle() }
func (c *Canvas) SetStrokeStyle(v interface{}) { c.ctx.SetStrokeStyle(v) }
func (c *Canvas) FillStyle() interface{}       { return c.ctx.FillStyle() }
func (c *Canvas) SetFillStyle(v interface{})   { c.ctx.SetFillStyle(v) }

func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error) {
	return c.ctx.CreateLinearGradient(x0, y0, x1, y1)
}

func (c *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	return c.ctx.CreateRadialGradient(x0, y0, r0, x1, y1, r1)
}

func (c *Canvas) CreatePattern(img image.Image, repetition string) (*Pattern, error) {
	return c.ctx.CreatePattern(img, repetition)
}

// Shadows

func (c *Canvas) ShadowOffsetX() float64     { return c.ctx.ShadowOffsetX() }
func (c *Canvas) SetShadowOffsetX(v float64) { c.ctx.SetShadowOffsetX(v) }
func (c *Canvas) ShadowOffsetY() float64     { return c.ctx.ShadowOffsetY() }
func (c *Canvas) SetShadowOffsetY(v float64) { c.ctx.SetShadowOffsetY(v) }
func (c *Canvas) ShadowBlur() float64        { return c.ctx.ShadowBlur() }
func (c *Canvas) SetShadowBlur(v float64)    { c.ctx.SetShadowBlur(v) }
func (c *Canvas) ShadowColor() string        { return c.ctx.ShadowColor() }
func (c *Canvas) SetShadowColor(v string)    { c.ctx.SetShadowColor(v) }

// Rects

func (c *Canvas) ClearRect(x, y, w, h float64)  { c.ctx.ClearRect(x, y, w, h) }
func (c *Canvas) FillRect(x, y, w, h float64)   { c.ctx.FillRect(x, y, w, h) }
func (c *Canvas) StrokeRect(x, y, w, h float64) { c.ctx.StrokeRect(x, y, w, h) }

// Path API

func (c *Canvas) BeginPath()              { c.ctx.BeginPath() }
func (c *Canvas) ClosePath()              { c.ctx.ClosePath() }
func (c *Canvas) MoveTo(x, y float64)     { c.ctx.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64)     { c.ctx.LineTo(x, y) }
func (c *Canvas) Rect(x, y, w, h float64) { c.ctx.Rect(x, y, w, h) }
func (c *Canvas) Fill(rule ...FillRule)   { c.ctx.Fill(ruleOf(rule)) }
func (c *Canvas) Stroke()                 { c.ctx.Stroke() }
func (c *Canvas) Clip(rule ...FillRule)   { c.ctx.Clip(ruleOf(rule)) }
func (c *Canvas) StrokePath(p *Path2D)    { c.ctx.StrokePath(p) }
func (c *Canvas) FillPath(p *Path2D, rule ...FillRule) {
	c.ctx.FillPath(p, ruleOf(rule))
}

func (c *Canvas) ClipPath(p *Path2D, rule ...FillRule) {
	c.ctx.ClipPath(p, ruleOf(rule))
}

func (c *Canvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.ctx.QuadraticCurveTo(cpx, cpy, x, y)
}

func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.ctx.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *Canvas) ArcTo(x1, y1, x2, y2, radius float64) error {
	return c.ctx.ArcTo(x1, y1, x2, y2, radius)
}

func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) error {
	return c.ctx.Arc(x, y, radius, startAngle, endAngle, counterClockwise)
}

func (c *Canvas) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterClockwise bool) error {
	return c.ctx.Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle, counterClockwise)
}

func (c *Canvas) IsPointInPath(x, y float64, rule ...FillRule) (bool, error) {
	return c.ctx.IsPointInPath(x, y, ruleOf(rule))
}

func ruleOf(rule []FillRule) FillRule {
	if len(rule) > 0 {
		return rule[0]
	}
	return NonZero
}

// Text

func (c *Canvas) FillText(text string, x, y float64, maxWidth ...float64) {
	c.ctx.FillText(text, x, y, maxWidth...)
}

func (c *Canvas) StrokeText(text string, x, y float64, maxWidth ...float64) {
	c.ctx.StrokeText(text, x, y, maxWidth...)
}

func (c *Canvas) MeasureText(text string) (TextMetrics, error) { return c.ctx.MeasureText(text) }
func (c *Canvas) Font() string                                 { return c.ctx.Font() }
func (c *Canvas) SetFont(v string)                             { c.ctx.SetFont(v) }
func (c *Canvas) TextAlign() string                            { return c.ctx.TextAlign() }
func (c *Canvas) SetTextAlign(v string)                        { c.ctx.SetTextAlign(v) }
func (c *Canvas) TextBaseline() string                         { return c.ctx.TextBaseline() }
func (c *Canvas) SetTextBaseline(v string)                     { c.ctx.SetTextBaseline(v) }

// Images

func (c *Canvas) DrawImage(img image.Image, dx, dy float64) error {
	return c.ctx.DrawImage(img, dx, dy)
}

func (c *Canvas) DrawImageScaled(img image.Image, dx, dy, dw, dh float64) error {
	return c.ctx.DrawImageScaled(img, dx, dy, dw, dh)
}

func (c *Canvas) DrawImageRect(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	return c.ctx.DrawImageRect(img, sx, sy, sw, sh, dx, dy, dw, dh)
}

// DrawIcon draws icon into the rectangle, as vectors when the surface is an
// IconDrawer and as a scaled image otherwise.
func (c *Canvas) DrawIcon(icon *Icon, x, y, w, h float64) error {
	if icon == nil {
		return fmt.Errorf("drawIcon: nil icon: %w", ErrInvalidArgument)
	}
	if d, ok := c.ctx.(IconDrawer); ok {
		d.DrawIcon(icon, x, y, w, h)
		return nil
	}
	return c.ctx.DrawImageScaled(icon, x, y, w, h)
}

// Pixel manipulation

func (c *Canvas) CreateImageData(w, h int) (*ImageData, error) { return c.ctx.CreateImageData(w, h) }

func (c *Canvas) GetImageData(sx, sy, sw, sh int) (*ImageData, error) {
	return c.ctx.GetImageData(sx, sy, sw, sh)
}

func (c *Canvas) PutImageData(img *ImageData, dx, dy int) { c.ctx.PutImageData(img, dx, dy) }

func (c *Canvas) PutImageDataDirty(img *ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int) {
	c.ctx.PutImageDataDirty(img, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH)
}

// CanvasDrawingStyles

func (c *Canvas) LineWidth() float64                   { return c.ctx.LineWidth() }
func (c *Canvas) SetLineWidth(v float64)               { c.ctx.SetLineWidth(v) }
func (c *Canvas) LineCap() string                      { return c.ctx.LineCap() }
func (c *Canvas) SetLineCap(v string)                  { c.ctx.SetLineCap(v) }
func (c *Canvas) LineJoin() string                     { return c.ctx.LineJoin() }
func (c *Canvas) SetLineJoin(v string)                 { c.ctx.SetLineJoin(v) }
func (c *Canvas) MiterLimit() float64                  { return c.ctx.MiterLimit() }
func (c *Canvas) SetMiterLimit(v float64)              { c.ctx.SetMiterLimit(v) }
func (c *Canvas) SetLineDash(segments []float64) error { return c.ctx.SetLineDash(segments) }
func (c *Canvas) LineDash() ([]float64, error)         { return c.ctx.LineDash() }
func (c *Canvas) LineDashOffset() float64              { return c.ctx.LineDashOffset() }
func (c *Canvas) SetLineDashOffset(v float64)          { c.ctx.SetLineDashOffset(v) }
