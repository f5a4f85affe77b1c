// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import "image"

// FillRule selects how the inside of a path is determined.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

type (
	// StateTransformer is the native transform and state stack of a
	// drawing surface.
	StateTransformer interface {
		Save()
		Restore()
		Scale(x, y float64)
		Rotate(rad float64)
		Translate(x, y float64)
		Transform(a, b, c, d, e, f float64)
		SetTransform(a, b, c, d, e, f float64)
	}

	// TransformResetter is implemented by surfaces with a native
	// resetTransform. Surfaces without it are reset with
	// SetTransform(1, 0, 0, 1, 0, 0).
	TransformResetter interface {
		ResetTransform()
	}

	// ImageSmoother is implemented by surfaces that can switch image
	// interpolation on and off.
	ImageSmoother interface {
		SetImageSmoothingEnabled(bool)
		ImageSmoothingEnabled() bool
	}

	Compositor interface {
		GlobalAlpha() float64
		SetGlobalAlpha(float64)
		GlobalCompositeOperation() string
		SetGlobalCompositeOperation(string)
	}

	// Painter holds the fill and stroke paints. A paint is a CSS color
	// string, a color.Color, a *Gradient or a *Pattern.
	Painter interface {
		StrokeStyle() interface{}
		SetStrokeStyle(interface{})
		FillStyle() interface{}
		SetFillStyle(interface{})
		CreateLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error)
		CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error)
		CreatePattern(img image.Image, repetition string) (*Pattern, error)
	}

	Shadower interface {
		ShadowOffsetX() float64
		SetShadowOffsetX(float64)
		ShadowOffsetY() float64
		SetShadowOffsetY(float64)
		ShadowBlur() float64
		SetShadowBlur(float64)
		ShadowColor() string
		SetShadowColor(string)
	}

	RectDrawer interface {
		ClearRect(x, y, w, h float64)
		FillRect(x, y, w, h float64)
		StrokeRect(x, y, w, h float64)
	}

	PathDrawer interface {
		BeginPath()
		ClosePath()
		MoveTo(x, y float64)
		LineTo(x, y float64)
		QuadraticCurveTo(cpx, cpy, x, y float64)
		BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
		ArcTo(x1, y1, x2, y2, radius float64) error
		Rect(x, y, w, h float64)
		Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) error
		Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterClockwise bool) error
		Fill(rule FillRule)
		Stroke()
		Clip(rule FillRule)
		FillPath(p *Path2D, rule FillRule)
		ClipPath(p *Path2D, rule FillRule)
		StrokePath(p *Path2D)
		IsPointInPath(x, y float64, rule FillRule) (bool, error)
	}

	// TextDrawer draws text. A maxWidth, when given, compresses the text
	// horizontally to fit.
	TextDrawer interface {
		FillText(text string, x, y float64, maxWidth ...float64)
		StrokeText(text string, x, y float64, maxWidth ...float64)
		MeasureText(text string) (TextMetrics, error)
		Font() string
		SetFont(string)
		TextAlign() string
		SetTextAlign(string)
		TextBaseline() string
		SetTextBaseline(string)
	}

	LineStyler interface {
		LineWidth() float64
		SetLineWidth(float64)
		LineCap() string
		SetLineCap(string)
		LineJoin() string
		SetLineJoin(string)
		MiterLimit() float64
		SetMiterLimit(float64)
		SetLineDash(segments []float64) error
		LineDash() ([]float64, error)
		LineDashOffset() float64
		SetLineDashOffset(float64)
	}

	// ImageDrawer implements the three forms of drawImage.
	ImageDrawer interface {
		DrawImage(img image.Image, dx, dy float64) error
		DrawImageScaled(img image.Image, dx, dy, dw, dh float64) error
		DrawImageRect(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error
	}

	PixelManipulator interface {
		CreateImageData(w, h int) (*ImageData, error)
		GetImageData(sx, sy, sw, sh int) (*ImageData, error)
		PutImageData(img *ImageData, dx, dy int)
		PutImageDataDirty(img *ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int)
	}

	// DrawingSurface is the 2d rendering context a Canvas delegates to.
	DrawingSurface interface {
		StateTransformer
		Compositor
		Painter
		Shadower
		RectDrawer
		PathDrawer
		TextDrawer
		LineStyler
		ImageDrawer
		PixelManipulator
	}

	// Element is the drawing surface's owner: it carries the backing store
	// size and hands out the 2d context.
	Element interface {
		Width() int
		SetWidth(int)
		Height() int
		SetHeight(int)
		Context2D() (DrawingSurface, error)
	}

	// Styler is implemented by elements with a CSS style record.
	Styler interface {
		Style() *Style
	}

	// IconDrawer is implemented by surfaces that draw icons as vectors.
	IconDrawer interface {
		DrawIcon(icon *Icon, x, y, w, h float64)
	}

	// Style is the CSS size of an element.
	Style struct {
		Width, Height string
	}

	// ImageData is a block of non-premultiplied RGBA pixels, row-major,
	// four bytes per pixel.
	ImageData struct {
		Width, Height int
		Data          []uint8
	}

	TextMetrics struct {
		Width   float64
		Ascent  float64
		Descent float64
	}
)

// MaxImageDataPixels bounds the pixel count of an ImageData.
const MaxImageDataPixels = 1 << 28

// NewImageData allocates transparent black pixels.
func NewImageData(w, h int) (*ImageData, error) {
	if w <= 0 || h <= 0 || w > MaxImageDataPixels/h {
		return nil, ErrIndexSize
	}
	return &ImageData{Width: w, Height: h, Data: make([]uint8, w*h*4)}, nil
}
