// Copyright 2022 The okcanvas Authors. All rights reserved.
//
// The okcanvas package wraps a 2d drawing surface with the canvas API and
// shadows the surface's transform: every transform and save/restore call is
// forwarded to the surface and mirrored on a stack of AffineMatrix values,
// so the accumulated transform can be read back even from surfaces that
// cannot report it. Logical size, CSS scaling and the device pixel ratio are
// reconciled when the canvas is sized.

package okcanvas

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Canvas is a drawing surface with a tracked transform. A Canvas is owned
// by a single drawing sequence; it is not safe for concurrent use.
type Canvas struct {
	el  Element
	ctx DrawingSurface

	style   *Style // used when el is not a Styler
	density DensityFunc
	log     *slog.Logger

	width, height float64
	scaling       float64
	ratio         float64

	// stack mirrors the surface's native state stack; the top is the
	// current transform and the base frame is never popped.
	stack     []AffineMatrix
	saveCount int
}

// New creates a Canvas over the element given by WithElement, or over a
// new element from the configured factory.
func New(opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	el := o.element
	if el == nil {
		var err error
		if el, err = o.factory(); err != nil {
			return nil, fmt.Errorf("creating element: %w", err)
		}
	}
	ctx, err := el.Context2D()
	if err != nil {
		return nil, fmt.Errorf("acquiring 2d context: %w", err)
	}
	c := &Canvas{
		el:      el,
		ctx:     ctx,
		density: o.density,
		log:     o.logger,
		scaling: 1,
		stack:   []AffineMatrix{Identity},
	}
	if s, ok := ctx.(ImageSmoother); ok {
		s.SetImageSmoothingEnabled(true)
	}
	return c, nil
}

func (c *Canvas) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// Element returns the wrapped element.
func (c *Canvas) Element() Element { return c.el }

// Surface returns the delegated drawing surface.
func (c *Canvas) Surface() DrawingSurface { return c.ctx }

// Width is the logical width.
func (c *Canvas) Width() float64 { return c.width }

// Height is the logical height.
func (c *Canvas) Height() float64 { return c.height }

// Scaling is the logical to CSS pixel multiplier given to Size.
func (c *Canvas) Scaling() float64 { return c.scaling }

// Ratio is the logical to backing store multiplier, scaling times the
// device pixel density.
func (c *Canvas) Ratio() float64 { return c.ratio }

// SaveDepth is the number of saves not yet matched by a restore.
func (c *Canvas) SaveDepth() int { return c.saveCount }

// Style returns the CSS size record of the element, or the canvas' own
// record when the element has none.
func (c *Canvas) Style() *Style {
	if s, ok := c.el.(Styler); ok {
		if st := s.Style(); st != nil {
			return st
		}
	}
	if c.style == nil {
		c.style = &Style{}
	}
	return c.style
}

// Size sets the logical size and scaling. The CSS size is width*scaling by
// height*scaling, the backing store is width*ratio by height*ratio and the
// surface gets a single Scale(ratio, ratio) so logical units map onto
// backing store pixels. An omitted scaling is 1. Resizing an element resets
// its surface, so the tracked stack collapses to the scaling frame and
// outstanding saves are dropped.
func (c *Canvas) Size(width, height float64, scaling ...float64) {
	s := 1.0
	if len(scaling) > 0 {
		s = scaling[0]
	}
	c.width, c.height, c.scaling = width, height, s

	st := c.Style()
	st.Width = formatPx(width * s)
	st.Height = formatPx(height * s)

	c.ratio = s * density(c.density)
	c.reset(func(ctx DrawingSurface) {
		c.el.SetHeight(int(height * c.ratio))
		c.el.SetWidth(int(width * c.ratio))
		ctx.Scale(c.ratio, c.ratio)
	}, Identity.Scale(s, s))
	c.logger().Debug("okcanvas: size",
		"width", width, "height", height, "scaling", s, "ratio", c.ratio)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Clear erases everything, resets the transform and restores the default
// composite operation, text alignment and alpha.
func (c *Canvas) Clear() {
	c.ResetTransform()
	c.ctx.SetGlobalCompositeOperation("source-over")
	c.ctx.SetTextAlign("left")
	c.ctx.SetGlobalAlpha(1)
	c.ctx.ClearRect(0, 0, c.width, c.height)
}

// ResetTransform resets the surface to identity, re-applies the backing
// store ratio and collapses the tracked stack to one frame holding the
// scaling factor. Outstanding saves are discarded, as with the native
// reset.
func (c *Canvas) ResetTransform() {
	c.reset(func(ctx DrawingSurface) {
		if r, ok := ctx.(TransformResetter); ok {
			r.ResetTransform()
		} else {
			c.logger().Debug("okcanvas: surface has no ResetTransform, using SetTransform")
			ctx.SetTransform(1, 0, 0, 1, 0, 0)
		}
		ctx.Scale(c.ratio, c.ratio)
	}, Identity.Scale(c.scaling, c.scaling))
}

// CurrentTransform returns a copy of the tracked transform.
func (c *Canvas) CurrentTransform() AffineMatrix {
	return MatrixFrom(c.stack[len(c.stack)-1])
}

// Save pushes the drawing state.
func (c *Canvas) Save() {
	c.push()
}

// Restore pops the drawing state. Restores beyond the matching saves are
// ignored.
func (c *Canvas) Restore() {
	c.pop()
}

// Scale scales the coordinate system. An omitted y factor equals x.
func (c *Canvas) Scale(x float64, y ...float64) {
	sy := x
	if len(y) > 0 {
		sy = y[0]
	}
	c.apply(func(m AffineMatrix) AffineMatrix { return m.Scale(x, sy) },
		func(ctx DrawingSurface) { ctx.Scale(x, sy) })
}

// Rotate rotates the coordinate system by rad radians.
func (c *Canvas) Rotate(rad float64) {
	c.apply(func(m AffineMatrix) AffineMatrix { return m.Rotate(rad) },
		func(ctx DrawingSurface) { ctx.Rotate(rad) })
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float64) {
	c.apply(func(m AffineMatrix) AffineMatrix { return m.Translate(x, y) },
		func(ctx DrawingSurface) { ctx.Translate(x, y) })
}

// Transform multiplies the current transform by (a, b, c, d, e, f).
func (c *Canvas) Transform(a, b, cc, d, e, f float64) {
	o := NewAffineMatrix(a, b, cc, d, e, f)
	c.apply(func(m AffineMatrix) AffineMatrix { return m.Multiply(o) },
		func(ctx DrawingSurface) { ctx.Transform(a, b, cc, d, e, f) })
}

// SetTransform replaces the current transform. The tracked matrix is based
// on the scaling factor; the surface receives the raw values since it
// already carries the ratio from Size.
func (c *Canvas) SetTransform(a, b, cc, d, e, f float64) {
	o := NewAffineMatrix(a, b, cc, d, e, f)
	c.apply(func(AffineMatrix) AffineMatrix { return Identity.Scale(c.scaling, c.scaling).Multiply(o) },
		func(ctx DrawingSurface) { ctx.SetTransform(a, b, cc, d, e, f) })
}

// The four routines below are the only writers of stack and saveCount;
// each pairs the tracked update with its native call.

func (c *Canvas) apply(tracked func(AffineMatrix) AffineMatrix, native func(DrawingSurface)) {
	top := len(c.stack) - 1
	c.stack[top] = tracked(c.stack[top])
	native(c.ctx)
}

func (c *Canvas) push() {
	c.stack = append(c.stack, MatrixFrom(c.stack[len(c.stack)-1]))
	c.saveCount++
	c.ctx.Save()
}

func (c *Canvas) pop() {
	if c.saveCount == 0 {
		return
	}
	c.ctx.Restore()
	c.stack = c.stack[:len(c.stack)-1]
	c.saveCount--
}

func (c *Canvas) reset(native func(DrawingSurface), base AffineMatrix) {
	native(c.ctx)
	c.stack = []AffineMatrix{base}
	c.saveCount = 0
}
