// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanFT"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// render runs fn against the backing store, or against a scratch image
// composited through the clip mask when a clip is set.
func (c *RasterContext) render(fn func(dst draw.Image)) {
	img := c.el.img
	if img.Rect.Empty() {
		return
	}
	c.warnComposite()
	if c.state.clip == nil {
		fn(img)
		return
	}
	scratch := image.NewRGBA(img.Rect)
	fn(scratch)
	draw.DrawMask(img, img.Rect, scratch, img.Rect.Min, c.state.clip, img.Rect.Min, draw.Over)
}

func (c *RasterContext) fillWith(add func(rasterx.Adder), rule FillRule, paint interface{}) {
	col := resolvePaint(paint, c.state.matrix, c.state.alpha)
	if rule == EvenOdd {
		// paint the whole store and let the even-odd coverage cut it
		mask := c.coverage(add, EvenOdd)
		c.render(func(dst draw.Image) {
			b := dst.Bounds()
			src := image.NewRGBA(b)
			fillScan(src, func(a rasterx.Adder) {
				rasterx.AddRect(float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X), float64(b.Max.Y), 0, a)
			}, col)
			draw.DrawMask(dst, b, src, b.Min, mask, b.Min, draw.Over)
		})
		return
	}
	c.render(func(dst draw.Image) { fillScan(dst, add, col) })
}

// fillScan fills a path onto dst with the non-zero rule.
func fillScan(dst draw.Image, add func(rasterx.Adder), col interface{}) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	f := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	add(f)
	f.SetColor(col)
	f.Draw()
}

func (c *RasterContext) strokeWith(add func(rasterx.Adder), paint interface{}) {
	s := c.state
	scale := s.matrix.ScaleFactor()
	if scale == 0 {
		return
	}
	var dash []float64
	if len(s.dash) > 0 {
		var total float64
		dash = make([]float64, len(s.dash))
		for i, v := range s.dash {
			dash[i] = v * scale
			total += v
		}
		if total == 0 {
			dash = nil
		}
	}
	col := resolvePaint(paint, s.matrix, s.alpha)
	capF, join := lineCaps[s.lineCap], lineJoins[s.lineJoin]
	c.render(func(dst draw.Image) {
		b := dst.Bounds()
		scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
		d := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
		d.SetStroke(fixed.Int26_6(s.lineWidth*scale*64), fixed.Int26_6(s.miterLimit*64),
			capF, capF, rasterx.FlatGap, join, dash, s.dashOffset*scale)
		add(d)
		d.SetColor(col)
		d.Draw()
	})
}

// coverage rasterizes a path into an alpha mask the size of the backing
// store.
func (c *RasterContext) coverage(add func(rasterx.Adder), rule FillRule) *image.Alpha {
	return scanMask(c.el.img.Rect, add, rule)
}

// scanMask rasterizes a path into an alpha mask covering b. ScannerGV
// always fills non-zero, so even-odd paths go through the freetype
// scanner onto an RGBA image whose alpha channel becomes the mask.
func scanMask(b image.Rectangle, add func(rasterx.Adder), rule FillRule) *image.Alpha {
	mask := image.NewAlpha(b)
	if b.Empty() {
		return mask
	}
	if rule == NonZero {
		fillScan(mask, add, color.Opaque)
		return mask
	}
	img := image.NewRGBA(b)
	scanner := scanFT.NewScannerFT(b.Dx(), b.Dy(), scanFT.NewRGBAPainter(img))
	f := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	f.SetWinding(false)
	add(f)
	f.SetColor(color.White)
	f.Draw()
	for i := range mask.Pix {
		mask.Pix[i] = img.Pix[i*4+3]
	}
	return mask
}

func (c *RasterContext) current(a rasterx.Adder) { c.path.path.AddTo(a) }

func (c *RasterContext) mapped(p *Path2D) func(rasterx.Adder) {
	return func(a rasterx.Adder) {
		p.b.path.AddTo(&matrixAdder{Adder: a, M: c.state.matrix})
	}
}

func (c *RasterContext) Fill(rule FillRule) { c.fillWith(c.current, rule, c.state.fill) }
func (c *RasterContext) Stroke()            { c.strokeWith(c.current, c.state.stroke) }

func (c *RasterContext) FillPath(p *Path2D, rule FillRule) {
	if p != nil {
		c.fillWith(c.mapped(p), rule, c.state.fill)
	}
}

func (c *RasterContext) StrokePath(p *Path2D) {
	if p != nil {
		c.strokeWith(c.mapped(p), c.state.stroke)
	}
}

// Clip intersects the clip region with the current path.
func (c *RasterContext) Clip(rule FillRule) {
	mask := c.coverage(c.current, rule)
	if old := c.state.clip; old != nil {
		for i, v := range old.Pix {
			mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(v) / 0xFF)
		}
	}
	c.state.clip = mask
}

// ClipPath intersects the clip region with p.
func (c *RasterContext) ClipPath(p *Path2D, rule FillRule) {
	if p == nil {
		return
	}
	mask := c.coverage(c.mapped(p), rule)
	if old := c.state.clip; old != nil {
		for i, v := range old.Pix {
			mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(v) / 0xFF)
		}
	}
	c.state.clip = mask
}

// IsPointInPath reports whether the user point (x, y) is inside the current
// path. The point is mapped through the current transform and tested
// against the pixel centered on it.
func (c *RasterContext) IsPointInPath(x, y float64, rule FillRule) (bool, error) {
	if !finite(x, y) || c.path.empty() {
		return false, nil
	}
	px, py := c.state.matrix.Apply(x, y)
	mask := scanMask(image.Rect(0, 0, 1, 1), func(a rasterx.Adder) {
		c.path.path.AddTo(&matrixAdder{Adder: a, M: Identity.Translate(0.5-px, 0.5-py)})
	}, rule)
	return mask.Pix[0] >= 0x80, nil
}

func (c *RasterContext) rectPath(x, y, w, h float64) func(rasterx.Adder) {
	b := &pathBuilder{m: c.state.matrix}
	b.rect(x, y, w, h)
	return func(a rasterx.Adder) { b.path.AddTo(a) }
}

func (c *RasterContext) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.fillWith(c.rectPath(x, y, w, h), NonZero, c.state.fill)
}

func (c *RasterContext) StrokeRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || (w == 0 && h == 0) {
		return
	}
	c.strokeWith(c.rectPath(x, y, w, h), c.state.stroke)
}

// ClearRect clears the rectangle to transparent black through the clip.
func (c *RasterContext) ClearRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	mask := c.coverage(c.rectPath(x, y, w, h), NonZero)
	img := c.el.img
	clip := c.state.clip
	for i, cov := range mask.Pix {
		k := uint32(cov)
		if clip != nil {
			k = k * uint32(clip.Pix[i]) / 0xFF
		}
		if k == 0 {
			continue
		}
		p := img.Pix[i*4 : i*4+4]
		for j := range p {
			p[j] = uint8(uint32(p[j]) * (0xFF - k) / 0xFF)
		}
	}
}

// text returns the outline of text positioned at (x, y) and its metrics.
func (c *RasterContext) text(text string, x, y float64, maxWidth []float64) (func(rasterx.Adder), bool) {
	if !finite(x, y) {
		return nil, false
	}
	f := c.state.font
	text = normalizeText(text)
	w := f.advance(text)
	sx := 1.0
	if len(maxWidth) > 0 {
		mw := maxWidth[0]
		if !finite(mw) || mw <= 0 {
			return nil, false
		}
		if w > mw {
			sx = mw / w
		}
	}
	asc, desc := f.metrics()
	b := &pathBuilder{m: c.state.matrix.Translate(x, y).Scale(sx, 1).
		Translate(alignOffset(c.state.textAlign, w), baselineOffset(c.state.textBaseline, asc, desc))}
	if err := f.outline(b, text); err != nil {
		Logger().Debug("okcanvas: text outline", "err", err)
		return nil, false
	}
	return func(a rasterx.Adder) { b.path.AddTo(a) }, true
}

func (c *RasterContext) FillText(text string, x, y float64, maxWidth ...float64) {
	if add, ok := c.text(text, x, y, maxWidth); ok {
		c.fillWith(add, NonZero, c.state.fill)
	}
}

func (c *RasterContext) StrokeText(text string, x, y float64, maxWidth ...float64) {
	if add, ok := c.text(text, x, y, maxWidth); ok {
		c.strokeWith(add, c.state.stroke)
	}
}

// MeasureText returns the advance width of text and the font's ascent and
// descent, in user units.
func (c *RasterContext) MeasureText(text string) (TextMetrics, error) {
	f := c.state.font
	asc, desc := f.metrics()
	return TextMetrics{Width: f.advance(normalizeText(text)), Ascent: asc, Descent: desc}, nil
}

func (c *RasterContext) DrawImage(img image.Image, dx, dy float64) error {
	if img == nil {
		return fmt.Errorf("drawImage: nil image: %w", ErrInvalidArgument)
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	return c.DrawImageRect(img, 0, 0, w, h, dx, dy, w, h)
}

func (c *RasterContext) DrawImageScaled(img image.Image, dx, dy, dw, dh float64) error {
	if img == nil {
		return fmt.Errorf("drawImage: nil image: %w", ErrInvalidArgument)
	}
	b := img.Bounds()
	return c.DrawImageRect(img, 0, 0, float64(b.Dx()), float64(b.Dy()), dx, dy, dw, dh)
}

// DrawImageRect draws the source rectangle of img, relative to its bounds,
// into the destination rectangle in user units.
func (c *RasterContext) DrawImageRect(img image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	if img == nil {
		return fmt.Errorf("drawImage: nil image: %w", ErrInvalidArgument)
	}
	if !finite(sx, sy, sw, sh, dx, dy, dw, dh) {
		return nil
	}
	sx, sw = normRange(sx, sw)
	sy, sh = normRange(sy, sh)
	dx, dw = normRange(dx, dw)
	dy, dh = normRange(dy, dh)
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return nil
	}
	switch e := img.(type) {
	case *RasterElement:
		if e == c.el {
			cp := image.NewRGBA(e.img.Rect)
			copy(cp.Pix, e.img.Pix)
			img = cp
		} else {
			img = e.img
		}
	case *Icon:
		img = e.raster()
	}
	b := img.Bounds()
	ox, oy := float64(b.Min.X)+sx, float64(b.Min.Y)+sy
	sr := image.Rect(int(math.Floor(ox)), int(math.Floor(oy)),
		int(math.Ceil(ox+sw)), int(math.Ceil(oy+sh))).Intersect(b)
	if sr.Empty() {
		return nil
	}
	m := c.state.matrix.Translate(dx, dy).Scale(dw/sw, dh/sh).Translate(-ox, -oy)
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	var interp draw.Interpolator = draw.NearestNeighbor
	if c.state.smoothing {
		interp = draw.ApproxBiLinear
	}
	var opts *draw.Options
	if c.state.alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(c.state.alpha * 0xFF))})}
	}
	c.render(func(dst draw.Image) {
		interp.Transform(dst, s2d, img, sr, draw.Over, opts)
	})
	return nil
}

func normRange(v, l float64) (float64, float64) {
	if l < 0 {
		return v + l, -l
	}
	return v, l
}

func (c *RasterContext) CreateImageData(w, h int) (*ImageData, error) {
	return NewImageData(w, h)
}

// GetImageData returns device pixels, not premultiplied. Pixels outside
// the backing store read as transparent black.
func (c *RasterContext) GetImageData(sx, sy, sw, sh int) (*ImageData, error) {
	if sw < 0 {
		sx, sw = sx+sw, -sw
	}
	if sh < 0 {
		sy, sh = sy+sh, -sh
	}
	d, err := NewImageData(sw, sh)
	if err != nil {
		return nil, err
	}
	img := c.el.img
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			p := image.Pt(sx+x, sy+y)
			if !p.In(img.Rect) {
				continue
			}
			n := color.NRGBAModel.Convert(img.RGBAAt(p.X, p.Y)).(color.NRGBA)
			i := (y*sw + x) * 4
			d.Data[i], d.Data[i+1], d.Data[i+2], d.Data[i+3] = n.R, n.G, n.B, n.A
		}
	}
	return d, nil
}

func (c *RasterContext) PutImageData(img *ImageData, dx, dy int) {
	if img == nil {
		return
	}
	c.PutImageDataDirty(img, dx, dy, 0, 0, img.Width, img.Height)
}

// PutImageDataDirty writes the dirty rectangle of img at (dx, dy) in device
// pixels, ignoring the transform, alpha and clip.
func (c *RasterContext) PutImageDataDirty(img *ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int) {
	if img == nil || len(img.Data) < img.Width*img.Height*4 {
		return
	}
	if dirtyW < 0 {
		dirtyX, dirtyW = dirtyX+dirtyW, -dirtyW
	}
	if dirtyH < 0 {
		dirtyY, dirtyH = dirtyY+dirtyH, -dirtyH
	}
	r := image.Rect(dirtyX, dirtyY, dirtyX+dirtyW, dirtyY+dirtyH).
		Intersect(image.Rect(0, 0, img.Width, img.Height))
	dst := c.el.img
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := image.Pt(dx+x, dy+y)
			if !p.In(dst.Rect) {
				continue
			}
			i := (y*img.Width + x) * 4
			dst.Set(p.X, p.Y, color.NRGBA{img.Data[i], img.Data[i+1], img.Data[i+2], img.Data[i+3]})
		}
	}
}
