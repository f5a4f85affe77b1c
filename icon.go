// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"mime"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/net/html/charset"
)

// Icon is a parsed SVG document. It is an image.Image rendered at its view
// box size, so it can be passed to DrawImage; RasterContext.DrawIcon draws
// it as vectors instead.
type Icon struct {
	svg *oksvg.SvgIcon

	once sync.Once
	img  *image.RGBA
}

// LoadIcon parses an SVG document. A charset parameter in contentType,
// e.g. "image/svg+xml; charset=iso-8859-1", selects the input encoding;
// otherwise the XML declaration does.
func LoadIcon(r io.Reader, contentType string) (*Icon, error) {
	if contentType != "" {
		_, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("icon content type %q: %w", contentType, ErrInvalidArgument)
		}
		if label := params["charset"]; label != "" {
			if r, err = charset.NewReaderLabel(label, r); err != nil {
				return nil, fmt.Errorf("icon charset %q: %w", label, err)
			}
		}
	}
	svg, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("reading icon: %w", err)
	}
	return &Icon{svg: svg}, nil
}

// Size is the view box size.
func (i *Icon) Size() (w, h float64) { return i.svg.ViewBox.W, i.svg.ViewBox.H }

func (i *Icon) ColorModel() color.Model { return color.RGBAModel }

func (i *Icon) Bounds() image.Rectangle {
	w, h := i.Size()
	return image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h)))
}

func (i *Icon) At(x, y int) color.Color { return i.raster().At(x, y) }

// raster renders the icon once at its view box size.
func (i *Icon) raster() *image.RGBA {
	i.once.Do(func() {
		b := i.Bounds()
		i.img = image.NewRGBA(b)
		if b.Empty() {
			return
		}
		w, h := i.Size()
		i.draw(i.img, Identity, 0, 0, w, h, 1)
	})
	return i.img
}

// draw renders the icon into the target rectangle mapped through m.
func (i *Icon) draw(dst draw.Image, m AffineMatrix, x, y, w, h, opacity float64) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	d := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	svg := *i.svg
	svg.SetTarget(x, y, w, h)
	svg.Transform = m.Rasterx().Mult(svg.Transform)
	svg.Draw(d, opacity)
}

// DrawIcon draws icon as vectors scaled into the rectangle at (x, y) of
// size w by h, under the current transform, alpha and clip.
func (c *RasterContext) DrawIcon(icon *Icon, x, y, w, h float64) {
	if icon == nil || !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	m, alpha := c.state.matrix, c.state.alpha
	c.render(func(dst draw.Image) {
		icon.draw(dst, m, x, y, w, h, alpha)
	})
}
