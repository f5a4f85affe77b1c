// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/math/fixed"

	cfp "github.com/raykov/css-font-parser"
)

// DefaultFont is the font of a fresh context.
const DefaultFont = "10px sans-serif"

var fontSizeRegexp = regexp.MustCompile(`[^0-9.]+`)

var goFonts = map[string][]byte{
	"regular":         goregular.TTF,
	"bold":            gobold.TTF,
	"italic":          goitalic.TTF,
	"bolditalic":      gobolditalic.TTF,
	"smallcaps":       gosmallcaps.TTF,
	"smallcapsitalic": gosmallcapsitalic.TTF,
	"mono":            gomono.TTF,
	"monobold":        gomonobold.TTF,
	"monoitalic":      gomonoitalic.TTF,
	"monobolditalic":  gomonobolditalic.TTF,
}

var fontCache = struct {
	sync.Mutex
	m map[string]*truetype.Font
}{m: map[string]*truetype.Font{}}

func loadGoFont(name string) (*truetype.Font, error) {
	fontCache.Lock()
	defer fontCache.Unlock()
	if f, ok := fontCache.m[name]; ok {
		return f, nil
	}
	f, err := truetype.Parse(goFonts[name])
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", name, err)
	}
	fontCache.m[name] = f
	return f, nil
}

// fontFace is a parsed CSS font shorthand bound to one of the Go fonts.
type fontFace struct {
	css  string
	size float64 // px
	name string
	font *truetype.Font
}

// parseFont reads a CSS font shorthand such as "italic small-caps bold
// 12px/30px Georgia, serif". Sizes are in px or pt.
func parseFont(css string) (fontFace, error) {
	eFont := cfp.Parse(css)
	size, err := strconv.ParseFloat(fontSizeRegexp.ReplaceAllString(eFont.Size, ""), 64)
	if err != nil || size <= 0 {
		return fontFace{}, fmt.Errorf("font %q: %w", css, ErrSyntax)
	}
	if strings.HasSuffix(strings.TrimSpace(eFont.Size), "pt") {
		size *= 4.0 / 3
	}
	italic := eFont.Style == "italic" || eFont.Style == "oblique"
	bold := eFont.Weight == "bold" || eFont.Weight == "bolder"
	if w, err := strconv.Atoi(eFont.Weight); err == nil && w >= 600 {
		bold = true
	}

	var name string
	switch {
	case strings.Contains(strings.ToLower(css), "mono"):
		name = "mono"
		if bold {
			name += "bold"
		}
	case eFont.Variant == "small-caps":
		name = "smallcaps"
	case bold:
		name = "bold"
	}
	if italic {
		name += "italic"
	}
	if name == "" {
		name = "regular"
	}
	f, err := loadGoFont(name)
	if err != nil {
		return fontFace{}, err
	}
	return fontFace{css: css, size: size, name: name, font: f}, nil
}

func (f fontFace) scale() fixed.Int26_6 { return fixed.Int26_6(f.size * 64) }

// normalizeText replaces the whitespace characters canvas text treats as
// spaces.
func normalizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\f', '\r':
			return ' '
		}
		return r
	}, s)
}

// advance returns the width of text in px.
func (f fontFace) advance(text string) float64 {
	sc := f.scale()
	var w fixed.Int26_6
	var prev truetype.Index
	for i, r := range []rune(text) {
		idx := f.font.Index(r)
		if i > 0 {
			w += f.font.Kern(sc, prev, idx)
		}
		w += f.font.HMetric(sc, idx).AdvanceWidth
		prev = idx
	}
	return float64(w) / 64
}

// metrics returns the ascent and descent in px, both positive.
func (f fontFace) metrics() (ascent, descent float64) {
	m := truetype.NewFace(f.font, &truetype.Options{Size: f.size}).Metrics()
	return float64(m.Ascent) / 64, float64(m.Descent) / 64
}

// outline appends the glyph outlines of text to b with the pen starting at
// the origin and the baseline on y = 0.
func (f fontFace) outline(b *pathBuilder, text string) error {
	sc := f.scale()
	var gb truetype.GlyphBuf
	var pen fixed.Int26_6
	var prev truetype.Index
	for i, r := range []rune(text) {
		idx := f.font.Index(r)
		if i > 0 {
			pen += f.font.Kern(sc, prev, idx)
		}
		if err := gb.Load(f.font, sc, idx, font.HintingNone); err != nil {
			return fmt.Errorf("loading glyph %q: %w", r, err)
		}
		e0 := 0
		for _, e1 := range gb.Ends {
			drawContour(b, gb.Points[e0:e1], float64(pen)/64)
			e0 = e1
		}
		pen += f.font.HMetric(sc, idx).AdvanceWidth
		prev = idx
	}
	return nil
}

// drawContour adds one quadratic TrueType contour. The low bit of each
// point's flags tells whether it is on the curve; two consecutive off-curve
// points imply an on-curve point midway between them.
func drawContour(b *pathBuilder, ps []truetype.Point, dx float64) {
	if len(ps) == 0 {
		return
	}
	pt := func(p truetype.Point) Point {
		return Point{X: dx + float64(p.X)/64, Y: -float64(p.Y) / 64}
	}
	start := pt(ps[0])
	var others []truetype.Point
	if ps[0].Flags&0x01 != 0 {
		others = ps[1:]
	} else {
		last := pt(ps[len(ps)-1])
		if ps[len(ps)-1].Flags&0x01 != 0 {
			start = last
			others = ps[:len(ps)-1]
		} else {
			start = Point{X: (start.X + last.X) / 2, Y: (start.Y + last.Y) / 2}
			others = ps
		}
	}
	b.moveTo(start.X, start.Y)
	q0, on0 := start, true
	for _, p := range others {
		q := pt(p)
		on := p.Flags&0x01 != 0
		switch {
		case on && on0:
			b.lineTo(q.X, q.Y)
		case on:
			b.quadTo(q0.X, q0.Y, q.X, q.Y)
		case !on0:
			b.quadTo(q0.X, q0.Y, (q0.X+q.X)/2, (q0.Y+q.Y)/2)
		}
		q0, on0 = q, on
	}
	if on0 {
		b.lineTo(start.X, start.Y)
	} else {
		b.quadTo(q0.X, q0.Y, start.X, start.Y)
	}
	b.closePath()
}

// alignOffset is the x shift of a run of width w for a textAlign value.
func alignOffset(align string, w float64) float64 {
	switch align {
	case "right", "end":
		return -w
	case "center":
		return -w / 2
	}
	return 0
}

// baselineOffset is the y shift putting the requested baseline on y.
func baselineOffset(baseline string, ascent, descent float64) float64 {
	switch baseline {
	case "top":
		return ascent
	case "hanging":
		return ascent * 0.8
	case "middle":
		return (ascent - descent) / 2
	case "ideographic", "bottom":
		return -descent
	}
	return 0
}

var textAligns = map[string]bool{"left": true, "right": true, "center": true, "start": true, "end": true}

var textBaselines = map[string]bool{
	"alphabetic": true, "top": true, "hanging": true, "middle": true, "ideographic": true, "bottom": true,
}
