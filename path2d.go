// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/srwiley/rasterx"
)

// ErrorMode selects how ParsePath2D treats unknown path commands.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// Path2D is a reusable path in user units. It is transformed by the current
// transform of the surface it is filled, stroked or clipped on.
type Path2D struct {
	b pathBuilder
}

// NewPath2D returns an empty path.
func NewPath2D() *Path2D {
	return &Path2D{b: pathBuilder{m: Identity}}
}

// Copy returns an independent copy of p.
func (p *Path2D) Copy() *Path2D {
	q := *p
	q.b.path = append(rasterx.Path(nil), p.b.path...)
	return &q
}

// Raster returns the compiled path. It must not be modified.
func (p *Path2D) Raster() rasterx.Path { return p.b.path }

// Empty reports whether p has no commands.
func (p *Path2D) Empty() bool { return p.b.empty() }

// String gives the path in SVG path data form.
func (p *Path2D) String() string { return p.b.path.ToSVGPath() }

func (p *Path2D) MoveTo(x, y float64)                     { p.b.moveTo(x, y) }
func (p *Path2D) LineTo(x, y float64)                     { p.b.lineTo(x, y) }
func (p *Path2D) QuadraticCurveTo(cpx, cpy, x, y float64) { p.b.quadTo(cpx, cpy, x, y) }
func (p *Path2D) ClosePath()                              { p.b.closePath() }
func (p *Path2D) Rect(x, y, w, h float64)                 { p.b.rect(x, y, w, h) }

func (p *Path2D) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	p.b.cubicTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

func (p *Path2D) ArcTo(x1, y1, x2, y2, radius float64) error {
	return p.b.arcTo(x1, y1, x2, y2, radius)
}

func (p *Path2D) Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool) error {
	return p.b.arc(x, y, radius, startAngle, endAngle, counterClockwise)
}

func (p *Path2D) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterClockwise bool) error {
	return p.b.ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle, counterClockwise)
}

// AddPath appends o transformed by m. With no matrix o is appended as is.
func (p *Path2D) AddPath(o *Path2D, m ...AffineMatrix) {
	if o == nil {
		return
	}
	t := Identity
	if len(m) > 0 {
		t = m[0]
	}
	p.b.addPath(o.b.path, t)
}

// ParsePath2D compiles SVG path data into a Path2D. All SVG path commands
// are understood; elliptical arcs are approximated with cubic splines.
func ParsePath2D(d string, errMode ...ErrorMode) (*Path2D, error) {
	c := &pathCursor{Path2D: NewPath2D()}
	if len(errMode) > 0 {
		c.errorMode = errMode[0]
	}
	if err := c.compile(d); err != nil {
		return nil, err
	}
	return c.Path2D, nil
}

type pathCursor struct {
	*Path2D
	placeX, placeY   float64
	cntlPtX, cntlPtY float64
	points           []float64
	lastKey          uint8
	errorMode        ErrorMode
}

func reflect(px, py, rx, ry float64) (x, y float64) {
	return px*2 - rx, py*2 - ry
}

func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

func (c *pathCursor) pointsToAbs(sz int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sz)-2]
		lastY = c.points[(j+sz)-1]
	}
}

func (c *pathCursor) hasSetsOrMore(sz int, rel bool) bool {
	if !(len(c.points) >= sz && len(c.points)%sz == 0) {
		return false
	}
	if rel {
		c.pointsToAbs(sz)
	}
	return true
}

func (c *pathCursor) readFloat(numStr string) error {
	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return fmt.Errorf("path number %q: %w", numStr, ErrSyntax)
	}
	c.points = append(c.points, f)
	return nil
}

// getPoints reads the numbers of one segment. Numbers may be separated by
// commas, spaces or a sign, and "1.5.5" reads as 1.5 and .5.
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	dot := false
	c.points = c.points[0:0]
	lr := ' '
	for i, r := range dataPoints {
		switch {
		case r == '.' && dot && lastIndex != -1:
			if err := c.readFloat(dataPoints[lastIndex:i]); err != nil {
				return err
			}
			lastIndex = i
		case !unicode.IsNumber(r) && r != '.' && !((r == '-' || r == '+') && lr == 'e') && r != 'e':
			if lastIndex != -1 {
				if err := c.readFloat(dataPoints[lastIndex:i]); err != nil {
					return err
				}
			}
			if r == '-' || r == '+' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
			dot = false
		case lastIndex == -1:
			lastIndex = i
		}
		if r == '.' {
			dot = true
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		if err := c.readFloat(dataPoints[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

func (c *pathCursor) paramMismatch(k uint8) error {
	return fmt.Errorf("path command %q: parameter count %d: %w", k, len(c.points), ErrSyntax)
}

// addSeg decodes one SVG segment into path commands.
func (c *pathCursor) addSeg(segString string) error {
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if len(c.points) != 0 {
			return c.paramMismatch(k)
		}
		c.ClosePath()
		c.placeX, c.placeY = c.b.userCurrent()
	case 'm':
		rel = true
		fallthrough
	case 'M':
		if !c.hasSetsOrMore(2, rel) {
			return c.paramMismatch(k)
		}
		c.MoveTo(c.points[0], c.points[1])
		for i := 2; i < l-1; i += 2 {
			c.LineTo(c.points[i], c.points[i+1])
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if !c.hasSetsOrMore(2, rel) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-1; i += 2 {
			c.LineTo(c.points[i], c.points[i+1])
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if !c.hasSetsOrMore(1, false) {
			return c.paramMismatch(k)
		}
		for _, p := range c.points {
			c.LineTo(c.placeX, p)
		}
		c.placeY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if !c.hasSetsOrMore(1, false) {
			return c.paramMismatch(k)
		}
		for _, p := range c.points {
			c.LineTo(p, c.placeY)
		}
		c.placeX = c.points[l-1]
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if !c.hasSetsOrMore(4, rel) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-3; i += 4 {
			c.QuadraticCurveTo(c.points[i], c.points[i+1], c.points[i+2], c.points[i+3])
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 't':
		rel = true
		fallthrough
	case 'T':
		if !c.hasSetsOrMore(2, rel) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-1; i += 2 {
			switch c.lastKey {
			case 'q', 'Q', 'T', 't':
				c.cntlPtX, c.cntlPtY = reflect(c.placeX, c.placeY, c.cntlPtX, c.cntlPtY)
			default:
				c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
			}
			c.QuadraticCurveTo(c.cntlPtX, c.cntlPtY, c.points[i], c.points[i+1])
			c.lastKey = k
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
		}
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if !c.hasSetsOrMore(6, rel) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-5; i += 6 {
			c.BezierCurveTo(c.points[i], c.points[i+1], c.points[i+2], c.points[i+3],
				c.points[i+4], c.points[i+5])
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 's':
		rel = true
		fallthrough
	case 'S':
		if !c.hasSetsOrMore(4, rel) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-3; i += 4 {
			switch c.lastKey {
			case 'c', 'C', 's', 'S':
				c.cntlPtX, c.cntlPtY = reflect(c.placeX, c.placeY, c.cntlPtX, c.cntlPtY)
			default:
				c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
			}
			c.BezierCurveTo(c.cntlPtX, c.cntlPtY, c.points[i], c.points[i+1],
				c.points[i+2], c.points[i+3])
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 'a', 'A':
		if !c.hasSetsOrMore(7, false) {
			return c.paramMismatch(k)
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			p := c.points[i : i+7]
			c.b.svgArc(p[0], p[1], p[2], p[3] != 0, p[4] != 0, p[5], p[6])
			c.placeX, c.placeY = p[5], p[6]
		}
	default:
		if c.errorMode == StrictErrorMode {
			return fmt.Errorf("path command %q: %w", k, ErrSyntax)
		}
		if c.errorMode == WarnErrorMode {
			Logger().Warn("okcanvas: ignoring path command", "command", string(k))
		}
	}
	c.lastKey = k
	return nil
}

func (c *pathCursor) compile(svgPath string) error {
	lastIndex := -1
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}
