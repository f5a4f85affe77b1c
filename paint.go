// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
)

// ApplyOpacity scales the alpha of c by opacity.
func ApplyOpacity(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * clamp01(opacity)))
	return n
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ParseColorNum reads a hex color string e.g. #FBD9BD. Three and four digit
// forms duplicate each digit; four and eight digit forms carry alpha.
func ParseColorNum(colorStr string) (color.NRGBA, error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 3, 4:
		b := make([]byte, 0, 8)
		for i := 0; i < len(colorStr); i++ {
			b = append(b, colorStr[i], colorStr[i])
		}
		colorStr = string(b)
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("hex color %q: %w", colorStr, ErrSyntax)
	}
	if len(colorStr) == 6 {
		colorStr += "ff"
	}
	var v [4]uint8
	for i := range v {
		t, err := strconv.ParseUint(colorStr[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("hex color %q: %w", colorStr, ErrSyntax)
		}
		v[i] = uint8(t)
	}
	return color.NRGBA{v[0], v[1], v[2], v[3]}, nil
}

// ParseColor parses a CSS color string in all forms used by canvas styles:
// named colors (from the colornames package), transparent, hex, rgb(),
// rgba(), hsl() and hsla().
func ParseColor(colorStr string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if v == "" {
		return color.NRGBA{}, fmt.Errorf("empty color: %w", ErrSyntax)
	}
	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if v[0] == '#' {
		return ParseColorNum(v)
	}
	name, args, ok := splitFunc(v)
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", colorStr, ErrSyntax)
	}
	switch name {
	case "rgb", "rgba":
		if len(args) != 3 && len(args) != 4 {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", colorStr, ErrSyntax)
		}
		var cvals [3]uint8
		for i := range cvals {
			n, err := parseColorValue(args[i])
			if err != nil {
				return color.NRGBA{}, err
			}
			cvals[i] = n
		}
		a, err := parseAlpha(args[3:])
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], a}, nil
	case "hsl", "hsla":
		if len(args) != 3 && len(args) != 4 {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", colorStr, ErrSyntax)
		}
		h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("hue %q: %w", args[0], ErrSyntax)
		}
		s, err := parsePercent(args[1])
		if err != nil {
			return color.NRGBA{}, err
		}
		l, err := parsePercent(args[2])
		if err != nil {
			return color.NRGBA{}, err
		}
		a, err := parseAlpha(args[3:])
		if err != nil {
			return color.NRGBA{}, err
		}
		r, g, b := hslToRGB(h, s, l)
		return color.NRGBA{r, g, b, a}, nil
	}
	return color.NRGBA{}, fmt.Errorf("color %q: %w", colorStr, ErrSyntax)
}

// splitFunc splits "name(a, b, c)" (commas or spaces, optional "/ alpha").
func splitFunc(v string) (name string, args []string, ok bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(v[:open])
	body := strings.NewReplacer(",", " ", "/", " ").Replace(v[open+1 : len(v)-1])
	return name, strings.Fields(body), true
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		p, err := parsePercent(v)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(p * 0xFF)), nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("color value %q: %w", v, ErrSyntax)
	}
	return uint8(math.Round(math.Max(0, math.Min(255, n)))), nil
}

func parsePercent(v string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("percentage %q: %w", v, ErrSyntax)
	}
	return clamp01(n / 100), nil
}

func parseAlpha(args []string) (uint8, error) {
	if len(args) == 0 {
		return 0xFF, nil
	}
	var a float64
	var err error
	if strings.HasSuffix(args[0], "%") {
		a, err = parsePercent(args[0])
	} else if a, err = strconv.ParseFloat(args[0], 64); err != nil {
		err = fmt.Errorf("alpha %q: %w", args[0], ErrSyntax)
	}
	if err != nil {
		return 0, err
	}
	return uint8(math.Round(clamp01(a) * 0xFF)), nil
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h = math.Mod(h, 360) / 360
	if h < 0 {
		h++
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	conv := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 0xFF))
	}
	return conv(h + 1.0/3), conv(h), conv(h - 1.0/3)
}

// toPaint normalizes a fill or stroke style. Strings are parsed as CSS
// colors; other supported values are color.Color, *Gradient and *Pattern.
func toPaint(v interface{}) (interface{}, error) {
	switch p := v.(type) {
	case string:
		return ParseColor(p)
	case color.Color:
		return p, nil
	case *Gradient:
		if p != nil {
			return p, nil
		}
	case *Pattern:
		if p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("paint %T: %w", v, ErrInvalidArgument)
}

// resolvePaint turns a paint into something a rasterx scanner accepts:
// a color.Color or a rasterx.ColorFunc evaluated in device pixels.
func resolvePaint(p interface{}, m AffineMatrix, alpha float64) interface{} {
	switch p := p.(type) {
	case *Gradient:
		return p.colorFunc(m.Invert(), alpha)
	case *Pattern:
		return p.colorFunc(m.Invert(), alpha)
	case color.Color:
		return ApplyOpacity(p, alpha)
	}
	return color.NRGBA{}
}

var lineCaps = map[string]rasterx.CapFunc{
	"butt":   rasterx.ButtCap,
	"round":  rasterx.RoundCap,
	"square": rasterx.SquareCap,
}

var lineJoins = map[string]rasterx.JoinMode{
	"miter": rasterx.Miter,
	"round": rasterx.Round,
	"bevel": rasterx.Bevel,
}
