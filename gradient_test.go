package okcanvas_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/raykov/okcanvas"
)

func TestAddColorStop(t *testing.T) {
	tests := []struct {
		name    string
		offset  float64
		color   string
		wantErr error
	}{
		{"start", 0, "red", nil},
		{"end", 1, "#00f", nil},
		{"middle", 0.5, "rgba(0, 255, 0, 0.5)", nil},
		{"negative offset", -0.1, "red", ErrIndexSize},
		{"offset past end", 1.1, "red", ErrIndexSize},
		{"nan offset", math.NaN(), "red", ErrIndexSize},
		{"bad color", 0.5, "reddish", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewLinearGradient(0, 0, 1, 0)
			err := g.AddColorStop(tt.offset, tt.color)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr, "got %v", err)
				require.Empty(t, g.Stops())
				return
			}
			require.NoError(t, err)
			require.Len(t, g.Stops(), 1)
			require.Equal(t, tt.offset, g.Stops()[0].Offset)
		})
	}
}

func TestGradientStopOrder(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	require.False(t, g.IsRadial())
	require.NoError(t, g.AddColorStop(0, "red"))
	require.NoError(t, g.AddColorStop(1, "blue"))
	require.NoError(t, g.AddColorStop(0.5, "lime"))
	require.NoError(t, g.AddColorStop(0.5, "yellow"))

	var names []color.NRGBA
	for _, s := range g.Stops() {
		names = append(names, s.Color)
	}
	require.Equal(t, []color.NRGBA{
		{0xFF, 0, 0, 0xFF},
		{0, 0xFF, 0, 0xFF},
		{0xFF, 0xFF, 0, 0xFF},
		{0, 0, 0xFF, 0xFF},
	}, names)

	// the later of two equal stops wins at its offset
	require.Equal(t, color.NRGBA{0xFF, 0xFF, 0, 0xFF}, g.ColorAt(0.5))
	require.Equal(t, color.NRGBA{0x80, 0x80, 0, 0xFF}, g.ColorAt(0.25))

	// the returned stops are a copy
	g.Stops()[0].Offset = 0.9
	require.Equal(t, 0.0, g.Stops()[0].Offset)
}

func TestGradientColorAt(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 0)
	require.Equal(t, color.NRGBA{}, g.ColorAt(0.5))

	require.NoError(t, g.AddColorStop(0.25, "red"))
	require.NoError(t, g.AddColorStop(0.75, "blue"))
	require.Equal(t, color.NRGBA{0xFF, 0, 0, 0xFF}, g.ColorAt(-1))
	require.Equal(t, color.NRGBA{0xFF, 0, 0, 0xFF}, g.ColorAt(0.1))
	require.Equal(t, color.NRGBA{0x80, 0, 0x80, 0xFF}, g.ColorAt(0.5))
	require.Equal(t, color.NRGBA{0, 0, 0xFF, 0xFF}, g.ColorAt(0.9))
	require.Equal(t, color.NRGBA{0, 0, 0xFF, 0xFF}, g.ColorAt(2))
}

func TestRadialGradient(t *testing.T) {
	g, err := NewRadialGradient(0, 0, 0, 0, 0, 10)
	require.NoError(t, err)
	require.True(t, g.IsRadial())

	_, err = NewRadialGradient(0, 0, 1, 0, 0, -10)
	require.ErrorIs(t, err, ErrIndexSize)
}

func TestGradientWithoutStopsPaintsNothing(t *testing.T) {
	el, ctx := newRaster(4, 4)
	g, err := ctx.CreateLinearGradient(0, 0, 4, 0)
	require.NoError(t, err)
	ctx.SetFillStyle(g)
	ctx.FillRect(0, 0, 4, 4)
	require.False(t, painted(el.Image()))

	// a zero length gradient paints nothing either
	require.NoError(t, g.AddColorStop(0, "red"))
	g2, _ := ctx.CreateLinearGradient(1, 1, 1, 1)
	require.NoError(t, g2.AddColorStop(0, "red"))
	ctx.SetFillStyle(g2)
	ctx.FillRect(0, 0, 4, 4)
	require.False(t, painted(el.Image()))
}
