package okcanvas_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/raykov/okcanvas"
)

func TestNewPattern(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for _, tc := range []struct{ in, want string }{
		{"", "repeat"},
		{"repeat", "repeat"},
		{"repeat-x", "repeat-x"},
		{"repeat-y", "repeat-y"},
		{"no-repeat", "no-repeat"},
	} {
		p, err := NewPattern(img, tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, p.Repetition())
		require.Equal(t, Identity, p.Transform())
	}

	_, err := NewPattern(img, "Repeat")
	require.ErrorIs(t, err, ErrSyntax)
	_, err = NewPattern(nil, "repeat")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPatternTransform(t *testing.T) {
	p, err := NewPattern(checker(), "repeat")
	require.NoError(t, err)
	p.SetTransform(Identity.Scale(0, 1))
	require.Equal(t, Identity, p.Transform())

	// 2x scaling makes each source pixel a 2x2 block
	p.SetTransform(Identity.Scale(2, 2))
	require.Equal(t, Identity.Scale(2, 2), p.Transform())
	el, ctx := newRaster(8, 8)
	ctx.SetFillStyle(p)
	ctx.FillRect(0, 0, 8, 8)
	require.Equal(t, red, at(el, 0, 0))
	require.Equal(t, red, at(el, 1, 1))
	require.Equal(t, uint8(0xFF), at(el, 2, 0).B)
	require.Equal(t, red, at(el, 4, 0))
}

func TestPatternRepeatX(t *testing.T) {
	p, err := NewPattern(checker(), "repeat-x")
	require.NoError(t, err)
	el, ctx := newRaster(8, 8)
	ctx.SetFillStyle(p)
	ctx.FillRect(0, 0, 8, 8)
	require.Equal(t, red, at(el, 6, 0))
	require.Equal(t, transparent, at(el, 0, 4))
}
