package blend_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilepipe/aseprite/internal/blend"
)

func TestNormalLiteralFixture(t *testing.T) {
	// This is the literal tuple spec fixtures attribute to "Merge", but it
	// is the ground-truth output of Normal (see DESIGN.md).
	backdrop := blend.RGBA{R: 0, G: 205, B: 249, A: 255}
	src := blend.RGBA{R: 237, G: 118, B: 20, A: 255}
	got := blend.Normal_(backdrop, src, 128)
	require.Equal(t, blend.RGBA{R: 118, G: 162, B: 135, A: 255}, got)
}

func TestNormalOpacityFixture(t *testing.T) {
	backdrop := blend.RGBA{R: 245, G: 65, B: 48, A: 10}
	src := blend.RGBA{R: 42, G: 41, B: 227, A: 209}
	got := blend.Normal_(backdrop, src, 255)
	require.InDelta(t, 48, int(got.R), 1)
	require.InDelta(t, 42, int(got.G), 1)
	require.InDelta(t, 221, int(got.B), 1)
	require.InDelta(t, 211, int(got.A), 1)
}

func TestScreenOverOpaqueBlackIsIdentity(t *testing.T) {
	backdrop := blend.RGBA{R: 0, G: 0, B: 0, A: 255}
	src := blend.RGBA{R: 128, G: 128, B: 128, A: 255}
	got := blend.Blend(backdrop, src, 255, blend.Screen)
	require.Equal(t, blend.RGBA{R: 128, G: 128, B: 128, A: 255}, got)
}

func TestMultiplyOverOpaqueWhiteIsIdentity(t *testing.T) {
	backdrop := blend.RGBA{R: 255, G: 255, B: 255, A: 255}
	src := blend.RGBA{R: 128, G: 64, B: 32, A: 255}
	got := blend.Blend(backdrop, src, 255, blend.Multiply)
	require.Equal(t, blend.RGBA{R: 128, G: 64, B: 32, A: 255}, got)
}

func TestBackdropFullyTransparentDegeneratesToNormal(t *testing.T) {
	backdrop := blend.RGBA{}
	src := blend.RGBA{R: 10, G: 20, B: 30, A: 200}
	for _, mode := range []blend.Mode{blend.Multiply, blend.Screen, blend.HslHue, blend.Addition} {
		got := blend.Blend(backdrop, src, 255, mode)
		want := blend.Normal_(backdrop, src, 255)
		require.Equal(t, want, got, "mode %v", mode)
	}
}

func TestUnknownModeFallsBackToNormal(t *testing.T) {
	backdrop := blend.RGBA{R: 10, G: 20, B: 30, A: 128}
	src := blend.RGBA{R: 200, G: 100, B: 50, A: 200}
	got := blend.Blend(backdrop, src, 255, blend.Mode(999))
	want := blend.Normal_(backdrop, src, 255)
	require.Equal(t, want, got)
}

func TestMergeEdgeCases(t *testing.T) {
	src := blend.RGBA{R: 10, G: 20, B: 30, A: 200}
	got := blend.Merge(blend.RGBA{}, src, 255)
	require.Equal(t, src.R, got.R)
	require.Equal(t, src.G, got.G)
	require.Equal(t, src.B, got.B)

	// At full opacity toward a transparent source the merged alpha is 0,
	// so the color is zeroed as well.
	backdrop := blend.RGBA{R: 1, G: 2, B: 3, A: 250}
	got = blend.Merge(backdrop, blend.RGBA{}, 255)
	require.Equal(t, uint8(0), got.R)
	require.Equal(t, uint8(0), got.G)
	require.Equal(t, uint8(0), got.B)
}

func TestCombineOpacitySaturatesAt255(t *testing.T) {
	require.Equal(t, uint8(255), blend.CombineOpacity(255, 255))
	require.Equal(t, uint8(0), blend.CombineOpacity(0, 255))
}
