package pixelcodec_test

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilepipe/aseprite/internal/pixelcodec"
)

func TestBytesPerPixel(t *testing.T) {
	require.Equal(t, 4, pixelcodec.BytesPerPixel(32))
	require.Equal(t, 2, pixelcodec.BytesPerPixel(16))
	require.Equal(t, 1, pixelcodec.BytesPerPixel(8))
	require.Equal(t, 0, pixelcodec.BytesPerPixel(1))
}

func TestDecodeZlibRoundTrip(t *testing.T) {
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := pixelcodec.DecodeZlib(buf.Bytes(), len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecodeZlibSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write([]byte{1, 2, 3})
	require.NoError(t, w.Close())

	_, err := pixelcodec.DecodeZlib(buf.Bytes(), 10)
	require.Error(t, err)
}

func TestPixelToRGBAIndexed(t *testing.T) {
	palette := [][4]uint8{{5, 6, 7, 255}, {10, 20, 30, 255}}
	rgba := pixelcodec.PixelToRGBA(8, []byte{1}, palette, 0, false)
	require.Equal(t, [4]uint8{10, 20, 30, 255}, rgba)

	transparent := pixelcodec.PixelToRGBA(8, []byte{0}, palette, 0, false)
	require.Equal(t, [4]uint8{0, 0, 0, 0}, transparent)

	// Background layers never treat the transparent index as transparent.
	opaqueBackground := pixelcodec.PixelToRGBA(8, []byte{0}, palette, 0, true)
	require.Equal(t, [4]uint8{5, 6, 7, 255}, opaqueBackground)
}

func TestPixelToRGBAGrayscale(t *testing.T) {
	rgba := pixelcodec.PixelToRGBA(16, []byte{200, 128}, nil, 0, false)
	require.Equal(t, [4]uint8{200, 200, 200, 128}, rgba)
}
