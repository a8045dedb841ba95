// Package pixelcodec decodes the raw pixel payloads carried inside cel and
// tileset chunks: uncompressed raw bytes and zlib-compressed raw bytes,
// the two storage forms the current chunk-based container actually uses.
package pixelcodec

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// BytesPerPixel returns the storage width of one pixel for depth (32, 16 or
// 8 bits), matching the file header's color-depth field.
func BytesPerPixel(depth int) int {
	switch depth {
	case 32:
		return 4
	case 16:
		return 2
	case 8:
		return 1
	default:
		return 0
	}
}

// DecodeZlib inflates a standard zlib-wrapped deflate stream into exactly
// want bytes. A decoded length that differs from want is an error, per the
// spec's "decoded size exceeding the cel's declared size is an error" rule.
func DecodeZlib(src []byte, want int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("pixelcodec: zlib header: %w", err)
	}
	defer zr.Close()

	out := make([]byte, want)
	n, err := io.ReadFull(zr, out)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("pixelcodec: zlib inflate: %w", err)
	}
	if n != want {
		return nil, fmt.Errorf("pixelcodec: zlib decoded %d bytes, wanted %d", n, want)
	}
	// Confirm the stream doesn't carry extra trailing pixel data: an
	// oversized stream is as much a size-mismatch as a short one.
	var extra [1]byte
	if m, _ := zr.Read(extra[:]); m > 0 {
		return nil, fmt.Errorf("pixelcodec: zlib stream longer than declared %d bytes", want)
	}
	return out, nil
}

// PixelToRGBA converts one pixel's raw bytes (in the document's pixel
// format) to straight RGBA. For Indexed pixels, index resolves through
// palette; transparentIndex becomes fully transparent on non-background
// layers, and an index past the end of palette is fully transparent too.
func PixelToRGBA(depth int, px []byte, palette [][4]uint8, transparentIndex uint8, backgroundLayer bool) [4]uint8 {
	switch depth {
	case 32:
		return [4]uint8{px[0], px[1], px[2], px[3]}
	case 16:
		v, a := px[0], px[1]
		return [4]uint8{v, v, v, a}
	case 8:
		idx := px[0]
		if !backgroundLayer && idx == transparentIndex {
			return [4]uint8{0, 0, 0, 0}
		}
		if int(idx) < len(palette) {
			return palette[idx]
		}
		return [4]uint8{0, 0, 0, 0}
	default:
		return [4]uint8{0, 0, 0, 0}
	}
}
