package aseprite

import (
	"fmt"

	"github.com/tilepipe/aseprite/internal/binreader"
)

type fileHeader struct {
	fileSize          uint32
	frameCount        int
	width, height     int
	depth             uint16
	flags             uint32
	transparentIndex  uint8
	numColors         int
	pixelRatioW       uint8
	pixelRatioH       uint8
	gridX, gridY      int16
	gridW, gridH      uint16
}

// parseFileHeader reads the fixed 128-byte file header (spec §4.1).
func parseFileHeader(r *binreader.Reader) (*fileHeader, error) {
	start := r.Pos()
	if r.Len() < 128 {
		return nil, fileErr(start, fmt.Errorf("%w: truncated file header: need 128 bytes, have %d", ErrTruncated, r.Len()))
	}

	size, _ := r.U32()
	magic, _ := r.U16()
	if magic != fileMagic {
		return nil, fileErr(start, fmt.Errorf("%w: 0x%04x, want 0x%04x", ErrBadMagic, magic, fileMagic))
	}

	frames, _ := r.U16()
	width, _ := r.U16()
	height, _ := r.U16()
	depth, _ := r.U16()
	flags, _ := r.U32()
	_, _ = r.U16() // deprecated speed
	if err := r.Skip(8); err != nil { // two reserved DWORDs
		return nil, fileErr(r.Pos(), err)
	}
	transparentIndex, _ := r.U8()
	if err := r.Skip(3); err != nil { // reserved
		return nil, fileErr(r.Pos(), err)
	}
	numColors, _ := r.U16()
	pixelRatioW, _ := r.U8()
	pixelRatioH, _ := r.U8()
	gridX, _ := r.I16()
	gridY, _ := r.I16()
	gridW, _ := r.U16()
	gridH, _ := r.U16()
	if err := r.Skip(84); err != nil { // reserved, for future use
		return nil, fileErr(r.Pos(), err)
	}

	n := int(numColors)
	if n == 0 {
		n = 256
	}

	return &fileHeader{
		fileSize:         size,
		frameCount:       int(frames),
		width:            int(width),
		height:           int(height),
		depth:            depth,
		flags:            flags,
		transparentIndex: transparentIndex,
		numColors:        n,
		pixelRatioW:      pixelRatioW,
		pixelRatioH:      pixelRatioH,
		gridX:            gridX,
		gridY:            gridY,
		gridW:            gridW,
		gridH:            gridH,
	}, nil
}

type frameHeader struct {
	duration      int
	oldChunkCount uint16
	newChunkCount uint32
}

// chunkCount resolves the frame's real chunk count, preferring the u32
// field when it is nonzero (spec §4.1: some files in the wild set
// old_chunk_count to the 0xFFFF sentinel).
func (h frameHeader) chunkCount() int {
	if h.newChunkCount != 0 {
		return int(h.newChunkCount)
	}
	return int(h.oldChunkCount)
}

// parseFrameHeader reads the fixed 16-byte frame header (spec §4.1).
func parseFrameHeader(r *binreader.Reader) (*frameHeader, error) {
	start := r.Pos()
	if r.Len() < 16 {
		return nil, fileErr(start, fmt.Errorf("%w: truncated frame header: need 16 bytes, have %d", ErrTruncated, r.Len()))
	}
	if err := r.Skip(4); err != nil { // bytes in this frame (unused: chunks are framed by their own sizes)
		return nil, fileErr(r.Pos(), err)
	}
	magic, _ := r.U16()
	if magic != frameMagic {
		return nil, fileErr(start, fmt.Errorf("%w: 0x%04x, want 0x%04x", ErrBadMagic, magic, frameMagic))
	}
	oldCount, _ := r.U16()
	duration, _ := r.U16()
	if err := r.Skip(2); err != nil { // reserved
		return nil, fileErr(r.Pos(), err)
	}
	newCount, _ := r.U32()
	return &frameHeader{duration: int(duration), oldChunkCount: oldCount, newChunkCount: newCount}, nil
}
