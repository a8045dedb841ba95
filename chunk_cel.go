package aseprite

import (
	"encoding/binary"
	"fmt"

	"github.com/tilepipe/aseprite/internal/pixelcodec"
)

// parseCelChunk decodes a Cel chunk (0x2005) in any of its four payload
// shapes (spec §4.2) and stashes the result under (layer, frame) until every
// frame has been read and Document.Frames can be assembled.
func (p *parser) parseCelChunk(payload []byte, frameIndex, offset int) error {
	c := newCk(payload)

	layerIndex := c.u16()
	x := c.i16()
	y := c.i16()
	opacity := c.u8()
	celType := c.u16()
	zIndex := c.i16()
	c.skip(5) // reserved
	if c.err != nil {
		return chunkErr(chunkCel, offset, c.err)
	}

	cel := &Cel{
		LayerIndex: int(layerIndex),
		FrameIndex: frameIndex,
		X:          x,
		Y:          y,
		Opacity:    opacity,
		ZIndex:     zIndex,
	}

	switch celType {
	case 0: // raw image
		cel.Kind = CelRawImage
		w, h := c.u16(), c.u16()
		if c.err != nil {
			return chunkErr(chunkCel, offset, c.err)
		}
		cel.Width, cel.Height = int(w), int(h)
		want := int(w) * int(h) * p.doc.BytesPerPixel
		px := c.bytes(want)
		if c.err != nil {
			return chunkErr(chunkCel, offset, fmt.Errorf("raw cel pixel data: %w", c.err))
		}
		cel.Pixels = append([]byte(nil), px...)

	case 1: // linked
		cel.Kind = CelLinked
		lf := c.u16()
		if c.err != nil {
			return chunkErr(chunkCel, offset, c.err)
		}
		cel.LinkedFrame = int(lf)

	case 2: // compressed image
		cel.Kind = CelRawImage
		w, h := c.u16(), c.u16()
		if c.err != nil {
			return chunkErr(chunkCel, offset, c.err)
		}
		cel.Width, cel.Height = int(w), int(h)
		want := int(w) * int(h) * p.doc.BytesPerPixel
		compressed := c.rest()
		px, err := pixelcodec.DecodeZlib(compressed, want)
		if err != nil {
			return compressionErr(chunkCel, offset, err)
		}
		cel.Pixels = px

	case 3: // compressed tilemap
		cel.Kind = CelTilemap
		tw, th := c.u16(), c.u16()
		bitsPerTile := c.u16()
		idMask := c.u32()
		xFlipMask := c.u32()
		yFlipMask := c.u32()
		diagMask := c.u32()
		c.skip(10) // reserved
		if c.err != nil {
			return chunkErr(chunkCel, offset, c.err)
		}
		bytesPerTile := int(bitsPerTile) / 8
		if bytesPerTile != 1 && bytesPerTile != 2 && bytesPerTile != 4 {
			return chunkErr(chunkCel, offset, fmt.Errorf("tilemap cel: unsupported %d bits per tile", bitsPerTile))
		}
		tileCount := int(tw) * int(th)
		want := tileCount * bytesPerTile
		raw, err := pixelcodec.DecodeZlib(c.rest(), want)
		if err != nil {
			return compressionErr(chunkCel, offset, err)
		}

		cel.TileWidth, cel.TileHeight = int(tw), int(th)
		cel.BitsPerTile = int(bitsPerTile)
		cel.TileIDMask, cel.XFlipMask, cel.YFlipMask, cel.DiagonalFlipMask = idMask, xFlipMask, yFlipMask, diagMask
		cel.Tiles = make([]uint32, tileCount)
		for i := 0; i < tileCount; i++ {
			off := i * bytesPerTile
			switch bytesPerTile {
			case 1:
				cel.Tiles[i] = uint32(raw[off])
			case 2:
				cel.Tiles[i] = uint32(binary.LittleEndian.Uint16(raw[off:]))
			case 4:
				cel.Tiles[i] = binary.LittleEndian.Uint32(raw[off:])
			}
		}

	default:
		return chunkErr(chunkCel, offset, fmt.Errorf("unknown cel type %d", celType))
	}

	p.cels[celKey{layer: int(layerIndex), frame: frameIndex}] = cel
	p.target = attachTarget{kind: attachCel, cel: celKey{layer: int(layerIndex), frame: frameIndex}}
	return nil
}

// parseCelExtraChunk decodes the Cel-extra chunk (0x2006), which must
// immediately follow the Cel chunk it augments.
func (p *parser) parseCelExtraChunk(payload []byte, frameIndex, offset int) error {
	c := newCk(payload)
	_ = c.u32() // flags: bit 0 says precise bounds follow: they always do in practice
	px := c.fixed()
	py := c.fixed()
	pw := c.fixed()
	ph := c.fixed()
	c.skip(16) // reserved
	if c.err != nil {
		return chunkErr(chunkCelExtra, offset, c.err)
	}

	if p.target.kind != attachCel {
		return nil // no preceding cel to attach to; ignore rather than fail closed
	}
	cel := p.cels[p.target.cel]
	if cel == nil {
		return nil
	}
	cel.Extra = &CelExtra{
		PreciseX: px, PreciseY: py,
		PreciseW: pw, PreciseH: ph,
		HasPreciseBounds: true,
	}
	return nil
}
