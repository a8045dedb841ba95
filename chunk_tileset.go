package aseprite

import "github.com/tilepipe/aseprite/internal/pixelcodec"

// parseTilesetChunk decodes a Tileset chunk (0x2023): the shared tile
// images a Tilemap layer's cels index into (spec §3, §4.2).
func (p *parser) parseTilesetChunk(payload []byte, offset int) error {
	c := newCk(payload)
	id := c.u32()
	flags := c.u32()
	count := c.u32()
	tw := c.u16()
	th := c.u16()
	c.i16() // base index, UI-only numbering hint
	c.skip(14)
	name := c.str()
	if c.err != nil {
		return chunkErr(chunkTileset, offset, c.err)
	}

	ts := &Tileset{
		ID:        id,
		TileCount: int(count),
		TileWidth: int(tw), TileHeight: int(th),
		Flags: flags,
		Name:  name,
	}

	if flags&TilesetLinksExternalFile != 0 {
		ts.ExternalFileID = c.u32()
		ts.ExternalTilesetID = c.u32()
		if c.err != nil {
			return chunkErr(chunkTileset, offset, c.err)
		}
	}
	if flags&TilesetIncludesTiles != 0 {
		n := c.u32()
		compressed := c.bytes(int(n))
		if c.err != nil {
			return chunkErr(chunkTileset, offset, c.err)
		}
		want := int(tw) * int(th) * int(count) * p.doc.BytesPerPixel
		px, err := pixelcodec.DecodeZlib(compressed, want)
		if err != nil {
			return compressionErr(chunkTileset, offset, err)
		}
		ts.Pixels = px
	}

	p.doc.Tilesets[id] = ts
	p.target = attachTarget{kind: attachTileset, tilesetID: id}
	return nil
}
