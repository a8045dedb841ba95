package aseprite

// parseLayerChunk decodes a Layer chunk (0x2004) and appends it to the
// document's flat, pre-order layer list (spec §4.1, §3).
func (p *parser) parseLayerChunk(payload []byte, offset int) error {
	c := newCk(payload)

	flags := c.u16()
	typ := c.u16()
	childLevel := c.u16()
	c.u16() // default width, informational only
	c.u16() // default height, informational only
	blendMode := c.u16()
	opacity := c.u8()
	c.skip(3) // reserved
	name := c.str()
	if c.err != nil {
		return chunkErr(chunkLayer, offset, c.err)
	}

	l := Layer{
		Name:       name,
		ChildLevel: int(childLevel),
		BlendMode:  int(blendMode),
		Opacity:    opacity,
		Flags:      flags,
	}

	switch typ {
	case 1:
		l.Kind = LayerGroup
	case 2:
		l.Kind = LayerTilemap
		l.TilesetID = c.u32()
		if c.err != nil {
			return chunkErr(chunkLayer, offset, c.err)
		}
	default:
		l.Kind = LayerImage
	}

	idx := len(p.doc.Layers)
	p.doc.Layers = append(p.doc.Layers, l)
	p.target = attachTarget{kind: attachLayer, layerIdx: idx}
	return nil
}
