package aseprite

// parseUserDataChunk decodes a User-data chunk (0x2020) and attaches it to
// whatever the "last attachable" cursor currently points at: the layer,
// cel, tileset or slice most recently parsed, or (after a Tags chunk) the
// next tag in sequence (spec §4.1).
func (p *parser) parseUserDataChunk(payload []byte, offset int) error {
	c := newCk(payload)
	flags := c.u32()
	if c.err != nil {
		return chunkErr(chunkUserData, offset, c.err)
	}

	ud := &UserData{}
	if flags&1 != 0 {
		ud.Text = c.str()
		ud.HasText = true
	}
	if flags&2 != 0 {
		r, g, b, a := c.u8(), c.u8(), c.u8(), c.u8()
		col := [4]uint8{r, g, b, a}
		ud.Color = &col
	}
	if flags&4 != 0 {
		c.u32() // total byte size of the properties maps blob, not needed to decode it
		numMaps := c.u32()
		for m := 0; m < int(numMaps) && c.err == nil; m++ {
			c.u32() // properties-map key: 0 for this chunk's own extension, else an external file id
			ud.Properties = append(ud.Properties, decodePropertiesList(c)...)
		}
	}
	if c.err != nil {
		return chunkErr(chunkUserData, offset, c.err)
	}

	p.attachUserData(ud)
	return nil
}

func (p *parser) attachUserData(ud *UserData) {
	switch p.target.kind {
	case attachLayer:
		if p.target.layerIdx < len(p.doc.Layers) {
			p.doc.Layers[p.target.layerIdx].UserData = ud
		}
	case attachCel:
		if c := p.cels[p.target.cel]; c != nil {
			c.UserData = ud
		}
	case attachTileset:
		if ts := p.doc.Tilesets[p.target.tilesetID]; ts != nil {
			ts.UserData = ud
		}
	case attachSliceKey:
		if p.target.sliceIdx < len(p.doc.Slices) {
			p.doc.Slices[p.target.sliceIdx].UserData = ud
		}
	case attachTagSequence:
		if p.tagCursor < len(p.doc.Tags) {
			p.doc.Tags[p.tagCursor].UserData = ud
			p.tagCursor++
		}
	}
}
