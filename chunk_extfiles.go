package aseprite

// parseExternalFilesChunk decodes the External-files chunk (0x2008): a
// table of files or extensions that tilesets, palettes, or properties may
// reference by id. The references are modeled but never resolved (spec's
// scope stops at bytes in this file).
func (p *parser) parseExternalFilesChunk(payload []byte, offset int) error {
	c := newCk(payload)
	n := c.u32()
	c.skip(8) // reserved
	if c.err != nil {
		return chunkErr(chunkExternalFiles, offset, c.err)
	}

	for i := 0; i < int(n); i++ {
		id := c.u32()
		kind := c.u8()
		c.skip(7) // reserved
		name := c.str()
		if c.err != nil {
			return chunkErr(chunkExternalFiles, offset, c.err)
		}
		p.doc.ExternalFiles[id] = ExternalFile{ID: id, Kind: kind, FileName: name}
	}
	return nil
}
