package aseprite

// parseTagsChunk decodes the Tags chunk (0x2018). It also arms the
// "last attachable" cursor for the special sequential rule of spec §4.1: any
// User-data chunks immediately following a Tags chunk attach to its tags in
// order, one per chunk, rather than all to the same target.
func (p *parser) parseTagsChunk(payload []byte, offset int) error {
	c := newCk(payload)
	n := c.u16()
	c.skip(8) // reserved
	if c.err != nil {
		return chunkErr(chunkTags, offset, c.err)
	}

	first := len(p.doc.Tags)
	for i := 0; i < int(n); i++ {
		from := c.u16()
		to := c.u16()
		dir := c.u8()
		repeat := c.u16()
		c.skip(6) // reserved
		r, g, b := c.u8(), c.u8(), c.u8()
		c.skip(1) // extra byte, always zero
		name := c.str()
		if c.err != nil {
			return chunkErr(chunkTags, offset, c.err)
		}

		d := Forward
		switch dir {
		case 1:
			d = Reverse
		case 2:
			d = PingPong
		case 3:
			d = PingPongReverse
		}
		col := [3]uint8{r, g, b}
		p.doc.Tags = append(p.doc.Tags, Tag{
			FromFrame: int(from),
			ToFrame:   int(to),
			Name:      name,
			Direction: d,
			Repeat:    int(repeat),
			Color:     &col,
		})
	}

	p.target = attachTarget{kind: attachTagSequence}
	p.tagCursor = first
	return nil
}
