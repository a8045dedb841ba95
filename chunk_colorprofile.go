package aseprite

// parseColorProfileChunk decodes the Color-profile chunk (0x2007). The
// profile is retained verbatim; interpreting ICC bytes or applying gamma is
// outside this reader's scope (spec §1 Non-goals, §7).
func (p *parser) parseColorProfileChunk(payload []byte, offset int) error {
	c := newCk(payload)
	typ := c.u16()
	flags := c.u16()
	gamma := c.fixed()
	c.skip(8) // reserved
	if c.err != nil {
		return chunkErr(chunkColorProfile, offset, c.err)
	}

	var icc []byte
	if typ == 2 {
		n := c.u32()
		icc = c.bytes(int(n))
		if c.err != nil {
			return chunkErr(chunkColorProfile, offset, c.err)
		}
	}

	p.doc.ColorProfile = &ColorProfile{
		Type:           typ,
		UsesFixedGamma: flags&1 != 0,
		FixedGamma:     gamma,
		ICCData:        append([]byte(nil), icc...),
	}
	return nil
}
