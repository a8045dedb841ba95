package aseprite

import "fmt"

// parsePaletteChunk decodes the modern Palette chunk (0x2019). A file may
// spread a palette across several such chunks touching disjoint index
// ranges, so an existing (shorter) palette is grown rather than replaced.
func (p *parser) parsePaletteChunk(payload []byte, offset int) error {
	c := newCk(payload)
	size := c.u32()
	first := c.u32()
	last := c.u32()
	c.skip(8) // reserved
	if c.err != nil {
		return chunkErr(chunkPalette, offset, c.err)
	}
	if last < first {
		return chunkErr(chunkPalette, offset, fmt.Errorf("palette range [%d,%d] is backwards", first, last))
	}

	if uint32(len(p.doc.Palette.Entries)) < size {
		grown := make([]PaletteEntry, size)
		copy(grown, p.doc.Palette.Entries)
		p.doc.Palette.Entries = grown
	}
	entries := p.doc.Palette.Entries

	for i := first; i <= last; i++ {
		flags := c.u16()
		r, g, b, a := c.u8(), c.u8(), c.u8(), c.u8()
		var name string
		if flags&1 != 0 {
			name = c.str()
		}
		if c.err != nil {
			return chunkErr(chunkPalette, offset, c.err)
		}
		if i < uint32(len(entries)) {
			entries[i] = PaletteEntry{R: r, G: g, B: b, A: a, Name: name}
		}
	}

	p.sawModernPalette = true
	return nil
}

// parseOldPaletteChunk decodes the deprecated 0x0004/0x0011 palette chunks,
// only ever used as a fallback when no modern Palette chunk exists in the
// file (spec §9). Both variants store 6-bit channels, widened to 8-bit by a
// left shift.
func (p *parser) parseOldPaletteChunk(payload []byte, chunkType uint16, offset int) error {
	c := newCk(payload)
	numPackets := c.u16()
	if c.err != nil {
		return chunkErr(chunkType, offset, c.err)
	}

	if p.oldPalette == nil {
		p.oldPalette = &Palette{}
	}
	entries := p.oldPalette.Entries
	skip := 0

	for pk := 0; pk < int(numPackets); pk++ {
		skipCount := c.u8()
		numColors := c.u8()
		if c.err != nil {
			return chunkErr(chunkType, offset, c.err)
		}
		n := int(numColors)
		if n == 0 {
			n = 256
		}
		skip += int(skipCount)
		for i := 0; i < n; i++ {
			r, g, b := c.u8(), c.u8(), c.u8()
			if c.err != nil {
				return chunkErr(chunkType, offset, c.err)
			}
			idx := skip + i
			for idx >= len(entries) {
				entries = append(entries, PaletteEntry{A: 255})
			}
			entries[idx] = PaletteEntry{R: r << 2, G: g << 2, B: b << 2, A: 255}
		}
		skip += n
	}

	p.oldPalette.Entries = entries
	return nil
}
