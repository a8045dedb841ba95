package aseprite

// PaletteEntry is one 256-slot palette color.
type PaletteEntry struct {
	R, G, B, A uint8
	Name       string
}

// Palette is an ordered sequence of at most 256 colors.
type Palette struct {
	Entries []PaletteEntry
}

// RGBA returns entry i as a straight-alpha color, or fully transparent
// black if i is out of range (spec §7: invalid palette index is treated as
// transparent rather than an error at render time).
func (p Palette) RGBA(i uint8) [4]uint8 {
	if int(i) >= len(p.Entries) {
		return [4]uint8{0, 0, 0, 0}
	}
	e := p.Entries[i]
	return [4]uint8{e.R, e.G, e.B, e.A}
}

// asRGBASlice flattens the palette into the [][4]uint8 shape the pixel
// codec's indexed-to-RGBA conversion expects.
func (p Palette) asRGBASlice() [][4]uint8 {
	out := make([][4]uint8, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = [4]uint8{e.R, e.G, e.B, e.A}
	}
	return out
}
