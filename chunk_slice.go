package aseprite

// parseSliceChunk decodes the Slice chunk (0x2022): a name plus one or more
// keyframes, optionally carrying 9-patch center or pivot data (spec §3).
func (p *parser) parseSliceChunk(payload []byte, offset int) error {
	c := newCk(payload)
	n := c.u32()
	flags := c.u32()
	c.skip(4) // reserved
	name := c.str()
	if c.err != nil {
		return chunkErr(chunkSlice, offset, c.err)
	}

	keys := make([]SliceKey, 0, n)
	for i := 0; i < int(n); i++ {
		from := c.u32()
		x, y := c.i32(), c.i32()
		w, h := c.u32(), c.u32()
		key := SliceKey{FromFrame: int(from), Bounds: Rect{X: int(x), Y: int(y), W: int(w), H: int(h)}}

		if flags&1 != 0 { // 9-patch
			cx, cy := c.i32(), c.i32()
			cw, ch := c.u32(), c.u32()
			key.Center = &Rect{X: int(cx), Y: int(cy), W: int(cw), H: int(ch)}
		}
		if flags&2 != 0 { // pivot
			px, py := c.i32(), c.i32()
			key.Pivot = &Point{X: int(px), Y: int(py)}
		}
		if c.err != nil {
			return chunkErr(chunkSlice, offset, c.err)
		}
		keys = append(keys, key)
	}

	idx := len(p.doc.Slices)
	p.doc.Slices = append(p.doc.Slices, Slice{Name: name, Keys: keys})
	p.target = attachTarget{kind: attachSliceKey, sliceIdx: idx}
	return nil
}
