package aseprite

import "github.com/tilepipe/aseprite/internal/binreader"

// ckReader wraps a binreader.Reader with a sticky first error, so a chunk
// decoder can read its whole fixed layout without checking every return and
// still fail closed the moment something goes short.
type ckReader struct {
	r   *binreader.Reader
	err error
}

func newCk(payload []byte) *ckReader {
	return &ckReader{r: binreader.New(payload)}
}

func (c *ckReader) u8() uint8 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.U8()
	c.err = err
	return v
}

func (c *ckReader) u16() uint16 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.U16()
	c.err = err
	return v
}

func (c *ckReader) u32() uint32 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.U32()
	c.err = err
	return v
}

func (c *ckReader) i16() int16 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.I16()
	c.err = err
	return v
}

func (c *ckReader) i32() int32 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.I32()
	c.err = err
	return v
}

func (c *ckReader) u64() uint64 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.U64()
	c.err = err
	return v
}

func (c *ckReader) fixed() float64 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.Fixed16_16()
	c.err = err
	return v
}

func (c *ckReader) str() string {
	if c.err != nil {
		return ""
	}
	v, err := c.r.String()
	c.err = err
	return v
}

func (c *ckReader) bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	v, err := c.r.Bytes(n)
	c.err = err
	return v
}

func (c *ckReader) skip(n int) {
	if c.err != nil {
		return
	}
	c.err = c.r.Skip(n)
}

func (c *ckReader) remaining() int {
	if c.err != nil {
		return 0
	}
	return c.r.Len()
}

func (c *ckReader) rest() []byte {
	if c.err != nil {
		return nil
	}
	return c.r.Rest()
}
