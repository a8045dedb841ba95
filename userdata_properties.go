package aseprite

import "math"

// Property value type tags (spec's UserData.properties is opaque; these
// match Aseprite's own on-wire property type ids).
const (
	propBool uint16 = iota + 1
	propInt8
	propUint8
	propInt16
	propUint16
	propInt32
	propUint32
	propInt64
	propUint64
	propFixed
	propFloat
	propDouble
	propString
	propPoint
	propSize
	propRect
	propVector
	propPropertiesMap
	propUUID
)

// decodePropertyValue reads one variant-typed property value, recursing for
// vectors and nested properties maps.
func decodePropertyValue(c *ckReader, typ uint16) any {
	switch typ {
	case propBool:
		return c.u8() != 0
	case propInt8:
		return int8(c.u8())
	case propUint8:
		return c.u8()
	case propInt16:
		return c.i16()
	case propUint16:
		return c.u16()
	case propInt32:
		return c.i32()
	case propUint32:
		return c.u32()
	case propInt64:
		return int64(c.u64())
	case propUint64:
		return c.u64()
	case propFixed:
		return c.fixed()
	case propFloat:
		return math.Float32frombits(c.u32())
	case propDouble:
		return math.Float64frombits(c.u64())
	case propString:
		return c.str()
	case propPoint:
		return Point{X: int(c.i32()), Y: int(c.i32())}
	case propSize:
		return Point{X: int(c.i32()), Y: int(c.i32())} // width/height, reusing Point's shape
	case propRect:
		x, y := c.i32(), c.i32()
		w, h := c.i32(), c.i32()
		return Rect{X: int(x), Y: int(y), W: int(w), H: int(h)}
	case propUUID:
		b := c.bytes(16)
		var u [16]byte
		copy(u[:], b)
		return u
	case propVector:
		return decodePropertyVector(c)
	case propPropertiesMap:
		return decodePropertiesList(c)
	default:
		return nil
	}
}

func decodePropertyVector(c *ckReader) []any {
	elemType := c.u16()
	n := c.u32()
	out := make([]any, 0, n)
	for i := 0; i < int(n) && c.err == nil; i++ {
		t := elemType
		if t == 0 {
			t = c.u16()
		}
		out = append(out, decodePropertyValue(c, t))
	}
	return out
}

// decodePropertiesList reads a WORD count followed by that many
// (name, typed value) pairs, the shape shared by a top-level property map's
// body and by a nested propPropertiesMap value.
func decodePropertiesList(c *ckReader) []UserDataProperty {
	n := c.u16()
	out := make([]UserDataProperty, 0, n)
	for i := 0; i < int(n) && c.err == nil; i++ {
		name := c.str()
		typ := c.u16()
		val := decodePropertyValue(c, typ)
		out = append(out, UserDataProperty{Name: name, Value: val})
	}
	return out
}
