package aseprite

// Rect is an integer pixel rectangle, avoiding a hard dependency on
// image.Rectangle at the public API surface while matching its shape.
type Rect struct {
	X, Y, W, H int
}

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// SliceKey is one keyframe of a slice: the bounds (and optional 9-patch
// center / pivot) that apply from FromFrame onward, until superseded by the
// next key.
type SliceKey struct {
	FromFrame int
	Bounds    Rect
	Center    *Rect
	Pivot     *Point
}

// Slice is a named, keyed sequence of bounds over the animation.
type Slice struct {
	Name     string
	Keys     []SliceKey
	UserData *UserData
}

// KeyAtFrame returns the key that applies at frame, the last key whose
// FromFrame is <= frame, or nil if frame precedes every key.
func (s *Slice) KeyAtFrame(frame int) *SliceKey {
	var best *SliceKey
	for i := range s.Keys {
		k := &s.Keys[i]
		if k.FromFrame <= frame && (best == nil || k.FromFrame > best.FromFrame) {
			best = k
		}
	}
	return best
}
