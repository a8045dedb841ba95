// Package blend re-implements Aseprite's fixed-point integer blend modes
// over premultiplied-by-opacity 8-bit RGBA channels. It reproduces the
// editor's output byte-for-byte, including its known HSL ordering quirks,
// rather than a mathematically "corrected" blend.
package blend

import (
	"log"
	"math"
)

// RGBA is a straight (non-premultiplied) 8-bit color, matching the storage
// format of a decoded pixel.
type RGBA struct {
	R, G, B, A uint8
}

// Mode identifies one of Aseprite's nineteen blend modes.
type Mode int

const (
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	HslHue
	HslSaturation
	HslColor
	HslLuminosity
	Addition
	Subtract
	Divide
)

// channelFunc is a mode's per-channel int transform, mirroring Aseprite's
// blend_funcs.cpp blend_xxx(b, s, t) macros: it receives backdrop and
// source as signed ints (never clamped ahead of time) and returns the
// blended channel value in 0..255.
type channelFunc func(b, s int32) uint8

var channelTable = map[Mode]channelFunc{
	Multiply:   blendMultiply,
	Screen:     blendScreen,
	Overlay:    blendOverlay,
	Darken:     blendDarken,
	Lighten:    blendLighten,
	ColorDodge: blendColorDodge,
	ColorBurn:  blendColorBurn,
	HardLight:  blendHardLight,
	SoftLight:  blendSoftLight,
	Difference: blendDifference,
	Exclusion:  blendExclusion,
	Addition:   blendAddition,
	Subtract:   blendSubtract,
	Divide:     blendDivide,
}

var hslTable = map[Mode]func(b, s RGBA, opacity uint8) RGBA{
	HslHue:        blendHslHue,
	HslSaturation: blendHslSaturation,
	HslColor:      blendHslColor,
	HslLuminosity: blendHslLuminosity,
}

// mulUn8 is Aseprite's MUL_UN8(a, b, t) macro: a rounded 8-bit multiply
// approximating (a*b)/255. a may be negative (e.g. a per-channel
// difference); the shifts below are arithmetic on signed ints, matching
// C's behavior for the macro's `int t` accumulator.
func mulUn8(a, b int32) int32 {
	t := a*b + 0x80
	return ((t >> 8) + t) >> 8
}

// divUn8 is Aseprite's DIV_UN8(a, b) macro: (a*0xff + b/2) / b.
func divUn8(a, b int32) int32 {
	return (a*0xff + b/2) / b
}

// CombineOpacity multiplies two 0-255 opacity values with mul_un8, the
// compositor's rule for folding a cel's opacity into its layer's (spec
// §4.5 step 5).
func CombineOpacity(a, b uint8) uint8 {
	return clampByte(mulUn8(int32(a), int32(b)))
}

func clampByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Blend composites src over backdrop at the given mode and opacity (0-255),
// applying the "N" normalized variant for every non-Normal mode. An
// unrecognized mode falls back to Normal and is logged on every call, matching the
// editor's own defensive fallback (spec §7).
func Blend(backdrop, src RGBA, opacity uint8, mode Mode) RGBA {
	switch {
	case mode == Normal:
		return Normal_(backdrop, src, opacity)
	case channelTable[mode] != nil:
		f := channelTable[mode]
		return blender(backdrop, src, opacity, func(b, s RGBA, op uint8) RGBA {
			return blendChannels(b, s, op, f)
		})
	case hslTable[mode] != nil:
		f := hslTable[mode]
		return blender(backdrop, src, opacity, func(b, s RGBA, op uint8) RGBA {
			return f(b, s, op)
		})
	default:
		log.Printf("blend: unknown mode %d, falling back to Normal", mode)
		return Normal_(backdrop, src, opacity)
	}
}

// Normal_ implements the Normal blend mode (spec §4.4). Exported under this
// name (rather than colliding with the Mode constant) so it doubles as the
// literal fixture target in tests.
func Normal_(backdrop, src RGBA, opacity uint8) RGBA {
	br, bg, bb, ba := int32(backdrop.R), int32(backdrop.G), int32(backdrop.B), int32(backdrop.A)
	sr, sg, sb, sa := int32(src.R), int32(src.G), int32(src.B), int32(src.A)

	if ba == 0 {
		return RGBA{src.R, src.G, src.B, clampByte(mulUn8(sa, int32(opacity)))}
	}
	if sa == 0 {
		return backdrop
	}

	sa = mulUn8(sa, int32(opacity))
	ra := sa + ba - mulUn8(ba, sa)
	if ra == 0 {
		return RGBA{0, 0, 0, 0}
	}
	rr := br + (sr-br)*sa/ra
	rg := bg + (sg-bg)*sa/ra
	rb := bb + (sb-bb)*sa/ra
	return RGBA{clampByte(rr), clampByte(rg), clampByte(rb), clampByte(ra)}
}

// Merge implements the Merge composite (spec §4.4), used internally by the
// "N" variant and exported so it can be tested directly.
func Merge(backdrop, src RGBA, opacity uint8) RGBA {
	blend8 := func(back, s uint8) uint8 {
		return clampByte(int32(back) + mulUn8(int32(s)-int32(back), int32(opacity)))
	}
	var r, g, b uint8
	if backdrop.A == 0 {
		r, g, b = src.R, src.G, src.B
	} else if src.A == 0 {
		r, g, b = backdrop.R, backdrop.G, backdrop.B
	} else {
		r, g, b = blend8(backdrop.R, src.R), blend8(backdrop.G, src.G), blend8(backdrop.B, src.B)
	}
	a := blend8(backdrop.A, src.A)
	if a == 0 {
		return RGBA{0, 0, 0, 0}
	}
	return RGBA{r, g, b, a}
}

// blender implements the "N" (new) blend adapter (spec §4.4): a weighted
// merge between the Normal composite and mode-composite, proportional to
// backdrop alpha. When the backdrop is fully transparent it degenerates to
// plain Normal.
func blender(backdrop, src RGBA, opacity uint8, mode func(b, s RGBA, opacity uint8) RGBA) RGBA {
	if backdrop.A == 0 {
		return Normal_(backdrop, src, opacity)
	}
	normal := Normal_(backdrop, src, opacity)
	blended := mode(backdrop, src, opacity)
	mid := Merge(normal, blended, backdrop.A)

	srcTotalA := mulUn8(int32(src.A), int32(opacity))
	compA := mulUn8(int32(backdrop.A), srcTotalA)
	return Merge(mid, blended, clampByte(compA))
}

// blendChannels applies a per-channel int transform and re-composites with
// Normal at the caller's opacity, matching Aseprite's
// blend_channel(backdrop, src, opacity) helper: the transform replaces
// src's RGB (its alpha is untouched) before feeding Normal.
func blendChannels(b, s RGBA, opacity uint8, f channelFunc) RGBA {
	r := f(int32(b.R), int32(s.R))
	g := f(int32(b.G), int32(s.G))
	bch := f(int32(b.B), int32(s.B))
	mixed := RGBA{r, g, bch, s.A}
	return Normal_(b, mixed, opacity)
}

func blendMultiply(b, s int32) uint8 { return clampByte(mulUn8(b, s)) }

func blendScreen(b, s int32) uint8 { return clampByte(b + s - mulUn8(b, s)) }

func blendOverlay(b, s int32) uint8 { return blendHardLightRaw(s, b) }

func blendDarken(b, s int32) uint8 {
	if b < s {
		return clampByte(b)
	}
	return clampByte(s)
}

func blendLighten(b, s int32) uint8 {
	if b > s {
		return clampByte(b)
	}
	return clampByte(s)
}

func blendColorDodge(b, s int32) uint8 {
	if b == 0 {
		return 0
	}
	s = 255 - s
	if b >= s {
		return 255
	}
	return clampByte(divUn8(b, s))
}

func blendColorBurn(b, s int32) uint8 {
	if b == 255 {
		return 255
	}
	b = 255 - b
	if b >= s {
		return 0
	}
	return clampByte(255 - divUn8(b, s))
}

func blendHardLightRaw(b, s int32) uint8 {
	if s < 128 {
		return clampByte(mulUn8(b, s<<1))
	}
	return blendScreen(b, (s<<1)-255)
}

func blendHardLight(b, s int32) uint8 { return blendHardLightRaw(b, s) }

func blendSoftLight(b, s int32) uint8 {
	bf := float64(b) / 255
	sf := float64(s) / 255

	var d float64
	if bf <= 0.25 {
		d = ((16*bf-12)*bf + 4) * bf
	} else {
		d = math.Sqrt(bf)
	}

	var r float64
	if sf <= 0.5 {
		r = bf - (1-2*sf)*bf*(1-bf)
	} else {
		r = bf + (2*sf-1)*(d-bf)
	}
	return clampByte(int32(r*255 + 0.5))
}

func blendDifference(b, s int32) uint8 {
	d := b - s
	if d < 0 {
		d = -d
	}
	return clampByte(d)
}

func blendExclusion(b, s int32) uint8 {
	return clampByte(b + s - 2*mulUn8(b, s))
}

func blendAddition(b, s int32) uint8 { return clampByte(b + s) }

func blendSubtract(b, s int32) uint8 { return clampByte(b - s) }

func blendDivide(b, s int32) uint8 {
	if b == 0 {
		return 0
	}
	if s == 0 {
		return 255
	}
	return clampByte(b * 255 / s)
}

// --- non-separable HSL blend modes (spec §4.4) ---

func lum(r, g, b float64) float64 { return 0.3*r + 0.59*g + 0.11*b }

func sat(r, g, b float64) float64 {
	return math.Max(r, math.Max(g, b)) - math.Min(r, math.Min(g, b))
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c[0], c[1], c[2])
	n := math.Min(c[0], math.Min(c[1], c[2]))
	x := math.Max(c[0], math.Max(c[1], c[2]))
	if n < 0 {
		for i := range c {
			c[i] = l + ((c[i]-l)*l)/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + ((c[i]-l)*(1-l))/(x-l)
		}
	}
	return c
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c[0], c[1], c[2])
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

// setSat rescales c's mid channel between its min and max so the triple's
// saturation equals s, preserving channel identity via a three-element
// sorting network (mirroring Aseprite's set_sat2 pointer-swap approach,
// which Go expresses as index swaps instead of pointer aliasing).
func setSat(c [3]float64, s float64) [3]float64 {
	idx := [3]int{0, 1, 2}
	swap := func(a, b int) {
		if !(c[idx[a]] < c[idx[b]]) {
			idx[a], idx[b] = idx[b], idx[a]
		}
	}
	swap(0, 1)
	swap(0, 2)
	swap(1, 2)
	minI, midI, maxI := idx[0], idx[1], idx[2]

	if c[maxI] > c[minI] {
		c[midI] = ((c[midI] - c[minI]) * s) / (c[maxI] - c[minI])
		c[maxI] = s
	} else {
		c[midI] = 0
		c[maxI] = 0
	}
	c[minI] = 0
	return c
}

func toFloat(c RGBA) [3]float64 {
	return [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func fromFloat(c [3]float64) (r, g, b uint8) {
	toByte := func(v float64) uint8 {
		return clampByte(int32(v*255 + 0.5))
	}
	return toByte(c[0]), toByte(c[1]), toByte(c[2])
}

func blendHslHue(b, s RGBA, opacity uint8) RGBA {
	bf := toFloat(b)
	res := setLum(setSat(toFloat(s), sat(bf[0], bf[1], bf[2])), lum(bf[0], bf[1], bf[2]))
	r, g, bch := fromFloat(res)
	mixed := RGBA{r, g, bch, s.A}
	return Normal_(b, mixed, opacity)
}

func blendHslSaturation(b, s RGBA, opacity uint8) RGBA {
	bf := toFloat(b)
	sf := toFloat(s)
	res := setLum(setSat(bf, sat(sf[0], sf[1], sf[2])), lum(bf[0], bf[1], bf[2]))
	r, g, bch := fromFloat(res)
	mixed := RGBA{r, g, bch, s.A}
	return Normal_(b, mixed, opacity)
}

// blendHslColor and blendHslLuminosity reproduce Aseprite's documented
// off-by-ordering quirk (spec §4.4 "Known bugs reproduced"): the editor's
// C++ implementation swaps which operand's channels feed set_lum/lum in a
// way that departs from the textbook W3C non-separable formula. We follow
// the same operand order the editor uses rather than "fixing" it.
func blendHslColor(b, s RGBA, opacity uint8) RGBA {
	sf := toFloat(s)
	bf := toFloat(b)
	res := setLum(sf, lum(bf[0], bf[1], bf[2]))
	r, g, bch := fromFloat(res)
	mixed := RGBA{r, g, bch, s.A}
	return Normal_(b, mixed, opacity)
}

func blendHslLuminosity(b, s RGBA, opacity uint8) RGBA {
	bf := toFloat(b)
	sf := toFloat(s)
	res := setLum(bf, lum(sf[0], sf[1], sf[2]))
	r, g, bch := fromFloat(res)
	mixed := RGBA{r, g, bch, s.A}
	return Normal_(b, mixed, opacity)
}
