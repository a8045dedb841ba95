package aseprite

import (
	"fmt"

	"github.com/tilepipe/aseprite/internal/blend"
	"github.com/tilepipe/aseprite/internal/pixelcodec"
)

// RGBAImage is a synthesized frame: straight-alpha RGBA pixels, row-major,
// top-left origin.
type RGBAImage struct {
	Width, Height int
	Pixels        []byte // 4*Width*Height bytes
}

func newRGBAImage(w, h int) *RGBAImage {
	return &RGBAImage{Width: w, Height: h, Pixels: make([]byte, 4*w*h)}
}

func (img *RGBAImage) at(x, y int) []byte {
	i := (y*img.Width + x) * 4
	return img.Pixels[i : i+4]
}

type renderOptions struct {
	includeReference bool
}

// RenderOption customizes RenderFrame's default policy.
type RenderOption func(*renderOptions)

// WithReferenceLayers includes reference layers in the composite, departing
// from the editor's own export behavior of excluding them (spec §9 Open
// Questions).
func WithReferenceLayers() RenderOption {
	return func(o *renderOptions) { o.includeReference = true }
}

// RenderFrame synthesizes frame index f into an RGBA raster by compositing
// every visible, non-group layer's cel in layer order (spec §4.5).
// Rendering never fails once Parse has succeeded except for a caller
// passing an out-of-range frame index.
func (d *Document) RenderFrame(f int, opts ...RenderOption) (*RGBAImage, error) {
	if f < 0 || f >= len(d.Frames) {
		return nil, fmt.Errorf("aseprite: frame %d out of range [0,%d)", f, len(d.Frames))
	}
	var ro renderOptions
	for _, o := range opts {
		o(&ro)
	}

	img := newRGBAImage(d.Width, d.Height)
	depth := d.BytesPerPixel * 8
	palette := d.Palette.asRGBASlice()

	for l := range d.Layers {
		layer := &d.Layers[l]
		if !d.layerVisible(l) || layer.Kind == LayerGroup {
			continue
		}
		if layer.IsReference() && !ro.includeReference {
			continue
		}

		cel, err := resolveCel(d, l, f, map[celKey]bool{})
		if err != nil || cel == nil {
			continue // already validated at parse time; nil means no contribution
		}

		w, h, pixels, originX, originY := d.rasterizeCel(layer, cel)
		if pixels == nil {
			continue
		}

		layerOpacity := uint8(255)
		if d.LayerOpacityValid {
			layerOpacity = layer.Opacity
		}
		opacity := blend.CombineOpacity(layerOpacity, cel.Opacity)
		mode := blend.Mode(layer.BlendMode)

		for iy := 0; iy < h; iy++ {
			cy := originY + iy
			if cy < 0 || cy >= d.Height {
				continue
			}
			for ix := 0; ix < w; ix++ {
				cx := originX + ix
				if cx < 0 || cx >= d.Width {
					continue
				}
				off := (iy*w + ix) * d.BytesPerPixel
				px := pixels[off : off+d.BytesPerPixel]
				rgba := pixelcodec.PixelToRGBA(depth, px, palette, d.TransparentIndex, layer.IsBackground())
				src := blend.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}

				dst := img.at(cx, cy)
				backdrop := blend.RGBA{R: dst[0], G: dst[1], B: dst[2], A: dst[3]}
				if layer.IsBackground() {
					backdrop.A = 255
				}

				result := blend.Blend(backdrop, src, opacity, mode)
				dst[0], dst[1], dst[2], dst[3] = result.R, result.G, result.B, result.A
			}
		}
	}

	return img, nil
}

// rasterizeCel returns the cel's pixel raster (raw image bytes as-is, or a
// tilemap cel expanded through its tileset) plus the raster's top-left
// canvas position.
func (d *Document) rasterizeCel(layer *Layer, cel *Cel) (w, h int, pixels []byte, originX, originY int) {
	switch cel.Kind {
	case CelTilemap:
		ts := d.Tilesets[layer.TilesetID]
		if ts == nil {
			return 0, 0, nil, 0, 0
		}
		return d.expandTilemap(ts, cel)
	default:
		return cel.Width, cel.Height, cel.Pixels, int(cel.X), int(cel.Y)
	}
}

// expandTilemap blits each non-empty tile into a scratch raster sized to
// the cel's tile grid (spec §4.5 step 4). Diagonal flip transposes a
// square tile's axes; x/y flip mirror across the corresponding axis.
func (d *Document) expandTilemap(ts *Tileset, cel *Cel) (w, h int, pixels []byte, originX, originY int) {
	tw, th := ts.TileWidth, ts.TileHeight
	w = cel.TileWidth * tw
	h = cel.TileHeight * th
	bpp := d.BytesPerPixel
	pixels = make([]byte, w*h*bpp)

	for ty := 0; ty < cel.TileHeight; ty++ {
		for tx := 0; tx < cel.TileWidth; tx++ {
			id, xFlip, yFlip, diagFlip := cel.TileAt(tx, ty)
			if id == 0 {
				continue // empty tile
			}
			tile := ts.TilePixels(id, bpp)
			if tile == nil {
				continue
			}
			for sy := 0; sy < th; sy++ {
				for sx := 0; sx < tw; sx++ {
					dx, dy := sx, sy
					if diagFlip && tw == th {
						dx, dy = sy, sx
					}
					if xFlip {
						dx = tw - 1 - dx
					}
					if yFlip {
						dy = th - 1 - dy
					}
					srcOff := (sy*tw + sx) * bpp
					dstX := tx*tw + dx
					dstY := ty*th + dy
					dstOff := (dstY*w + dstX) * bpp
					copy(pixels[dstOff:dstOff+bpp], tile[srcOff:srcOff+bpp])
				}
			}
		}
	}

	return w, h, pixels, int(cel.X), int(cel.Y)
}
