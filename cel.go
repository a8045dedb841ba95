package aseprite

// CelKind distinguishes the parsed cel shapes. Of the four on-wire payload
// shapes, raw and compressed images both become CelRawImage. Document.CelAt
// returns a Linked cel as parsed, without following the link; RenderFrame
// follows links to the source cel.
type CelKind int

const (
	CelRawImage CelKind = iota
	CelLinked
	CelTilemap
)

// CelExtra carries the optional precise sub-pixel bounds from chunk 0x2006.
// Parsed but not used by the integer-pixel compositor (spec's rendering
// scope stops at whole pixels).
type CelExtra struct {
	PreciseX, PreciseY         float64
	PreciseW, PreciseH         float64
	HasPreciseBounds           bool
}

// Cel is a per-(layer, frame) pixel contribution.
type Cel struct {
	LayerIndex int
	FrameIndex int
	Kind       CelKind
	X, Y       int16
	Opacity    uint8
	ZIndex     int16 // parsed, unused by the compositor; see DESIGN.md.

	// Raw image / decompressed-image fields.
	Width, Height int
	Pixels        []byte // in the document's pixel format, BytesPerPixel*Width*Height long

	// Linked-cel field: the frame this cel borrows pixels from, in the
	// same layer.
	LinkedFrame int

	// Tilemap fields.
	TileWidth, TileHeight       int // grid dimensions, in tiles
	BitsPerTile                 int
	TileIDMask, XFlipMask       uint32
	YFlipMask, DiagonalFlipMask uint32
	Tiles                       []uint32 // TileWidth*TileHeight entries, raw (unmasked) tile values

	Extra    *CelExtra
	UserData *UserData
}

// TileAt decodes tile (tx, ty)'s raw value into its id and flip flags.
func (c *Cel) TileAt(tx, ty int) (id uint32, xFlip, yFlip, diagFlip bool) {
	if tx < 0 || ty < 0 || tx >= c.TileWidth || ty >= c.TileHeight {
		return 0, false, false, false
	}
	raw := c.Tiles[ty*c.TileWidth+tx]
	id = raw & c.TileIDMask
	xFlip = raw&c.XFlipMask != 0
	yFlip = raw&c.YFlipMask != 0
	diagFlip = raw&c.DiagonalFlipMask != 0
	return
}
