package aseprite

// Tileset flag bits (spec §9's "known file-format quirks").
const (
	TilesetLinksExternalFile = 1 << iota
	TilesetIncludesTiles
	TilesetTileIDZeroIsEmpty
	TilesetXFlipAutoMatch
	TilesetYFlipAutoMatch
	TilesetDiagonalFlipAutoMatch
)

// Tileset is a stacked collection of same-sized tile images. Tile id 0 is
// always the empty tile, whether or not TilesetTileIDZeroIsEmpty is set in
// modern files.
type Tileset struct {
	ID                     uint32
	TileCount              int
	TileWidth, TileHeight  int
	Flags                  uint32
	Name                   string
	ExternalFileID         uint32
	ExternalTilesetID      uint32
	// Pixels is TileCount*TileHeight rows of TileWidth columns, in the
	// document's pixel format, stacked vertically: tile i occupies rows
	// [i*TileHeight, (i+1)*TileHeight).
	Pixels   []byte
	UserData *UserData
}

// TilePixels returns the sub-slice of Pixels holding tile id's raster, or
// nil if id is out of range or the tileset carries no pixel data.
func (t *Tileset) TilePixels(id uint32, bytesPerPixel int) []byte {
	if t == nil || int(id) >= t.TileCount || len(t.Pixels) == 0 {
		return nil
	}
	rowBytes := t.TileWidth * bytesPerPixel
	start := int(id) * t.TileHeight * rowBytes
	end := start + t.TileHeight*rowBytes
	if end > len(t.Pixels) {
		return nil
	}
	return t.Pixels[start:end]
}
