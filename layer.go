package aseprite

// LayerKind distinguishes an image layer, a group (folder) layer, or a
// tilemap layer.
type LayerKind int

const (
	LayerImage LayerKind = iota
	LayerGroup
	LayerTilemap
)

// Layer flag bits (spec §3).
const (
	LayerVisible = 1 << iota
	LayerEditable
	LayerLockMovement
	LayerBackground
	LayerPreferLinkedCels
	LayerCollapsed
	LayerReference
)

// Layer is one entry in the document's flat, pre-order-flattened layer
// tree. Its parent is derived on demand via Document.ParentOf.
type Layer struct {
	Name       string
	Kind       LayerKind
	ChildLevel int
	BlendMode  int
	Opacity    uint8
	Flags      uint16
	// TilesetID is only meaningful when Kind == LayerTilemap.
	TilesetID uint32
	UserData  *UserData
}

func (l *Layer) hasFlag(f uint16) bool { return l.Flags&f != 0 }

// Visible reports whether the layer's visibility flag is set.
func (l *Layer) Visible() bool { return l.hasFlag(LayerVisible) }

// IsBackground reports whether the layer is Aseprite's designated
// background layer: its cels have no alpha transparency semantics, so the
// compositor treats their backdrop contribution as fully opaque.
func (l *Layer) IsBackground() bool { return l.hasFlag(LayerBackground) }

// IsReference reports whether the layer is a reference layer, excluded
// from rendered frames by default (spec §4.5, §9).
func (l *Layer) IsReference() bool { return l.hasFlag(LayerReference) }
