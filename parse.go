package aseprite

import (
	"fmt"

	"github.com/tilepipe/aseprite/internal/binreader"
)

// celKey identifies a cel by (layer, frame) while the document's frames are
// still being assembled.
type celKey struct {
	layer, frame int
}

// attachKind selects which live target a user-data chunk writes onto,
// implementing the "last attachable" state machine of spec §4.1/§9.
type attachKind int

const (
	attachNone attachKind = iota
	attachLayer
	attachCel
	attachTileset
	attachSliceKey
	attachTagSequence
)

type attachTarget struct {
	kind      attachKind
	layerIdx  int
	cel       celKey
	tilesetID uint32
	sliceIdx  int
}

// parser holds the mutable state threaded through one call to Parse: the
// document under construction, the cels collected so far (frames aren't
// finalized until every layer is known), and the "last attachable" cursor.
type parser struct {
	doc  *Document
	cels map[celKey]*Cel

	target    attachTarget
	tagCursor int

	sawModernPalette bool
	oldPalette       *Palette
}

// Parse decodes a complete Aseprite file from buf into a Document. Parsing
// is fail-fast: any bounds violation, decompression error, cycle in linked
// cels, or out-of-range index aborts with a typed *Error, and no partial
// Document is returned.
func Parse(buf []byte) (*Document, error) {
	r := binreader.New(buf)

	fh, err := parseFileHeader(r)
	if err != nil {
		return nil, err
	}

	format, bpp := pixelFormatFromDepth(fh.depth)

	doc := &Document{
		PixelFormat:       format,
		BytesPerPixel:     bpp,
		Width:             fh.width,
		Height:            fh.height,
		FrameCount:        fh.frameCount,
		TransparentIndex:  fh.transparentIndex,
		LayerOpacityValid: fh.flags&flagLayerOpacityValid != 0,
		PixelRatioW:       fh.pixelRatioW,
		PixelRatioH:       fh.pixelRatioH,
		GridX:             fh.gridX,
		GridY:             fh.gridY,
		GridW:             fh.gridW,
		GridH:             fh.gridH,
		Tilesets:          map[uint32]*Tileset{},
		ExternalFiles:     map[uint32]ExternalFile{},
	}

	p := &parser{doc: doc, cels: map[celKey]*Cel{}}

	for f := 0; f < fh.frameCount; f++ {
		frame, err := p.parseFrame(r, f)
		if err != nil {
			return nil, err
		}
		doc.Frames = append(doc.Frames, frame)
	}

	if !p.sawModernPalette && p.oldPalette != nil {
		doc.Palette = *p.oldPalette
	}

	// Materialize per-frame cel slices now that every layer is known.
	for f := range doc.Frames {
		doc.Frames[f].Cels = make([]*Cel, len(doc.Layers))
	}
	for k, c := range p.cels {
		if k.layer >= len(doc.Layers) {
			return nil, modelErr(fmt.Errorf("cel references layer %d, but only %d layers exist", k.layer, len(doc.Layers)))
		}
		doc.Frames[k.frame].Cels[k.layer] = c
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// parseFrame reads one frame header and iterates its chunks, dispatching
// each to the matching chunk decoder. The outer cursor always advances by
// the chunk's declared size regardless of how much the decoder consumed,
// per spec §4.1's forward-compatibility rule.
func (p *parser) parseFrame(r *binreader.Reader, frameIndex int) (Frame, error) {
	fh, err := parseFrameHeader(r)
	if err != nil {
		return Frame{}, err
	}

	count := fh.chunkCount()
	for i := 0; i < count; i++ {
		chunkStart := r.Pos()
		if r.Len() < 6 {
			return Frame{}, fileErr(chunkStart, fmt.Errorf("%w: truncated chunk header", ErrTruncated))
		}
		size, _ := r.U32()
		typ, _ := r.U16()
		if size < 6 {
			return Frame{}, chunkErr(typ, chunkStart, fmt.Errorf("chunk size %d smaller than the 6-byte header", size))
		}
		payloadLen := int(size) - 6
		payload, err := r.Bytes(payloadLen)
		if err != nil {
			return Frame{}, chunkErr(typ, chunkStart, fmt.Errorf("chunk declares %d payload bytes past end of file: %w", payloadLen, err))
		}

		if err := p.dispatchChunk(typ, payload, frameIndex, chunkStart); err != nil {
			return Frame{}, err
		}
	}

	return Frame{Duration: fh.duration}, nil
}

func (p *parser) dispatchChunk(typ uint16, payload []byte, frameIndex, offset int) error {
	switch typ {
	case chunkLayer:
		return p.parseLayerChunk(payload, offset)
	case chunkCel:
		return p.parseCelChunk(payload, frameIndex, offset)
	case chunkCelExtra:
		return p.parseCelExtraChunk(payload, frameIndex, offset)
	case chunkColorProfile:
		return p.parseColorProfileChunk(payload, offset)
	case chunkExternalFiles:
		return p.parseExternalFilesChunk(payload, offset)
	case chunkMask, chunkPath:
		return nil // deprecated, always skipped
	case chunkTags:
		return p.parseTagsChunk(payload, offset)
	case chunkPalette:
		return p.parsePaletteChunk(payload, offset)
	case chunkUserData:
		return p.parseUserDataChunk(payload, offset)
	case chunkSlice:
		return p.parseSliceChunk(payload, offset)
	case chunkTileset:
		return p.parseTilesetChunk(payload, offset)
	case chunkOldPalette256, chunkOldPalette64:
		return p.parseOldPaletteChunk(payload, typ, offset)
	default:
		return nil // unknown chunk types are skipped silently
	}
}

// validate checks the cross-chunk invariants spec §3 lists.
func (p *parser) validate() error {
	doc := p.doc

	for _, t := range doc.Tags {
		if t.FromFrame > t.ToFrame || t.ToFrame >= doc.FrameCount {
			return modelErr(fmt.Errorf("tag %q: frame range [%d,%d] invalid for %d frames", t.Name, t.FromFrame, t.ToFrame, doc.FrameCount))
		}
	}
	for _, s := range doc.Slices {
		for _, k := range s.Keys {
			if k.FromFrame >= doc.FrameCount {
				return modelErr(fmt.Errorf("slice %q: key from_frame %d out of range for %d frames", s.Name, k.FromFrame, doc.FrameCount))
			}
		}
	}

	for f := range doc.Frames {
		for l := range doc.Layers {
			if _, err := resolveCel(doc, l, f, map[celKey]bool{}); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveCel follows Linked cels to their source, detecting cycles.
func resolveCel(doc *Document, layer, frame int, visited map[celKey]bool) (*Cel, error) {
	key := celKey{layer, frame}
	c := doc.Frames[frame].Cels[layer]
	if c == nil || c.Kind != CelLinked {
		return c, nil
	}
	if visited[key] {
		return nil, modelErr(fmt.Errorf("%w: at layer %d frame %d", ErrCycle, layer, frame))
	}
	visited[key] = true
	if c.LinkedFrame < 0 || c.LinkedFrame >= len(doc.Frames) || c.LinkedFrame == frame {
		return nil, modelErr(fmt.Errorf("layer %d frame %d links to invalid frame %d", layer, frame, c.LinkedFrame))
	}
	return resolveCel(doc, layer, c.LinkedFrame, visited)
}
