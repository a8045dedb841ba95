package aseprite_test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilepipe/aseprite"
)

// --- minimal on-wire fixture builders, mirroring spec §4.1/§4.2's layouts ---

func le16(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func le32(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }
func leStr(s string) []byte { return append(le16(uint16(len(s))), []byte(s)...) }

func chunk(typ uint16, payload []byte) []byte {
	out := le32(uint32(6 + len(payload)))
	out = append(out, le16(typ)...)
	return append(out, payload...)
}

func fileHeaderBytes(frameCount, w, h int, depth uint16) []byte {
	b := make([]byte, 128)
	binary.LittleEndian.PutUint32(b[0:], uint32(len(b)))
	binary.LittleEndian.PutUint16(b[4:], 0xA5E0)
	binary.LittleEndian.PutUint16(b[6:], uint16(frameCount))
	binary.LittleEndian.PutUint16(b[8:], uint16(w))
	binary.LittleEndian.PutUint16(b[10:], uint16(h))
	binary.LittleEndian.PutUint16(b[12:], depth)
	// flags, speed, reserved fields left zero.
	binary.LittleEndian.PutUint16(b[32:], 256) // number of colors
	return b
}

func frameBytes(chunks [][]byte) []byte {
	var payload []byte
	for _, c := range chunks {
		payload = append(payload, c...)
	}
	b := make([]byte, 16)
	binary.LittleEndian.PutUint32(b[0:], uint32(16+len(payload)))
	binary.LittleEndian.PutUint16(b[4:], 0xF1FA)
	binary.LittleEndian.PutUint16(b[6:], 0) // old chunk count, superseded below
	binary.LittleEndian.PutUint16(b[8:], 100) // duration ms
	binary.LittleEndian.PutUint32(b[12:], uint32(len(chunks)))
	return append(b, payload...)
}

func buildFile(w, h int, depth uint16, frames [][][]byte) []byte {
	out := fileHeaderBytes(len(frames), w, h, depth)
	for _, f := range frames {
		out = append(out, frameBytes(f)...)
	}
	return out
}

func layerChunk(name string, kind uint16, blendMode uint16, opacity byte) []byte {
	p := le16(0x0001) // flags: visible only (background and reference bits would change rendering)
	p = append(p, le16(kind)...)
	p = append(p, le16(0)...) // child level
	p = append(p, le16(0)...) // default width
	p = append(p, le16(0)...) // default height
	p = append(p, le16(blendMode)...)
	p = append(p, opacity)
	p = append(p, 0, 0, 0) // reserved
	p = append(p, leStr(name)...)
	return chunk(0x2004, p)
}

func rawCelChunk(layerIndex uint16, x, y int16, opacity byte, w, h uint16, pixels []byte) []byte {
	p := le16(layerIndex)
	p = append(p, le16(uint16(x))...)
	p = append(p, le16(uint16(y))...)
	p = append(p, opacity)
	p = append(p, le16(0)...) // cel type 0: raw image
	p = append(p, le16(0)...) // z-index
	p = append(p, 0, 0, 0, 0, 0) // reserved
	p = append(p, le16(w)...)
	p = append(p, le16(h)...)
	p = append(p, pixels...)
	return chunk(0x2005, p)
}

func linkedCelChunk(layerIndex uint16, sourceFrame uint16) []byte {
	p := le16(layerIndex)
	p = append(p, le16(0)...) // x
	p = append(p, le16(0)...) // y
	p = append(p, byte(255))
	p = append(p, le16(1)...) // cel type 1: linked
	p = append(p, le16(0)...) // z-index
	p = append(p, 0, 0, 0, 0, 0)
	p = append(p, le16(sourceFrame)...)
	return chunk(0x2005, p)
}

// --- tests ---

func TestParseRejectsBadMagic(t *testing.T) {
	buf := fileHeaderBytes(0, 1, 1, 32)
	buf[4], buf[5] = 0, 0
	_, err := aseprite.Parse(buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, aseprite.ErrBadMagic))
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	buf := fileHeaderBytes(0, 1, 1, 32)[:64]
	_, err := aseprite.Parse(buf)
	require.Error(t, err)
	require.True(t, errors.Is(err, aseprite.ErrTruncated))
}

func TestLayerVisibilityRespectsHiddenAncestorGroup(t *testing.T) {
	groupFlags := le16(0) // hidden group: visibility bit unset
	group := groupFlags
	group = append(group, le16(1)...) // kind group
	group = append(group, le16(0)...) // child level
	group = append(group, le16(0)...)
	group = append(group, le16(0)...)
	group = append(group, le16(0)...) // blend mode
	group = append(group, byte(255))
	group = append(group, 0, 0, 0)
	group = append(group, leStr("hidden group")...)
	groupChunk := chunk(0x2004, group)

	childFlags := le16(0x0001) // child itself is visible
	child := childFlags
	child = append(child, le16(0)...) // kind image
	child = append(child, le16(1)...) // child level 1: nested under the group
	child = append(child, le16(0)...)
	child = append(child, le16(0)...)
	child = append(child, le16(0)...)
	child = append(child, byte(255))
	child = append(child, 0, 0, 0)
	child = append(child, leStr("child")...)
	childChunk := chunk(0x2004, child)

	pixels := []byte{200, 100, 50, 255}
	celChunk := rawCelChunk(1, 0, 0, 255, 1, 1, pixels)
	buf := buildFile(1, 1, 32, [][][]byte{{groupChunk, childChunk, celChunk}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Len(t, doc.Layers, 2)

	img, err := doc.RenderFrame(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, img.Pixels, "child layer inside a hidden group must not render")
}

func TestParseSingleLayerRawImageRendersBitIdentical(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		0, 255, 0, 255, // opaque green
	}
	l := layerChunk("bg", 0, 0, 255)
	c := rawCelChunk(0, 0, 0, 255, 2, 1, pixels)
	buf := buildFile(2, 1, 32, [][][]byte{{l, c}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Width)
	require.Equal(t, 1, doc.Height)
	require.Len(t, doc.Layers, 1)
	require.Equal(t, "bg", doc.Layers[0].Name)

	img, err := doc.RenderFrame(0)
	require.NoError(t, err)
	require.Equal(t, pixels, img.Pixels)
}

func TestLinkedCelRendersSameAsSourceFrame(t *testing.T) {
	pixels := []byte{10, 20, 30, 255}
	l := layerChunk("bg", 0, 0, 255)
	c0 := rawCelChunk(0, 0, 0, 255, 1, 1, pixels)
	c1 := linkedCelChunk(0, 0)
	buf := buildFile(1, 1, 32, [][][]byte{{l, c0}, {c1}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Len(t, doc.Frames, 2)

	frame0, err := doc.RenderFrame(0)
	require.NoError(t, err)
	frame1, err := doc.RenderFrame(1)
	require.NoError(t, err)
	require.Equal(t, frame0.Pixels, frame1.Pixels)
}

func TestLinkedCelChainOfThreeRendersSourcePixels(t *testing.T) {
	pixels := []byte{10, 20, 30, 255}
	l := layerChunk("bg", 0, 0, 255)
	c0 := rawCelChunk(0, 0, 0, 255, 1, 1, pixels)
	c1 := linkedCelChunk(0, 0)
	c2 := linkedCelChunk(0, 1)
	buf := buildFile(1, 1, 32, [][][]byte{{l, c0}, {c1}, {c2}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Len(t, doc.Frames, 3)

	for f := 0; f < 3; f++ {
		img, err := doc.RenderFrame(f)
		require.NoError(t, err)
		require.Equal(t, pixels, img.Pixels, "frame %d", f)
	}
}

func TestLinkedCelCycleIsRejected(t *testing.T) {
	l := layerChunk("bg", 0, 0, 255)
	c0 := linkedCelChunk(0, 1)
	c1 := linkedCelChunk(0, 0)
	buf := buildFile(1, 1, 32, [][][]byte{{l, c0}, {c1}})

	_, err := aseprite.Parse(buf)
	require.Error(t, err)
}

func TestLayerOpacityIgnoredWithoutValidFlag(t *testing.T) {
	l := layerChunk("bg", 0, 0, 128)
	c := rawCelChunk(0, 0, 0, 255, 1, 1, []byte{1, 2, 3, 255})
	buf := buildFile(1, 1, 32, [][][]byte{{l, c}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	// LayerOpacityValid isn't set on this fixture's file-header flags, so
	// layer opacity is ignored (spec §9): the cel's own full opacity wins.
	img, err := doc.RenderFrame(0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 255}, img.Pixels)
}

func TestTwoLayerNormalBlendOverOpaqueBackground(t *testing.T) {
	bgLayer := le16(0x0009) // flags: visible + background
	bgLayer = append(bgLayer, le16(0)...) // kind image
	bgLayer = append(bgLayer, le16(0)...) // child level
	bgLayer = append(bgLayer, le16(0)...)
	bgLayer = append(bgLayer, le16(0)...)
	bgLayer = append(bgLayer, le16(0)...) // blend mode normal
	bgLayer = append(bgLayer, byte(255))
	bgLayer = append(bgLayer, 0, 0, 0)
	bgLayer = append(bgLayer, leStr("background")...)

	l0 := chunk(0x2004, bgLayer)
	l1 := layerChunk("top", 0, 0, 255)
	c0 := rawCelChunk(0, 0, 0, 255, 1, 1, []byte{100, 100, 100, 255})
	c1 := rawCelChunk(1, 0, 0, 128, 1, 1, []byte{200, 50, 50, 255})
	buf := buildFile(1, 1, 32, [][][]byte{{l0, l1, c0, c1}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Len(t, doc.Layers, 2)

	img, err := doc.RenderFrame(0)
	require.NoError(t, err)
	require.Len(t, img.Pixels, 4)
	// Fully opaque result: both layers are opaque and the top one only
	// partially covers via opacity, so alpha stays saturated.
	require.Equal(t, byte(255), img.Pixels[3])
}

func TestTilemapCelExpandsThroughTileset(t *testing.T) {
	tileW, tileH := 2, 2
	tile0 := make([]byte, tileW*tileH*4) // empty tile, id 0, contents irrelevant
	tile1 := bytes.Repeat([]byte{9, 8, 7, 255}, tileW*tileH)
	tilesetPixels := append(append([]byte{}, tile0...), tile1...)

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, err := zw.Write(tilesetPixels)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tsPayload := le32(0) // tileset id
	tsPayload = append(tsPayload, le32(2)...)  // flags: includes tiles
	tsPayload = append(tsPayload, le32(2)...)  // tile count
	tsPayload = append(tsPayload, le16(uint16(tileW))...)
	tsPayload = append(tsPayload, le16(uint16(tileH))...)
	tsPayload = append(tsPayload, le16(0)...) // base index
	tsPayload = append(tsPayload, make([]byte, 14)...)
	tsPayload = append(tsPayload, leStr("tiles")...)
	tsPayload = append(tsPayload, le32(uint32(zbuf.Len()))...)
	tsPayload = append(tsPayload, zbuf.Bytes()...)
	tsChunk := chunk(0x2023, tsPayload)

	tilemapLayer := le16(0x0001) // flags: visible only
	tilemapLayer = append(tilemapLayer, le16(2)...) // kind tilemap
	tilemapLayer = append(tilemapLayer, le16(0)...)
	tilemapLayer = append(tilemapLayer, le16(0)...)
	tilemapLayer = append(tilemapLayer, le16(0)...)
	tilemapLayer = append(tilemapLayer, le16(0)...) // blend normal
	tilemapLayer = append(tilemapLayer, byte(255))
	tilemapLayer = append(tilemapLayer, 0, 0, 0)
	tilemapLayer = append(tilemapLayer, leStr("tiles")...)
	tilemapLayer = append(tilemapLayer, le32(0)...) // tileset id
	layerCh := chunk(0x2004, tilemapLayer)

	tileIDs := []uint32{0, 1, 1, 0}
	var tileBytes []byte
	for _, id := range tileIDs {
		tileBytes = append(tileBytes, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	var tzbuf bytes.Buffer
	tzw := zlib.NewWriter(&tzbuf)
	_, err = tzw.Write(tileBytes)
	require.NoError(t, err)
	require.NoError(t, tzw.Close())

	celPayload := le16(0) // layer index
	celPayload = append(celPayload, le16(0)...) // x
	celPayload = append(celPayload, le16(0)...) // y
	celPayload = append(celPayload, byte(255))
	celPayload = append(celPayload, le16(3)...) // cel type 3: compressed tilemap
	celPayload = append(celPayload, le16(0)...) // z-index
	celPayload = append(celPayload, 0, 0, 0, 0, 0)
	celPayload = append(celPayload, le16(2)...) // tile grid width
	celPayload = append(celPayload, le16(2)...) // tile grid height
	celPayload = append(celPayload, le16(32)...) // bits per tile
	celPayload = append(celPayload, le32(0x1FFFFFFF)...) // tile id mask
	celPayload = append(celPayload, le32(0x20000000)...) // x flip mask
	celPayload = append(celPayload, le32(0x40000000)...) // y flip mask
	celPayload = append(celPayload, le32(0x80000000)...) // diagonal flip mask
	celPayload = append(celPayload, make([]byte, 10)...)
	celPayload = append(celPayload, tzbuf.Bytes()...)
	celChunk := chunk(0x2005, celPayload)

	buf := buildFile(4, 4, 32, [][][]byte{{tsChunk, layerCh, celChunk}})

	doc, err := aseprite.Parse(buf)
	require.NoError(t, err)
	require.Len(t, doc.Tilesets, 1)

	img, err := doc.RenderFrame(0)
	require.NoError(t, err)

	at := func(x, y int) []byte {
		i := (y*img.Width + x) * 4
		return img.Pixels[i : i+4]
	}
	require.Equal(t, []byte{0, 0, 0, 0}, at(0, 0)) // tile id 0: empty
	require.Equal(t, []byte{9, 8, 7, 255}, at(2, 0)) // tile id 1
	require.Equal(t, []byte{9, 8, 7, 255}, at(0, 2))
	require.Equal(t, []byte{0, 0, 0, 0}, at(2, 2))
}
