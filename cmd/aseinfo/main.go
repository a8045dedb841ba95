// Command aseinfo inspects an Aseprite (.aseprite) file: it prints the
// document's layer tree, tags, and frame durations, and can optionally
// render one frame to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/tilepipe/aseprite"
	"github.com/tilepipe/aseprite/internal/logging"
)

func main() {
	path := flag.String("in", "", "path to a .aseprite file (required)")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	renderFrame := flag.Int("render-frame", -1, "if >= 0, render this frame index to -out as a PNG")
	out := flag.String("out", "", "output PNG path, used with -render-frame")
	includeRef := flag.Bool("include-reference-layers", false, "include reference layers when rendering")
	flag.Parse()

	logging.SetLevel(*logLevel)

	if *path == "" {
		log.Fatal("missing required -in flag")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *path, err)
	}

	doc, err := aseprite.Parse(data)
	if err != nil {
		log.Fatalf("failed to parse %s: %v", *path, err)
	}

	logging.Info("%s: %dx%d, %d frame(s), %d layer(s), format=%s", *path, doc.Width, doc.Height, doc.FrameCount, len(doc.Layers), formatName(doc.PixelFormat))
	for i, l := range doc.Layers {
		indent := ""
		for d := 0; d < l.ChildLevel; d++ {
			indent += "  "
		}
		logging.Info("%slayer[%d] %q kind=%v visible=%v", indent, i, l.Name, l.Kind, l.Visible())
	}
	for _, t := range doc.Tags {
		logging.Info("tag %q frames=[%d,%d] direction=%v", t.Name, t.FromFrame, t.ToFrame, t.Direction)
	}
	for i, f := range doc.Frames {
		logging.Debug("frame[%d] duration=%dms", i, f.Duration)
	}

	if *renderFrame < 0 {
		return
	}
	if *out == "" {
		log.Fatal("-render-frame requires -out")
	}

	var opts []aseprite.RenderOption
	if *includeRef {
		opts = append(opts, aseprite.WithReferenceLayers())
	}
	img, err := doc.RenderFrame(*renderFrame, opts...)
	if err != nil {
		log.Fatalf("failed to render frame %d: %v", *renderFrame, err)
	}

	if err := writePNG(*out, img); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	logging.Info("wrote frame %d to %s", *renderFrame, *out)
}

func writePNG(path string, img *aseprite.RGBAImage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rgba := &image.RGBA{
		Pix:    img.Pixels,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	return png.Encode(f, rgba)
}

func formatName(f aseprite.PixelFormat) string {
	switch f {
	case aseprite.FormatRGBA:
		return "RGBA"
	case aseprite.FormatGrayscale:
		return "Grayscale"
	case aseprite.FormatIndexed:
		return "Indexed"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}
