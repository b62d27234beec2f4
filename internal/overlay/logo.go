package overlay

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed logos/*.svg
var logoFS embed.FS

// DefaultLogo is the sponsor logo used when none is chosen.
const DefaultLogo = "aptos"

// Logos lists the bundled sponsor logos.
func Logos() []string {
	entries, err := logoFS.ReadDir("logos")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// Logo rasterizes a bundled logo to a size×size image.
func Logo(name string, size int) (*image.RGBA, error) {
	if name == "" {
		name = DefaultLogo
	}
	data, err := logoFS.ReadFile(path.Join("logos", path.Base(name)+".svg"))
	if err != nil {
		return nil, fmt.Errorf("unknown logo %q", name)
	}
	return RasterizeSVG(bytes.NewReader(data), size)
}

// RasterizeSVG draws an SVG document into a size×size RGBA image.
func RasterizeSVG(r io.Reader, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid logo size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
