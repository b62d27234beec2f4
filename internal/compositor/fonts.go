package compositor

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Fonts holds a parsed caption typeface. Faces are not safe for concurrent
// use, so each render builds its own through a faceCache.
type Fonts struct {
	font *truetype.Font
}

// DefaultFonts uses the embedded Go Bold face.
func DefaultFonts() (*Fonts, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &Fonts{font: f}, nil
}

// LoadFonts parses a TrueType file, e.g. an Impact-style meme font.
func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Fonts{font: f}, nil
}

// Face returns a new face where size is in pixels.
func (f *Fonts) Face(size float64) font.Face {
	return truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

type faceCache struct {
	fonts *Fonts
	faces map[float64]font.Face
}

func newFaceCache(f *Fonts) *faceCache {
	return &faceCache{fonts: f, faces: make(map[float64]font.Face)}
}

func (c *faceCache) get(size float64) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := c.fonts.Face(size)
	c.faces[size] = face
	return face
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
