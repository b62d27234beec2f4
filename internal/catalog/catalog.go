package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

//go:embed data/templates.json
var defaultTemplates []byte

//go:embed data/examples.json
var defaultExamples []byte

// Catalog is an ordered, immutable list of templates.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// New builds a catalog. Duplicate ids keep the first occurrence.
func New(templates []Template) *Catalog {
	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for _, t := range templates {
		if _, dup := c.byID[t.ID]; dup {
			continue
		}
		for i := range t.TextAreas {
			if t.TextAreas[i].Align == "" {
				t.TextAreas[i].Align = AlignCenter
			}
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c
}

// Load parses a JSON array of templates.
func Load(r io.Reader) (*Catalog, error) {
	var templates []Template
	if err := json.NewDecoder(r).Decode(&templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("parse templates: catalog is empty")
	}
	return New(templates), nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultTemplates))
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (*Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	t := c.templates[i]
	return &t, true
}

// First returns the first template, or nil for an empty catalog.
func (c *Catalog) First() *Template {
	if len(c.templates) == 0 {
		return nil
	}
	t := c.templates[0]
	return &t
}

// All returns a copy of the templates in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

func (c *Catalog) Len() int { return len(c.templates) }

// Gallery is the list of filled examples.
type Gallery struct {
	Examples []Example
}

// LoadGallery parses a JSON array of examples.
func LoadGallery(r io.Reader) (*Gallery, error) {
	var examples []Example
	if err := json.NewDecoder(r).Decode(&examples); err != nil {
		return nil, fmt.Errorf("parse examples: %w", err)
	}
	return &Gallery{Examples: examples}, nil
}

// LoadGalleryFile reads examples from path.
func LoadGalleryFile(path string) (*Gallery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadGallery(f)
}

// DefaultGallery returns the examples bundled with the binary.
func DefaultGallery() *Gallery {
	g, err := LoadGallery(bytes.NewReader(defaultExamples))
	if err != nil {
		panic(err)
	}
	return g
}

// Get returns the example at index i.
func (g *Gallery) Get(i int) (Example, bool) {
	if i < 0 || i >= len(g.Examples) {
		return Example{}, false
	}
	return g.Examples[i], true
}

// Featured picks the meme of the day. The choice is stable for a calendar day.
func (g *Gallery) Featured(day time.Time) (Example, int, bool) {
	if len(g.Examples) == 0 {
		return Example{}, -1, false
	}
	y, m, d := day.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	i := int(days % int64(len(g.Examples)))
	return g.Examples[i], i, true
}
