package components

import (
	"strings"

	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
)

// TemplateCard is one entry of the template picker.
type TemplateCard struct {
	ID       string
	Name     string
	ImageURL string
	Selected bool
}

// GalleryItem is a filled example shown on the home page.
type GalleryItem struct {
	Index      int
	Title      string
	TemplateID string
	ImageURL   string
}

// CreatorView is everything the editor page needs on first render.
type CreatorView struct {
	Template  *catalog.Template
	ImageURL  string
	Templates []TemplateCard
	Layout    compositor.Layout
	State     compositor.State
	Styles    []overlay.Style
	Logos     []string
	BaseURL   string
}

// StaticTemplates is where template images are served from.
const StaticTemplates = "/web/static/meme-templates/"

// TemplateImageURL resolves a template path to a URL the browser can load.
// Absolute URLs and rooted paths are used as they are.
func TemplateImageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "/") {
		return path
	}
	return StaticTemplates + path
}
