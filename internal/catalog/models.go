// Package catalog holds the read-only set of image templates and the
// filled examples shown in the gallery.
package catalog

// Align is the horizontal alignment of a text slot.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Layout defaults used when a template does not override them.
const (
	DefaultFontScale     = 0.06
	DefaultWrapThreshold = 20
	DefaultMinFontSize   = 20.0
	DefaultMaxCharacters = 20
)

// TextSlot is a rectangular caption region. X and Y are the anchor (the
// centre of the box) in template pixels.
type TextSlot struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Align       Align   `json:"align"`
	DefaultText string  `json:"defaultText"`
}

// Character describes one participant of a template, for text generation.
type Character struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Phrases is the prose context handed to the text generator.
type Phrases struct {
	Description string      `json:"description"`
	Characters  []Character `json:"characters"`
}

// LayoutHints tunes caption layout for a single template.
type LayoutHints struct {
	FontScale     float64 `json:"fontScale,omitempty"`
	WrapThreshold int     `json:"wrapThreshold,omitempty"`
	MinFontSize   float64 `json:"minFontSize,omitempty"`
}

// Template is a base image plus its ordered text slots.
type Template struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Path          string      `json:"path"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Phrases       Phrases     `json:"phrases"`
	TextAreas     []TextSlot  `json:"textAreas"`
	Examples      []string    `json:"examples"`
	MaxCharacters int         `json:"maxCharacters"`
	Layout        LayoutHints `json:"layout,omitempty"`
}

// Slot returns the slot with the given id.
func (t *Template) Slot(id string) (TextSlot, bool) {
	for _, s := range t.TextAreas {
		if s.ID == id {
			return s, true
		}
	}
	return TextSlot{}, false
}

// FontScale returns the font size as a fraction of template width.
func (t *Template) FontScale() float64 {
	if t.Layout.FontScale > 0 {
		return t.Layout.FontScale
	}
	return DefaultFontScale
}

// WrapThreshold returns the caption length above which wrapping starts.
func (t *Template) WrapThreshold() int {
	if t.Layout.WrapThreshold > 0 {
		return t.Layout.WrapThreshold
	}
	return DefaultWrapThreshold
}

// MinFontSize returns the smallest font size captions shrink to.
func (t *Template) MinFontSize() float64 {
	if t.Layout.MinFontSize > 0 {
		return t.Layout.MinFontSize
	}
	return DefaultMinFontSize
}

// CaptionLimit returns the per-caption character limit for generation.
func (t *Template) CaptionLimit() int {
	if t.MaxCharacters > 0 {
		return t.MaxCharacters
	}
	return DefaultMaxCharacters
}

// Example is a template with captions filled in, used by the gallery.
type Example struct {
	TemplateID string   `json:"templateId"`
	Title      string   `json:"title"`
	Captions   []string `json:"captions"`
}
