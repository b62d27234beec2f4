package catalog

import "fmt"

// Validate reports problems with slot geometry. Problems are warnings: the
// catalog stays usable and captions outside the image are simply clipped.
func Validate(c *Catalog) []string {
	var warnings []string
	for _, t := range c.templates {
		if t.Width <= 0 || t.Height <= 0 {
			warnings = append(warnings, fmt.Sprintf("template %q has non-positive size %dx%d", t.ID, t.Width, t.Height))
			continue
		}
		seen := make(map[string]struct{}, len(t.TextAreas))
		w, h := float64(t.Width), float64(t.Height)
		for _, s := range t.TextAreas {
			if _, dup := seen[s.ID]; dup {
				warnings = append(warnings, fmt.Sprintf("template %q repeats slot id %q", t.ID, s.ID))
			}
			seen[s.ID] = struct{}{}
			if s.Width <= 0 || s.Height <= 0 {
				warnings = append(warnings, fmt.Sprintf("template %q slot %q has non-positive box", t.ID, s.ID))
			}
			if s.X < 0 || s.X > w || s.Y < 0 || s.Y > h {
				warnings = append(warnings, fmt.Sprintf("template %q slot %q anchor (%.0f,%.0f) lies outside the image", t.ID, s.ID, s.X, s.Y))
				continue
			}
			if s.X-s.Width/2 < 0 || s.X+s.Width/2 > w || s.Y-s.Height/2 < 0 || s.Y+s.Height/2 > h {
				warnings = append(warnings, fmt.Sprintf("template %q slot %q box extends past the image", t.ID, s.ID))
			}
			switch s.Align {
			case AlignLeft, AlignCenter, AlignRight:
			default:
				warnings = append(warnings, fmt.Sprintf("template %q slot %q has unknown align %q", t.ID, s.ID, s.Align))
			}
		}
	}
	return warnings
}

// ValidateGallery reports examples that reference unknown templates.
func ValidateGallery(g *Gallery, c *Catalog) []string {
	var warnings []string
	for i, ex := range g.Examples {
		t, ok := c.Get(ex.TemplateID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("example %d references unknown template %q", i, ex.TemplateID))
			continue
		}
		if len(ex.Captions) > len(t.TextAreas) {
			warnings = append(warnings, fmt.Sprintf("example %d has %d captions for %d slots", i, len(ex.Captions), len(t.TextAreas)))
		}
	}
	return warnings
}
