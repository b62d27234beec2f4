package compositor

// Captions is the result of text generation.
type Captions struct {
	Top        string   `json:"topText"`
	Bottom     string   `json:"bottomText"`
	Additional []string `json:"additionalTexts"`
}

// Assign distributes captions over n slots in template order. The result may
// be shorter than n; slots past its end keep whatever text they had.
func Assign(c Captions, n int) []string {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []string{c.Top + " " + c.Bottom}
	case n == 2:
		return []string{c.Top, c.Bottom}
	}
	out := []string{c.Top, c.Bottom}
	for i := 0; i < len(c.Additional) && len(out) < n; i++ {
		out = append(out, c.Additional[i])
	}
	return out
}

// ApplyCaptions writes Assign's result into the editor's slots.
func (e *Editor) ApplyCaptions(c Captions) {
	for i, text := range Assign(c, len(e.slots)) {
		e.slots[i].Text = text
	}
}
