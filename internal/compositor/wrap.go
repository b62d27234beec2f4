package compositor

import (
	"strings"
	"unicode/utf8"
)

// avgCharWidth is the average glyph advance of a bold caption face, in ems.
const avgCharWidth = 0.6

// DefaultNoBreak lists words that are never hard-split even when they are
// longer than a line.
var DefaultNoBreak = []string{
	"PRODUCTION",
	"KUBERNETES",
	"JAVASCRIPT",
	"TYPESCRIPT",
	"BLOCKCHAIN",
	"DOCUMENTATION",
	"MICROSERVICES",
	"REFACTORING",
	"DEPLOYMENT",
	"UNFORTUNATELY",
}

// WrapOptions controls Wrap.
type WrapOptions struct {
	// Threshold is the length (in characters) at or below which a caption
	// stays on one line.
	Threshold int
	// CharsPerLine is the estimated line capacity.
	CharsPerLine int
	// NoBreak words are kept whole. Matching ignores case.
	NoBreak []string
}

// CharsPerLine estimates how many characters of a face of size px fit in
// width px.
func CharsPerLine(width, size float64) int {
	if size <= 0 {
		return 1
	}
	n := int(width / (size * avgCharWidth))
	if n < 1 {
		return 1
	}
	return n
}

// Wrap breaks text into lines greedily. Words longer than a line are split
// into line-sized pieces unless they are in the no-break list.
func Wrap(text string, opt WrapOptions) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= opt.Threshold {
		return []string{text}
	}
	cpl := opt.CharsPerLine
	if cpl < 1 {
		cpl = 1
	}

	var lines []string
	var line string
	lineLen := 0
	push := func(w string) {
		n := utf8.RuneCountInString(w)
		switch {
		case lineLen == 0:
			line, lineLen = w, n
		case lineLen+1+n <= cpl:
			line += " " + w
			lineLen += 1 + n
		default:
			lines = append(lines, line)
			line, lineLen = w, n
		}
	}
	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) <= cpl || noBreak(w, opt.NoBreak) {
			push(w)
			continue
		}
		for _, piece := range chunk(w, cpl) {
			push(piece)
		}
	}
	if lineLen > 0 {
		lines = append(lines, line)
	}
	return lines
}

func noBreak(word string, list []string) bool {
	w := strings.Trim(word, ".,!?;:\"'")
	for _, nb := range list {
		if strings.EqualFold(w, nb) {
			return true
		}
	}
	return false
}

func chunk(s string, n int) []string {
	r := []rune(s)
	var out []string
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	return append(out, string(r))
}
