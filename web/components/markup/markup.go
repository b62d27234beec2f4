// Package markup writes HTML fragments for components built without a .templ
// source.
package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer keeps the first write error so a component body can be written
// without checking every call.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *Writer) Printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s HTML-escaped.
func (h *Writer) Text(s string) { h.Raw(templ.EscapeString(s)) }

func (h *Writer) Render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err returns the first write error.
func (h *Writer) Err() error { return h.err }

// Component adapts fn into a templ component that reports the first error
// fn ran into.
func Component(fn func(h *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &Writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
