// Package toast renders transient notifications swapped in by htmx.
package toast

import (
	"strconv"

	"github.com/a-h/templ"
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/cristianadrielbraun/memezzz/web/components/markup"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds; 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var positionClass = map[Position]string{
	PositionTopRight:     "top-4 right-4",
	PositionTopLeft:      "top-4 left-4",
	PositionTopCenter:    "top-4 left-1/2 -translate-x-1/2",
	PositionBottomRight:  "bottom-4 right-4",
	PositionBottomLeft:   "bottom-4 left-4",
	PositionBottomCenter: "bottom-4 left-1/2 -translate-x-1/2",
}

var variantClass = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-500 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-500 bg-blue-50 text-blue-900",
}

var icons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "✕",
	VariantWarning: "!",
	VariantInfo:    "i",
}

// Classes returns the merged class list for p.
func Classes(p Props) string {
	pos, ok := positionClass[p.Position]
	if !ok {
		pos = positionClass[PositionBottomRight]
	}
	v, ok := variantClass[p.Variant]
	if !ok {
		v = variantClass[VariantDefault]
	}
	return twmerge.Merge(
		"fixed z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg",
		pos, v, p.Class,
	)
}

// Toast renders one notification. Duration is handed to the client script,
// which removes the element when it elapses.
func Toast(p Props) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		id := p.ID
		if id == "" {
			id = "toast"
		}
		h.Printf(`<div id="%s" class="%s" role="status" data-toast data-duration="%s">`,
			templ.EscapeString(id), templ.EscapeString(Classes(p)), strconv.Itoa(p.Duration))
		if icon, ok := icons[p.Variant]; ok && p.Icon {
			h.Printf(`<span class="font-bold" aria-hidden="true">%s</span>`, icon)
		}
		h.Raw(`<div class="flex-1">`)
		if p.Title != "" {
			h.Printf(`<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title))
		}
		if p.Description != "" {
			h.Printf(`<p class="text-sm opacity-90">%s</p>`, templ.EscapeString(p.Description))
		}
		h.Raw(`</div>`)
		if p.Dismissible {
			h.Raw(`<button type="button" class="opacity-60 hover:opacity-100" aria-label="Close" data-toast-dismiss>&times;</button>`)
		}
		if p.ShowIndicator && p.Duration > 0 {
			h.Printf(`<div class="absolute bottom-0 left-0 h-1 bg-current opacity-30" style="animation: toast-progress %dms linear forwards"></div>`, p.Duration)
		}
		h.Raw(`</div>`)
	})
}
