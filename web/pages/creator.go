package pages

import (
	"strconv"

	"github.com/a-h/templ"
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
	"github.com/cristianadrielbraun/memezzz/web/components"
	"github.com/cristianadrielbraun/memezzz/web/components/markup"
)

func pct(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) + "%" }

func when(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

// PreviewBoxes renders the caption boxes and the overlay placeholder of a
// layout. The editor script re-renders the same markup on every move.
func PreviewBoxes(l compositor.Layout) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<div id="preview-boxes" class="pointer-events-none absolute inset-0">`)
		for _, b := range l.Boxes {
			cls := twmerge.Merge(
				"pointer-events-auto absolute flex cursor-move items-center p-1 font-black uppercase leading-tight text-white",
				"text-"+b.Align,
				when(b.Dragging, "opacity-80 ring-2 ring-orange-400"),
			)
			h.Printf(`<div class="%s" data-slot="%s" style="left:%s;top:%s;width:%s;min-height:%s;justify-content:%s;text-shadow:%s;font-family:%s">`,
				cls, templ.EscapeString(b.ID),
				pct(b.LeftPct), pct(b.TopPct), pct(b.WidthPct), pct(b.MinHeightPct),
				b.Justify, compositor.TextShadow, templ.EscapeString(compositor.DisplayFont))
			h.Printf(`<span class="w-full break-words">%s</span></div>`, templ.EscapeString(b.Text))
		}
		if l.QR != nil {
			h.Printf(`<div class="pointer-events-auto absolute cursor-move%s" data-qr style="left:%s;top:%s;width:%s;height:%s">`,
				when(l.QR.Dragging, " ring-2 ring-orange-400"),
				pct(l.QR.LeftPct), pct(l.QR.TopPct), pct(l.QR.WidthPct), pct(l.QR.HeightPct))
			h.Raw(`<img data-qr-image alt="QR code" class="h-full w-full" draggable="false"></div>`)
		}
		h.Raw(`</div>`)
	})
}

// CreatorPage is the meme editor.
func CreatorPage(v components.CreatorView) templ.Component {
	title := "Meme creator - Memezzz"
	if v.Template != nil {
		title = v.Template.Name + " - Memezzz"
	}
	return Layout(title, markup.Component(func(h *markup.Writer) {
		h.Raw(`<div class="grid gap-6 lg:grid-cols-[2fr_1fr]">`)

		h.Raw(`<section>`)
		if v.Template == nil {
			h.Raw(`<p class="rounded border border-gray-800 p-6 text-gray-400">Pick a template to start.</p>`)
		} else {
			tpl := v.Template
			h.Printf(`<div id="meme-stage" class="relative w-full touch-none select-none overflow-hidden rounded" style="aspect-ratio:%d / %d" data-width="%d" data-height="%d">`,
				tpl.Width, tpl.Height, tpl.Width, tpl.Height)
			h.Printf(`<img src="%s" alt="%s" class="absolute inset-0 h-full w-full object-cover" draggable="false">`,
				templ.EscapeString(v.ImageURL), templ.EscapeString(tpl.Name))
			h.Render(PreviewBoxes(v.Layout))
			h.Raw(`</div>`)
			h.Render(templ.JSONScript("editor-template", tpl))
			h.Render(templ.JSONScript("editor-state", v.State))
		}
		h.Raw(`<div class="mt-4"><h2 class="mb-2 font-bold">Templates</h2>`)
		h.Render(TemplateGrid(v.Templates))
		h.Raw(`<label class="mt-3 block text-sm text-gray-400">Or upload your own image `)
		h.Raw(`<input type="file" accept="image/png,image/jpeg,image/gif,image/webp" data-upload-input class="mt-1 block"></label>`)
		h.Raw(`</div></section>`)

		h.Raw(`<aside class="flex flex-col gap-4">`)
		if v.Template != nil {
			h.Render(captionInputs(v))
			h.Render(generatePanel())
			h.Render(qrPanel(v))
			h.Raw(`<div class="flex gap-2">`)
			h.Raw(`<button type="button" data-reset-positions class="flex-1 rounded border border-gray-700 px-3 py-2">Reset positions</button>`)
			h.Raw(`<button type="button" data-export class="flex-1 rounded bg-orange-500 px-3 py-2 font-semibold">Download PNG</button>`)
			h.Raw(`</div>`)
		}
		h.Raw(`</aside></div>`)
		h.Raw(`<script src="/web/static/js/wasm_exec.js" defer></script>`)
		h.Raw(`<script src="/web/static/js/editor.js" defer></script>`)
	}))
}

func captionInputs(v components.CreatorView) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<div class="flex flex-col gap-2"><h2 class="font-bold">Captions</h2>`)
		for i, s := range v.State.Slots {
			h.Printf(`<input type="text" value="%s" placeholder="Text %d" data-slot-input="%s" class="rounded bg-gray-800 p-2">`,
				templ.EscapeString(s.Text), i+1, templ.EscapeString(s.ID))
		}
		h.Raw(`</div>`)
	})
}

func generatePanel() templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<div class="flex flex-col gap-2 rounded border border-gray-800 p-3"><h2 class="font-bold">Generate captions</h2>`)
		h.Raw(`<div class="flex gap-2"><input type="url" placeholder="News article URL" data-news-url class="flex-1 rounded bg-gray-800 p-2">`)
		h.Raw(`<button type="button" data-news-fetch class="rounded border border-gray-700 px-3">Fetch</button></div>`)
		h.Raw(`<textarea rows="4" placeholder="Paste a headline or article" data-news-text class="rounded bg-gray-800 p-2"></textarea>`)
		h.Raw(`<button type="button" data-generate class="rounded bg-gray-100 px-3 py-2 font-semibold text-gray-900">Generate</button></div>`)
	})
}

func qrPanel(v components.CreatorView) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<div class="flex flex-col gap-2 rounded border border-gray-800 p-3">`)
		h.Raw(`<label class="flex items-center gap-2 font-bold"><input type="checkbox" data-qr-enabled`)
		if v.State.QR.Enabled {
			h.Raw(` checked`)
		}
		h.Raw(`> Add QR code</label>`)
		h.Printf(`<select data-qr-kind class="rounded bg-gray-800 p-2"><option value="%s">Sponsor link</option><option value="%s">Tip address</option></select>`,
			overlay.KindSponsor, overlay.KindTip)
		h.Raw(`<input type="text" placeholder="https://example.com or 0x…" data-qr-target class="rounded bg-gray-800 p-2">`)
		h.Raw(`<p class="hidden text-sm text-red-400" data-qr-error></p>`)
		h.Raw(`<select data-qr-style class="rounded bg-gray-800 p-2">`)
		for _, s := range v.Styles {
			sel := ""
			if s.ID == overlay.DefaultStyleID {
				sel = " selected"
			}
			h.Printf(`<option value="%s"%s>%s</option>`, templ.EscapeString(s.ID), sel, templ.EscapeString(s.Name))
		}
		h.Raw(`</select><select data-qr-logo class="rounded bg-gray-800 p-2">`)
		for _, l := range v.Logos {
			h.Printf(`<option value="%s">%s</option>`, templ.EscapeString(l), templ.EscapeString(l))
		}
		h.Raw(`</select></div>`)
	})
}
