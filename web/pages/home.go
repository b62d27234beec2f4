package pages

import (
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/memezzz/web/components"
	"github.com/cristianadrielbraun/memezzz/web/components/markup"
)

// HomePage lists the meme of the day, the example gallery and every
// template.
func HomePage(templates []components.TemplateCard, gallery []components.GalleryItem, featured *components.GalleryItem) templ.Component {
	return Layout("Memezzz - Meme the news", markup.Component(func(h *markup.Writer) {
		h.Raw(`<section class="py-10 text-center"><h1 class="text-5xl font-black">Meme the news.</h1>`)
		h.Raw(`<p class="mt-3 text-gray-400">Pick a template, paste a headline and let the captions write themselves.</p>`)
		h.Raw(`<a href="/meme-creator" class="mt-6 inline-block rounded bg-orange-500 px-5 py-3 font-semibold">Start creating</a></section>`)

		if featured != nil {
			h.Raw(`<section class="mb-10"><h2 class="mb-3 text-xl font-bold">Meme of the day</h2>`)
			h.Printf(`<a href="/meme-creator?template=%s" class="block overflow-hidden rounded-lg border border-gray-800">`,
				templ.EscapeString(featured.TemplateID))
			h.Printf(`<img src="%s" alt="%s" class="w-full" loading="lazy"></a>`,
				templ.EscapeString(featured.ImageURL), templ.EscapeString(featured.Title))
			h.Printf(`<p class="mt-2 text-gray-400">%s</p></section>`, templ.EscapeString(featured.Title))
		}

		if len(gallery) > 0 {
			h.Raw(`<section class="mb-10"><h2 class="mb-3 text-xl font-bold">Examples</h2><div class="grid grid-cols-2 gap-4 md:grid-cols-4">`)
			for _, g := range gallery {
				h.Printf(`<a href="/meme-creator?template=%s" class="block">`, templ.EscapeString(g.TemplateID))
				h.Printf(`<img src="%s" alt="%s" class="rounded" loading="lazy">`,
					templ.EscapeString(g.ImageURL), templ.EscapeString(g.Title))
				h.Printf(`<span class="mt-1 block text-sm text-gray-400">%s</span></a>`, templ.EscapeString(g.Title))
			}
			h.Raw(`</div></section>`)
		}

		h.Raw(`<section><h2 class="mb-3 text-xl font-bold">Templates</h2>`)
		h.Render(TemplateGrid(templates))
		h.Raw(`</section>`)
	}))
}

// TemplateGrid renders the template picker.
func TemplateGrid(cards []components.TemplateCard) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<div class="grid grid-cols-2 gap-3 md:grid-cols-4" data-template-grid>`)
		for _, c := range cards {
			cls := "block rounded border-2 border-transparent p-1 hover:border-gray-600"
			if c.Selected {
				cls = "block rounded border-2 border-orange-500 p-1"
			}
			h.Printf(`<a href="/meme-creator?template=%s" class="%s" data-template-id="%s">`,
				templ.EscapeString(c.ID), cls, templ.EscapeString(c.ID))
			h.Printf(`<img src="%s" alt="%s" class="aspect-square w-full rounded object-cover" loading="lazy">`,
				templ.EscapeString(c.ImageURL), templ.EscapeString(c.Name))
			h.Printf(`<span class="mt-1 block truncate text-sm">%s</span></a>`, templ.EscapeString(c.Name))
		}
		h.Raw(`</div>`)
	})
}

// NotFound is shown for unknown routes.
func NotFound() templ.Component {
	return Layout("Not found - Memezzz", markup.Component(func(h *markup.Writer) {
		h.Raw(`<section class="py-20 text-center"><h1 class="text-4xl font-black">404</h1>`)
		h.Raw(`<p class="mt-2 text-gray-400">This page does not exist. Maybe make a meme about it?</p>`)
		h.Raw(`<a href="/meme-creator" class="mt-6 inline-block rounded bg-orange-500 px-4 py-2 font-semibold">Open the editor</a></section>`)
	}))
}
