package pages

import (
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/memezzz/web/components/markup"
)

// SponsoredPage shows the decoded sponsor link, or errMsg when the link
// could not be decoded.
func SponsoredPage(target, errMsg string) templ.Component {
	return Layout("Sponsored link - Memezzz", markup.Component(func(h *markup.Writer) {
		h.Raw(`<section class="mx-auto max-w-lg py-16 text-center">`)
		if errMsg != "" {
			h.Raw(`<h1 class="text-2xl font-bold">Something went wrong</h1>`)
			h.Printf(`<p class="mt-3 text-red-400" role="alert">%s</p>`, templ.EscapeString(errMsg))
			h.Raw(`<a href="/" class="mt-6 inline-block underline">Back to memezzz</a>`)
		} else {
			h.Raw(`<h1 class="text-2xl font-bold">You are leaving memezzz</h1>`)
			h.Raw(`<p class="mt-3 text-gray-400">This meme was sponsored. Continue to:</p>`)
			h.Printf(`<a href="%s" rel="noopener nofollow sponsored" class="mt-4 inline-block break-all rounded bg-orange-500 px-4 py-3 font-semibold">%s</a>`,
				templ.EscapeString(string(templ.URL(target))), templ.EscapeString(target))
		}
		h.Raw(`</section>`)
	}))
}
