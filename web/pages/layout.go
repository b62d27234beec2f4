// Package pages renders the server-side HTML of every page.
package pages

import (
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/memezzz/web/components/markup"
)

const description = "Memezzz turns the news into memes. Pick a template, write or generate captions, drag them into place and download the result."

// Layout wraps body in the document shell shared by every page.
func Layout(title string, body templ.Component) templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Printf(`<title>%s</title>`, templ.EscapeString(title))
		h.Printf(`<meta name="description" content="%s">`, templ.EscapeString(description))
		h.Raw(`<link rel="stylesheet" href="/web/static/css/output.css">`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.Raw(`<script src="/web/static/js/app.js" defer></script>`)
		h.Raw(`</head><body class="min-h-screen bg-gray-950 text-gray-100">`)
		h.Raw(`<header class="border-b border-gray-800"><nav class="mx-auto flex max-w-6xl items-center justify-between p-4">`)
		h.Raw(`<a href="/" class="text-2xl font-black tracking-tight">memezzz</a>`)
		h.Raw(`<div class="flex gap-4 text-sm"><a href="/meme-creator" class="hover:underline">Create a meme</a>`)
		h.Raw(`<button type="button" class="hover:underline" data-feedback-open>Feedback</button></div>`)
		h.Raw(`</nav></header><main class="mx-auto max-w-6xl p-4">`)
		h.Render(body)
		h.Raw(`</main>`)
		h.Render(feedbackDialog())
		h.Raw(`<div id="toasts"></div></body></html>`)
	})
}

func feedbackDialog() templ.Component {
	return markup.Component(func(h *markup.Writer) {
		h.Raw(`<dialog id="feedback" class="w-full max-w-md rounded-lg bg-gray-900 p-6 text-gray-100">`)
		h.Raw(`<form data-feedback-form class="flex flex-col gap-3">`)
		h.Raw(`<h2 class="text-lg font-bold">Send feedback</h2>`)
		h.Raw(`<input type="email" name="email" placeholder="Email (optional)" class="rounded bg-gray-800 p-2">`)
		h.Raw(`<textarea name="feedback" required maxlength="2000" rows="5" placeholder="What should we improve?" class="rounded bg-gray-800 p-2"></textarea>`)
		h.Raw(`<div class="flex justify-end gap-2"><button type="button" data-feedback-close class="px-3 py-2">Cancel</button>`)
		h.Raw(`<button type="submit" class="rounded bg-orange-500 px-3 py-2 font-semibold">Send</button></div>`)
		h.Raw(`</form></dialog>`)
	})
}
