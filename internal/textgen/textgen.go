// Package textgen asks a chat-completions model for meme captions.
//
// The model always answers with the same shape, a top caption, a bottom
// caption and a list of extra captions, and every caption is cut to the
// template's character limit before it leaves this package. Distributing the
// captions over slots is the compositor's job.
package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
)

// Generator produces captions for a template.
type Generator interface {
	Generate(ctx context.Context, req Request) (compositor.Captions, error)
}

// Request is everything the model sees about one generation.
type Request struct {
	TemplateName    string
	TemplateContext string
	SourceText      string
	Examples        []string
	MaxCharacters   int
}

// RequestFor builds a request from a catalog template and the user's source
// text (a news excerpt or a free-form prompt).
func RequestFor(t *catalog.Template, source string) Request {
	return Request{
		TemplateName:    t.Name,
		TemplateContext: describe(t.Phrases),
		SourceText:      strings.TrimSpace(source),
		Examples:        t.Examples,
		MaxCharacters:   t.CaptionLimit(),
	}
}

func (r Request) limit() int {
	if r.MaxCharacters > 0 {
		return r.MaxCharacters
	}
	return catalog.DefaultMaxCharacters
}

func describe(p catalog.Phrases) string {
	var b strings.Builder
	b.WriteString("meme template")
	if p.Description != "" {
		fmt.Fprintf(&b, " (%s)", p.Description)
	}
	if len(p.Characters) > 0 {
		b.WriteString(". Characters:")
		for _, c := range p.Characters {
			fmt.Fprintf(&b, " %s: %s;", c.Name, c.Description)
		}
	}
	return b.String()
}

const systemPromptFormat = `You are an expert fun meme creator.
Your task is to create funny and witty text for a meme based on a news headline or article.
The meme will use the "%s" %s.

You should generate:
1. A top text (caption that appears at the top of the meme)
2. A bottom text (caption that appears at the bottom of the meme)
3. Two additional text pieces that could be used in more complex meme templates

Guidelines:
- Be clever, witty, and humorous
- CRITICAL: ALL text must be MAXIMUM %d CHARACTERS for each phrase. This is a hard limit.
- Make every character count with abbreviations if needed
- Avoid offensive, inappropriate, or political content
- Reference internet culture, tech trends, and meme formats when relevant
- The text should clearly relate to the news content provided
- Don't use emojis or special characters
%s
Format your response as a JSON object with these exact keys: topText, bottomText, additionalTexts (an array of 2 strings).
Do not include any explanation or additional content outside the JSON object.

REMINDER: Each text string MUST BE %d CHARACTERS OR LESS. Longer responses will be rejected.`

// SystemPrompt renders the instructions sent ahead of the user's text.
func SystemPrompt(r Request) string {
	var examples string
	if len(r.Examples) > 0 {
		var b strings.Builder
		b.WriteString("\nExamples of captions in the right style:\n")
		for _, ex := range r.Examples {
			fmt.Fprintf(&b, "- %s\n", ex)
		}
		examples = b.String()
	}
	return fmt.Sprintf(systemPromptFormat, r.TemplateName, r.TemplateContext, r.limit(), examples, r.limit())
}

// UserPrompt renders the user message.
func UserPrompt(r Request) string {
	if r.SourceText == "" {
		return "Create a meme about something trending in tech this week."
	}
	return fmt.Sprintf("Create a meme based on this news: %q", r.SourceText)
}

// Truncate cuts every caption to at most limit runes.
func Truncate(c compositor.Captions, limit int) compositor.Captions {
	out := compositor.Captions{
		Top:        truncate(c.Top, limit),
		Bottom:     truncate(c.Bottom, limit),
		Additional: make([]string, len(c.Additional)),
	}
	for i, s := range c.Additional {
		out.Additional[i] = truncate(s, limit)
	}
	return out
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
