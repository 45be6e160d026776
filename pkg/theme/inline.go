package theme

import (
	"strings"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
)

// InlineCSS returns the rules that let inline icon markup pick its colors
// straight from the custom properties, for hosts that embed the SVG instead
// of an image source.
func InlineCSS() string {
	var b strings.Builder
	for _, t := range graphics.Tokens() {
		b.WriteString(".")
		b.WriteString(string(t))
		b.WriteString(" { ")
		switch t {
		case graphics.TokenFillPrimary, graphics.TokenFillSecondary, graphics.TokenFillTertiary:
			b.WriteString("fill")
		case graphics.TokenStrokePrimary, graphics.TokenStrokeSecondary:
			b.WriteString("stroke")
		default:
			b.WriteString("background-color")
		}
		b.WriteString(": var(")
		b.WriteString(t.CustomProperty())
		b.WriteString("); }\n")
	}
	return b.String()
}

// Document embeds InlineCSS and the custom property values of colors into
// the root element of markup, so inline markup renders with its colors
// where no surrounding stylesheet exists (an SVG pushed to a device key).
// Markup without a root element is returned unchanged.
func Document(markup string, colors graphics.ColorSet) string {
	start := strings.Index(markup, "<svg")
	if start < 0 {
		return markup
	}
	end := strings.IndexByte(markup[start:], '>')
	if end < 0 || markup[start+end-1] == '/' {
		return markup
	}
	end += start + 1

	var b strings.Builder
	b.WriteString("<style>svg { ")
	colors = colors.Declarable()
	for _, t := range graphics.Tokens() {
		v := colors.Get(t)
		if v == "" {
			continue
		}
		b.WriteString(t.CustomProperty())
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("; ")
	}
	b.WriteString("}\n")
	b.WriteString(InlineCSS())
	b.WriteString("</style>")

	return markup[:end] + b.String() + markup[end:]
}
