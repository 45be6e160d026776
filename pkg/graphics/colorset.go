package graphics

import (
	"fmt"
	"html"
	"image/color"
	"regexp"

	"github.com/go-playground/colors"
)

// Token is a semantic color class name. Icon markup marks the elements that
// take a theme color with one or more of these classes.
type Token string

const (
	TokenFillPrimary       Token = "color-icon-fill-primary"
	TokenFillSecondary     Token = "color-icon-fill-secondary"
	TokenFillTertiary      Token = "color-icon-fill-tertiary"
	TokenStrokePrimary     Token = "color-icon-stroke-primary"
	TokenStrokeSecondary   Token = "color-icon-stroke-secondary"
	TokenBackgroundPrimary Token = "color-icon-background-primary"
)

// tokens is the substitution order. Do not reorder.
var tokens = [...]Token{
	TokenFillPrimary,
	TokenFillSecondary,
	TokenFillTertiary,
	TokenStrokePrimary,
	TokenStrokeSecondary,
	TokenBackgroundPrimary,
}

// Tokens returns the six semantic tokens in substitution order.
func Tokens() []Token {
	return tokens[:]
}

// IsToken reports whether s is one of the six semantic tokens.
func IsToken(s string) bool {
	for _, t := range tokens {
		if string(t) == s {
			return true
		}
	}
	return false
}

// CustomProperty returns the CSS custom property carrying the token's color,
// e.g. "--color-icon-fill-primary".
func (t Token) CustomProperty() string {
	return "--" + string(t)
}

// attribute renders the presentation attribute that replaces the token.
func (t Token) attribute(value string) string {
	value = html.EscapeString(value)
	switch t {
	case TokenFillPrimary, TokenFillSecondary, TokenFillTertiary:
		return `fill="` + value + `"`
	case TokenStrokePrimary, TokenStrokeSecondary:
		return `stroke="` + value + `"`
	default:
		return `style="background-color:` + value + `"`
	}
}

// ColorSet holds the six theme colors in effect for one render pass. Values
// are arbitrary CSS color strings; they are copied into the markup as escaped
// attribute values.
type ColorSet struct {
	FillPrimary       string `json:"fillPrimary,omitempty"`
	FillSecondary     string `json:"fillSecondary,omitempty"`
	FillTertiary      string `json:"fillTertiary,omitempty"`
	StrokePrimary     string `json:"strokePrimary,omitempty"`
	StrokeSecondary   string `json:"strokeSecondary,omitempty"`
	BackgroundPrimary string `json:"backgroundPrimary,omitempty"`
}

// DefaultColorSet returns the built-in colors used before a style
// environment has been read.
func DefaultColorSet() ColorSet {
	return ColorSet{
		FillPrimary:       "#2671cb",
		FillSecondary:     "#fff",
		FillTertiary:      "#002d61",
		StrokePrimary:     "#2671cb",
		StrokeSecondary:   "#fff",
		BackgroundPrimary: "#e8f0f9",
	}
}

// Get returns the color bound to token t.
func (c ColorSet) Get(t Token) string {
	switch t {
	case TokenFillPrimary:
		return c.FillPrimary
	case TokenFillSecondary:
		return c.FillSecondary
	case TokenFillTertiary:
		return c.FillTertiary
	case TokenStrokePrimary:
		return c.StrokePrimary
	case TokenStrokeSecondary:
		return c.StrokeSecondary
	case TokenBackgroundPrimary:
		return c.BackgroundPrimary
	}
	return ""
}

// Set binds value to token t. Unknown tokens are ignored.
func (c *ColorSet) Set(t Token, value string) {
	switch t {
	case TokenFillPrimary:
		c.FillPrimary = value
	case TokenFillSecondary:
		c.FillSecondary = value
	case TokenFillTertiary:
		c.FillTertiary = value
	case TokenStrokePrimary:
		c.StrokePrimary = value
	case TokenStrokeSecondary:
		c.StrokeSecondary = value
	case TokenBackgroundPrimary:
		c.BackgroundPrimary = value
	}
}

// Merge returns c with every non-empty color of other applied on top.
func (c ColorSet) Merge(other ColorSet) ColorSet {
	for _, t := range tokens {
		if v := other.Get(t); v != "" {
			c.Set(t, v)
		}
	}
	return c
}

// Validate reports the tokens whose color cannot be parsed as hex, rgb() or
// rgba(). Named colors are legal CSS and also show up here, so callers treat
// the result as advisory.
func (c ColorSet) Validate() map[Token]error {
	var bad map[Token]error
	for _, t := range tokens {
		v := c.Get(t)
		if v == "" {
			continue
		}
		if _, err := colors.Parse(v); err != nil {
			if bad == nil {
				bad = make(map[Token]error)
			}
			bad[t] = err
		}
	}
	return bad
}

var colorKeyword = regexp.MustCompile(`^[A-Za-z]+$`)

// Declarable returns c without the values that are neither parseable colors
// nor plain color keywords, so every remaining value can be written into a CSS
// declaration as is.
func (c ColorSet) Declarable() ColorSet {
	for t := range c.Validate() {
		if !colorKeyword.MatchString(c.Get(t)) {
			c.Set(t, "")
		}
	}
	return c
}

// ParseColor converts a hex, rgb() or rgba() color string to a color.Color.
func ParseColor(s string) (color.Color, error) {
	c, err := colors.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", s, err)
	}
	rgba := c.ToRGBA()
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: uint8(rgba.A*255 + 0.5)}, nil
}
