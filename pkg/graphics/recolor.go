package graphics

import (
	"net/url"
	"regexp"
	"strings"

	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// MaxClassRewrites bounds the class attribute rewrite loop in Substitute.
// Input that still has class attributes after this many rewrites is returned
// as is from that point on.
const MaxClassRewrites = 1000

// DataURIPrefix is prepended to the encoded markup by DataURI.
const DataURIPrefix = "data:image/svg+xml;utf8,"

// classAttr matches the first class attribute, leading space included.
var classAttr = regexp.MustCompile(` class="(.*?)"`)

// Substitute rewrites icon markup so that it carries its theme colors as
// presentation attributes instead of class names.
//
// Every class attribute is replaced by the semantic tokens it lists (other
// class names are dropped), then every occurrence of a token is followed by
// the attribute holding its color: fill="..." for fill tokens, stroke="..."
// for stroke tokens and style="background-color:..." for the background
// token. The token text itself stays in place.
//
// This is a text substitution, not an SVG parser: tokens are matched as plain
// substrings anywhere in the markup.
func Substitute(markup string, colors ColorSet) string {
	out := rewriteClasses(markup)
	for _, t := range tokens {
		out = appendAttribute(out, t, colors.Get(t))
	}
	return out
}

func rewriteClasses(markup string) string {
	match := classAttr.FindStringSubmatchIndex(markup)
	for i := 0; match != nil && i < MaxClassRewrites; i++ {
		listed := strings.Split(markup[match[2]:match[3]], " ")
		kept := make([]string, 0, len(listed))
		for _, name := range listed {
			if IsToken(name) {
				kept = append(kept, name)
			}
		}
		markup = markup[:match[0]] + " " + strings.Join(kept, " ") + markup[match[1]:]
		match = classAttr.FindStringSubmatchIndex(markup)
	}
	return markup
}

func appendAttribute(markup string, t Token, value string) string {
	token := string(t)
	if !strings.Contains(markup, token) {
		return markup
	}
	return strings.ReplaceAll(markup, token, token+" "+t.attribute(value))
}

// StripResidualTokens removes the bare token words Substitute leaves behind,
// producing markup a strict XML reader accepts.
func StripResidualTokens(markup string) string {
	for _, t := range tokens {
		markup = strings.ReplaceAll(markup, " "+string(t)+" ", " ")
	}
	return markup
}

// EncodeURIComponent percent-encodes s the way ECMAScript's
// encodeURIComponent does: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is
// escaped as UTF-8 bytes.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedURIComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedURIComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// DataURI wraps already substituted markup into an SVG data URI.
func DataURI(markup string) string {
	return DataURIPrefix + EncodeURIComponent(markup)
}

// DecodeDataURI returns the markup carried by a source built with DataURI.
func DecodeDataURI(src string) (string, error) {
	payload, ok := strings.CutPrefix(src, DataURIPrefix)
	if !ok {
		return "", errs.ErrNotDataURI
	}
	markup, err := url.PathUnescape(payload)
	if err != nil {
		return "", zerr.Wrap(err, errs.ErrNotDataURI.Error())
	}
	return markup, nil
}

// Render substitutes colors into markup and encodes the result as a data URI.
func Render(markup string, colors ColorSet) string {
	return DataURI(Substitute(markup, colors))
}
