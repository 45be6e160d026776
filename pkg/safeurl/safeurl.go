// Package safeurl certifies generated URLs for use as image sources.
//
// A URL value can only be produced by a Sanitizer, so a raw string can never
// reach a host's image element by accident.
package safeurl

import (
	"html"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// URL is an image source approved by a Sanitizer. The zero value is empty.
type URL struct {
	value string
}

// String returns the approved URL.
func (u URL) String() string {
	return u.value
}

// IsZero reports whether u holds no URL.
func (u URL) IsZero() bool {
	return u.value == ""
}

// TemplateURL returns u typed for html/template, which would otherwise
// replace data URIs in src attributes with a placeholder.
func (u URL) TemplateURL() template.URL {
	return template.URL(u.value)
}

//go:generate mockgen -source=safeurl.go -destination=mocks/mock_safeurl.go -package=mocks

// Sanitizer decides whether a raw string may be used as an image source.
type Sanitizer interface {
	AllowImageSource(raw string) error
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(raw string) error

// AllowImageSource calls f(raw).
func (f SanitizerFunc) AllowImageSource(raw string) error {
	return f(raw)
}

// TrustImageSource asks s to approve raw and wraps it on success. It is the
// only way to obtain a non-empty URL.
func TrustImageSource(s Sanitizer, raw string) (URL, error) {
	if err := s.AllowImageSource(raw); err != nil {
		return URL{}, err
	}
	return URL{value: raw}, nil
}

// dataImage matches the media type and encoding of image data URIs the
// policy accepts.
var dataImage = regexp.MustCompile(`^image/(svg\+xml;utf8|svg\+xml;charset=utf-?8|png;base64|jpeg;base64|gif;base64|webp;base64),`)

// Policy is a Sanitizer backed by a bluemonday policy that only lets an
// <img> element with an image data URI, http or https source through.
type Policy struct {
	policy *bluemonday.Policy
}

// NewPolicy returns the default image source policy.
func NewPolicy() *Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src").OnElements("img")
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("https", "http")
	p.AllowURLSchemeWithCustomPolicy("data", func(u *url.URL) bool {
		if u.RawQuery != "" || u.Fragment != "" {
			return false
		}
		return dataImage.MatchString(u.Opaque)
	})
	return &Policy{policy: p}
}

// AllowImageSource runs raw through the policy as the src of an <img>
// element and approves it when the attribute survives.
func (p *Policy) AllowImageSource(raw string) error {
	if raw == "" {
		return zerr.With(errs.ErrUntrustedSource, "reason", "empty")
	}
	out := p.policy.Sanitize(`<img src="` + html.EscapeString(raw) + `">`)
	if !strings.Contains(out, "src=") {
		return zerr.With(errs.ErrUntrustedSource, "scheme", scheme(raw))
	}
	return nil
}

func scheme(raw string) string {
	if i := strings.IndexByte(raw, ':'); i > 0 {
		return raw[:i]
	}
	return ""
}
