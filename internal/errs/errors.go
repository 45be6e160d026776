// Package errs holds the sentinel errors shared by the icon packages.
package errs

import "go.trai.ch/zerr"

var (
	// ErrEmptyIconName is returned when a widget is configured without an icon name.
	ErrEmptyIconName = zerr.New("no valid icon name specified")

	// ErrUnknownIconName is returned when an icon name is not part of the catalog.
	ErrUnknownIconName = zerr.New("unknown icon name")

	// ErrMissingMarkup is returned when a markup source has no graphic for an icon.
	ErrMissingMarkup = zerr.New("icon markup not found")

	// ErrUntrustedSource is returned when the sanitizer refuses a generated image source.
	ErrUntrustedSource = zerr.New("image source rejected by sanitizer")

	// ErrNotDataURI is returned when an image source is not an SVG data URI.
	ErrNotDataURI = zerr.New("not an svg data uri")

	// ErrThemeRead is returned when a theme stylesheet cannot be read.
	ErrThemeRead = zerr.New("failed to read theme stylesheet")

	// ErrThemeParse is returned when a theme stylesheet cannot be parsed.
	ErrThemeParse = zerr.New("failed to parse theme stylesheet")

	// ErrRasterize is returned when icon markup cannot be drawn into an image.
	ErrRasterize = zerr.New("failed to rasterize icon")

	// ErrConfig is returned when the environment configuration is invalid.
	ErrConfig = zerr.New("invalid configuration")
)
