package graphics

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/esimov/stackblur-go"
	"github.com/fogleman/gg"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// KeyStyle describes how an icon raster is placed on a Stream Deck key.
type KeyStyle struct {
	Size         int // key resolution in pixels
	IconSize     int
	CornerRadius float64
	Background   color.Color // nil leaves the key transparent
	Shadow       bool
	ShadowRadius uint32
	ShadowOffset float64
	ShadowColor  color.Color
}

// DefaultKeyStyle returns the style used for 72x72 keypad keys.
func DefaultKeyStyle() KeyStyle {
	return KeyStyle{
		Size:         72,
		IconSize:     48,
		CornerRadius: 8,
		ShadowRadius: 3,
		ShadowOffset: 1.5,
		ShadowColor:  color.NRGBA{0, 0, 0, 0x90},
	}
}

// Render composes the icon raster onto a key-sized canvas.
func (s KeyStyle) Render(icon image.Image) (image.Image, error) {
	if s.Size <= 0 {
		return nil, zerr.With(errs.ErrRasterize, "size", s.Size)
	}
	iconSize := s.IconSize
	if iconSize <= 0 || iconSize > s.Size {
		iconSize = s.Size
	}

	c := gg.NewContext(s.Size, s.Size)
	w := float64(s.Size)
	h := float64(s.Size)

	if s.Background != nil {
		c.DrawRoundedRectangle(0, 0, w, h, s.CornerRadius)
		c.SetColor(s.Background)
		c.Fill()
	}

	fitted := imaging.Fit(icon, iconSize, iconSize, imaging.Lanczos)

	if s.Shadow {
		shadow, err := silhouetteBlur(fitted, s.ShadowColor, s.ShadowRadius)
		if err != nil {
			return nil, zerr.Wrap(err, errs.ErrRasterize.Error())
		}
		c.DrawImageAnchored(shadow, int(w/2+s.ShadowOffset), int(h/2+s.ShadowOffset), 0.5, 0.5)
	}
	c.DrawImageAnchored(fitted, int(w/2), int(h/2), 0.5, 0.5)

	return c.Image(), nil
}

// silhouetteBlur paints the alpha mask of img in col and blurs it.
func silhouetteBlur(img image.Image, col color.Color, radius uint32) (image.Image, error) {
	if col == nil {
		col = color.Black
	}
	b := img.Bounds()
	sil := image.NewNRGBA(b)
	draw.DrawMask(sil, b, image.NewUniform(col), image.Point{}, img, b.Min, draw.Over)
	if radius == 0 {
		return sil, nil
	}
	return stackblur.Process(sil, radius)
}

// KeyImage renders markup with colors and composes it onto a key. The key
// background is taken from the BackgroundPrimary color when the style does
// not set one and the color parses.
func KeyImage(markup string, colors ColorSet, style KeyStyle) (image.Image, error) {
	return composeKey(Substitute(markup, colors), colors.BackgroundPrimary, style)
}

// SourceKeyImage composes a key from an image source published by DataURI,
// so the key shows exactly the colors that were rendered. background fills
// the key like BackgroundPrimary does for KeyImage.
func SourceKeyImage(src, background string, style KeyStyle) (image.Image, error) {
	markup, err := DecodeDataURI(src)
	if err != nil {
		return nil, err
	}
	return composeKey(markup, background, style)
}

func composeKey(markup, background string, style KeyStyle) (image.Image, error) {
	iconSize := style.IconSize
	if iconSize <= 0 {
		iconSize = style.Size
	}
	raster, err := Rasterize(markup, iconSize)
	if err != nil {
		return nil, err
	}
	if style.Background == nil && background != "" {
		if bg, err := ParseColor(background); err == nil {
			style.Background = bg
		}
	}
	return style.Render(raster)
}
