package graphics

import (
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// Rasterize draws substituted icon markup into a size x size image. Residual
// token words are stripped first since the SVG reader is a strict XML parser.
func Rasterize(markup string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, zerr.With(errs.ErrRasterize, "size", size)
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(StripResidualTokens(markup)))
	if err != nil {
		return nil, zerr.Wrap(err, errs.ErrRasterize.Error())
	}
	w, h := float64(size), float64(size)
	icon.SetTarget(0, 0, w, h)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)

	return img, nil
}
