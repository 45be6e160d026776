package graphics

import (
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// SheetEntry is one cell of a contact sheet.
type SheetEntry struct {
	Name  string
	Image image.Image
}

// ContactSheet lays out icon rasters on a grid of cell x cell pixel cells,
// columns wide, over background. Entries fill rows from the top left.
func ContactSheet(entries []SheetEntry, columns, cell int, background color.Color) image.Image {
	if columns <= 0 {
		columns = 8
	}
	rows := (len(entries) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}
	width := float64(columns * cell)
	height := float64(rows * cell)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	if background != nil {
		ctx.SetFillColor(background)
		ctx.DrawPath(0, 0, canvas.Rectangle(width, height))
	}

	for i, e := range entries {
		if e.Image == nil {
			continue
		}
		col := i % columns
		row := i / columns
		b := e.Image.Bounds()
		// canvas origin is the bottom left corner
		x := float64(col*cell) + float64(cell-b.Dx())/2
		y := height - float64((row+1)*cell) + float64(cell-b.Dy())/2
		ctx.DrawImage(x, y, e.Image, canvas.DPMM(1.0))
	}

	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
}
