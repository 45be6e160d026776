package commands

import (
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
)

func (c *CLI) newSheetCmd() *cobra.Command {
	var (
		columns int
		cell    int
	)

	cmd := &cobra.Command{
		Use:   "sheet <out.png>",
		Short: "Write a contact sheet of every catalog icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := c.sheet()
			if err != nil {
				return err
			}
			markup := c.markup()
			colors := sheet.ColorSet(c.target())

			iconSize := cell * 3 / 4
			var entries []graphics.SheetEntry
			for _, name := range icon.Names() {
				m, err := markup.Markup(name)
				if err != nil {
					return err
				}
				img, err := graphics.Rasterize(graphics.Substitute(m, colors), iconSize)
				if err != nil {
					return zerr.With(err, "icon", name.String())
				}
				entries = append(entries, graphics.SheetEntry{Name: name.String(), Image: img})
			}

			var background color.Color = color.White
			if bg, err := graphics.ParseColor(colors.BackgroundPrimary); err == nil {
				background = bg
			}

			img := graphics.ContactSheet(entries, columns, cell, background)
			if err := imaging.Save(img, args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d icons to %s\n", len(entries), args[0])
			return err
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 8, "Icons per row")
	cmd.Flags().IntVar(&cell, "cell", 64, "Cell size in pixels")

	return cmd
}
