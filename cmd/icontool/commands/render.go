package commands

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	var (
		pngPath string
		size    int
		noColor bool
		inline  bool
	)

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Print the image source of an icon, or write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := c.deps()
			if err != nil {
				return err
			}
			w, err := widget.New(widget.Inputs{Name: args[0], Inline: inline, NoColor: noColor}, deps)
			if err != nil {
				return err
			}
			if err := w.Mount(c.target()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if inline {
				markup, err := w.InlineMarkup()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, theme.Document(string(markup), deps.Colors.ColorSet(w.Target())))
				return err
			}

			if pngPath != "" {
				markup, err := deps.Markup.Markup(w.Name())
				if err != nil {
					return err
				}
				if !noColor {
					markup = graphics.Substitute(markup, w.Colors())
				}
				img, err := graphics.Rasterize(markup, size)
				if err != nil {
					return err
				}
				return imaging.Save(img, pngPath)
			}

			src, _ := w.Src()
			_, err = fmt.Fprintln(out, src.String())
			return err
		},
	}

	cmd.Flags().StringVar(&pngPath, "png", "", "Write a PNG raster to this path instead of printing the data URI")
	cmd.Flags().IntVar(&size, "size", 96, "Raster size in pixels")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Leave the markup colors untouched")
	cmd.Flags().BoolVar(&inline, "inline", false, "Print standalone inline markup styled with custom properties")

	return cmd
}
