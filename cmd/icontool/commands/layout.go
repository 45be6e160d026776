package commands

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.trai.ch/zerr"
)

// IconLayoutID is the dial layout whose "icon" pixmap receives icon feedback.
const IconLayoutID = "gridicon-icon"

// Layout is a Stream Deck touch strip layout.
type Layout struct {
	ID    string           `json:"id"`
	Items []map[string]any `json:"items"`
}

// IconLayout returns the built-in dial layout: a single pixmap keyed "icon"
// centered in the 200x100 segment.
func IconLayout() Layout {
	return Layout{
		ID: IconLayoutID,
		Items: []map[string]any{{
			"key":  "icon",
			"type": "pixmap",
			"rect": [4]int{50, 0, 100, 100},
		}},
	}
}

type drawioDiagram struct {
	Name string `xml:"name,attr"`
	Root struct {
		Cells []drawioCell `xml:"mxCell"`
	} `xml:"mxGraphModel>root"`
}

type drawioCell struct {
	Vertex string `xml:"vertex,attr"`
	Value  string `xml:"value,attr"`
	Geom   struct {
		X      int `xml:"x,attr"`
		Y      int `xml:"y,attr"`
		Width  int `xml:"width,attr"`
		Height int `xml:"height,attr"`
	} `xml:"mxGeometry"`
}

var markupTag = regexp.MustCompile(`<[^>]+>`)

// ParseDrawio converts each diagram of an uncompressed draw.io file into a
// layout. Every vertex holds the JSON of one item; its geometry becomes the
// item rect.
func ParseDrawio(data []byte) ([]Layout, error) {
	var mxfile struct {
		Diagrams []drawioDiagram `xml:"diagram"`
	}
	if err := xml.Unmarshal(data, &mxfile); err != nil {
		return nil, err
	}

	layouts := make([]Layout, 0, len(mxfile.Diagrams))
	for _, diagram := range mxfile.Diagrams {
		layout := Layout{ID: diagram.Name, Items: []map[string]any{}}
		for _, cell := range diagram.Root.Cells {
			if cell.Vertex != "1" {
				continue
			}
			value := html.UnescapeString(markupTag.ReplaceAllString(cell.Value, ""))

			var item map[string]any
			if err := json.Unmarshal([]byte(value), &item); err != nil {
				return nil, zerr.With(err, "diagram", diagram.Name)
			}
			item["rect"] = [4]int{cell.Geom.X, cell.Geom.Y, cell.Geom.Width, cell.Geom.Height}
			layout.Items = append(layout.Items, item)
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// WriteLayout writes l as <dir>/<id>.json.
func WriteLayout(dir string, l Layout) (string, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, l.ID+".json")
	return path, os.WriteFile(path, pretty.Pretty(b), 0o644)
}

func (c *CLI) newLayoutCmd() *cobra.Command {
	var drawio string

	cmd := &cobra.Command{
		Use:   "layout <out-dir>",
		Short: "Write dial layouts, built-in or converted from a draw.io file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir := args[0]
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			layouts := []Layout{IconLayout()}
			if drawio != "" {
				data, err := os.ReadFile(drawio)
				if err != nil {
					return err
				}
				layouts, err = ParseDrawio(data)
				if err != nil {
					return err
				}
			}

			for _, l := range layouts {
				path, err := WriteLayout(outDir, l)
				if err != nil {
					return zerr.With(err, "layout", l.ID)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&drawio, "drawio", "", "Convert the diagrams of this draw.io file instead of writing the built-in layout")

	return cmd
}
