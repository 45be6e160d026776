package commands

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a preview page of every icon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.deps()
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           NewGallery(deps, c.target()).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "serving icons on http://%s/\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8723", "Listen address")

	return cmd
}

// Gallery serves the icon preview page.
type Gallery struct {
	deps   widget.Deps
	target *theme.Target
}

// NewGallery returns a gallery rendering icons with deps for target.
func NewGallery(deps widget.Deps, target *theme.Target) *Gallery {
	return &Gallery{deps: deps, target: target}
}

// Routes returns the gallery router.
func (g *Gallery) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", g.index)
	r.Get("/catalog.json", g.catalog)
	r.Get("/icons/{name}.svg", g.svg)

	return r
}

type galleryItem struct {
	Name   string
	Src    template.URL
	Inline template.HTML
	Err    string
}

var galleryTmpl = template.Must(template.New("gallery").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>icons</title>
<style>
{{.ThemeCSS}}
{{.InlineCSS}}
body { font-family: sans-serif; background: var(--color-icon-background-primary); }
.grid { display: grid; grid-template-columns: repeat(auto-fill, 9rem); gap: 1rem; }
figure { margin: 0; text-align: center; }
figure img, figure svg { width: 48px; height: 48px; }
figcaption { font-size: .75rem; }
</style>
</head>
<body class="{{.Classes}}">
<div class="grid">
{{range .Items}}<figure>
{{if .Err}}<span>{{.Err}}</span>{{else}}<img src="{{.Src}}" alt="{{.Name}}"> {{.Inline}}{{end}}
<figcaption><a href="/icons/{{.Name}}.svg">{{.Name}}</a></figcaption>
</figure>
{{end}}</div>
</body>
</html>
`))

func (g *Gallery) index(w http.ResponseWriter, _ *http.Request) {
	var items []galleryItem
	for _, name := range icon.Names() {
		item := galleryItem{Name: name.String()}
		if err := g.fill(&item); err != nil {
			item.Err = err.Error()
		}
		items = append(items, item)
	}

	data := struct {
		ThemeCSS  template.CSS
		InlineCSS template.CSS
		Classes   string
		Items     []galleryItem
	}{
		// the page styles the inline icons with the same sheet the widgets read
		ThemeCSS:  template.CSS(themeCSSFor(g.deps.Colors, g.target)),
		InlineCSS: template.CSS(theme.InlineCSS()),
		Classes:   strings.Join(g.target.Classes, " "),
		Items:     items,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := galleryTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// fill renders one icon both as an image source and as inline markup.
func (g *Gallery) fill(item *galleryItem) error {
	ext, err := widget.New(widget.Inputs{Name: item.Name}, g.deps)
	if err != nil {
		return err
	}
	if err := ext.Mount(g.target); err != nil {
		return err
	}
	src, _ := ext.Src()
	item.Src = src.TemplateURL()

	inline, err := widget.New(widget.Inputs{Name: item.Name, Inline: true}, g.deps)
	if err != nil {
		return err
	}
	item.Inline, err = inline.InlineMarkup()
	return err
}

func (g *Gallery) catalog(w http.ResponseWriter, _ *http.Request) {
	b, err := icon.CatalogJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (g *Gallery) svg(w http.ResponseWriter, r *http.Request) {
	name, err := icon.Validate(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	markup, err := g.deps.Markup.Markup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	colors := g.deps.Colors.ColorSet(g.target)
	markup = graphics.StripResidualTokens(graphics.Substitute(markup, colors))

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(markup))
}

// themeCSSFor declares the resolved colors of target on :root, so inline
// icons on the page match the image sources.
func themeCSSFor(colors widget.ColorProvider, target *theme.Target) string {
	cs := colors.ColorSet(target).Declarable()
	var b strings.Builder
	b.WriteString(":root { ")
	for _, t := range graphics.Tokens() {
		if v := cs.Get(t); v != "" {
			fmt.Fprintf(&b, "%s: %s; ", t.CustomProperty(), v)
		}
	}
	b.WriteString("}")
	return b.String()
}
