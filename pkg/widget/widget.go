// Package widget implements the icon component: it turns an icon name and
// the colors of its render target into an image source.
//
// A host drives an Icon through three calls that stand in for a UI
// framework's lifecycle: New (initialization, validates the name), Mount
// (the target surface became available) and SetInputs (inputs changed).
// Update can be called at any time to recompute the output, e.g. after the
// style environment changed.
package widget

import (
	"html/template"

	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
)

//go:generate mockgen -source=widget.go -destination=mocks/mock_widget.go -package=mocks

// ColorProvider reads the current icon colors of a render target.
type ColorProvider interface {
	ColorSet(target *theme.Target) graphics.ColorSet
}

// ColorProviderFunc adapts a function to ColorProvider.
type ColorProviderFunc func(target *theme.Target) graphics.ColorSet

// ColorSet calls f(target).
func (f ColorProviderFunc) ColorSet(target *theme.Target) graphics.ColorSet {
	return f(target)
}

// Inputs are the host controlled properties of an icon.
type Inputs struct {
	Name string
	// Inline leaves coloring to the host's CSS: no image source is produced.
	Inline bool
	// NoColor publishes the markup without substituting colors.
	NoColor bool
}

// Deps are the collaborators of an icon. Zero fields are replaced by
// defaults: embedded markup, the built-in theme, the bluemonday policy and
// graphics.Substitute.
type Deps struct {
	Markup     icon.Source
	Colors     ColorProvider
	Sanitizer  safeurl.Sanitizer
	Substitute func(markup string, colors graphics.ColorSet) string
}

func (d Deps) withDefaults() Deps {
	if d.Markup == nil {
		d.Markup = icon.Embedded()
	}
	if d.Colors == nil {
		d.Colors = theme.Default()
	}
	if d.Sanitizer == nil {
		d.Sanitizer = safeurl.NewPolicy()
	}
	if d.Substitute == nil {
		d.Substitute = graphics.Substitute
	}
	return d
}

// Icon is one icon component instance. It is not safe for concurrent use;
// the host owns it from a single goroutine.
type Icon struct {
	deps     Deps
	name     icon.Name
	in       Inputs
	target   *theme.Target
	colors   graphics.ColorSet
	src      safeurl.URL
	onRender func(safeurl.URL)
}

// New validates the inputs and returns an unmounted icon. An empty or
// unknown name is a configuration error; the icon is not created.
func New(in Inputs, deps Deps) (*Icon, error) {
	name, err := icon.Validate(in.Name)
	if err != nil {
		return nil, err
	}
	return &Icon{
		deps:   deps.withDefaults(),
		name:   name,
		in:     in,
		colors: graphics.DefaultColorSet(),
	}, nil
}

// OnRender registers fn to be called every time a new source is published.
func (c *Icon) OnRender(fn func(safeurl.URL)) {
	c.onRender = fn
}

// Mount attaches the icon to its render target and renders it.
func (c *Icon) Mount(target *theme.Target) error {
	c.target = target
	return c.Update()
}

// Unmount detaches the icon; later updates are no-ops until the next Mount.
func (c *Icon) Unmount() {
	c.target = nil
}

// SetInputs applies new inputs and re-renders when anything changed.
func (c *Icon) SetInputs(in Inputs) error {
	if in == c.in {
		return nil
	}
	name, err := icon.Validate(in.Name)
	if err != nil {
		return err
	}
	c.name = name
	c.in = in
	return c.Update()
}

// Inputs returns the current inputs.
func (c *Icon) Inputs() Inputs {
	return c.in
}

// Name returns the validated icon name.
func (c *Icon) Name() icon.Name {
	return c.name
}

// Update recomputes the image source. In inline mode there is no image
// source and nothing is substituted. Without a target Update does nothing;
// the next Mount renders.
func (c *Icon) Update() error {
	if c.in.Inline {
		c.src = safeurl.URL{}
		return nil
	}
	if c.target == nil {
		return nil
	}

	c.colors = c.deps.Colors.ColorSet(c.target)

	markup, err := c.deps.Markup.Markup(c.name)
	if err != nil {
		return err
	}
	if !c.in.NoColor {
		markup = c.deps.Substitute(markup, c.colors)
	}

	src, err := safeurl.TrustImageSource(c.deps.Sanitizer, graphics.DataURI(markup))
	if err != nil {
		return zerr.With(err, "icon", string(c.name))
	}
	c.src = src
	if c.onRender != nil {
		c.onRender(src)
	}
	return nil
}

// Src returns the last published image source. ok is false until the first
// successful render in external image mode.
func (c *Icon) Src() (src safeurl.URL, ok bool) {
	return c.src, !c.src.IsZero()
}

// Colors returns the colors used by the last render.
func (c *Icon) Colors() graphics.ColorSet {
	return c.colors
}

// Target returns the mounted target, or nil.
func (c *Icon) Target() *theme.Target {
	return c.target
}

// InlineMarkup returns the raw icon markup for hosts that embed the SVG and
// color it with theme.InlineCSS.
func (c *Icon) InlineMarkup() (template.HTML, error) {
	markup, err := c.deps.Markup.Markup(c.name)
	if err != nil {
		return "", err
	}
	// markup comes from the catalog assets, not from users
	return template.HTML(markup), nil //nolint:gosec
}

var (
	_ ColorProvider = (*theme.Sheet)(nil)
	_ ColorProvider = (*theme.Live)(nil)
)
