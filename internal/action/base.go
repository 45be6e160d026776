package action

import (
	"context"
	"strings"

	"github.com/hrko/streamdeck"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

const (
	ControllerKeypad  = "Keypad"
	ControllerEncoder = "Encoder"
)

// IconLayout is the dial layout with a single "icon" pixmap. The plugin
// ships it as IconLayoutPath.
const (
	IconLayout     = "gridicon-icon"
	IconLayoutPath = "layouts/" + IconLayout + ".json"
)

// Client is the part of the Stream Deck client that actions draw with.
// *streamdeck.Client implements it.
type Client interface {
	SetImage(ctx context.Context, base64image string, target streamdeck.Target, state *int) error
	SetFeedback(ctx context.Context, payload any) error
	SetFeedbackLayout(ctx context.Context, layout string) error
	ShowAlert(ctx context.Context) error
}

var _ Client = (*streamdeck.Client)(nil)

// Env carries the collaborators every action renders icons with.
type Env struct {
	Colors    *theme.Live
	Markup    icon.Source
	Sanitizer safeurl.Sanitizer
	KeyStyle  graphics.KeyStyle
}

// WidgetDeps returns the widget collaborators backed by env.
func (e *Env) WidgetDeps() widget.Deps {
	return widget.Deps{
		Markup:    e.Markup,
		Colors:    e.Colors,
		Sanitizer: e.Sanitizer,
	}
}

// Target builds the style target of an action instance. classes is the
// space separated theme class list from the property inspector.
func Target(actionContext, classes, style string) *theme.Target {
	return &theme.Target{
		ID:      actionContext,
		Classes: strings.Fields(classes),
		Style:   style,
	}
}
