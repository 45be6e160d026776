package iconkey

import (
	"context"
	"encoding/json"
	"image"
	"log"

	"github.com/fufuok/cmap"
	"github.com/hrko/streamdeck"
	sdcontext "github.com/hrko/streamdeck/context"

	"github.com/hrko/streamdeck-gridicon/internal/action"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

const ActionUUID = "jp.hrko.streamdeck.gridicon.icon"

var (
	shownInstances *cmap.MapOf[string, instanceProperty]
	renderCh       chan *renderParams
)

type instanceProperty streamdeck.WillAppearPayload[instanceSettings]

type instanceSettings struct {
	IconName     string `json:"iconName,omitempty"`
	Inline       bool   `json:"inline,omitempty"`
	NoColor      bool   `json:"noColor,omitempty"`
	ThemeClasses string `json:"themeClasses,omitempty"`
	Style        string `json:"style,omitempty"`
	Raster       bool   `json:"raster,omitempty"`
}

func (s instanceSettings) inputs() widget.Inputs {
	return widget.Inputs{
		Name:    s.IconName,
		Inline:  s.Inline,
		NoColor: s.NoColor,
	}
}

func defaultInstanceSettings() instanceSettings {
	return instanceSettings{
		IconName: string(icon.Default),
	}
}

type renderKind int

const (
	renderMount renderKind = iota
	renderSettings
	renderRefresh
	renderRemove
)

type renderParams struct {
	targetContext string
	kind          renderKind
	settings      *instanceSettings
}

func SetupPreClientRun(client *streamdeck.Client) {
	sdAction := client.Action(ActionUUID)
	shownInstances = cmap.NewOf[string, instanceProperty]() // key: context of action instance
	renderCh = make(chan *renderParams, 32)

	sdAction.RegisterHandler(streamdeck.DidReceiveSettings, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		var p streamdeck.DidReceiveSettingsPayload[instanceSettings]
		p.Settings = defaultInstanceSettings()
		err := json.Unmarshal(event.Payload, &p)
		if err != nil {
			log.Printf("error unmarshaling payload: %v\n", err)
			return err
		}

		if shownInstances.Has(event.Context) {
			var dummy instanceProperty
			shownInstances.Upsert(event.Context, dummy, func(exist bool, valueInMap, _ instanceProperty) instanceProperty {
				valueInMap.Settings = p.Settings
				return valueInMap
			})
		}

		renderCh <- &renderParams{
			targetContext: event.Context,
			kind:          renderSettings,
			settings:      &p.Settings,
		}
		return nil
	})

	sdAction.RegisterHandler(streamdeck.WillAppear, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		var p streamdeck.WillAppearPayload[instanceSettings]
		p.Settings = defaultInstanceSettings()
		err := json.Unmarshal(event.Payload, &p)
		if err != nil {
			log.Printf("error unmarshaling payload: %v\n", err)
			return err
		}
		shownInstances.Set(event.Context, instanceProperty(p))
		renderCh <- &renderParams{
			targetContext: event.Context,
			kind:          renderMount,
			settings:      &p.Settings,
		}
		if err := client.SetSettings(ctx, p.Settings); err != nil {
			log.Printf("error setting settings: %v\n", err)
			return err
		}
		return nil
	})

	sdAction.RegisterHandler(streamdeck.WillDisappear, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		shownInstances.Remove(event.Context)
		renderCh <- &renderParams{
			targetContext: event.Context,
			kind:          renderRemove,
		}
		return nil
	})
}

// SetupPostClientRun starts the render goroutine. It owns every icon
// widget of this action; handlers only post render requests.
func SetupPostClientRun(client action.Client, env *action.Env) error {
	r := &renderer{
		client:  client,
		env:     env,
		widgets: make(map[string]*widget.Icon),
	}
	go func() {
		for renderParam := range renderCh {
			r.handle(renderParam)
		}
	}()
	return nil
}

// Refresh re-renders every shown instance, e.g. after the theme changed.
func Refresh() {
	if renderCh == nil {
		return
	}
	renderCh <- &renderParams{kind: renderRefresh}
}

type renderer struct {
	client  action.Client
	env     *action.Env
	widgets map[string]*widget.Icon
}

func (r *renderer) handle(p *renderParams) {
	switch p.kind {
	case renderRemove:
		if w, ok := r.widgets[p.targetContext]; ok {
			w.Unmount()
			delete(r.widgets, p.targetContext)
		}

	case renderMount, renderSettings:
		if p.kind == renderMount && r.controller(p.targetContext) == action.ControllerEncoder {
			r.layout(p.targetContext)
		}
		w, err := r.apply(p.targetContext, *p.settings)
		if err != nil {
			log.Printf("error rendering icon: %v\n", err)
			r.alert(p.targetContext)
			return
		}
		if err := r.push(p.targetContext, w, *p.settings); err != nil {
			log.Printf("error pushing icon: %v\n", err)
		}

	case renderRefresh:
		for actionContext, w := range r.widgets {
			prop, ok := shownInstances.Get(actionContext)
			if !ok {
				continue
			}
			if err := w.Update(); err != nil {
				log.Printf("error rendering icon: %v\n", err)
				r.alert(actionContext)
				continue
			}
			if err := r.push(actionContext, w, prop.Settings); err != nil {
				log.Printf("error pushing icon: %v\n", err)
			}
		}
	}
}

// apply creates and mounts the widget of an instance on first sight and
// hands later settings to it as new inputs.
func (r *renderer) apply(actionContext string, s instanceSettings) (*widget.Icon, error) {
	target := action.Target(actionContext, s.ThemeClasses, s.Style)

	w, ok := r.widgets[actionContext]
	if !ok {
		w, err := widget.New(s.inputs(), r.env.WidgetDeps())
		if err != nil {
			return nil, err
		}
		r.widgets[actionContext] = w
		return w, w.Mount(target)
	}

	if err := w.SetInputs(s.inputs()); err != nil {
		return nil, err
	}
	if !sameTarget(w.Target(), target) {
		if err := w.Mount(target); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func sameTarget(a, b *theme.Target) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Style != b.Style || len(a.Classes) != len(b.Classes) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	return true
}

func (r *renderer) push(actionContext string, w *widget.Icon, s instanceSettings) error {
	ctx := context.Background()
	ctx = sdcontext.WithContext(ctx, actionContext)

	img, err := r.image(w, s)
	if err != nil {
		return err
	}
	if img == "" {
		return nil
	}

	switch r.controller(actionContext) {
	case action.ControllerEncoder:
		payload := struct {
			Icon *string `json:"icon,omitempty"`
		}{Icon: &img}
		if err := r.client.SetFeedback(ctx, payload); err != nil {
			log.Printf("error setting feedback: %v\n", err)
			return err
		}
	default:
		if err := r.client.SetImage(ctx, img, streamdeck.HardwareAndSoftware, nil); err != nil {
			log.Printf("error setting image: %v\n", err)
			return err
		}
	}
	return nil
}

// image returns the key image of w in the form the instance asked for.
func (r *renderer) image(w *widget.Icon, s instanceSettings) (string, error) {
	switch {
	case s.Inline:
		markup, err := w.InlineMarkup()
		if err != nil {
			return "", err
		}
		colors := r.env.Colors.ColorSet(w.Target())
		src, err := safeurl.TrustImageSource(r.env.Sanitizer, graphics.DataURI(theme.Document(string(markup), colors)))
		if err != nil {
			return "", err
		}
		return src.String(), nil

	case s.Raster:
		markup, err := r.env.Markup.Markup(w.Name())
		if err != nil {
			return "", err
		}
		img, err := keyImage(markup, w.Colors(), s.NoColor, r.env.KeyStyle)
		if err != nil {
			return "", err
		}
		imgBase64, err := streamdeck.Image(img)
		if err != nil {
			return "", err
		}
		src, err := safeurl.TrustImageSource(r.env.Sanitizer, imgBase64)
		if err != nil {
			return "", err
		}
		return src.String(), nil

	default:
		src, ok := w.Src()
		if !ok {
			return "", nil
		}
		return src.String(), nil
	}
}

func (r *renderer) controller(actionContext string) string {
	if prop, ok := shownInstances.Get(actionContext); ok && prop.Controller != "" {
		return prop.Controller
	}
	return action.ControllerKeypad
}

// layout switches a dial to the layout whose "icon" pixmap takes the image.
func (r *renderer) layout(actionContext string) {
	ctx := context.Background()
	ctx = sdcontext.WithContext(ctx, actionContext)
	if err := r.client.SetFeedbackLayout(ctx, action.IconLayoutPath); err != nil {
		log.Printf("error setting feedback layout: %v
", err)
	}
}

func (r *renderer) alert(actionContext string) {
	ctx := context.Background()
	ctx = sdcontext.WithContext(ctx, actionContext)
	if err := r.client.ShowAlert(ctx); err != nil {
		log.Printf("error showing alert: %v\n", err)
	}
}

// keyImage composes the key raster. Uncolored markup is rasterized as is.
func keyImage(markup string, colors graphics.ColorSet, noColor bool, style graphics.KeyStyle) (image.Image, error) {
	if !noColor {
		return graphics.KeyImage(markup, colors, style)
	}
	iconSize := style.IconSize
	if iconSize <= 0 {
		iconSize = style.Size
	}
	raster, err := graphics.Rasterize(markup, iconSize)
	if err != nil {
		return nil, err
	}
	return style.Render(raster)
}
