package macro

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync/atomic"

	"github.com/fufuok/cmap"
	"github.com/go-playground/colors"
	"github.com/hrko/streamdeck"
	sdcontext "github.com/hrko/streamdeck/context"
	"github.com/onyx-and-iris/voicemeeter/v2"

	"github.com/hrko/streamdeck-gridicon/internal/action"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

const (
	ActionUUID       = "jp.hrko.streamdeck.gridicon.macro"
	ButtonTypeToggle = "toggle"
	ButtonTypePush   = "push"
)

var (
	shownInstances *cmap.MapOf[string, instanceProperty]
	renderCh       chan *renderParams
	mixer          atomic.Pointer[mixerRef]
)

type instanceProperty streamdeck.WillAppearPayload[instanceSettings]

type instanceSettings struct {
	LogicalId    string `json:"logicalId,omitempty"`
	ButtonType   string `json:"buttonType,omitempty"`
	IconOn       string `json:"iconOn,omitempty"`
	IconOff      string `json:"iconOff,omitempty"`
	BgColorOn    string `json:"bgColorOn,omitempty"`
	BgColorOff   string `json:"bgColorOff,omitempty"`
	ThemeClasses string `json:"themeClasses,omitempty"`
}

func defaultInstanceSettings() instanceSettings {
	return instanceSettings{
		LogicalId:  "0",
		ButtonType: ButtonTypePush,
		IconOn:     string(icon.TickCircle),
		IconOff:    string(icon.Cross),
		BgColorOn:  "#067ba2",
		BgColorOff: "#004162",
	}
}

// Buttons is the macro button bank of the mixer.
type Buttons interface {
	Count() int
	State(id int) bool
	SetState(id int, on bool)
}

// RemoteButtons reads and presses the macro buttons of a voicemeeter remote.
type RemoteButtons struct {
	Remote *voicemeeter.Remote
}

func (b RemoteButtons) Count() int {
	return len(b.Remote.Button)
}

func (b RemoteButtons) State(id int) bool {
	return b.Remote.Button[id].State()
}

func (b RemoteButtons) SetState(id int, on bool) {
	b.Remote.Button[id].SetState(on)
}

type mixerRef struct {
	buttons Buttons
}

// logicalId returns the button the instance is bound to. Ids outside the
// bank fall back to the first button.
func (s *instanceSettings) logicalId(buttons Buttons) (int, error) {
	logicalId, err := strconv.Atoi(s.LogicalId)
	if err != nil {
		return 0, err
	}
	if logicalId < 0 || logicalId >= buttons.Count() {
		return 0, nil
	}
	return logicalId, nil
}

// press applies a key down and returns the state the key shows afterwards.
// changed is false for button types that do not react to key down.
func press(buttons Buttons, s instanceSettings) (on, changed bool, err error) {
	id, err := s.logicalId(buttons)
	if err != nil {
		return false, false, err
	}
	switch s.ButtonType {
	case ButtonTypeToggle:
		on = !buttons.State(id)
	case ButtonTypePush:
		on = true
	default:
		return false, false, nil
	}
	buttons.SetState(id, on)
	return on, true, nil
}

// release applies a key up. Only push buttons react.
func release(buttons Buttons, s instanceSettings) (on, changed bool, err error) {
	id, err := s.logicalId(buttons)
	if err != nil {
		return false, false, err
	}
	if s.ButtonType != ButtonTypePush {
		return false, false, nil
	}
	buttons.SetState(id, false)
	return false, true, nil
}

// stateOf returns the mixer state of the button an instance is bound to, or
// false while no mixer is attached.
func stateOf(s instanceSettings) bool {
	ref := mixer.Load()
	if ref == nil {
		return false
	}
	id, err := s.logicalId(ref.buttons)
	if err != nil {
		return false
	}
	return ref.buttons.State(id)
}

// withBackground returns a color provider that reads the theme and then
// overrides the key background with bg when bg is a valid hex color.
func withBackground(colorProvider widget.ColorProvider, bg string) widget.ColorProvider {
	hex, err := colors.ParseHEX(bg)
	if err != nil {
		return colorProvider
	}
	return widget.ColorProviderFunc(func(target *theme.Target) graphics.ColorSet {
		cs := colorProvider.ColorSet(target)
		cs.BackgroundPrimary = hex.String()
		return cs
	})
}

type renderKind int

const (
	renderMount renderKind = iota
	renderSettings
	renderState
	renderRefresh
	renderRemove
)

type renderParams struct {
	targetContext string
	kind          renderKind
	settings      *instanceSettings
	on            bool
}

// instance is one shown key. Its widget shows IconOn or IconOff; the state
// only changes the widget inputs and the background color.
type instance struct {
	settings instanceSettings
	on       bool
	widget   *widget.Icon
}

func (i *instance) inputs() widget.Inputs {
	if i.on {
		return widget.Inputs{Name: i.settings.IconOn}
	}
	return widget.Inputs{Name: i.settings.IconOff}
}

func (i *instance) background() string {
	if i.on {
		return i.settings.BgColorOn
	}
	return i.settings.BgColorOff
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
			on:            stateOf(p.Settings),
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
			on:            stateOf(p.Settings),
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

// SetupPostClientRun starts the render goroutine. It owns the widget of
// every shown key.
func SetupPostClientRun(client action.Client, env *action.Env) error {
	r := newRenderer(client, env)
	go func() {
		for renderParam := range renderCh {
			r.handle(renderParam)
		}
	}()
	return nil
}

// AttachMixer binds the keys to the macro buttons of vm: key presses drive
// the buttons and button changes in vm redraw the keys.
func AttachMixer(client *streamdeck.Client, vm *voicemeeter.Remote) {
	buttons := RemoteButtons{Remote: vm}
	mixer.Store(&mixerRef{buttons: buttons})
	sdAction := client.Action(ActionUUID)

	sdAction.RegisterHandler(streamdeck.KeyDown, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		var p streamdeck.KeyDownPayload[instanceSettings]
		p.Settings = defaultInstanceSettings()
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			log.Printf("error unmarshaling payload: %v\n", err)
			return err
		}
		on, changed, err := press(buttons, p.Settings)
		if err != nil {
			log.Printf("error parsing logicalId: %v\n", err)
			return err
		}
		if changed {
			renderCh <- &renderParams{targetContext: event.Context, kind: renderState, on: on}
		}
		return nil
	})

	sdAction.RegisterHandler(streamdeck.KeyUp, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		var p streamdeck.KeyUpPayload[instanceSettings]
		p.Settings = defaultInstanceSettings()
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			log.Printf("error unmarshaling payload: %v\n", err)
			return err
		}
		on, changed, err := release(buttons, p.Settings)
		if err != nil {
			log.Printf("error parsing logicalId: %v\n", err)
			return err
		}
		if changed {
			renderCh <- &renderParams{targetContext: event.Context, kind: renderState, on: on}
		}
		return nil
	})

	vmEvent := make(chan string)
	vm.Register(vmEvent)
	go func() {
		// keys shown before the mixer was attached
		for _, p := range syncStates(buttons) {
			renderCh <- p
		}
		for e := range vmEvent {
			if e != "mdirty" {
				continue
			}
			for _, p := range syncStates(buttons) {
				renderCh <- p
			}
		}
	}()
}

// syncStates returns a state request for every shown key with the current
// state of its button.
func syncStates(buttons Buttons) []*renderParams {
	var params []*renderParams
	for item := range shownInstances.IterBuffered() {
		s := item.Val.Settings
		id, err := s.logicalId(buttons)
		if err != nil {
			log.Printf("error parsing logicalId: %v\n", err)
			continue
		}
		params = append(params, &renderParams{
			targetContext: item.Key,
			kind:          renderState,
			on:            buttons.State(id),
		})
	}
	return params
}

// Refresh redraws every shown key, e.g. after the theme changed.
func Refresh() {
	if renderCh == nil {
		return
	}
	renderCh <- &renderParams{kind: renderRefresh}
}

type renderer struct {
	client    action.Client
	env       *action.Env
	instances map[string]*instance
}

func newRenderer(client action.Client, env *action.Env) *renderer {
	return &renderer{
		client:    client,
		env:       env,
		instances: make(map[string]*instance),
	}
}

func (r *renderer) handle(p *renderParams) {
	switch p.kind {
	case renderRemove:
		if inst, ok := r.instances[p.targetContext]; ok {
			inst.widget.Unmount()
			delete(r.instances, p.targetContext)
		}

	case renderMount, renderSettings:
		inst, ok := r.instances[p.targetContext]
		if !ok {
			inst = &instance{}
		}
		inst.settings = *p.settings
		inst.on = p.on
		if !ok {
			w, err := r.newWidget(p.targetContext, inst)
			if err != nil {
				log.Printf("error rendering icon: %v\n", err)
				r.alert(p.targetContext)
				return
			}
			inst.widget = w
			r.instances[p.targetContext] = inst
		}
		r.show(p.targetContext, inst)

	case renderState:
		inst, ok := r.instances[p.targetContext]
		if !ok || inst.on == p.on {
			return
		}
		inst.on = p.on
		r.show(p.targetContext, inst)

	case renderRefresh:
		for actionContext, inst := range r.instances {
			r.show(actionContext, inst)
		}
	}
}

// newWidget creates the widget of inst. Its colors follow the theme with the
// background of the current state.
func (r *renderer) newWidget(actionContext string, inst *instance) (*widget.Icon, error) {
	deps := r.env.WidgetDeps()
	deps.Colors = widget.ColorProviderFunc(func(target *theme.Target) graphics.ColorSet {
		return withBackground(r.env.Colors, inst.background()).ColorSet(target)
	})

	w, err := widget.New(inst.inputs(), deps)
	if err != nil {
		return nil, err
	}
	w.OnRender(func(src safeurl.URL) {
		if err := r.push(actionContext, inst, src); err != nil {
			log.Printf("error pushing icon: %v\n", err)
		}
	})
	return w, nil
}

// show renders inst once with its current inputs, target and colors.
func (r *renderer) show(actionContext string, inst *instance) {
	w := inst.widget
	w.Unmount()
	err := w.SetInputs(inst.inputs())
	if err == nil {
		err = w.Mount(action.Target(actionContext, inst.settings.ThemeClasses, ""))
	}
	if err != nil {
		log.Printf("error rendering icon: %v\n", err)
		r.alert(actionContext)
	}
}

// push draws the source the widget published onto a key.
func (r *renderer) push(actionContext string, inst *instance, src safeurl.URL) error {
	ctx := context.Background()
	ctx = sdcontext.WithContext(ctx, actionContext)

	img, err := graphics.SourceKeyImage(src.String(), inst.widget.Colors().BackgroundPrimary, r.env.KeyStyle)
	if err != nil {
		return err
	}
	imgBase64, err := streamdeck.Image(img)
	if err != nil {
		return err
	}
	keySrc, err := safeurl.TrustImageSource(r.env.Sanitizer, imgBase64)
	if err != nil {
		return err
	}
	if err := r.client.SetImage(ctx, keySrc.String(), streamdeck.HardwareAndSoftware, nil); err != nil {
		log.Printf("error setting image: %v\n", err)
		return err
	}
	return nil
}

func (r *renderer) alert(actionContext string) {
	ctx := context.Background()
	ctx = sdcontext.WithContext(ctx, actionContext)
	if err := r.client.ShowAlert(ctx); err != nil {
		log.Printf("error showing alert: %v\n", err)
	}
}
