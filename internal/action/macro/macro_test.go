package macro

import (
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/fufuok/cmap"
	"github.com/hrko/streamdeck"
	sdcontext "github.com/hrko/streamdeck/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hrko/streamdeck-gridicon/internal/action"
	"github.com/hrko/streamdeck-gridicon/internal/action/mocks"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
)

type fakeButtons struct {
	states []bool
}

func (b *fakeButtons) Count() int {
	return len(b.states)
}

func (b *fakeButtons) State(id int) bool {
	return b.states[id]
}

func (b *fakeButtons) SetState(id int, on bool) {
	b.states[id] = on
}

func testEnv() *action.Env {
	return &action.Env{
		Colors:    theme.NewLive(theme.Default()),
		Markup:    icon.Embedded(),
		Sanitizer: safeurl.NewPolicy(),
		KeyStyle:  graphics.DefaultKeyStyle(),
	}
}

func TestPressRelease(t *testing.T) {
	tests := []struct {
		name        string
		buttonType  string
		initial     bool
		down, up    bool
		downChanged bool
		upChanged   bool
	}{
		{name: "push", buttonType: ButtonTypePush, down: true, up: false, downChanged: true, upChanged: true},
		{name: "toggle on", buttonType: ButtonTypeToggle, initial: false, down: true, up: true, downChanged: true},
		{name: "toggle off", buttonType: ButtonTypeToggle, initial: true, down: false, up: false, downChanged: true},
		{name: "unknown type", buttonType: "hold", initial: true, down: true, up: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := &fakeButtons{states: []bool{false, tt.initial}}
			s := instanceSettings{LogicalId: "1", ButtonType: tt.buttonType}

			on, changed, err := press(buttons, s)
			require.NoError(t, err)
			assert.Equal(t, tt.downChanged, changed)
			if changed {
				assert.Equal(t, tt.down, on)
			}
			assert.Equal(t, tt.down, buttons.states[1])

			on, changed, err = release(buttons, s)
			require.NoError(t, err)
			assert.Equal(t, tt.upChanged, changed)
			if changed {
				assert.Equal(t, tt.up, on)
			}
			assert.Equal(t, tt.up, buttons.states[1])
			assert.False(t, buttons.states[0])
		})
	}
}

func TestLogicalId(t *testing.T) {
	buttons := &fakeButtons{states: make([]bool, 3)}

	for raw, want := range map[string]int{"0": 0, "2": 2, "3": 0, "-1": 0} {
		s := instanceSettings{LogicalId: raw}
		id, err := s.logicalId(buttons)
		require.NoError(t, err, raw)
		assert.Equal(t, want, id, raw)
	}

	s := instanceSettings{LogicalId: "x"}
	_, err := s.logicalId(buttons)
	require.Error(t, err)

	_, _, err = press(buttons, s)
	require.Error(t, err)
}

func TestStateOf(t *testing.T) {
	t.Cleanup(func() { mixer.Store(nil) })
	s := instanceSettings{LogicalId: "1"}

	mixer.Store(nil)
	assert.False(t, stateOf(s))

	mixer.Store(&mixerRef{buttons: &fakeButtons{states: []bool{false, true}}})
	assert.True(t, stateOf(s))
	assert.False(t, stateOf(instanceSettings{LogicalId: "x"}))
}

func TestSyncStates(t *testing.T) {
	shownInstances = cmap.NewOf[string, instanceProperty]()
	shownInstances.Set("a", instanceProperty{Settings: instanceSettings{LogicalId: "0"}})
	shownInstances.Set("b", instanceProperty{Settings: instanceSettings{LogicalId: "1"}})
	shownInstances.Set("bad", instanceProperty{Settings: instanceSettings{LogicalId: "x"}})

	got := map[string]bool{}
	for _, p := range syncStates(&fakeButtons{states: []bool{true, false}}) {
		assert.Equal(t, renderState, p.kind)
		got[p.targetContext] = p.on
	}
	assert.Equal(t, map[string]bool{"a": true, "b": false}, got)
}

func TestWithBackground(t *testing.T) {
	live := theme.NewLive(theme.Default())
	target := theme.NewTarget("ctx")

	cs := withBackground(live, "#067ba2").ColorSet(target)
	assert.Equal(t, "#067ba2", cs.BackgroundPrimary)
	assert.Equal(t, "#2671cb", cs.FillPrimary)

	cs = withBackground(live, "not a color").ColorSet(target)
	assert.Equal(t, "#e8f0f9", cs.BackgroundPrimary)
}

func TestDefaultInstanceSettings(t *testing.T) {
	s := defaultInstanceSettings()
	for _, name := range []string{s.IconOn, s.IconOff} {
		_, err := icon.Validate(name)
		assert.NoError(t, err)
	}
	assert.Equal(t, ButtonTypePush, s.ButtonType)
}

// decodeKey decodes a pushed PNG key image.
func decodeKey(t *testing.T, img string) image.Image {
	t.Helper()
	payload, ok := strings.CutPrefix(img, "data:image/png;base64,")
	require.True(t, ok)
	decoded, err := png.Decode(base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload)))
	require.NoError(t, err)
	return decoded
}

// background returns the key color between the icon and the border.
func background(img image.Image) [3]uint32 {
	r, g, b, _ := img.At(36, 4).RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func newTestRenderer(t *testing.T) (*renderer, *mocks.MockClient, *[]image.Image) {
	t.Helper()
	client := mocks.NewMockClient(gomock.NewController(t))
	var pushed []image.Image
	client.EXPECT().
		SetImage(gomock.Any(), gomock.Any(), streamdeck.HardwareAndSoftware, (*int)(nil)).
		DoAndReturn(func(ctx context.Context, img string, _ streamdeck.Target, _ *int) error {
			assert.NotEmpty(t, sdcontext.Context(ctx))
			pushed = append(pushed, decodeKey(t, img))
			return nil
		}).
		AnyTimes()
	return newRenderer(client, testEnv()), client, &pushed
}

func mount(r *renderer, actionContext string, s instanceSettings, on bool) {
	r.handle(&renderParams{targetContext: actionContext, kind: renderMount, settings: &s, on: on})
}

func TestRenderer_States(t *testing.T) {
	r, _, pushed := newTestRenderer(t)

	mount(r, "key", defaultInstanceSettings(), false)
	require.Len(t, *pushed, 1)
	assert.Equal(t, [3]uint32{0x00, 0x41, 0x62}, background((*pushed)[0]))
	assert.Equal(t, icon.Cross, r.instances["key"].widget.Name())

	r.handle(&renderParams{targetContext: "key", kind: renderState, on: true})
	require.Len(t, *pushed, 2)
	assert.Equal(t, [3]uint32{0x06, 0x7b, 0xa2}, background((*pushed)[1]))
	assert.Equal(t, icon.TickCircle, r.instances["key"].widget.Name())

	// an unchanged state draws nothing
	r.handle(&renderParams{targetContext: "key", kind: renderState, on: true})
	assert.Len(t, *pushed, 2)

	// unknown keys are ignored
	r.handle(&renderParams{targetContext: "other", kind: renderState, on: false})
	assert.Len(t, *pushed, 2)
}

func TestRenderer_SameIconDifferentBackground(t *testing.T) {
	r, _, pushed := newTestRenderer(t)
	s := defaultInstanceSettings()
	s.IconOff = s.IconOn

	mount(r, "key", s, false)
	r.handle(&renderParams{targetContext: "key", kind: renderState, on: true})

	require.Len(t, *pushed, 2)
	assert.NotEqual(t, background((*pushed)[0]), background((*pushed)[1]))
}

func TestRenderer_Settings(t *testing.T) {
	r, _, pushed := newTestRenderer(t)
	mount(r, "key", defaultInstanceSettings(), false)

	s := defaultInstanceSettings()
	s.IconOff = string(icon.Bin)
	s.ThemeClasses = "dark"
	r.handle(&renderParams{targetContext: "key", kind: renderSettings, settings: &s})

	require.Len(t, *pushed, 2)
	w := r.instances["key"].widget
	assert.Equal(t, icon.Bin, w.Name())
	assert.Equal(t, []string{"dark"}, w.Target().Classes)
	assert.Equal(t, "#6ea8ff", w.Colors().FillPrimary)
}

func TestRenderer_InvalidIcon(t *testing.T) {
	r, client, pushed := newTestRenderer(t)
	client.EXPECT().ShowAlert(gomock.Any()).Return(nil).Times(2)

	s := defaultInstanceSettings()
	s.IconOff = "nope"
	mount(r, "new", s, false)
	assert.NotContains(t, r.instances, "new")

	mount(r, "key", defaultInstanceSettings(), false)
	r.handle(&renderParams{targetContext: "key", kind: renderSettings, settings: &s})
	assert.Len(t, *pushed, 1)
	assert.Equal(t, icon.Cross, r.instances["key"].widget.Name())
}

func TestRenderer_RefreshAndRemove(t *testing.T) {
	r, _, pushed := newTestRenderer(t)
	mount(r, "a", defaultInstanceSettings(), false)
	mount(r, "b", defaultInstanceSettings(), true)
	require.Len(t, *pushed, 2)

	sheet, err := theme.Parse(":root { --color-icon-fill-primary: #010203; }")
	require.NoError(t, err)
	r.env.Colors.Store(sheet)

	r.handle(&renderParams{kind: renderRefresh})
	require.Len(t, *pushed, 4)
	for _, inst := range r.instances {
		assert.Equal(t, "#010203", inst.widget.Colors().FillPrimary)
	}

	w := r.instances["a"].widget
	r.handle(&renderParams{targetContext: "a", kind: renderRemove})
	assert.NotContains(t, r.instances, "a")
	assert.Nil(t, w.Target())

	r.handle(&renderParams{kind: renderRefresh})
	assert.Len(t, *pushed, 5)
}
