package widget_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	safeurlmocks "github.com/hrko/streamdeck-gridicon/pkg/safeurl/mocks"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
	"github.com/hrko/streamdeck-gridicon/pkg/widget/mocks"
)

const testMarkup = `<svg class="icon"><circle class="color-icon-fill-primary foo" r="1"/></svg>`

func testSource() icon.Source {
	return icon.SourceFunc(func(icon.Name) (string, error) {
		return testMarkup, nil
	})
}

// countingSubstitute wraps graphics.Substitute and counts its calls.
func countingSubstitute(calls *int) func(string, graphics.ColorSet) string {
	return func(markup string, colors graphics.ColorSet) string {
		*calls++
		return graphics.Substitute(markup, colors)
	}
}

func decode(t *testing.T, src safeurl.URL) string {
	t.Helper()
	payload, ok := strings.CutPrefix(src.String(), graphics.DataURIPrefix)
	require.True(t, ok, src.String())
	markup, err := url.PathUnescape(payload)
	require.NoError(t, err)
	return markup
}

func TestNew(t *testing.T) {
	for _, n := range icon.Names() {
		_, err := widget.New(widget.Inputs{Name: string(n)}, widget.Deps{})
		require.NoError(t, err, n)
	}

	_, err := widget.New(widget.Inputs{}, widget.Deps{})
	require.ErrorContains(t, err, errs.ErrEmptyIconName.Error())

	_, err = widget.New(widget.Inputs{Name: "does-not-exist"}, widget.Deps{})
	require.ErrorContains(t, err, errs.ErrUnknownIconName.Error())
}

func TestIcon_Mount(t *testing.T) {
	ctrl := gomock.NewController(t)
	colors := mocks.NewMockColorProvider(ctrl)
	target := theme.NewTarget("key", "dark")

	cs := graphics.DefaultColorSet()
	cs.FillPrimary = "#112233"
	colors.EXPECT().ColorSet(target).Return(cs)

	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{
		Markup: testSource(),
		Colors: colors,
	})
	require.NoError(t, err)

	var rendered []safeurl.URL
	w.OnRender(func(u safeurl.URL) { rendered = append(rendered, u) })

	require.NoError(t, w.Mount(target))

	src, ok := w.Src()
	require.True(t, ok)
	require.Len(t, rendered, 1)
	assert.Equal(t, src, rendered[0])
	assert.Same(t, target, w.Target())
	assert.Equal(t, cs, w.Colors())

	markup := decode(t, src)
	assert.Equal(t, `<svg ><circle color-icon-fill-primary fill="#112233" r="1"/></svg>`, markup)
	assert.NotContains(t, markup, "foo")
}

func TestIcon_DefaultDeps(t *testing.T) {
	w, err := widget.New(widget.Inputs{Name: string(icon.InfoCircle)}, widget.Deps{})
	require.NoError(t, err)
	require.NoError(t, w.Mount(theme.NewTarget("key")))

	src, ok := w.Src()
	require.True(t, ok)
	assert.Contains(t, decode(t, src), `fill="#2671cb"`)
}

func TestIcon_NoTarget(t *testing.T) {
	calls := 0
	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{
		Markup:     testSource(),
		Substitute: countingSubstitute(&calls),
	})
	require.NoError(t, err)

	require.NoError(t, w.Update())
	_, ok := w.Src()
	assert.False(t, ok)
	assert.Zero(t, calls)

	require.NoError(t, w.Mount(theme.NewTarget("key")))
	assert.Equal(t, 1, calls)

	w.Unmount()
	require.NoError(t, w.Update())
	assert.Equal(t, 1, calls)
	assert.Nil(t, w.Target())
}

func TestIcon_InlineNeverSubstitutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	colors := mocks.NewMockColorProvider(ctrl)
	colors.EXPECT().ColorSet(gomock.Any()).Times(0)

	calls := 0
	w, err := widget.New(widget.Inputs{Name: string(icon.Play), Inline: true}, widget.Deps{
		Markup:     testSource(),
		Colors:     colors,
		Substitute: countingSubstitute(&calls),
	})
	require.NoError(t, err)
	w.OnRender(func(safeurl.URL) { t.Fatal("inline icons publish no source") })

	require.NoError(t, w.Mount(theme.NewTarget("key")))
	require.NoError(t, w.Update())
	require.NoError(t, w.SetInputs(widget.Inputs{Name: string(icon.Save), Inline: true}))

	assert.Zero(t, calls)
	_, ok := w.Src()
	assert.False(t, ok)

	markup, err := w.InlineMarkup()
	require.NoError(t, err)
	assert.Equal(t, testMarkup, string(markup))
}

func TestIcon_InlineClearsSource(t *testing.T) {
	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{Markup: testSource()})
	require.NoError(t, err)
	require.NoError(t, w.Mount(theme.NewTarget("key")))
	_, ok := w.Src()
	require.True(t, ok)

	require.NoError(t, w.SetInputs(widget.Inputs{Name: string(icon.Play), Inline: true}))
	_, ok = w.Src()
	assert.False(t, ok)
}

func TestIcon_NoColor(t *testing.T) {
	calls := 0
	w, err := widget.New(widget.Inputs{Name: string(icon.Play), NoColor: true}, widget.Deps{
		Markup:     testSource(),
		Substitute: countingSubstitute(&calls),
	})
	require.NoError(t, err)
	require.NoError(t, w.Mount(theme.NewTarget("key")))

	src, ok := w.Src()
	require.True(t, ok)
	assert.Zero(t, calls)
	assert.Equal(t, testMarkup, decode(t, src))
}

func TestIcon_SetInputs(t *testing.T) {
	requested := []icon.Name{}
	source := icon.SourceFunc(func(n icon.Name) (string, error) {
		requested = append(requested, n)
		return testMarkup, nil
	})
	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{Markup: source})
	require.NoError(t, err)

	renders := 0
	w.OnRender(func(safeurl.URL) { renders++ })
	require.NoError(t, w.Mount(theme.NewTarget("key")))
	require.Equal(t, 1, renders)

	require.NoError(t, w.SetInputs(widget.Inputs{Name: string(icon.Play)}))
	assert.Equal(t, 1, renders)

	require.NoError(t, w.SetInputs(widget.Inputs{Name: string(icon.Zip)}))
	assert.Equal(t, 2, renders)
	assert.Equal(t, icon.Zip, w.Name())
	assert.Equal(t, []icon.Name{icon.Play, icon.Zip}, requested)

	err = w.SetInputs(widget.Inputs{Name: ""})
	require.ErrorContains(t, err, errs.ErrEmptyIconName.Error())
	assert.Equal(t, icon.Zip, w.Name())
	assert.Equal(t, widget.Inputs{Name: string(icon.Zip)}, w.Inputs())
	assert.Equal(t, 2, renders)
}

func TestIcon_ColorsReadEveryPass(t *testing.T) {
	live := theme.NewLive(theme.Default())
	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{
		Markup: testSource(),
		Colors: live,
	})
	require.NoError(t, err)
	require.NoError(t, w.Mount(theme.NewTarget("key")))

	s, err := theme.Parse(":root { --color-icon-fill-primary: rebeccapurple; }")
	require.NoError(t, err)
	live.Store(s)
	require.NoError(t, w.Update())

	src, _ := w.Src()
	assert.Contains(t, decode(t, src), `fill="rebeccapurple"`)
}

func TestIcon_SanitizerRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	sanitizer := safeurlmocks.NewMockSanitizer(ctrl)
	sanitizer.EXPECT().
		AllowImageSource(gomock.Any()).
		DoAndReturn(func(raw string) error {
			assert.True(t, strings.HasPrefix(raw, graphics.DataURIPrefix))
			return errors.New("rejected")
		})

	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{
		Markup:    testSource(),
		Sanitizer: sanitizer,
	})
	require.NoError(t, err)
	w.OnRender(func(safeurl.URL) { t.Fatal("rejected sources are not published") })

	err = w.Mount(theme.NewTarget("key"))
	require.ErrorContains(t, err, "rejected")
	_, ok := w.Src()
	assert.False(t, ok)
}

func TestIcon_MarkupError(t *testing.T) {
	source := icon.SourceFunc(func(icon.Name) (string, error) {
		return "", errs.ErrMissingMarkup
	})
	w, err := widget.New(widget.Inputs{Name: string(icon.Play)}, widget.Deps{Markup: source})
	require.NoError(t, err)

	err = w.Mount(theme.NewTarget("key"))
	require.ErrorContains(t, err, errs.ErrMissingMarkup.Error())
}
