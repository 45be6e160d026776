package theme_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
)

func TestDefault(t *testing.T) {
	s := theme.Default()

	assert.Equal(t, graphics.DefaultColorSet(), s.ColorSet(nil))
	assert.Equal(t, graphics.DefaultColorSet(), s.ColorSet(theme.NewTarget("key")))
}

func TestDefault_Dark(t *testing.T) {
	cs := theme.Default().ColorSet(theme.NewTarget("key", "dark"))

	assert.Equal(t, "#6ea8ff", cs.FillPrimary)
	assert.Equal(t, "#1b263b", cs.BackgroundPrimary)
	// stroke-primary refers to fill-primary, which the dark rule overrides
	assert.Equal(t, "#6ea8ff", cs.StrokePrimary)
}

func TestSheet_Cascade(t *testing.T) {
	s, err := theme.Parse(`
.a.b { --x: one; }
.a { --x: two; --y: two; }
:root { --y: root; --z: root; }
.a { --z: later; }
#key { --w: id; }
.a.b.c.d.e.f.g.h.i.j.k { --w: classes; }
`)
	require.NoError(t, err)

	target := theme.NewTarget("key", "a", "b")
	assert.Equal(t, "one", s.Property(target, "--x"))
	assert.Equal(t, "two", s.Property(target, "--y"))
	assert.Equal(t, "later", s.Property(target, "--z"))
	assert.Equal(t, "id", s.Property(target, "--w"))
	assert.Equal(t, "root", s.Property(theme.NewTarget("other"), "--y"))
}

func TestSheet_SelectorLists(t *testing.T) {
	s, err := theme.Parse(`.dark, .night { --color-icon-fill-primary: black; }
.panel .dark { --color-icon-fill-secondary: gray; }
a.dark { --color-icon-fill-tertiary: nope; }`)
	require.NoError(t, err)

	night := s.ColorSet(theme.NewTarget("k", "night"))
	assert.Equal(t, "black", night.FillPrimary)
	assert.Empty(t, night.FillSecondary)

	nested := s.ColorSet(theme.NewTarget("k", "panel", "dark"))
	assert.Equal(t, "gray", nested.FillSecondary)
	assert.Empty(t, nested.FillTertiary)
}

func TestSheet_InlineStyleWins(t *testing.T) {
	target := &theme.Target{
		ID:      "key",
		Classes: []string{"dark"},
		Style:   "--color-icon-fill-primary: red; color: blue",
	}

	cs := theme.Default().ColorSet(target)
	assert.Equal(t, "red", cs.FillPrimary)
	assert.Equal(t, "red", cs.StrokePrimary)
}

func TestSheet_Vars(t *testing.T) {
	s, err := theme.Parse(`:root {
  --brand: #123456;
  --color-icon-fill-primary: var(--brand);
  --color-icon-fill-secondary: var(--missing, #abc);
  --color-icon-fill-tertiary: var(--missing, var(--brand));
  --color-icon-stroke-primary: var(--loop-a);
  --loop-a: var(--loop-b);
  --loop-b: var(--loop-a);
}`)
	require.NoError(t, err)

	cs := s.ColorSet(nil)
	assert.Equal(t, "#123456", cs.FillPrimary)
	assert.Equal(t, "#abc", cs.FillSecondary)
	assert.Equal(t, "#123456", cs.FillTertiary)
	assert.Empty(t, cs.StrokePrimary)
	// never declared
	assert.Empty(t, cs.StrokeSecondary)
	assert.Empty(t, cs.BackgroundPrimary)
}

func TestSheet_AtRulesSkipped(t *testing.T) {
	s, err := theme.Parse(`
@media print { :root { --color-icon-fill-primary: black; } }
@import url("other.css");
:root { --color-icon-fill-primary: #2671cb !important; }
`)
	require.NoError(t, err)
	assert.Equal(t, "#2671cb", s.ColorSet(nil).FillPrimary)
}

func TestLoad(t *testing.T) {
	_, err := theme.Load(filepath.Join(t.TempDir(), "missing.css"))
	require.ErrorContains(t, err, errs.ErrThemeRead.Error())

	path := writeCSS(t, t.TempDir(), ":root { --color-icon-fill-primary: teal; }")
	s, err := theme.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "teal", s.ColorSet(nil).FillPrimary)
}

func TestDefaultCSS(t *testing.T) {
	assert.Contains(t, theme.DefaultCSS(), "--color-icon-background-primary: #e8f0f9;")
}
