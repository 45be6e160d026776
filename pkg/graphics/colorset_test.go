package graphics_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
)

func TestTokens(t *testing.T) {
	assert.Equal(t, []graphics.Token{
		graphics.TokenFillPrimary,
		graphics.TokenFillSecondary,
		graphics.TokenFillTertiary,
		graphics.TokenStrokePrimary,
		graphics.TokenStrokeSecondary,
		graphics.TokenBackgroundPrimary,
	}, graphics.Tokens())

	assert.True(t, graphics.IsToken("color-icon-fill-tertiary"))
	assert.False(t, graphics.IsToken("fill-primary"))
	assert.Equal(t, "--color-icon-stroke-secondary", graphics.TokenStrokeSecondary.CustomProperty())
}

func TestColorSet_GetSet(t *testing.T) {
	var cs graphics.ColorSet
	for i, tok := range graphics.Tokens() {
		cs.Set(tok, string(rune('a'+i)))
	}
	assert.Equal(t, graphics.ColorSet{
		FillPrimary:       "a",
		FillSecondary:     "b",
		FillTertiary:      "c",
		StrokePrimary:     "d",
		StrokeSecondary:   "e",
		BackgroundPrimary: "f",
	}, cs)
	assert.Equal(t, "c", cs.Get(graphics.TokenFillTertiary))
	assert.Empty(t, cs.Get(graphics.Token("other")))
}

func TestColorSet_Merge(t *testing.T) {
	merged := graphics.DefaultColorSet().Merge(graphics.ColorSet{FillPrimary: "red"})

	assert.Equal(t, "red", merged.FillPrimary)
	assert.Equal(t, "#002d61", merged.FillTertiary)
}

func TestColorSet_Validate(t *testing.T) {
	assert.Empty(t, graphics.DefaultColorSet().Validate())

	bad := graphics.ColorSet{FillPrimary: "#zzz", StrokePrimary: "rgb(1,2,3)"}.Validate()
	require.Len(t, bad, 1)
	assert.Contains(t, bad, graphics.TokenFillPrimary)
}

func TestColorSet_Declarable(t *testing.T) {
	cs := graphics.ColorSet{
		FillPrimary:       "red; } body { color: red",
		FillSecondary:     "rebeccapurple",
		StrokePrimary:     "rgb(1,2,3)",
		BackgroundPrimary: "#fff</style><script>",
	}.Declarable()

	assert.Equal(t, graphics.ColorSet{FillSecondary: "rebeccapurple", StrokePrimary: "rgb(1,2,3)"}, cs)
	assert.Equal(t, graphics.DefaultColorSet(), graphics.DefaultColorSet().Declarable())
}

func TestParseColor(t *testing.T) {
	c, err := graphics.ParseColor("#2671cb")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x26, G: 0x71, B: 0xcb, A: 0xff}, c)

	_, err = graphics.ParseColor("not a color")
	require.Error(t, err)
}
