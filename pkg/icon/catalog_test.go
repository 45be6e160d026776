package icon_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
)

func TestNames(t *testing.T) {
	names := icon.Names()
	require.Len(t, names, 56)
	assert.Equal(t, icon.Download, names[0])
	assert.Equal(t, icon.Sliders, names[len(names)-1])

	seen := make(map[icon.Name]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
		assert.True(t, n.Valid(), n)
	}

	names[0] = "mutated"
	assert.Equal(t, icon.Download, icon.Names()[0])
}

func TestValidate(t *testing.T) {
	for _, n := range icon.Names() {
		got, err := icon.Validate(string(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	_, err := icon.Validate("")
	require.ErrorContains(t, err, errs.ErrEmptyIconName.Error())

	_, err = icon.Validate("not-an-icon")
	require.ErrorContains(t, err, errs.ErrUnknownIconName.Error())
}

func TestDefault(t *testing.T) {
	assert.Equal(t, icon.Name("info-circle"), icon.Default)
	assert.True(t, icon.Default.Valid())
}

func TestCatalogJSON(t *testing.T) {
	b, err := icon.CatalogJSON()
	require.NoError(t, err)

	var manifest struct {
		Default string   `json:"default"`
		Icons   []string `json:"icons"`
	}
	require.NoError(t, json.Unmarshal(b, &manifest))
	assert.Equal(t, "info-circle", manifest.Default)
	assert.Len(t, manifest.Icons, len(icon.Names()))
	assert.Contains(t, string(b), "\n  ")
}
