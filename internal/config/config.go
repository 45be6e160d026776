// Package config loads the plugin configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

// Config is the plugin configuration. Every field can be set with a
// GRIDICON_ prefixed environment variable.
type Config struct {
	// ThemeCSS is a stylesheet defining the --color-icon-* properties. The
	// built-in theme is used when empty.
	ThemeCSS string `env:"THEME_CSS"`
	// WatchTheme reloads ThemeCSS when the file changes.
	WatchTheme bool `env:"WATCH_THEME" envDefault:"true"`
	// IconDir overrides icon markup with <IconDir>/<name>.svg files.
	IconDir string `env:"ICON_DIR"`
	// LogFile receives the plugin log. A new temp file is used when empty.
	LogFile string `env:"LOG_FILE"`
	// KeySize is the resolution of raster key images.
	KeySize int `env:"KEY_SIZE" envDefault:"72"`
}

// Load parses the environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: "GRIDICON_"})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, zerr.Wrap(err, errs.ErrConfig.Error())
	}
	if cfg.KeySize <= 0 {
		return nil, zerr.With(errs.ErrConfig, "key_size", cfg.KeySize)
	}
	return cfg, nil
}
