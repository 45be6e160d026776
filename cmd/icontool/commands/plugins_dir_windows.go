//go:build windows

package commands

import (
	"os"
	"path/filepath"
)

func defaultPluginsDir() (string, error) {
	return filepath.Join(os.Getenv("APPDATA"), "Elgato", "StreamDeck", "Plugins"), nil
}
