//go:build !windows

package commands

import (
	"os"
	"path/filepath"
)

func defaultPluginsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Application Support", "com.elgato.StreamDeck", "Plugins"), nil
}
