package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	installExts = []string{".json", ".exe", ".png", ".svg", ".css"}
	installDirs = []string{"layouts", "property_inspector", "themes"}
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var (
		srcDir     string
		pluginsDir string
	)

	cmd := &cobra.Command{
		Use:   "install <plugin-name>",
		Short: "Copy a built plugin into the Stream Deck plugins directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pluginsDir == "" {
				dir, err := defaultPluginsDir()
				if err != nil {
					return err
				}
				pluginsDir = dir
			}
			installDir := filepath.Join(pluginsDir, args[0])
			if err := os.RemoveAll(installDir); err != nil {
				return err
			}
			if err := os.MkdirAll(installDir, 0o755); err != nil {
				return err
			}
			if err := copyFiles(srcDir, installDir, installExts); err != nil {
				return err
			}
			if err := copyDirs(srcDir, installDir, installDirs); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "installed to %s\n", installDir)
			return err
		},
	}

	cmd.Flags().StringVar(&srcDir, "src", ".", "Directory holding the built plugin")
	cmd.Flags().StringVar(&pluginsDir, "plugins-dir", "", "Stream Deck plugins directory (default: the platform location)")

	return cmd
}

func copyFiles(srcDir, destDir string, extensions []string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, ext := range extensions {
			if strings.HasSuffix(entry.Name(), ext) {
				if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(destDir, entry.Name())); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	destFile, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, srcFile)
	return err
}

// copyDirs copies the named subdirectories of srcDir. Missing ones are
// skipped.
func copyDirs(srcDir, destDir string, dirs []string) error {
	for _, dir := range dirs {
		src := filepath.Join(srcDir, dir)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyDir(src, filepath.Join(destDir, dir)); err != nil {
			return err
		}
	}
	return nil
}

func copyDir(srcDir, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		destPath := filepath.Join(destDir, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}
