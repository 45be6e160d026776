// Package commands implements the icontool commands.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/hrko/streamdeck-gridicon/internal/config"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
	"github.com/hrko/streamdeck-gridicon/pkg/widget"
)

// CLI is the icontool command line.
type CLI struct {
	cfg     *config.Config
	rootCmd *cobra.Command

	themePath string
	iconDir   string
	classes   []string
	style     string
}

// New creates the command tree. cfg supplies the defaults of the theme and
// icon directory flags.
func New(cfg *config.Config) *CLI {
	if cfg == nil {
		cfg = &config.Config{KeySize: 72}
	}
	rootCmd := &cobra.Command{
		Use:           "icontool",
		Short:         "Render and preview themed icons",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		cfg:     cfg,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.themePath, "theme", cfg.ThemeCSS, "Stylesheet defining the --color-icon-* properties")
	flags.StringVar(&c.iconDir, "icon-dir", cfg.IconDir, "Directory overriding icon markup with <name>.svg files")
	flags.StringSliceVar(&c.classes, "class", nil, "Theme class of the render target, e.g. dark (repeatable)")
	flags.StringVar(&c.style, "style", "", "Inline custom property declarations of the render target")

	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newSheetCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newLogsCmd())
	rootCmd.AddCommand(c.newLayoutCmd())
	rootCmd.AddCommand(c.newAppCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) sheet() (*theme.Sheet, error) {
	if c.themePath == "" {
		return theme.Default(), nil
	}
	return theme.Load(c.themePath)
}

func (c *CLI) markup() icon.Source {
	if c.iconDir == "" {
		return icon.Embedded()
	}
	return icon.Dir(c.iconDir, nil)
}

func (c *CLI) target() *theme.Target {
	return &theme.Target{
		ID:      "icontool",
		Classes: c.classes,
		Style:   c.style,
	}
}

func (c *CLI) deps() (widget.Deps, error) {
	sheet, err := c.sheet()
	if err != nil {
		return widget.Deps{}, err
	}
	return widget.Deps{
		Markup:    c.markup(),
		Colors:    sheet,
		Sanitizer: safeurl.NewPolicy(),
	}, nil
}
