// Package commands implements the docsite CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Global is passed to every command's Run.
type Global struct {
	// Out receives command output; logs go to stderr.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Site configuration file" default:"docsite.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write the default site configuration"`
	Validate ValidateCmd `cmd:"" help:"Validate the site configuration (or every variant in a directory)"`
	Nav      NavCmd      `cmd:"" help:"Print the navigation and sidebar trees"`
	Pages    PagesCmd    `cmd:"" help:"List content pages with their routes and titles"`
	Check    CheckCmd    `cmd:"" help:"Verify that every navigation and sidebar link resolves to a page"`
	Render   RenderCmd   `cmd:"" help:"Write the generator configuration and theme entry"`
	Watch    WatchCmd    `cmd:"" help:"Re-render whenever the configuration or content changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(os.Stderr, c.Verbose, c.LogFormat))
	return nil
}

func newLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration named by the global flag.
func loadConfig(root *CLI) (*config.SiteConfig, error) {
	return config.Load(root.Config)
}
