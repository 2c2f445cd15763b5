package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/pages"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Pages bool `help:"Also check links inside page bodies"`
	Built bool `help:"Also check anchors in the generator's HTML output"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	list, err := pages.Discover(ctx, cfg.ContentDir(), pages.Options{CleanURLs: cfg.CleanURLs})
	if err != nil {
		return err
	}
	index := pages.NewIndex(list)

	report := linkcheck.Check(cfg, index)
	if c.Pages {
		report.Merge(linkcheck.CheckPages(list, index))
	}
	if c.Built {
		built, err := linkcheck.CheckBuilt(ctx, cfg.OutputDir(), cfg.Base)
		if err != nil {
			return err
		}
		report.Merge(built)
	}

	out := g.out()
	for _, is := range report.Issues {
		_, _ = fmt.Fprintln(out, is.String())
	}
	_, _ = fmt.Fprintln(out, report.Summary())
	slog.Debug("Link check finished", logfields.Count(report.Checked), logfields.Config(root.Config))
	return report.Err()
}
