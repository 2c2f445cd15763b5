package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/pages"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct{}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	list, err := pages.Discover(context.Background(), cfg.ContentDir(), pages.Options{
		CleanURLs:   cfg.CleanURLs,
		LastUpdated: cfg.LastUpdated,
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROUTE\tTITLE\tFILE\tUPDATED")
	for _, pg := range list {
		updated := "-"
		if !pg.LastUpdated.IsZero() {
			updated = pg.LastUpdated.Format("2006-01-02")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pg.URL, pg.Title, pg.File, updated)
	}
	return tw.Flush()
}
