package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/build"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Strict    bool `help:"Fail on broken links instead of warning"`
	Pages     bool `help:"Also check links inside page bodies"`
	NoResolve bool `name:"no-resolve" help:"Do not require theme component sources to exist"`
	DryRun    bool `name:"dry-run" help:"Load, discover and check without writing anything"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	res, err := build.NewService().Run(context.Background(), build.Request{
		ConfigPath: root.Config,
		Options: build.Options{
			Strict:            r.Strict,
			CheckPages:        r.Pages,
			ResolveComponents: !r.NoResolve,
			DryRun:            r.DryRun,
		},
	})
	if err != nil {
		return err
	}

	out := g.out()
	if res.Render == nil {
		_, _ = fmt.Fprintf(out, "dry run: %d pages, %s\n", len(res.Pages), res.Links.Summary())
		return nil
	}
	for _, p := range res.Render.Written {
		_, _ = fmt.Fprintf(out, "wrote %s\n", p)
	}
	if !res.Render.Changed() {
		_, _ = fmt.Fprintln(out, "artifacts up to date")
	}
	_, _ = fmt.Fprintf(out, "build %s\n", res.Render.BuildID)
	return nil
}
