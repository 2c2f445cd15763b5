package commands

import (
	"context"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/pages"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Generate bool   `help:"Print a sidebar generated from the content tree as YAML"`
	Route    string `help:"Only show the sidebar shown on this route"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	out := g.out()

	if n.Generate {
		list, err := pages.Discover(context.Background(), cfg.ContentDir(), pages.Options{CleanURLs: cfg.CleanURLs})
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"sidebar": nav.Generate(pages.Refs(list), nav.GenerateOptions{})}); err != nil {
			return err
		}
		return enc.Close()
	}

	if n.Route != "" {
		prefix, groups, ok := nav.SidebarFor(cfg, n.Route)
		cfg.Theme.Nav = nil
		cfg.Theme.Sidebar = config.Sidebar{}
		if ok {
			cfg.Theme.Sidebar[prefix] = groups
		}
	}
	return nav.Print(out, cfg)
}
