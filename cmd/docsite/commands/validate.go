package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/theme"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Variants string `name:"variants" help:"Validate every *.yaml in this directory as an independent site" type:"path"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	if v.Variants != "" {
		variants, err := config.LoadVariants(v.Variants)
		for _, vr := range variants {
			if terr := theme.FromConfig(vr.Config.Extension).Validate(); terr != nil {
				_, _ = fmt.Fprintf(out, "invalid  %s: %v\n", vr.Name, terr)
				if err == nil {
					err = terr
				}
				continue
			}
			_, _ = fmt.Fprintf(out, "valid    %s (%s)\n", vr.Name, vr.Path)
		}
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := theme.FromConfig(cfg.Extension).Validate(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s: configuration is valid\n", root.Config)
	return nil
}
