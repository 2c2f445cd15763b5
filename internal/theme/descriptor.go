package theme

import (
	"fmt"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Component is a named display component and its source module, relative to
// the theme directory.
type Component struct {
	Name   string
	Source string
}

// Descriptor wraps a base theme and declares the components it adds.
type Descriptor struct {
	Extends    string
	Components []Component
}

// FromConfig builds a descriptor from the configuration's theme extension.
func FromConfig(ext config.ThemeExtension) Descriptor {
	d := Descriptor{Extends: ext.Extends}
	for _, c := range ext.Components {
		d.Components = append(d.Components, Component{Name: c.Name, Source: c.Source})
	}
	return d
}

// Names returns the declared component names in declaration order.
func (d Descriptor) Names() []string {
	out := make([]string, len(d.Components))
	for i, c := range d.Components {
		out[i] = c.Name
	}
	return out
}

// Base returns the registered base theme, or an error when it is unknown.
func (d Descriptor) Base() (Theme, error) {
	t := Get(d.Extends)
	if t == nil {
		return nil, errors.ThemeError(fmt.Sprintf("unknown base theme %q", d.Extends)).
			WithContext("known", Registered()).Build()
	}
	return t, nil
}

// EnhanceApp registers every declared component into app. Each name is bound
// exactly once per call; calling it again leaves the registry unchanged
// because every name is rebound to the same definition.
func (d Descriptor) EnhanceApp(app *App) {
	for _, c := range d.Components {
		app.Component(c.Name, Definition(c.Source))
		slog.Debug("Registered theme component", logfields.Component(c.Name), slog.String("source", c.Source))
	}
}

// Validate checks the descriptor without touching the filesystem: a known
// base theme and unique component names.
func (d Descriptor) Validate() error {
	if _, err := d.Base(); err != nil {
		return err
	}
	seen := make([]string, 0, len(d.Components))
	for _, c := range d.Components {
		if c.Name == "" || c.Source == "" {
			return errors.ThemeError("theme component needs a name and a source").Build()
		}
		if slices.Contains(seen, c.Name) {
			return errors.ThemeError(fmt.Sprintf("theme component %q declared twice", c.Name)).Build()
		}
		seen = append(seen, c.Name)
	}
	return nil
}
