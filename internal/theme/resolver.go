package theme

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// ErrComponentNotFound is wrapped by Resolve when a component source is missing.
var ErrComponentNotFound = stderrors.New("component definition not found")

// Resolver maps component sources to files the way the host module loader
// does: relative to the directory of the theme entry module.
type Resolver struct {
	ThemeDir string
}

// Path returns the absolute location of a component's source.
func (r Resolver) Path(c Component) string {
	if filepath.IsAbs(c.Source) {
		return c.Source
	}
	return filepath.Join(r.ThemeDir, filepath.FromSlash(c.Source))
}

// Resolve checks every component source exists. All missing components are
// reported together; the returned error wraps ErrComponentNotFound.
func (r Resolver) Resolve(d Descriptor) (map[string]string, error) {
	resolved := make(map[string]string, len(d.Components))
	var missing []string
	for _, c := range d.Components {
		p := r.Path(c)
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			missing = append(missing, c.Name+": "+p)
			continue
		}
		resolved[c.Name] = p
	}
	if len(missing) > 0 {
		return resolved, errors.WrapError(ErrComponentNotFound, errors.CategoryTheme, "theme components cannot be resolved").
			Fatal().
			WithContext("theme_dir", r.ThemeDir).
			WithDetails(missing...).
			Build()
	}
	return resolved, nil
}
