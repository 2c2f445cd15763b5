// Package render writes the artifacts the documentation-site generator
// consumes: its configuration module, the theme entry and a build manifest.
package render

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/pages"
	"git.home.luguber.info/inful/docsite/internal/theme"
)

// Artifact file names, relative to the generator directory.
const (
	ConfigJSONFile   = "config.json"
	ConfigModuleFile = "config.mts"
	ThemeModuleFile  = "index.ts" // inside the theme dir
)

// Options tunes a render.
type Options struct {
	// Pages are listed in the manifest.
	Pages []pages.Page
	// ResolveComponents fails the render when a component source is missing.
	ResolveComponents bool
	// Now overrides the clock for the manifest timestamp.
	Now func() time.Time
	// NewID overrides build id generation.
	NewID func() string
}

// Result describes what a render did.
type Result struct {
	BuildID   string
	Written   []string // paths that changed on disk
	Unchanged []string
	Manifest  *Manifest
}

// Changed reports whether any artifact was rewritten.
func (r *Result) Changed() bool { return len(r.Written) > 0 }

type artifact struct {
	path string
	data []byte
}

// Write renders every artifact for cfg and desc into cfg.GeneratorDir().
// Files whose content is unchanged are left alone; the manifest is only
// rewritten, with a fresh build id, when the output it describes changed.
func Write(ctx context.Context, cfg *config.SiteConfig, desc theme.Descriptor, opts Options) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	base, err := desc.Base()
	if err != nil {
		return nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if opts.ResolveComponents {
		if _, err := (theme.Resolver{ThemeDir: cfg.ThemeDir()}).Resolve(desc); err != nil {
			return nil, err
		}
	}

	app := theme.NewApp()
	desc.EnhanceApp(app)
	features := base.Features()
	arts, err := build(cfg, app, features)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render generator artifacts").Build()
	}

	res := &Result{}
	for _, a := range arts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed, err := writeIfChanged(a.path, a.data)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to write generator artifact").
				WithContext("path", a.path).Build()
		}
		if changed {
			res.Written = append(res.Written, a.path)
			slog.Debug("Wrote artifact", logfields.Path(a.path))
		} else {
			res.Unchanged = append(res.Unchanged, a.path)
		}
	}

	manifest := &Manifest{
		ConfigFingerprint: fingerprint(arts),
		Theme:             desc.Extends,
		Components:        app.Names(),
		Artifacts:         map[string]string{},
		Pages:             manifestPages(opts.Pages),
	}
	for _, a := range arts {
		rel, _ := filepath.Rel(cfg.GeneratorDir(), a.path)
		manifest.Artifacts[filepath.ToSlash(rel)] = mdfp.CalculateFingerprintFromParts("", string(a.data))
	}

	manifestPath := filepath.Join(cfg.GeneratorDir(), ManifestFile)
	if prev, err := ReadManifest(manifestPath); err == nil && manifest.sameContent(prev) {
		res.BuildID = prev.BuildID
		res.Manifest = prev
		res.Unchanged = append(res.Unchanged, manifestPath)
		return res, nil
	}

	manifest.BuildID = opts.NewID()
	manifest.GeneratedAt = opts.Now().UTC().Truncate(time.Second)
	data, err := manifest.marshal()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal manifest").Build()
	}
	if _, err := writeIfChanged(manifestPath, data); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", manifestPath).Build()
	}
	res.Written = append(res.Written, manifestPath)
	res.BuildID = manifest.BuildID
	res.Manifest = manifest
	slog.Info("Rendered generator artifacts",
		logfields.BuildID(res.BuildID),
		logfields.Count(len(res.Written)),
		logfields.Path(cfg.GeneratorDir()))
	return res, nil
}

func build(cfg *config.SiteConfig, app *theme.App, features theme.Features) ([]artifact, error) {
	withMermaid := features.NeedsMermaidPlugin
	site, err := GeneratorConfig(cfg, withMermaid)
	if err != nil {
		return nil, err
	}
	entry, err := ConfigModule(withMermaid)
	if err != nil {
		return nil, err
	}
	themeEntry, err := ThemeModule(app, features)
	if err != nil {
		return nil, err
	}
	gen := cfg.GeneratorDir()
	return []artifact{
		{path: filepath.Join(gen, ConfigJSONFile), data: site},
		{path: filepath.Join(gen, ConfigModuleFile), data: entry},
		{path: filepath.Join(cfg.ThemeDir(), ThemeModuleFile), data: themeEntry},
	}, nil
}

// fingerprint is a stable digest over the rendered artifacts.
func fingerprint(arts []artifact) string {
	sorted := slices.Clone(arts)
	slices.SortFunc(sorted, func(a, b artifact) int { return strings.Compare(a.path, b.path) })
	var body []byte
	for _, a := range sorted {
		body = append(body, filepath.Base(a.path)...)
		body = append(body, '\n')
		body = append(body, a.data...)
	}
	return mdfp.CalculateFingerprintFromParts("", string(body))
}
