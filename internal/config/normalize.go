package config

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// MermaidTheme enumerates the diagram renderer's built-in themes.
type MermaidTheme string

const (
	MermaidThemeDefault MermaidTheme = "default"
	MermaidThemeBase    MermaidTheme = "base"
	MermaidThemeDark    MermaidTheme = "dark"
	MermaidThemeForest  MermaidTheme = "forest"
	MermaidThemeNeutral MermaidTheme = "neutral"
)

var mermaidThemeNormalizer = normalization.NewNormalizer("mermaid theme", map[string]MermaidTheme{
	"default": MermaidThemeDefault,
	"base":    MermaidThemeBase,
	"dark":    MermaidThemeDark,
	"forest":  MermaidThemeForest,
	"neutral": MermaidThemeNeutral,
}, MermaidThemeDefault)

// SecurityLevel enumerates the diagram renderer's trust levels for diagram sources.
type SecurityLevel string

const (
	SecurityStrict     SecurityLevel = "strict"
	SecurityLoose      SecurityLevel = "loose"
	SecurityAntiscript SecurityLevel = "antiscript"
	SecuritySandbox    SecurityLevel = "sandbox"
)

var securityLevelNormalizer = normalization.NewNormalizer("mermaid security level", map[string]SecurityLevel{
	"strict":     SecurityStrict,
	"loose":      SecurityLoose,
	"antiscript": SecurityAntiscript,
	"sandbox":    SecuritySandbox,
}, SecurityStrict)

// SearchProvider selects the site search backend.
type SearchProvider string

const (
	SearchLocal   SearchProvider = "local"
	SearchAlgolia SearchProvider = "algolia"
	SearchNone    SearchProvider = "none"
)

var searchProviderNormalizer = normalization.NewNormalizer("search provider", map[string]SearchProvider{
	"local":      SearchLocal,
	"minisearch": SearchLocal,
	"algolia":    SearchAlgolia,
	"docsearch":  SearchAlgolia,
	"none":       SearchNone,
	"off":        SearchNone,
}, SearchNone)

// NormalizationResult collects non-fatal adjustments made while normalizing.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Normalize canonicalizes enum spellings, trims labels and fixes the base path
// shape. Unknown enum values are errors; cosmetic fixes are reported as warnings.
func Normalize(cfg *SiteConfig) (*NormalizationResult, error) {
	res := &NormalizationResult{}
	if cfg == nil {
		return res, nil
	}

	var err error
	if cfg.Mermaid.Theme, err = mermaidThemeNormalizer.Parse(string(cfg.Mermaid.Theme)); err != nil {
		return res, err
	}
	if cfg.Mermaid.SecurityLevel, err = securityLevelNormalizer.Parse(string(cfg.Mermaid.SecurityLevel)); err != nil {
		return res, err
	}
	if cfg.Theme.Search.Provider, err = searchProviderNormalizer.Parse(string(cfg.Theme.Search.Provider)); err != nil {
		return res, err
	}

	cfg.Title = strings.TrimSpace(cfg.Title)
	cfg.Description = strings.TrimSpace(cfg.Description)
	cfg.Base = normalizeBase(cfg.Base, res)

	for i := range cfg.Head {
		cfg.Head[i].Tag = strings.ToLower(strings.TrimSpace(cfg.Head[i].Tag))
	}
	normalizeNav(cfg.Theme.Nav)
	renames := map[string]string{}
	for key, groups := range cfg.Theme.Sidebar {
		for gi := range groups {
			groups[gi].Text = strings.TrimSpace(groups[gi].Text)
			normalizeSidebarItems(groups[gi].Items)
		}
		if fixed := normalizeSidebarKey(key); fixed != key {
			renames[key] = fixed
		}
	}
	for _, key := range slices.Sorted(maps.Keys(renames)) {
		fixed := renames[key]
		if _, clash := cfg.Theme.Sidebar[fixed]; clash {
			return res, fmt.Errorf("sidebar keys %q and %q refer to the same prefix", key, fixed)
		}
		res.warnf("normalized sidebar key %q to %q", key, fixed)
		cfg.Theme.Sidebar[fixed] = cfg.Theme.Sidebar[key]
		delete(cfg.Theme.Sidebar, key)
	}
	for i := range cfg.Extension.Components {
		cfg.Extension.Components[i].Name = strings.TrimSpace(cfg.Extension.Components[i].Name)
	}
	return res, nil
}

func normalizeBase(base string, res *NormalizationResult) string {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return ""
	}
	fixed := trimmed
	if !strings.HasPrefix(fixed, "/") {
		fixed = "/" + fixed
	}
	if !strings.HasSuffix(fixed, "/") {
		fixed += "/"
	}
	if fixed != trimmed {
		res.warnf("normalized base %q to %q", base, fixed)
	}
	return fixed
}

// normalizeSidebarKey only adds the trailing slash; a key without a leading
// slash stays invalid so validation reports it.
func normalizeSidebarKey(key string) string {
	if !strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") {
		return key
	}
	return path.Clean(key) + "/"
}

func normalizeNav(entries []NavEntry) {
	for i := range entries {
		entries[i].Text = strings.TrimSpace(entries[i].Text)
		entries[i].Link = strings.TrimSpace(entries[i].Link)
		normalizeNav(entries[i].Items)
	}
}

func normalizeSidebarItems(items []SidebarItem) {
	for i := range items {
		items[i].Text = strings.TrimSpace(items[i].Text)
		items[i].Link = strings.TrimSpace(items[i].Link)
		normalizeSidebarItems(items[i].Items)
	}
}
