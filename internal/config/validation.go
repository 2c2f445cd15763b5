package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

var (
	componentNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	hexColorPattern      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// headElements are the elements the generator accepts in the head list.
var headElements = map[atom.Atom]bool{
	atom.Link:     true,
	atom.Meta:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Base:     true,
	atom.Noscript: true,
	atom.Template: true,
}

// ValidateConfig checks the structural contract of a site configuration and
// reports every problem found in a single classified validation error.
func ValidateConfig(cfg *SiteConfig) error {
	if cfg == nil {
		return errors.ValidationError("site configuration is nil").Build()
	}
	v := &configurationValidator{config: cfg}
	v.validate()
	if len(v.problems) == 0 {
		return nil
	}
	return errors.ValidationError("site configuration is invalid").
		WithContext("problems", len(v.problems)).
		WithDetails(v.problems...).
		Build()
}

// configurationValidator accumulates problems across all configuration areas.
type configurationValidator struct {
	config   *SiteConfig
	problems []string
}

func (cv *configurationValidator) addf(field, format string, args ...any) {
	cv.problems = append(cv.problems, field+": "+fmt.Sprintf(format, args...))
}

func (cv *configurationValidator) validate() {
	cv.validateSite()
	cv.validateDirectories()
	cv.validateHead()
	cv.validateMermaid()
	cv.validateNav()
	cv.validateSidebar()
	cv.validateSearch()
	cv.validateExtension()
}

func (cv *configurationValidator) validateSite() {
	c := cv.config
	if c.Version != CurrentVersion {
		cv.addf("version", "unsupported configuration version %q (expected %q)", c.Version, CurrentVersion)
	}
	if c.Title == "" {
		cv.addf("title", "must not be empty")
	}
	if !strings.HasPrefix(c.Base, "/") || !strings.HasSuffix(c.Base, "/") {
		cv.addf("base", "%q must start and end with /", c.Base)
	}
	if c.Theme.Logo != "" && !isInternalLink(c.Theme.Logo) && !isExternalLink(c.Theme.Logo) {
		cv.addf("theme.logo", "%q must be an absolute site path or URL", c.Theme.Logo)
	}
}

func (cv *configurationValidator) validateDirectories() {
	dirs := []struct{ field, value string }{
		{"cache_dir", cv.config.CacheDir},
		{"out_dir", cv.config.OutDir},
		{"build_dir", cv.config.BuildDir},
	}
	seen := map[string]string{}
	for _, d := range dirs {
		if strings.TrimSpace(d.value) == "" {
			cv.addf(d.field, "must not be empty")
			continue
		}
		clean := filepath.Clean(d.value)
		if other, dup := seen[clean]; dup {
			cv.addf(d.field, "%q is the same directory as %s", d.value, other)
			continue
		}
		seen[clean] = d.field
	}
}

func (cv *configurationValidator) validateHead() {
	for i, h := range cv.config.Head {
		field := fmt.Sprintf("head[%d]", i)
		a := atom.Lookup([]byte(h.Tag))
		if a == 0 || !headElements[a] {
			cv.addf(field, "<%s> is not allowed in the document head", h.Tag)
			continue
		}
		switch a {
		case atom.Link:
			if h.Attrs["rel"] == "" || h.Attrs["href"] == "" {
				cv.addf(field, "<link> needs rel and href attributes")
			}
		case atom.Meta:
			if len(h.Attrs) == 0 {
				cv.addf(field, "<meta> needs attributes")
			}
		}
		for name := range h.Attrs {
			if name == "" || strings.ContainsAny(name, " \t\n\"'<>/=") {
				cv.addf(field, "invalid attribute name %q", name)
			}
		}
	}
}

func (cv *configurationValidator) validateMermaid() {
	m := cv.config.Mermaid
	if !mermaidThemeNormalizer.Valid(m.Theme) {
		cv.addf("mermaid.theme", "unknown theme %q", m.Theme)
	}
	if !securityLevelNormalizer.Valid(m.SecurityLevel) {
		cv.addf("mermaid.security_level", "unknown security level %q", m.SecurityLevel)
	}
	if m.MaxTextSize <= 0 {
		cv.addf("mermaid.max_text_size", "must be positive, got %d", m.MaxTextSize)
	}
	for _, name := range sortedKeys(m.ThemeVariables) {
		value := m.ThemeVariables[name]
		if looksLikeColorVariable(name) || strings.HasPrefix(value, "#") {
			if !hexColorPattern.MatchString(value) {
				cv.addf("mermaid.theme_variables."+name, "%q is not a hex color", value)
			}
		}
	}
}

func looksLikeColorVariable(name string) bool {
	return strings.HasSuffix(name, "Color") || strings.HasSuffix(name, "Bkg")
}

func (cv *configurationValidator) validateNav() {
	cv.validateNavLevel("theme.nav", cv.config.Theme.Nav)
}

func (cv *configurationValidator) validateNavLevel(field string, entries []NavEntry) {
	labels := make([]string, 0, len(entries))
	for i, e := range entries {
		ef := fmt.Sprintf("%s[%d]", field, i)
		labels = append(labels, e.Text)
		if e.Text == "" {
			cv.addf(ef, "text must not be empty")
		}
		if e.Link == "" && len(e.Items) == 0 {
			cv.addf(ef, "%q needs a link or items", e.Text)
		}
		cv.validateLink(ef+".link", e.Link)
		cv.validateNavLevel(ef+".items", e.Items)
	}
	for _, dup := range duplicates(labels) {
		cv.addf(field, "duplicate label %q", dup)
	}
}

func (cv *configurationValidator) validateSidebar() {
	sb := cv.config.Theme.Sidebar
	for _, key := range sortedKeys(sb) {
		field := fmt.Sprintf("theme.sidebar[%q]", key)
		if !strings.HasPrefix(key, "/") || !strings.HasSuffix(key, "/") {
			cv.addf(field, "key must start and end with /")
		}
		groups := sb[key]
		labels := make([]string, 0, len(groups))
		for gi, g := range groups {
			gf := fmt.Sprintf("%s[%d]", field, gi)
			labels = append(labels, g.Text)
			if g.Text == "" {
				cv.addf(gf, "group text must not be empty")
			}
			if g.Link == "" && len(g.Items) == 0 {
				cv.addf(gf, "group %q has neither a link nor items", g.Text)
			}
			cv.validateLink(gf+".link", g.Link)
			cv.validateSidebarItems(gf+".items", g.Items)
		}
		for _, dup := range duplicates(labels) {
			cv.addf(field, "duplicate group label %q", dup)
		}
	}
}

func (cv *configurationValidator) validateSidebarItems(field string, items []SidebarItem) {
	labels := make([]string, 0, len(items))
	for i, it := range items {
		itf := fmt.Sprintf("%s[%d]", field, i)
		labels = append(labels, it.Text)
		if it.Text == "" {
			cv.addf(itf, "text must not be empty")
		}
		if it.Link == "" && len(it.Items) == 0 {
			cv.addf(itf, "%q needs a link or items", it.Text)
		}
		cv.validateLink(itf+".link", it.Link)
		cv.validateSidebarItems(itf+".items", it.Items)
	}
	for _, dup := range duplicates(labels) {
		cv.addf(field, "duplicate label %q", dup)
	}
}

func (cv *configurationValidator) validateLink(field, link string) {
	if link == "" {
		return
	}
	if strings.ContainsAny(link, " \t\n") {
		cv.addf(field, "%q contains whitespace", link)
		return
	}
	if !isInternalLink(link) && !isExternalLink(link) {
		cv.addf(field, "%q must start with / or be an absolute URL", link)
	}
}

func (cv *configurationValidator) validateSearch() {
	s := cv.config.Theme.Search
	if !searchProviderNormalizer.Valid(s.Provider) {
		cv.addf("theme.search.provider", "unknown provider %q", s.Provider)
		return
	}
	if s.Provider != SearchAlgolia {
		return
	}
	if s.Algolia == nil {
		cv.addf("theme.search.algolia", "required when provider is algolia")
		return
	}
	if s.Algolia.AppID == "" || s.Algolia.APIKey == "" || s.Algolia.IndexName == "" {
		cv.addf("theme.search.algolia", "app_id, api_key and index_name are required")
	}
}

func (cv *configurationValidator) validateExtension() {
	ext := cv.config.Extension
	if strings.TrimSpace(ext.Extends) == "" {
		cv.addf("theme_extension.extends", "must name a base theme")
	}
	if filepath.IsAbs(ext.Dir) {
		cv.addf("theme_extension.dir", "%q must be relative to the generator directory", ext.Dir)
	}
	names := make([]string, 0, len(ext.Components))
	for i, c := range ext.Components {
		field := fmt.Sprintf("theme_extension.components[%d]", i)
		names = append(names, c.Name)
		if !componentNamePattern.MatchString(c.Name) {
			cv.addf(field, "name %q must be PascalCase", c.Name)
		}
		if c.Source == "" {
			cv.addf(field, "%q needs a source module", c.Name)
		} else if filepath.Ext(c.Source) != ".vue" {
			cv.addf(field, "source %q must be a .vue module", c.Source)
		}
	}
	for _, dup := range duplicates(names) {
		cv.addf("theme_extension.components", "duplicate component name %q", dup)
	}
}

func isInternalLink(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

func isExternalLink(link string) bool {
	return strings.HasPrefix(link, "https://") || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "mailto:")
}

// duplicates returns each label that appears more than once, in first-seen order.
func duplicates(labels []string) []string {
	seen := make(map[string]int, len(labels))
	var out []string
	for _, l := range labels {
		if l == "" {
			continue
		}
		seen[l]++
		if seen[l] == 2 {
			out = append(out, l)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
