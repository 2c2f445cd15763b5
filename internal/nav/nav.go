// Package nav provides read-only operations over the navigation bar and
// sidebar trees of a site configuration: walking, flattening, route lookup
// and link-to-page resolution.
package nav

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Origin tells where a link was declared.
type Origin string

const (
	OriginNav     Origin = "nav"
	OriginSidebar Origin = "sidebar"
)

// LinkRef is a link declared somewhere in the navigation trees.
type LinkRef struct {
	Origin     Origin
	Breadcrumb []string // labels from the root of the tree down to this entry
	Label      string
	Link       string
}

// Source renders the breadcrumb for reports, e.g. `sidebar "/" > Platform > Features`.
func (r LinkRef) Source() string {
	return string(r.Origin) + " " + strings.Join(r.Breadcrumb, " > ")
}

// Walk visits every entry of the nav and sidebar trees that carries a link.
// Sidebar prefixes are visited in sorted order so output is deterministic.
func Walk(cfg *config.SiteConfig, fn func(LinkRef)) {
	if cfg == nil {
		return
	}
	walkNav(cfg.Theme.Nav, nil, fn)
	for _, key := range SidebarKeys(cfg.Theme.Sidebar) {
		root := []string{fmt.Sprintf("%q", key)}
		for _, g := range cfg.Theme.Sidebar[key] {
			crumb := appendCrumb(root, g.Text)
			if g.Link != "" {
				fn(LinkRef{Origin: OriginSidebar, Breadcrumb: crumb, Label: g.Text, Link: g.Link})
			}
			walkSidebar(g.Items, crumb, fn)
		}
	}
}

func walkNav(entries []config.NavEntry, parent []string, fn func(LinkRef)) {
	for _, e := range entries {
		crumb := appendCrumb(parent, e.Text)
		if e.Link != "" {
			fn(LinkRef{Origin: OriginNav, Breadcrumb: crumb, Label: e.Text, Link: e.Link})
		}
		walkNav(e.Items, crumb, fn)
	}
}

func walkSidebar(items []config.SidebarItem, parent []string, fn func(LinkRef)) {
	for _, it := range items {
		crumb := appendCrumb(parent, it.Text)
		if it.Link != "" {
			fn(LinkRef{Origin: OriginSidebar, Breadcrumb: crumb, Label: it.Text, Link: it.Link})
		}
		walkSidebar(it.Items, crumb, fn)
	}
}

func appendCrumb(parent []string, label string) []string {
	out := make([]string, len(parent), len(parent)+1)
	copy(out, parent)
	return append(out, label)
}

// Links returns every distinct internal link target, sorted.
func Links(cfg *config.SiteConfig) []string {
	seen := map[string]struct{}{}
	Walk(cfg, func(r LinkRef) {
		if IsExternal(r.Link) {
			return
		}
		seen[Route(r.Link)] = struct{}{}
	})
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// SidebarKeys returns the sidebar prefixes in sorted order.
func SidebarKeys(sb config.Sidebar) []string {
	keys := make([]string, 0, len(sb))
	for k := range sb {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SidebarFor returns the sidebar shown on route: the groups of the longest
// configured prefix that matches it. ok is false when no prefix matches.
func SidebarFor(cfg *config.SiteConfig, route string) (prefix string, groups []config.SidebarGroup, ok bool) {
	route = Route(route)
	if !strings.HasSuffix(route, "/") {
		// "/platform" is the page for the "/platform/" prefix too.
		route += "/"
	}
	for key, g := range cfg.Theme.Sidebar {
		if strings.HasPrefix(route, key) && len(key) > len(prefix) {
			prefix, groups, ok = key, g, true
		}
	}
	return prefix, groups, ok
}

// DuplicateLabels reports labels used more than once among siblings.
func DuplicateLabels(labels []string) []string {
	count := map[string]int{}
	var out []string
	for _, l := range labels {
		count[l]++
		if count[l] == 2 {
			out = append(out, l)
		}
	}
	return out
}

// IsExternal reports whether link leaves the site.
func IsExternal(link string) bool {
	return strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") || strings.HasPrefix(link, "//")
}

// Route strips the fragment, the query and a trailing .html / .md suffix,
// and cleans the path while keeping a trailing slash.
func Route(link string) string {
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return "/"
	}
	dir := strings.HasSuffix(link, "/")
	link = strings.TrimSuffix(link, ".html")
	link = strings.TrimSuffix(link, ".md")
	clean := path.Clean("/" + strings.TrimPrefix(link, "/"))
	if dir && clean != "/" {
		clean += "/"
	}
	return clean
}

// Resolve returns the content files (relative to the source dir, slash
// separated) that can serve link, in preference order.
func Resolve(link string) []string {
	route := Route(link)
	if route == "/" {
		return []string{"index.md"}
	}
	rel := strings.TrimPrefix(route, "/")
	if strings.HasSuffix(rel, "/") {
		return []string{rel + "index.md"}
	}
	return []string{rel + ".md", rel + "/index.md"}
}

// Print writes the navigation and sidebar trees as an indented outline.
func Print(w io.Writer, cfg *config.SiteConfig) error {
	p := &printer{w: w}
	p.line(0, "nav")
	for _, e := range cfg.Theme.Nav {
		p.navEntry(1, e)
	}
	for _, key := range SidebarKeys(cfg.Theme.Sidebar) {
		p.line(0, fmt.Sprintf("sidebar %s", key))
		for _, g := range cfg.Theme.Sidebar[key] {
			p.entry(1, g.Text, g.Link)
			for _, it := range g.Items {
				p.sidebarItem(2, it)
			}
		}
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), s)
}

func (p *printer) entry(depth int, text, link string) {
	if link == "" {
		p.line(depth, text)
		return
	}
	p.line(depth, fmt.Sprintf("%s -> %s", text, link))
}

func (p *printer) navEntry(depth int, e config.NavEntry) {
	p.entry(depth, e.Text, e.Link)
	for _, c := range e.Items {
		p.navEntry(depth+1, c)
	}
}

func (p *printer) sidebarItem(depth int, it config.SidebarItem) {
	p.entry(depth, it.Text, it.Link)
	for _, c := range it.Items {
		p.sidebarItem(depth+1, c)
	}
}
