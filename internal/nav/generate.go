package nav

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// PageRef is the subset of a content page the sidebar generator needs.
type PageRef struct {
	Route string
	Title string
}

// GenerateOptions tunes automatic sidebar generation.
type GenerateOptions struct {
	// RootGroup labels the group holding top-level pages. Defaults to "Overview".
	RootGroup string
	// Prefix is the sidebar key the groups are stored under. Defaults to "/".
	Prefix string
}

// Label turns a path segment such as "use-cases" into "Use Cases". It only
// upper-cases word starts, so "ai-systems" becomes "Ai Systems" while
// "AI-systems" keeps its acronym. Page titles take precedence over it in
// Generate, which is where acronyms should normally come from.
func Label(segment string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English, cases.NoLower).String(strings.TrimSpace(s))
}

// Generate builds a sidebar from discovered pages: top-level pages form the
// root group and every first-level directory becomes its own group, in route
// order. A directory index page becomes the group link rather than an item.
func Generate(pages []PageRef, opts GenerateOptions) config.Sidebar {
	if opts.RootGroup == "" {
		opts.RootGroup = "Overview"
	}
	if opts.Prefix == "" {
		opts.Prefix = "/"
	}

	sorted := slices.Clone(pages)
	slices.SortFunc(sorted, func(a, b PageRef) int { return strings.Compare(Route(a.Route), Route(b.Route)) })

	root := config.SidebarGroup{Text: opts.RootGroup}
	sections := map[string]*config.SidebarGroup{}
	var order []string

	for _, p := range sorted {
		route := Route(p.Route)
		if !strings.HasPrefix(route, opts.Prefix) {
			continue
		}
		rel := strings.TrimPrefix(route, opts.Prefix)
		section, rest, nested := strings.Cut(rel, "/")
		title := p.Title
		if !nested {
			switch {
			case title != "":
			case section == "":
				title = "Home"
			default:
				title = Label(section)
			}
			root.Items = append(root.Items, config.SidebarItem{Text: title, Link: route})
			continue
		}
		g, ok := sections[section]
		if !ok {
			g = &config.SidebarGroup{Text: Label(section)}
			sections[section] = g
			order = append(order, section)
		}
		if rest == "" {
			// directory index
			g.Link = route
			if p.Title != "" {
				g.Text = p.Title
			}
			continue
		}
		if title == "" {
			title = Label(lastSegment(rest))
		}
		g.Items = append(g.Items, config.SidebarItem{Text: title, Link: route})
	}

	var groups []config.SidebarGroup
	if len(root.Items) > 0 {
		root.Items = disambiguate(root.Items)
		groups = append(groups, root)
	}
	for _, s := range order {
		g := sections[s]
		g.Items = disambiguate(g.Items)
		groups = append(groups, *g)
	}
	return config.Sidebar{opts.Prefix: groups}
}

func lastSegment(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// disambiguate suffixes repeated labels with their link so siblings stay unique.
func disambiguate(items []config.SidebarItem) []config.SidebarItem {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Text
	}
	dups := DuplicateLabels(labels)
	if len(dups) == 0 {
		return items
	}
	for i := range items {
		if slices.Contains(dups, items[i].Text) {
			items[i].Text += " (" + items[i].Link + ")"
		}
	}
	return items
}
