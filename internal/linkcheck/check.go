package linkcheck

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/pages"
)

// Check verifies every internal nav and sidebar link against the page index
// and that labels are unique among siblings. External links are skipped.
func Check(cfg *config.SiteConfig, index *pages.Index) *Report {
	r := &Report{}
	nav.Walk(cfg, func(ref nav.LinkRef) {
		if nav.IsExternal(ref.Link) {
			return
		}
		r.Checked++
		if !index.Has(ref.Link) {
			r.add(ref.Source(), ref.Label, ref.Link, ReasonMissingPage)
		}
	})
	checkLabels(cfg, r)
	return r
}

func checkLabels(cfg *config.SiteConfig, r *Report) {
	var navLevel func(entries []config.NavEntry, crumb string)
	navLevel = func(entries []config.NavEntry, crumb string) {
		labels := make([]string, len(entries))
		for i, e := range entries {
			labels[i] = e.Text
			navLevel(e.Items, crumb+" > "+e.Text)
		}
		for _, d := range nav.DuplicateLabels(labels) {
			r.add(crumb, d, "", ReasonDuplicateLabel)
		}
	}
	navLevel(cfg.Theme.Nav, "nav")

	for _, key := range nav.SidebarKeys(cfg.Theme.Sidebar) {
		groups := cfg.Theme.Sidebar[key]
		src := `sidebar "` + key + `"`
		labels := make([]string, len(groups))
		for i, g := range groups {
			labels[i] = g.Text
			itemLevel(g.Items, src+" > "+g.Text, r)
		}
		for _, d := range nav.DuplicateLabels(labels) {
			r.add(src, d, "", ReasonDuplicateLabel)
		}
	}
}

func itemLevel(items []config.SidebarItem, crumb string, r *Report) {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Text
		itemLevel(it.Items, crumb+" > "+it.Text, r)
	}
	for _, d := range nav.DuplicateLabels(labels) {
		r.add(crumb, d, "", ReasonDuplicateLabel)
	}
}

// CheckPages verifies links inside page bodies. Relative destinations are
// resolved against the linking page's directory.
func CheckPages(list []pages.Page, index *pages.Index) *Report {
	r := &Report{}
	for _, p := range list {
		for _, l := range p.Links {
			if !l.IsPageLink() {
				continue
			}
			r.Checked++
			target := Absolute(p.File, l.Destination)
			if !index.Has(target) {
				r.add(p.File, "", l.Destination, ReasonMissingPage)
			}
		}
	}
	return r
}

// Absolute resolves a link written in the content file from against the
// site root.
func Absolute(from, dest string) string {
	if strings.HasPrefix(dest, "/") {
		return dest
	}
	var suffix string
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest, suffix = dest[:i], dest[i:]
	}
	if dest == "" {
		return "/" + from + suffix
	}
	joined := path.Join("/", path.Dir(from), dest)
	if strings.HasSuffix(dest, "/") && joined != "/" {
		joined += "/"
	}
	return joined + suffix
}
