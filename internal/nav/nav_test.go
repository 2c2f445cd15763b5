package nav

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
)

func TestWalk_VisitsNavAndSidebar(t *testing.T) {
	cfg := config.Default()

	var refs []LinkRef
	Walk(cfg, func(r LinkRef) { refs = append(refs, r) })

	// 4 nav entries + 12 sidebar items
	require.Len(t, refs, 16)
	assert.Equal(t, OriginNav, refs[0].Origin)
	assert.Equal(t, []string{"Home"}, refs[0].Breadcrumb)

	var features *LinkRef
	for i := range refs {
		if refs[i].Label == "Features" {
			features = &refs[i]
		}
	}
	require.NotNil(t, features)
	assert.Equal(t, OriginSidebar, features.Origin)
	assert.Equal(t, "/platform/features", features.Link)
	assert.Equal(t, `sidebar "/" > Platform > Features`, features.Source())
}

func TestWalk_NestedItemsAndGroupLinks(t *testing.T) {
	cfg := &config.SiteConfig{Theme: config.ThemeConfig{
		Nav: []config.NavEntry{{Text: "More", Items: []config.NavEntry{{Text: "Team", Link: "/team"}}}},
		Sidebar: config.Sidebar{"/guide/": {{
			Text: "Guide", Link: "/guide/",
			Items: []config.SidebarItem{{Text: "Deep", Items: []config.SidebarItem{{Text: "Leaf", Link: "/guide/deep/leaf"}}}},
		}}},
	}}

	var crumbs []string
	Walk(cfg, func(r LinkRef) { crumbs = append(crumbs, r.Source()) })

	assert.Equal(t, []string{
		"nav More > Team",
		`sidebar "/guide/" > Guide`,
		`sidebar "/guide/" > Guide > Deep > Leaf`,
	}, crumbs)
}

func TestLinks_DedupAndSkipExternal(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Nav = append(cfg.Theme.Nav,
		config.NavEntry{Text: "GitHub", Link: "https://github.com/example"},
		config.NavEntry{Text: "Features#intro", Link: "/platform/features#intro"},
	)

	links := Links(cfg)
	assert.Contains(t, links, "/platform/features")
	assert.NotContains(t, links, "https://github.com/example")
	assert.Equal(t, 1, countOf(links, "/platform/features"))
	assert.Equal(t, 1, countOf(links, "/"))
	assert.IsIncreasing(t, links)
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}

func TestSidebarFor_LongestPrefix(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Sidebar["/platform/"] = []config.SidebarGroup{{Text: "Platform only", Link: "/platform/"}}

	prefix, groups, ok := SidebarFor(cfg, "/platform/features")
	require.True(t, ok)
	assert.Equal(t, "/platform/", prefix)
	assert.Equal(t, "Platform only", groups[0].Text)

	prefix, _, ok = SidebarFor(cfg, "/platform")
	require.True(t, ok)
	assert.Equal(t, "/platform/", prefix)

	prefix, groups, ok = SidebarFor(cfg, "/vision")
	require.True(t, ok)
	assert.Equal(t, "/", prefix)
	assert.Len(t, groups, 4)
}

func TestSidebarFor_NoMatch(t *testing.T) {
	cfg := &config.SiteConfig{Theme: config.ThemeConfig{Sidebar: config.Sidebar{"/guide/": nil}}}
	_, _, ok := SidebarFor(cfg, "/blog/post")
	assert.False(t, ok)
}

func TestRoute(t *testing.T) {
	tests := map[string]string{
		"":                      "/",
		"/":                     "/",
		"/vision":               "/vision",
		"/vision.html":          "/vision",
		"/vision.md":            "/vision",
		"/platform/":            "/platform/",
		"/platform/features#x":  "/platform/features",
		"/platform//features?q": "/platform/features",
		"#top":                  "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, Route(in), "Route(%q)", in)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, []string{"index.md"}, Resolve("/"))
	assert.Equal(t, []string{"platform/index.md"}, Resolve("/platform/"))
	assert.Equal(t, []string{"vision.md", "vision/index.md"}, Resolve("/vision"))
	assert.Equal(t, []string{"business/model.md", "business/model/index.md"}, Resolve("/business/model.html#pricing"))
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal("https://example.com"))
	assert.True(t, IsExternal("mailto:team@example.com"))
	assert.True(t, IsExternal("//cdn.example.com/x.js"))
	assert.False(t, IsExternal("/platform/"))
}

func TestDuplicateLabels(t *testing.T) {
	assert.Equal(t, []string{"A"}, DuplicateLabels([]string{"A", "B", "A", "A"}))
	assert.Empty(t, DuplicateLabels([]string{"A", "B"}))
}

func TestPrint(t *testing.T) {
	cfg := &config.SiteConfig{Theme: config.ThemeConfig{
		Nav: []config.NavEntry{{Text: "Home", Link: "/"}},
		Sidebar: config.Sidebar{"/": {{
			Text:  "Platform",
			Items: []config.SidebarItem{{Text: "Features", Link: "/platform/features"}},
		}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, cfg))
	assert.Equal(t, "nav\n  Home -> /\nsidebar /\n  Platform\n    Features -> /platform/features\n", buf.String())
}
