package render

import (
	"bytes"
	"encoding/json"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// siteJSON is the configuration record in the generator's own shape.
type siteJSON struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Base        string           `json:"base"`
	CacheDir    string           `json:"cacheDir"`
	OutDir      string           `json:"outDir"`
	BuildDir    string           `json:"buildDir"`
	LastUpdated bool             `json:"lastUpdated"`
	CleanURLs   bool             `json:"cleanUrls"`
	Head        []config.HeadTag `json:"head"`
	Mermaid     *mermaidJSON     `json:"mermaid,omitempty"`
	ThemeConfig themeJSON        `json:"themeConfig"`
}

type mermaidJSON struct {
	Theme          string            `json:"theme"`
	SecurityLevel  string            `json:"securityLevel"`
	MaxTextSize    int               `json:"maxTextSize"`
	ThemeVariables map[string]string `json:"themeVariables,omitempty"`
}

type themeJSON struct {
	Logo    string                   `json:"logo,omitempty"`
	Nav     []navJSON                `json:"nav,omitempty"`
	Sidebar map[string][]sidebarJSON `json:"sidebar,omitempty"`
	Search  *searchJSON              `json:"search,omitempty"`
}

type navJSON struct {
	Text  string    `json:"text"`
	Link  string    `json:"link,omitempty"`
	Items []navJSON `json:"items,omitempty"`
}

type sidebarJSON struct {
	Text      string        `json:"text"`
	Link      string        `json:"link,omitempty"`
	Collapsed *bool         `json:"collapsed,omitempty"`
	Items     []sidebarJSON `json:"items,omitempty"`
}

type searchJSON struct {
	Provider string         `json:"provider"`
	Options  *algoliaOption `json:"options,omitempty"`
}

type algoliaOption struct {
	AppID     string `json:"appId"`
	APIKey    string `json:"apiKey"`
	IndexName string `json:"indexName"`
}

// GeneratorConfig returns the configuration as the generator reads it, as
// indented JSON. withMermaid controls whether the diagram block is emitted.
func GeneratorConfig(cfg *config.SiteConfig, withMermaid bool) ([]byte, error) {
	head := cfg.Head
	if head == nil {
		head = []config.HeadTag{}
	}
	out := siteJSON{
		Title:       cfg.Title,
		Description: cfg.Description,
		Base:        cfg.Base,
		CacheDir:    cfg.CacheDir,
		OutDir:      cfg.OutDir,
		BuildDir:    cfg.BuildDir,
		LastUpdated: cfg.LastUpdated,
		CleanURLs:   cfg.CleanURLs,
		Head:        head,
		ThemeConfig: themeJSON{
			Logo:   cfg.Theme.Logo,
			Nav:    navEntries(cfg.Theme.Nav),
			Search: search(cfg.Theme.Search),
		},
	}
	if withMermaid {
		out.Mermaid = &mermaidJSON{
			Theme:          string(cfg.Mermaid.Theme),
			SecurityLevel:  string(cfg.Mermaid.SecurityLevel),
			MaxTextSize:    cfg.Mermaid.MaxTextSize,
			ThemeVariables: cfg.Mermaid.ThemeVariables,
		}
	}
	if len(cfg.Theme.Sidebar) > 0 {
		out.ThemeConfig.Sidebar = make(map[string][]sidebarJSON, len(cfg.Theme.Sidebar))
		for key, groups := range cfg.Theme.Sidebar {
			conv := make([]sidebarJSON, len(groups))
			for i, g := range groups {
				conv[i] = sidebarJSON{Text: g.Text, Link: g.Link, Collapsed: g.Collapsed, Items: sidebarItems(g.Items)}
			}
			out.ThemeConfig.Sidebar[key] = conv
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func navEntries(entries []config.NavEntry) []navJSON {
	if len(entries) == 0 {
		return nil
	}
	out := make([]navJSON, len(entries))
	for i, e := range entries {
		out[i] = navJSON{Text: e.Text, Link: e.Link, Items: navEntries(e.Items)}
	}
	return out
}

func sidebarItems(items []config.SidebarItem) []sidebarJSON {
	if len(items) == 0 {
		return nil
	}
	out := make([]sidebarJSON, len(items))
	for i, it := range items {
		out[i] = sidebarJSON{Text: it.Text, Link: it.Link, Items: sidebarItems(it.Items)}
	}
	return out
}

func search(s config.SearchConfig) *searchJSON {
	switch s.Provider {
	case config.SearchLocal:
		return &searchJSON{Provider: "local"}
	case config.SearchAlgolia:
		out := &searchJSON{Provider: "algolia"}
		if s.Algolia != nil {
			out.Options = &algoliaOption{AppID: s.Algolia.AppID, APIKey: s.Algolia.APIKey, IndexName: s.Algolia.IndexName}
		}
		return out
	default:
		return nil
	}
}
