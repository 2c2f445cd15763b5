package config

import "path/filepath"

// Default returns the Meme-App Factory documentation site as shipped.
func Default() *SiteConfig {
	return &SiteConfig{
		Version:     CurrentVersion,
		Title:       "Meme-App Factory",
		Description: "AI-Driven Brand Creation and Management Platform",
		Base:        "/",
		SrcDir:      "src",
		CacheDir:    ".vitepress/.cache",
		OutDir:      ".vitepress/dist",
		BuildDir:    ".vitepress/.temp",
		LastUpdated: true,
		CleanURLs:   true,
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]string{"rel": "stylesheet", "href": "/css/styles.css"}},
		},
		Mermaid: MermaidConfig{
			Theme:         MermaidThemeDefault,
			SecurityLevel: SecurityLoose,
			MaxTextSize:   50000,
			ThemeVariables: map[string]string{
				"nodeTextColor":      "#000000",
				"mainBkg":            "#ffffff",
				"textColor":          "#000000",
				"classFontColor":     "#000000",
				"labelTextColor":     "#000000",
				"stateLabelColor":    "#000000",
				"entityTextColor":    "#000000",
				"flowchartTextColor": "#000000",
			},
		},
		Theme: ThemeConfig{
			Logo: "/images/logo.png",
			Nav: []NavEntry{
				{Text: "Home", Link: "/"},
				{Text: "Platform", Link: "/platform/"},
				{Text: "Technology", Link: "/technology/"},
				{Text: "Business", Link: "/business/"},
			},
			Sidebar: Sidebar{
				"/": {
					{Text: "Overview", Items: []SidebarItem{
						{Text: "Introduction", Link: "/"},
						{Text: "Vision & Mission", Link: "/vision"},
						{Text: "Market Opportunity", Link: "/market"},
					}},
					{Text: "Platform", Items: []SidebarItem{
						{Text: "Features", Link: "/platform/features"},
						{Text: "Use Cases", Link: "/platform/use-cases"},
						{Text: "Benefits", Link: "/platform/benefits"},
					}},
					{Text: "Technology", Items: []SidebarItem{
						{Text: "Architecture", Link: "/technology/architecture"},
						{Text: "AI Systems", Link: "/technology/ai-systems"},
						{Text: "Security", Link: "/technology/security"},
					}},
					{Text: "Business", Items: []SidebarItem{
						{Text: "Model", Link: "/business/model"},
						{Text: "Token Economics", Link: "/business/tokenomics"},
						{Text: "Roadmap", Link: "/business/roadmap"},
					}},
				},
			},
			Search: SearchConfig{Provider: SearchNone},
		},
		Extension: ThemeExtension{
			Extends: "default",
			Dir:     "theme",
			Components: []ComponentSpec{
				{Name: "ContractDiagram", Source: "../components/ContractDiagram.vue"},
				{Name: "FullscreenDiagram", Source: "../components/FullscreenDiagram.vue"},
			},
		},
	}
}

// applyDefaults fills fields a loaded file left empty. It runs after
// normalization so canonical values drive the defaults.
func applyDefaults(cfg *SiteConfig) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Base == "" {
		cfg.Base = "/"
	}
	if cfg.SrcDir == "" {
		cfg.SrcDir = "src"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = ".vitepress/.cache"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = ".vitepress/dist"
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = ".vitepress/.temp"
	}
	if cfg.Mermaid.MaxTextSize == 0 {
		cfg.Mermaid.MaxTextSize = 50000
	}
	if cfg.Extension.Extends == "" {
		cfg.Extension.Extends = "default"
	}
	if cfg.Extension.Dir == "" {
		cfg.Extension.Dir = "theme"
	}
}

func joinDir(base, elem string) string {
	if base == "" {
		base = "."
	}
	return filepath.Join(base, elem)
}
