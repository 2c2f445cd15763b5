package config

import "path/filepath"

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1"

// SiteConfig is the configuration record handed to the documentation-site
// generator. It is built once by Load (or Default) and treated as read-only
// afterwards.
type SiteConfig struct {
	// Root is the directory relative paths are resolved against; Load sets
	// it to the config file's directory.
	Root string `yaml:"-"`

	Version     string `yaml:"version"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Base        string `yaml:"base"`

	// SrcDir is the markdown content root; the generator directory
	// (.vitepress) lives directly inside it.
	SrcDir   string `yaml:"src_dir"`
	CacheDir string `yaml:"cache_dir"`
	OutDir   string `yaml:"out_dir"`
	BuildDir string `yaml:"build_dir"`

	LastUpdated bool `yaml:"last_updated"`
	CleanURLs   bool `yaml:"clean_urls"`

	Head      []HeadTag      `yaml:"head,omitempty"`
	Mermaid   MermaidConfig  `yaml:"mermaid"`
	Theme     ThemeConfig    `yaml:"theme"`
	Extension ThemeExtension `yaml:"theme_extension"`
}

// MermaidConfig carries the options passed through to the diagram renderer.
type MermaidConfig struct {
	Theme          MermaidTheme      `yaml:"theme"`
	SecurityLevel  SecurityLevel     `yaml:"security_level"`
	MaxTextSize    int               `yaml:"max_text_size"`
	ThemeVariables map[string]string `yaml:"theme_variables,omitempty"`
}

// ThemeConfig is the default theme's option block (logo, navigation, search).
type ThemeConfig struct {
	Logo    string       `yaml:"logo,omitempty"`
	Nav     []NavEntry   `yaml:"nav,omitempty"`
	Sidebar Sidebar      `yaml:"sidebar,omitempty"`
	Search  SearchConfig `yaml:"search"`
}

// NavEntry is one top navigation link; entries with Items render as dropdowns.
type NavEntry struct {
	Text  string     `yaml:"text"`
	Link  string     `yaml:"link,omitempty"`
	Items []NavEntry `yaml:"items,omitempty"`
}

// Sidebar maps a route prefix ("/", "/platform/") to the groups shown for it.
type Sidebar map[string][]SidebarGroup

// SidebarGroup is a titled section of the sidebar.
type SidebarGroup struct {
	Text      string        `yaml:"text"`
	Link      string        `yaml:"link,omitempty"`
	Collapsed *bool         `yaml:"collapsed,omitempty"`
	Items     []SidebarItem `yaml:"items"`
}

// SidebarItem is a sidebar link, optionally nesting further items.
type SidebarItem struct {
	Text  string        `yaml:"text"`
	Link  string        `yaml:"link,omitempty"`
	Items []SidebarItem `yaml:"items,omitempty"`
}

// SearchConfig selects the search provider.
type SearchConfig struct {
	Provider SearchProvider `yaml:"provider"`
	Algolia  *AlgoliaConfig `yaml:"algolia,omitempty"`
}

// AlgoliaConfig holds DocSearch credentials; values usually come from ${ENV}.
type AlgoliaConfig struct {
	AppID     string `yaml:"app_id"`
	APIKey    string `yaml:"api_key"`
	IndexName string `yaml:"index_name"`
}

// ThemeExtension declares how the default theme is extended: the base theme
// and the display components registered into the application at startup.
type ThemeExtension struct {
	Extends    string          `yaml:"extends"`
	Dir        string          `yaml:"dir"`
	Components []ComponentSpec `yaml:"components,omitempty"`
}

// ComponentSpec names a component and its source module relative to the theme dir.
type ComponentSpec struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// ContentDir is the markdown content root resolved against Root.
func (c *SiteConfig) ContentDir() string {
	if filepath.IsAbs(c.SrcDir) || c.Root == "" {
		return joinDir(c.SrcDir, "")
	}
	return filepath.Join(c.Root, c.SrcDir)
}

// GeneratorDir is the directory holding generator config and theme modules.
func (c *SiteConfig) GeneratorDir() string {
	return filepath.Join(c.ContentDir(), ".vitepress")
}

// ThemeDir is the directory holding the theme entry module.
func (c *SiteConfig) ThemeDir() string {
	return joinDir(c.GeneratorDir(), c.Extension.Dir)
}

// OutputDir is where the generator writes the built site.
func (c *SiteConfig) OutputDir() string {
	if filepath.IsAbs(c.OutDir) {
		return c.OutDir
	}
	return filepath.Join(c.ContentDir(), c.OutDir)
}
