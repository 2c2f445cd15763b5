package theme

import (
	"slices"
	"sync"
)

// Features describes what a base theme provides out of the box.
type Features struct {
	Name string
	// ImportPath is the module the theme entry imports the base theme from.
	ImportPath string
	// Stylesheet, if set, is imported alongside the base theme.
	Stylesheet string
	// LocalSearch means the theme ships a client-side search index.
	LocalSearch bool
	// AlgoliaSearch means the theme can drive DocSearch.
	AlgoliaSearch bool
	// NeedsMermaidPlugin means diagrams require the mermaid config wrapper.
	NeedsMermaidPlugin bool
	LastUpdated        bool
}

// Theme is a base theme a descriptor can extend.
type Theme interface {
	Name() string
	Features() Features
}

var (
	regMu sync.RWMutex
	reg   = map[string]Theme{}
)

// Register adds a base theme. Duplicate names are ignored.
func Register(t Theme) {
	if t == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[t.Name()]; ok {
		return
	}
	reg[t.Name()] = t
}

// Get returns the base theme registered under name, or nil.
func Get(name string) Theme {
	regMu.RLock()
	defer regMu.RUnlock()
	return reg[name]
}

// Registered lists the registered base theme names, sorted.
func Registered() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

type staticTheme struct{ f Features }

func (s staticTheme) Name() string       { return s.f.Name }
func (s staticTheme) Features() Features { return s.f }

func init() {
	Register(staticTheme{Features{
		Name:               "default",
		ImportPath:         "vitepress/theme",
		LocalSearch:        true,
		AlgoliaSearch:      true,
		NeedsMermaidPlugin: true,
		LastUpdated:        true,
	}})
	Register(staticTheme{Features{
		Name:               "default-without-fonts",
		ImportPath:         "vitepress/theme-without-fonts",
		LocalSearch:        true,
		AlgoliaSearch:      true,
		NeedsMermaidPlugin: true,
		LastUpdated:        true,
	}})
}
