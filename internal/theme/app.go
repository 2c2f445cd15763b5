// Package theme models the theme extension step: a descriptor naming a base
// theme and the display components it registers into the host application.
package theme

import (
	"slices"
	"sync"
)

// Definition is whatever the host application binds to a component name.
// For the generated site it is the resolved source module path.
type Definition string

// App is the host application handle passed to EnhanceApp. Its component
// registry is global to the application instance.
type App struct {
	mu         sync.RWMutex
	components map[string]Definition
	writes     int
}

// NewApp returns an application with an empty component registry.
func NewApp() *App {
	return &App{components: map[string]Definition{}}
}

// Component registers def under name. Registering an existing name rebinds it.
func (a *App) Component(name string, def Definition) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.components[name] = def
	a.writes++
}

// Lookup returns the definition bound to name.
func (a *App) Lookup(name string) (Definition, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	def, ok := a.components[name]
	return def, ok
}

// Names returns the registered component names, sorted.
func (a *App) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.components))
	for n := range a.components {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Snapshot copies the registry.
func (a *App) Snapshot() map[string]Definition {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]Definition, len(a.components))
	for k, v := range a.components {
		out[k] = v
	}
	return out
}

// Registrations counts Component calls, including rebinds.
func (a *App) Registrations() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.writes
}
