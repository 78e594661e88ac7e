package extension

import (
	"fmt"
	"sort"
	"strings"

	"unyson/internal/app"
	"unyson/internal/command"
	"unyson/internal/config"
)

// Factory builds the command group of one extension.
type Factory func(a *app.Context, name string) *command.Group

// Registry maps extension names to the factory of their command group.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register sets the factory for name. It panics if name already exists.
// Names are case-insensitive, as config keys are.
func (r *Registry) Register(name string, f Factory) {
	key := strings.ToLower(name)
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("extension %s already registered", name))
	}
	r.factories[key] = f
}

// Lookup returns the factory and whether it exists.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[strings.ToLower(name)]
	return f, ok
}

// Names lists registered extensions in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RegisterConfigured adds a scripted group for every extension that
// declares commands in cfg.
func RegisterConfigured(r *Registry, cfg *config.GlobalConfig) error {
	names := make([]string, 0, len(cfg.Extensions))
	for n := range cfg.Extensions {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		ext := cfg.Extensions[name]
		if len(ext.Commands) == 0 {
			continue
		}
		if _, exists := r.Lookup(name); exists {
			return fmt.Errorf("extension %s already has registered commands", name)
		}
		r.Register(name, Scripted(ext.Commands))
	}
	return nil
}
