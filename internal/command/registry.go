package command

import (
	"context"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

// Handler runs one subcommand with its positional arguments and options.
type Handler func(ctx context.Context, args []string, opts Options) error

// Entry is one row of a Group's command table.
type Entry struct {
	Method  string // implementing method identifier, e.g. "is_installed"
	Alias   string // exposed subcommand word; empty means Method is exposed
	Short   string
	Long    string
	Example string
	Run     Handler
}

// Name returns the word the entry is invoked by.
func (e Entry) Name() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Method
}

// Descriptor identifies an exposed command.
type Descriptor struct {
	Group  string
	Method string
	Name   string
}

// Group is a named command table bound to one target.
type Group struct {
	Name    string
	Entries []Entry
}

// Commands lists a descriptor per entry, in table order.
func (g *Group) Commands() []Descriptor {
	out := make([]Descriptor, 0, len(g.Entries))
	for _, e := range g.Entries {
		out = append(out, Descriptor{Group: g.Name, Method: e.Method, Name: e.Name()})
	}
	return out
}

// Has reports whether some entry exposes name.
func (g *Group) Has(name string) bool {
	_, ok := g.lookup(name)
	return ok
}

// Resolve returns the method identifier behind name.
//
// Errors:
//
//   - unyson-error-command-not-found -- when no entry exposes name
func (g *Group) Resolve(name string) (string, error) {
	e, ok := g.lookup(name)
	if !ok {
		return "", clierr.ErrorCommandNotFound(g.Name, name)
	}
	return e.Method, nil
}

// Dispatch resolves name and invokes its handler with args and opts unchanged.
//
// Errors:
//
//   - unyson-error-command-not-found -- when no entry exposes name
//   - unyson-error-method-not-found -- when the matched entry has no handler
//   - anything the handler returns
func (g *Group) Dispatch(ctx context.Context, name string, args []string, opts Options) error {
	e, ok := g.lookup(name)
	if !ok {
		return clierr.ErrorCommandNotFound(g.Name, name)
	}
	if e.Run == nil {
		return clierr.ErrorMethodNotFound(g.Name, e.Method)
	}
	util.Log.Debugf("Dispatching %s %s -> %s (args=%v opts=%v)", g.Name, name, e.Method, args, opts)
	return e.Run(ctx, args, opts)
}

// Validate returns every exposed name that appears more than once.
func (g *Group) Validate() []string {
	seen := make(map[string]int, len(g.Entries))
	var dups []string
	for _, e := range g.Entries {
		seen[e.Name()]++
		if seen[e.Name()] == 2 {
			dups = append(dups, e.Name())
		}
	}
	return dups
}

// Prepend returns a copy of g with entries placed ahead of the existing ones,
// so they take precedence on name collisions.
func (g *Group) Prepend(entries ...Entry) *Group {
	merged := make([]Entry, 0, len(entries)+len(g.Entries))
	merged = append(merged, entries...)
	merged = append(merged, g.Entries...)
	return &Group{Name: g.Name, Entries: merged}
}

func (g *Group) lookup(name string) (Entry, bool) {
	for _, e := range g.Entries {
		if e.Name() == name {
			return e, true
		}
	}
	return Entry{}, false
}
