package extension

import (
	"context"
	"strings"

	"unyson/internal/app"
	"unyson/internal/clierr"
	"unyson/internal/command"
	"unyson/internal/host"
	"unyson/internal/util"
)

// Generic returns the extensions group bound to name: `ext backups install`
// behaves as `exts install backups`.
func Generic(a *app.Context, name string) *command.Group {
	base := NewGroup(a)
	g := &command.Group{Name: "ext " + name, Entries: make([]command.Entry, 0, len(base.Entries))}
	for _, e := range base.Entries {
		run := e.Run
		e.Run = func(ctx context.Context, args []string, opts command.Options) error {
			return run(ctx, append([]string{name}, args...), opts)
		}
		g.Entries = append(g.Entries, e)
	}
	return g
}

const extUsageTip = "%cCommand:%n unyson ext <extension-name> <command> [--<arg-name>]"

// Dispatcher runs `ext <name> <subcommand>` invocations.
type Dispatcher struct {
	App      *app.Context
	Registry *Registry
}

// Group returns the command group for name and whether it is the generic one.
func (d *Dispatcher) Group(name string) (*command.Group, bool) {
	if f, ok := d.Registry.Lookup(name); ok {
		return f(d.App, strings.ToLower(name)), false
	}
	return Generic(d.App, name), true
}

// Run parses raw as `<name> <subcommand> [args...] [--k=v...]` and dispatches.
//
// Errors:
//
//   - unyson-error-usage -- when the name or subcommand is missing
//   - unyson-error-extension-not-found -- when the subcommand is unknown and
//     the extension has no registered group and is not installed
//   - unyson-error-command-not-found -- when the subcommand is unknown
//   - anything the subcommand returns
func (d *Dispatcher) Run(ctx context.Context, raw []string) error {
	args, opts := command.ParseArgs(raw)
	if len(args) == 0 {
		return clierr.ErrorUsage("The ext command requires the extension name and command", extUsageTip)
	}
	name := args[0]
	if len(args) < 2 {
		return clierr.ErrorUsage("The ext "+name+" command requires the extension name and command", extUsageTip)
	}
	sub := args[1]

	group, generic := d.Group(name)
	if !group.Has(sub) {
		if generic {
			installed, err := d.App.Host.InstalledExtensions(ctx)
			if err != nil {
				util.Log.Debugf("Could not list installed extensions: %v", err)
			}
			if err != nil || !host.Contains(installed, name) {
				return clierr.ErrorExtensionNotFound(name)
			}
		}
		return clierr.ErrorCommandNotFound(group.Name, sub)
	}
	return group.Dispatch(ctx, sub, args[2:], opts)
}
