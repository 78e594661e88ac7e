// Package extension implements the commands that manage Unyson extensions:
// the `exts` group and the per-extension `ext <name>` dispatcher.
package extension

import (
	"context"
	"strings"

	"github.com/olekukonko/tablewriter"

	"unyson/internal/app"
	"unyson/internal/clierr"
	"unyson/internal/command"
	"unyson/internal/host"
	"unyson/internal/update"
	"unyson/internal/util"
)

type exts struct {
	app *app.Context
}

// NewGroup returns the extensions command group bound to a. Every command
// needs the framework installed and active.
func NewGroup(a *app.Context) *command.Group {
	e := &exts{app: a}
	return &command.Group{
		Name: "exts",
		Entries: []command.Entry{
			{Method: "list_items", Alias: "list", Short: "List Unyson extensions", Long: "List Unyson extensions. [--only=all|active|inactive|supported] filters the list.", Example: "unyson exts list --only=active", Run: e.guard(e.list)},
			{Method: "install", Short: "Install extensions", Long: "Install extensions. [--activate] activates them, [--supported] installs those the theme supports, [--force] reinstalls.", Example: "unyson exts install backups --activate", Run: e.guard(e.install)},
			{Method: "uninstall", Short: "Uninstall an extension", Long: "Uninstall an extension. [--force] uninstalls it even when active.", Run: e.guard(e.uninstall)},
			{Method: "activate", Short: "Activate an extension", Run: e.guard(e.activate)},
			{Method: "deactivate", Short: "Deactivate an extension", Run: e.guard(e.deactivate)},
			{Method: "version", Short: "Print an extension's current version", Run: e.guard(e.version)},
			{Method: "status", Short: "Print whether an extension is active", Run: e.guard(e.status)},
			{Method: "versions", Short: "List the tags of an extension's configured repository", Run: e.versions},
		},
	}
}

// guard refuses to run h unless the framework plugin is installed and active.
func (e *exts) guard(h command.Handler) command.Handler {
	return func(ctx context.Context, args []string, opts command.Options) error {
		installed, err := e.app.Host.PluginInstalled(ctx)
		if err != nil {
			return err
		}
		if !installed {
			return clierr.ErrorNotInstalled(e.app.Slug())
		}
		active, err := e.app.Host.PluginActive(ctx)
		if err != nil {
			return err
		}
		if !active {
			return clierr.ErrorNotActive(e.app.Slug())
		}
		return h(ctx, args, opts)
	}
}

func requireName(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", clierr.ErrorUsage("The extension name cannot be empty")
	}
	return args[0], nil
}

func (e *exts) list(ctx context.Context, args []string, opts command.Options) error {
	h := e.app.Host
	active, err := h.ActiveExtensions(ctx)
	if err != nil {
		return err
	}

	var names []string
	switch only := opts.Get("only", "all"); only {
	case "all":
		names, err = h.InstalledExtensions(ctx)
	case "active":
		names = active
	case "inactive":
		var installed []string
		installed, err = h.InstalledExtensions(ctx)
		for _, n := range installed {
			if !host.Contains(active, n) {
				names = append(names, n)
			}
		}
	case "supported":
		names, err = h.SupportedExtensions(ctx)
	default:
		return clierr.ErrorUsage("Invalid value for --only: "+only, "%yTips:%n Use one of all, active, inactive, supported")
	}
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(e.app.Out)
	table.SetHeader([]string{"Name", "Status"})
	table.SetAutoFormatHeaders(false)
	for _, n := range names {
		status := "Inactive"
		if host.Contains(active, n) {
			status = "Active"
		}
		table.Append([]string{n, status})
	}
	table.Render()
	return nil
}

func (e *exts) install(ctx context.Context, args []string, opts command.Options) error {
	names := args
	if opts.Has("supported") {
		supported, err := e.app.Host.SupportedExtensions(ctx)
		if err != nil {
			return err
		}
		names = supported
	}
	if len(names) == 0 {
		return clierr.ErrorUsage("The extension name cannot be empty")
	}

	if opts.Has("force") {
		installed, err := e.app.Host.InstalledExtensions(ctx)
		if err != nil {
			return err
		}
		var present []string
		for _, n := range names {
			if host.Contains(installed, n) {
				present = append(present, n)
			}
		}
		if len(present) > 0 {
			util.Log.Debugf("Removing %v before reinstalling", present)
			if err := e.app.Host.UninstallExtensions(ctx, present); err != nil {
				return err
			}
		}
	}

	activate := opts.Has("activate")
	if err := e.app.Host.InstallExtensions(ctx, names, activate); err != nil {
		return err
	}
	msg := "Extensions %c" + strings.Join(names, ", ") + "%n successfully installed"
	if activate {
		msg += " and activated"
	}
	e.app.Line(msg + ".")
	return nil
}

func (e *exts) uninstall(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	if !opts.Has("force") {
		active, err := e.app.Host.ActiveExtensions(ctx)
		if err != nil {
			return err
		}
		if host.Contains(active, name) {
			return clierr.ErrorUsage("Cannot uninstall "+name+", as it is active",
				"%gTips:%n You can run %cunyson ext "+name+" uninstall --force%n")
		}
	}
	if err := e.app.Host.UninstallExtensions(ctx, []string{name}); err != nil {
		return err
	}
	e.app.Line("Extension %c" + name + "%n successfully uninstalled.")
	return nil
}

func (e *exts) activate(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	if err := e.app.Host.ActivateExtensions(ctx, []string{name}); err != nil {
		return err
	}
	e.app.Line("Extension %c" + name + "%n successfully activated.")
	return nil
}

func (e *exts) deactivate(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	if err := e.app.Host.DeactivateExtensions(ctx, []string{name}); err != nil {
		return err
	}
	e.app.Line("Extension %c" + name + "%n successfully deactivated.")
	return nil
}

func (e *exts) version(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	v, err := e.app.Host.ExtensionVersion(ctx, name)
	if err != nil {
		return err
	}
	e.app.Line(v)
	return nil
}

func (e *exts) status(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	active, err := e.app.Host.ActiveExtensions(ctx)
	if err != nil {
		return err
	}
	if !host.Contains(active, name) {
		return clierr.ErrorExtensionInactive(name)
	}
	e.app.Line("%gActive%n")
	return nil
}

// versions lists the tags of the git repository configured for the
// extension under extensions.<name>.repo, marking the loaded version.
func (e *exts) versions(ctx context.Context, args []string, opts command.Options) error {
	name, err := requireName(args)
	if err != nil {
		return err
	}
	ext, ok := e.app.Config.Extension(name)
	if !ok || ext.Repo == "" {
		return clierr.ErrorUsage("No repository is configured for extension "+name,
			"%yTips:%n Set %cextensions."+name+".repo%n in your unyson.yaml")
	}

	tags, err := e.app.Tags(ctx, ext.Repo)
	if err != nil {
		return err
	}
	current, err := e.app.Host.ExtensionVersion(ctx, name)
	if err != nil {
		util.Log.Debugf("No loaded version of %s to mark: %v", name, err)
		current = ""
	}
	for _, t := range tags {
		prefix := "   "
		if current != "" && update.SameVersion(t, current) {
			prefix = " * "
		}
		e.app.Line(prefix + t)
	}
	return nil
}
