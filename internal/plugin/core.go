// Package plugin implements the core command group, which manages the
// Unyson plugin itself.
package plugin

import (
	"context"

	"unyson/internal/app"
	"unyson/internal/clierr"
	"unyson/internal/command"
	"unyson/internal/update"
	"unyson/internal/util"
)

type core struct {
	app *app.Context
}

// NewGroup returns the core command group bound to a.
func NewGroup(a *app.Context) *command.Group {
	c := &core{app: a}
	return &command.Group{
		Name: "unyson",
		Entries: []command.Entry{
			{Method: "version", Short: "Print the installed Unyson version", Example: "unyson version", Run: c.version},
			{Method: "versions", Short: "List every published Unyson version, marking the installed one", Run: c.versions},
			{Method: "upgrade", Short: "Upgrade Unyson to the next published version", Run: c.upgrade},
			{Method: "downgrade", Short: "Downgrade Unyson to the previous published version", Run: c.downgrade},
			{Method: "activate", Short: "Activate Unyson", Long: "Activate Unyson. [--network] activates it for the whole multisite network.", Run: c.activate},
			{Method: "deactivate", Short: "Deactivate Unyson", Long: "Deactivate Unyson. [--uninstall] removes it afterwards, [--network] applies to the whole network.", Run: c.deactivate},
			{Method: "install", Short: "Install Unyson", Long: "Install Unyson from wordpress.org. Accepts [--version=<version>] [--force] [--activate] [--activate-network].", Example: "unyson install --activate", Run: c.passthrough("install")},
			{Method: "uninstall", Short: "Uninstall Unyson", Long: "Uninstall Unyson. Accepts [--deactivate] [--skip-delete].", Run: c.passthrough("uninstall")},
			{Method: "get", Short: "Get details about the Unyson installation", Example: "unyson get --format=json", Run: c.passthrough("get")},
			{Method: "is_installed", Alias: "is-installed", Short: "Exit with status 0 when Unyson is installed, 1 otherwise", Run: c.isInstalled},
			{Method: "path", Short: "Print the path of the Unyson plugin file, or its directory with --dir", Run: c.passthrough("path")},
			{Method: "status", Short: "Show Unyson status", Run: c.status},
			{Method: "toggle", Short: "Toggle the Unyson activation state", Run: c.passthrough("toggle")},
			{Method: "update", Short: "Update Unyson", Long: "Update Unyson. Accepts [--version=<version>] [--format=<format>].", Example: "unyson update --version=2.6.15", Run: c.update},
		},
	}
}

func (c *core) version(ctx context.Context, args []string, opts command.Options) error {
	info, err := c.app.Host.PluginInfo(ctx)
	if err != nil {
		return err
	}
	c.app.Line(info.Version)
	return nil
}

func (c *core) versions(ctx context.Context, args []string, opts command.Options) error {
	current := ""
	if info, err := c.app.Host.PluginInfo(ctx); err == nil {
		current = info.Version
	} else {
		util.Log.Debugf("No installed version to mark: %v", err)
	}

	versions, err := c.app.Lister.Versions(ctx, c.app.Slug())
	if err != nil {
		return err
	}
	for _, v := range versions {
		prefix := "   "
		if current != "" && update.SameVersion(v, current) {
			prefix = " * "
		}
		c.app.Line(prefix + v)
	}
	return nil
}

func (c *core) upgrade(ctx context.Context, args []string, opts command.Options) error {
	return c.step(ctx, update.Up, "You already have the latest version")
}

func (c *core) downgrade(ctx context.Context, args []string, opts command.Options) error {
	return c.step(ctx, update.Down, "You already have the first version")
}

// step moves the installed plugin one published version in dir.
func (c *core) step(ctx context.Context, dir update.Direction, boundary string) error {
	versions, err := c.app.Lister.Versions(ctx, c.app.Slug())
	if err != nil {
		return err
	}
	info, err := c.app.Host.PluginInfo(ctx)
	if err != nil {
		return err
	}

	s, err := update.Plan(versions, info.Version, dir)
	if err != nil {
		return err
	}
	if s.Boundary {
		c.app.Line(boundary)
		return nil
	}
	return c.update(ctx, nil, command.Options{"version": s.To})
}

func (c *core) activate(ctx context.Context, args []string, opts command.Options) error {
	return c.app.Host.Plugin(ctx, "activate", opts.Without("all").Argv())
}

func (c *core) deactivate(ctx context.Context, args []string, opts command.Options) error {
	return c.app.Host.Plugin(ctx, "deactivate", opts.Without("all").Argv())
}

func (c *core) update(ctx context.Context, args []string, opts command.Options) error {
	return c.app.Host.Plugin(ctx, "update", opts.Without("all", "dry-run").Argv())
}

func (c *core) status(ctx context.Context, args []string, opts command.Options) error {
	return c.app.Host.Plugin(ctx, "status", nil)
}

// isInstalled succeeds silently when the plugin is present.
func (c *core) isInstalled(ctx context.Context, args []string, opts command.Options) error {
	installed, err := c.app.Host.PluginInstalled(ctx)
	if err != nil {
		return err
	}
	if !installed {
		return clierr.ErrorNotInstalled(c.app.Slug())
	}
	return nil
}

// passthrough forwards options unchanged to `wp plugin <verb> <slug>`.
func (c *core) passthrough(verb string) command.Handler {
	return func(ctx context.Context, args []string, opts command.Options) error {
		return c.app.Host.Plugin(ctx, verb, opts.Argv())
	}
}
