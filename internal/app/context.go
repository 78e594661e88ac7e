// Package app wires one invocation's collaborators together.
package app

import (
	"context"
	"fmt"
	"io"

	"unyson/internal/config"
	"unyson/internal/host"
	"unyson/internal/repo"
	"unyson/internal/util"
)

// VersionLister lists the published versions of a plugin slug.
type VersionLister interface {
	Versions(ctx context.Context, slug string) ([]string, error)
}

// TagLister lists the tags of a git repository.
type TagLister func(ctx context.Context, url string) ([]string, error)

// Context is built once per process and handed to every command group.
type Context struct {
	Config *config.GlobalConfig
	Host   host.Host
	Lister VersionLister
	Tags   TagLister
	Out    io.Writer
	Err    io.Writer
}

// New builds a Context that talks to WordPress through the wp binary.
func New(cfg *config.GlobalConfig, stdout, stderr io.Writer) (*Context, error) {
	wp, err := host.NewWPCLI(cfg.WPBinary, cfg.WPPath, cfg.PluginSlug, cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up wp-cli host: %w", err)
	}
	wp.Stdout = stdout
	wp.Stderr = stderr

	lister := repo.NewLister(
		repo.WithBaseURL(cfg.Repository),
		repo.WithTimeout(cfg.RequestTimeout),
	)
	util.Log.Debugf("Using wp binary %q at path %q, repository %s", cfg.WPBinary, cfg.WPPath, cfg.Repository)

	return &Context{
		Config: cfg,
		Host:   wp,
		Lister: lister,
		Tags:   repo.GitTags,
		Out:    stdout,
		Err:    stderr,
	}, nil
}

// Slug is the managed plugin's slug.
func (c *Context) Slug() string {
	return c.Config.PluginSlug
}

// Line writes messages to Out, one per line, rendering their color tokens.
// Messages are not format strings.
func (c *Context) Line(messages ...string) {
	fmt.Fprintln(c.Out, util.ColorizeLines(messages...))
}
