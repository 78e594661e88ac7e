// Package host is the boundary to the WordPress install. Everything unyson
// knows about plugin and extension state is asked of a Host.
package host

import "context"

// PluginInfo is the plugin record reported by WordPress.
type PluginInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Host answers plugin and extension queries and performs their lifecycle
// operations.
type Host interface {
	PluginInstalled(ctx context.Context) (bool, error)
	PluginActive(ctx context.Context) (bool, error)
	// PluginInfo fails with unyson-error-not-installed when the plugin is absent.
	PluginInfo(ctx context.Context) (PluginInfo, error)
	// Plugin runs `wp plugin <verb> <slug> argv...`, streaming its output.
	Plugin(ctx context.Context, verb string, argv []string) error

	InstalledExtensions(ctx context.Context) ([]string, error)
	ActiveExtensions(ctx context.Context) ([]string, error)
	SupportedExtensions(ctx context.Context) ([]string, error)
	InstallExtensions(ctx context.Context, names []string, activate bool) error
	UninstallExtensions(ctx context.Context, names []string) error
	ActivateExtensions(ctx context.Context, names []string) error
	DeactivateExtensions(ctx context.Context, names []string) error
	// ExtensionVersion fails with unyson-error-extension-not-found when the
	// extension is not loaded.
	ExtensionVersion(ctx context.Context, name string) (string, error)

	// WP runs an arbitrary wp invocation, streaming its output.
	WP(ctx context.Context, argv []string) error
}

// Contains reports whether name is in names.
func Contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
