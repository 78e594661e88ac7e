package host

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"unyson/internal/clierr"
)

// ExtensionState is one extension known to a Memory host. Installed false
// means it is available but not on disk.
type ExtensionState struct {
	Version   string
	Installed bool
	Active    bool
	Supported bool
}

// Memory is an in-memory Host. Every Plugin and WP call is recorded in Calls.
type Memory struct {
	mu sync.Mutex

	Slug       string
	Installed  bool
	Active     bool
	Info       PluginInfo
	Extensions map[string]*ExtensionState
	Calls      [][]string
	Out        io.Writer

	// Fail, when set, is returned by every Plugin and WP call.
	Fail error
}

// NewMemory returns a host with an active plugin at version.
func NewMemory(version string) *Memory {
	return &Memory{
		Slug:       "unyson",
		Installed:  true,
		Active:     true,
		Info:       PluginInfo{Name: "unyson", Title: "Unyson", Author: "ThemeFuse", Version: version, Status: "active"},
		Extensions: make(map[string]*ExtensionState),
		Out:        io.Discard,
	}
}

func (m *Memory) PluginInstalled(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Installed, nil
}

func (m *Memory) PluginActive(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Installed && m.Active, nil
}

func (m *Memory) PluginInfo(ctx context.Context) (PluginInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Installed {
		return PluginInfo{}, clierr.ErrorNotInstalled(m.Slug)
	}
	info := m.Info
	info.Status = "inactive"
	if m.Active {
		info.Status = "active"
	}
	return info, nil
}

func (m *Memory) Plugin(ctx context.Context, verb string, argv []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string{"plugin", verb, m.Slug}, argv...))
	if m.Fail != nil {
		return m.Fail
	}

	opts := flagValues(argv)
	switch verb {
	case "install":
		m.Installed = true
		if v, ok := opts["version"]; ok && v != "" {
			m.Info.Version = v
		}
		if _, ok := opts["activate"]; ok {
			m.Active = true
		}
	case "uninstall":
		if m.Active {
			return clierr.ErrorHost("plugin uninstall", fmt.Errorf("the '%s' plugin is active", m.Slug))
		}
		m.Installed = false
	case "activate", "deactivate", "toggle", "update":
		if !m.Installed {
			return clierr.ErrorHost("plugin "+verb, fmt.Errorf("the '%s' plugin could not be found", m.Slug))
		}
		switch verb {
		case "activate":
			m.Active = true
		case "deactivate":
			m.Active = false
		case "toggle":
			m.Active = !m.Active
		case "update":
			if v, ok := opts["version"]; ok && v != "" {
				m.Info.Version = v
			}
		}
	case "is-installed":
		if !m.Installed {
			return clierr.ErrorHost("plugin is-installed", fmt.Errorf("exit status 1"))
		}
	default:
		fmt.Fprintf(m.Out, "%s %s\n", verb, m.Slug)
	}
	return nil
}

func (m *Memory) WP(ctx context.Context, argv []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string{}, argv...))
	if m.Fail != nil {
		return m.Fail
	}
	fmt.Fprintln(m.Out, strings.Join(argv, " "))
	return nil
}

func (m *Memory) InstalledExtensions(ctx context.Context) ([]string, error) {
	return m.names(func(e *ExtensionState) bool { return e.Installed }), nil
}

func (m *Memory) ActiveExtensions(ctx context.Context) ([]string, error) {
	return m.names(func(e *ExtensionState) bool { return e.Installed && e.Active }), nil
}

func (m *Memory) SupportedExtensions(ctx context.Context) ([]string, error) {
	return m.names(func(e *ExtensionState) bool { return e.Supported }), nil
}

func (m *Memory) InstallExtensions(ctx context.Context, names []string, activate bool) error {
	return m.apply("install", names, func(name string, e *ExtensionState) string {
		if e.Installed {
			return fmt.Sprintf("Extension \"%s\" is already installed", name)
		}
		e.Installed = true
		e.Active = activate
		return ""
	})
}

func (m *Memory) UninstallExtensions(ctx context.Context, names []string) error {
	return m.apply("uninstall", names, func(name string, e *ExtensionState) string {
		if !e.Installed {
			return fmt.Sprintf("Extension \"%s\" is not installed", name)
		}
		e.Installed = false
		e.Active = false
		return ""
	})
}

func (m *Memory) ActivateExtensions(ctx context.Context, names []string) error {
	return m.apply("activate", names, func(name string, e *ExtensionState) string {
		if !e.Installed {
			return fmt.Sprintf("Extension \"%s\" is not installed", name)
		}
		e.Active = true
		return ""
	})
}

func (m *Memory) DeactivateExtensions(ctx context.Context, names []string) error {
	return m.apply("deactivate", names, func(name string, e *ExtensionState) string {
		e.Active = false
		return ""
	})
}

func (m *Memory) ExtensionVersion(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Extensions[name]
	if !ok || !e.Installed || !e.Active {
		return "", clierr.ErrorExtensionNotFound(name)
	}
	return e.Version, nil
}

func (m *Memory) names(keep func(*ExtensionState) bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for name, e := range m.Extensions {
		if keep(e) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// apply runs fn for each name and collects the messages it reports, the
// way the extension manager answers with a list of errors.
func (m *Memory) apply(op string, names []string, fn func(string, *ExtensionState) string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []string
	for _, name := range names {
		e, ok := m.Extensions[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("Extension \"%s\" is not available", name))
			continue
		}
		if msg := fn(name, e); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return clierr.ErrorHostMessages(op, errs)
	}
	return nil
}

func flagValues(argv []string) map[string]string {
	out := make(map[string]string)
	for _, a := range argv {
		if !strings.HasPrefix(a, "--") {
			continue
		}
		k, v, _ := strings.Cut(strings.TrimPrefix(a, "--"), "=")
		out[k] = v
	}
	return out
}
