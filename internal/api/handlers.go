package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"unyson/internal/app"
	"unyson/internal/clierr"
	"unyson/internal/host"
	"unyson/internal/update"
)

type pluginStatus struct {
	Installed bool             `json:"installed"`
	Active    bool             `json:"active"`
	Plugin    *host.PluginInfo `json:"plugin,omitempty"`
}

type versionEntry struct {
	Version string `json:"version"`
	Current bool   `json:"current"`
}

type extensionStatus struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Active    bool   `json:"active"`
	Version   string `json:"version,omitempty"`
}

// --- Plugin Handlers ---

// handleGetPlugin reports whether the plugin is installed and active.
// GET /api/v1/unyson
func handleGetPlugin(a *app.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		installed, err := a.Host.PluginInstalled(ctx)
		if err != nil {
			writeCodedError(w, "Failed to check plugin installation", err)
			return
		}
		status := pluginStatus{Installed: installed}
		if !installed {
			writeJSON(w, http.StatusOK, status)
			return
		}

		info, err := a.Host.PluginInfo(ctx)
		if err != nil {
			writeCodedError(w, "Failed to get plugin details", err)
			return
		}
		status.Plugin = &info
		if status.Active, err = a.Host.PluginActive(ctx); err != nil {
			writeCodedError(w, "Failed to check plugin activation", err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

// handleListVersions lists published versions, flagging the installed one.
// GET /api/v1/unyson/versions
func handleListVersions(a *app.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		versions, err := a.Lister.Versions(ctx, a.Slug())
		if err != nil {
			writeCodedError(w, "Failed to list published versions", err)
			return
		}

		current := ""
		if info, err := a.Host.PluginInfo(ctx); err == nil {
			current = info.Version
		}
		entries := make([]versionEntry, 0, len(versions))
		for _, v := range versions {
			entries = append(entries, versionEntry{Version: v, Current: current != "" && update.SameVersion(v, current)})
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// --- Extension Handlers ---

// handleListExtensions lists installed extensions with their status.
// GET /api/v1/extensions
func handleListExtensions(a *app.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := requireFramework(ctx, a); err != nil {
			writeCodedError(w, "Unyson is unavailable", err)
			return
		}
		installed, active, err := extensionSets(ctx, a)
		if err != nil {
			writeCodedError(w, "Failed to list extensions", err)
			return
		}

		out := make([]extensionStatus, 0, len(installed))
		for _, n := range installed {
			out = append(out, extensionStatus{Name: n, Installed: true, Active: host.Contains(active, n)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleGetExtension reports one extension.
// GET /api/v1/extensions/{name}
func handleGetExtension(a *app.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		if name == "" {
			writeError(w, http.StatusBadRequest, "Extension name is required")
			return
		}

		ctx := r.Context()
		if err := requireFramework(ctx, a); err != nil {
			writeCodedError(w, "Unyson is unavailable", err)
			return
		}
		installed, active, err := extensionSets(ctx, a)
		if err != nil {
			writeCodedError(w, "Failed to list extensions", err)
			return
		}
		if !host.Contains(installed, name) {
			writeCodedError(w, "Extension not found", clierr.ErrorExtensionNotFound(name))
			return
		}

		status := extensionStatus{Name: name, Installed: true, Active: host.Contains(active, name)}
		if status.Active {
			if v, err := a.Host.ExtensionVersion(ctx, name); err == nil {
				status.Version = v
			}
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func requireFramework(ctx context.Context, a *app.Context) error {
	installed, err := a.Host.PluginInstalled(ctx)
	if err != nil {
		return err
	}
	if !installed {
		return clierr.ErrorNotInstalled(a.Slug())
	}
	active, err := a.Host.PluginActive(ctx)
	if err != nil {
		return err
	}
	if !active {
		return clierr.ErrorNotActive(a.Slug())
	}
	return nil
}

func extensionSets(ctx context.Context, a *app.Context) (installed, active []string, err error) {
	if installed, err = a.Host.InstalledExtensions(ctx); err != nil {
		return nil, nil, err
	}
	if active, err = a.Host.ActiveExtensions(ctx); err != nil {
		return nil, nil, err
	}
	return installed, active, nil
}
