package extension

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"unyson/internal/clierr"
	"unyson/internal/config"
)

func TestExtMissingArguments(t *testing.T) {
	a, _, _ := newTestApp()
	d := &Dispatcher{App: a, Registry: NewRegistry()}

	err := d.Run(context.Background(), nil)
	qt.Assert(t, clierr.Is(err, clierr.CodeUsage), qt.IsTrue)
	qt.Assert(t, clierr.Tip(err), qt.Contains, "unyson ext <extension-name> <command>")

	err = d.Run(context.Background(), []string{"backups"})
	qt.Assert(t, clierr.Is(err, clierr.CodeUsage), qt.IsTrue)
}

func TestExtGenericBindsName(t *testing.T) {
	a, mem, out := newTestApp()
	d := &Dispatcher{App: a, Registry: NewRegistry()}

	err := d.Run(context.Background(), []string{"seo", "activate"})
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, mem.Extensions["seo"].Active, qt.IsTrue)
	qt.Assert(t, out.String(), qt.Equals, "Extension seo successfully activated.\n")
}

func TestExtUnknownExtension(t *testing.T) {
	a, _, _ := newTestApp()
	d := &Dispatcher{App: a, Registry: NewRegistry()}

	err := d.Run(context.Background(), []string{"ghost", "frobnicate"})
	qt.Assert(t, clierr.Is(err, clierr.CodeExtensionNotFound), qt.IsTrue)
	qt.Assert(t, clierr.Tip(err), qt.Contains, "unyson ext ghost install --activate")
}

func TestExtUnknownCommandOnKnownExtension(t *testing.T) {
	a, _, _ := newTestApp()
	d := &Dispatcher{App: a, Registry: NewRegistry()}

	err := d.Run(context.Background(), []string{"backups", "frobnicate"})
	qt.Assert(t, clierr.Is(err, clierr.CodeCommandNotFound), qt.IsTrue)
	qt.Assert(t, clierr.Detail(err, "command"), qt.Equals, "frobnicate")
}

func TestExtScriptedCommands(t *testing.T) {
	a, mem, _ := newTestApp()
	a.Config.Extensions = map[string]config.ExtensionConfig{
		"backups": {Commands: []config.ScriptedCommand{
			{Method: "run_backup", Alias: "run", Run: []string{"eval", "fw_ext('{{name}}')->run();"}},
			{Method: "status", Run: []string{"option", "get", "{{name}}_status"}},
		}},
	}
	reg := NewRegistry()
	qt.Assert(t, RegisterConfigured(reg, a.Config), qt.IsNil)
	qt.Assert(t, reg.Names(), qt.DeepEquals, []string{"backups"})
	d := &Dispatcher{App: a, Registry: reg}

	err := d.Run(context.Background(), []string{"backups", "run", "daily", "--quiet"})
	qt.Assert(t, err, qt.IsNil)
	// the scripted entry shadows the generic status command
	err = d.Run(context.Background(), []string{"backups", "status"})
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, mem.Calls, qt.DeepEquals, [][]string{
		{"eval", "fw_ext('backups')->run();", "daily", "--quiet"},
		{"option", "get", "backups_status"},
	})

	// generic entries remain reachable
	err = d.Run(context.Background(), []string{"backups", "version"})
	qt.Assert(t, err, qt.IsNil)

	err = d.Run(context.Background(), []string{"backups", "frobnicate"})
	qt.Assert(t, clierr.Is(err, clierr.CodeCommandNotFound), qt.IsTrue)
}

func TestExtScriptedCommandsIgnoreCase(t *testing.T) {
	a, mem, _ := newTestApp()
	a.Config.Extensions = map[string]config.ExtensionConfig{
		"backups": {Commands: []config.ScriptedCommand{
			{Method: "run_backup", Alias: "run", Run: []string{"eval", "fw_ext('{{name}}')->run();"}},
		}},
	}
	reg := NewRegistry()
	qt.Assert(t, RegisterConfigured(reg, a.Config), qt.IsNil)
	d := &Dispatcher{App: a, Registry: reg}

	group, generic := d.Group("Backups")
	qt.Assert(t, generic, qt.IsFalse)
	qt.Assert(t, group.Name, qt.Equals, "ext backups")

	err := d.Run(context.Background(), []string{"BACKUPS", "run"})
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, mem.Calls, qt.DeepEquals, [][]string{{"eval", "fw_ext('backups')->run();"}})
}

func TestRegistryPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.Register("backups", Scripted(nil))
	qt.Assert(t, func() { reg.Register("backups", Scripted(nil)) }, qt.PanicMatches, "extension backups already registered")
	qt.Assert(t, func() { reg.Register("Backups", Scripted(nil)) }, qt.PanicMatches, "extension Backups already registered")
}
