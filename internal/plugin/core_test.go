package plugin

import (
	"bytes"
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"unyson/internal/app"
	"unyson/internal/clierr"
	"unyson/internal/command"
	"unyson/internal/config"
	"unyson/internal/host"
)

type fakeLister struct {
	versions []string
	err      error
}

func (f fakeLister) Versions(ctx context.Context, slug string) ([]string, error) {
	return f.versions, f.err
}

func setup(version string, published ...string) (*command.Group, *host.Memory, *bytes.Buffer) {
	mem := host.NewMemory(version)
	out := &bytes.Buffer{}
	a := &app.Context{
		Config: config.Default(),
		Host:   mem,
		Lister: fakeLister{versions: published},
		Out:    out,
		Err:    out,
	}
	return NewGroup(a), mem, out
}

func TestCoreGroupHasNoDuplicates(t *testing.T) {
	g, _, _ := setup("2.0.0")
	qt.Assert(t, g.Validate(), qt.HasLen, 0)
	qt.Assert(t, g.Has("is-installed"), qt.IsTrue)
	qt.Assert(t, g.Has("is_installed"), qt.IsFalse)
	for _, d := range g.Commands() {
		qt.Check(t, g.Has(d.Name), qt.IsTrue, qt.Commentf("command %s", d.Name))
	}
}

func TestVersion(t *testing.T) {
	g, _, out := setup("2.6.15")
	err := g.Dispatch(context.Background(), "version", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "2.6.15\n")
}

func TestVersionNotInstalled(t *testing.T) {
	g, mem, _ := setup("2.6.15")
	mem.Installed = false
	err := g.Dispatch(context.Background(), "version", nil, nil)
	qt.Assert(t, clierr.Is(err, clierr.CodeNotInstalled), qt.IsTrue)
}

func TestVersionsMarksInstalled(t *testing.T) {
	g, _, out := setup("2.1.9", "2.1.2", "2.1.9", "2.1.10")
	err := g.Dispatch(context.Background(), "versions", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "   2.1.2\n * 2.1.9\n   2.1.10\n")
}

func TestVersionsWithoutInstall(t *testing.T) {
	g, mem, out := setup("2.1.9", "2.1.2", "2.1.9")
	mem.Installed = false
	err := g.Dispatch(context.Background(), "versions", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "   2.1.2\n   2.1.9\n")
}

func TestUpgrade(t *testing.T) {
	g, mem, _ := setup("2.0.1", "2.0.0", "2.0.1", "2.1.0")
	err := g.Dispatch(context.Background(), "upgrade", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, mem.Calls, qt.DeepEquals, [][]string{{"plugin", "update", "unyson", "--version=2.1.0"}})
	qt.Assert(t, mem.Info.Version, qt.Equals, "2.1.0")
}

func TestDowngrade(t *testing.T) {
	g, mem, _ := setup("2.0.1", "2.0.0", "2.0.1", "2.1.0")
	err := g.Dispatch(context.Background(), "downgrade", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, mem.Calls, qt.DeepEquals, [][]string{{"plugin", "update", "unyson", "--version=2.0.0"}})
}

func TestUpgradeAtLatest(t *testing.T) {
	g, mem, out := setup("2.1.0", "2.0.0", "2.0.1", "2.1.0")
	err := g.Dispatch(context.Background(), "upgrade", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "You already have the latest version\n")
	qt.Assert(t, mem.Calls, qt.HasLen, 0)
}

func TestDowngradeAtFirst(t *testing.T) {
	g, mem, out := setup("2.0.0", "2.0.0", "2.0.1")
	err := g.Dispatch(context.Background(), "downgrade", nil, nil)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "You already have the first version\n")
	qt.Assert(t, mem.Calls, qt.HasLen, 0)
}

func TestUpgradeNotLocated(t *testing.T) {
	g, mem, _ := setup("9.9.9", "2.0.0", "2.0.1")
	err := g.Dispatch(context.Background(), "upgrade", nil, nil)
	qt.Assert(t, clierr.Is(err, clierr.CodeVersionNotLocated), qt.IsTrue)
	qt.Assert(t, mem.Calls, qt.HasLen, 0)
}

func TestUpgradeListingFails(t *testing.T) {
	mem := host.NewMemory("2.0.0")
	a := &app.Context{
		Config: config.Default(),
		Host:   mem,
		Lister: fakeLister{err: clierr.ErrorInvalidRequest("http://x/unyson/tags", 500, nil)},
		Out:    &bytes.Buffer{},
	}
	err := NewGroup(a).Dispatch(context.Background(), "upgrade", nil, nil)
	qt.Assert(t, clierr.Is(err, clierr.CodeInvalidRequest), qt.IsTrue)
}

func TestStrippedOptions(t *testing.T) {
	g, mem, _ := setup("2.0.0")
	ctx := context.Background()

	qt.Assert(t, g.Dispatch(ctx, "deactivate", nil, command.Options{"all": "", "network": ""}), qt.IsNil)
	qt.Assert(t, g.Dispatch(ctx, "activate", nil, command.Options{"all": ""}), qt.IsNil)
	qt.Assert(t, g.Dispatch(ctx, "update", nil, command.Options{"all": "", "dry-run": "", "version": "2.0.1"}), qt.IsNil)
	qt.Assert(t, g.Dispatch(ctx, "install", nil, command.Options{"force": "", "version": "2.0.0"}), qt.IsNil)

	qt.Assert(t, mem.Calls, qt.DeepEquals, [][]string{
		{"plugin", "deactivate", "unyson", "--network"},
		{"plugin", "activate", "unyson"},
		{"plugin", "update", "unyson", "--version=2.0.1"},
		{"plugin", "install", "unyson", "--force", "--version=2.0.0"},
	})
}

func TestIsInstalled(t *testing.T) {
	g, mem, out := setup("2.0.0")
	qt.Assert(t, g.Dispatch(context.Background(), "is-installed", nil, nil), qt.IsNil)
	qt.Assert(t, out.String(), qt.Equals, "")

	mem.Installed = false
	err := g.Dispatch(context.Background(), "is-installed", nil, nil)
	qt.Assert(t, clierr.Is(err, clierr.CodeNotInstalled), qt.IsTrue)
}
