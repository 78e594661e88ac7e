package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, cfg.WPBinary, qt.Equals, "wp")
	qt.Assert(t, cfg.PluginSlug, qt.Equals, "unyson")
	qt.Assert(t, cfg.Repository, qt.Equals, DefaultRepository)
	qt.Assert(t, cfg.RequestTimeout, qt.Equals, 10*time.Second)
	qt.Assert(t, cfg.Source, qt.Equals, "")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unyson.yaml")
	err := os.WriteFile(path, []byte(`
wpBinary: /usr/local/bin/wp
wpPath: /var/www/html
requestTimeout: 3s
debug: true
extensions:
  backups:
    repo: https://github.com/ThemeFuse/Unyson-Backups-Extension.git
    commands:
      - method: run_backup
        alias: run
        short: Run a backup now
        run: ["eval", "fw_ext('{{name}}')->run();"]
`), 0644)
	qt.Assert(t, err, qt.IsNil)

	cfg, err := Load(path)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, cfg.Source, qt.Equals, path)
	qt.Assert(t, cfg.WPBinary, qt.Equals, "/usr/local/bin/wp")
	qt.Assert(t, cfg.WPPath, qt.Equals, "/var/www/html")
	qt.Assert(t, cfg.PluginSlug, qt.Equals, "unyson")
	qt.Assert(t, cfg.RequestTimeout, qt.Equals, 3*time.Second)
	qt.Assert(t, cfg.Debug, qt.IsTrue)

	ext, ok := cfg.Extension("backups")
	qt.Assert(t, ok, qt.IsTrue)
	qt.Assert(t, ext.Repo, qt.Equals, "https://github.com/ThemeFuse/Unyson-Backups-Extension.git")
	qt.Assert(t, ext.Commands, qt.HasLen, 1)
	qt.Assert(t, ext.Commands[0].Name(), qt.Equals, "run")
	qt.Assert(t, ext.Commands[0].Run, qt.DeepEquals, []string{"eval", "fw_ext('{{name}}')->run();"})
}

func TestLoadRejectsBrokenScriptedCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unyson.yaml")
	err := os.WriteFile(path, []byte("extensions:\n  seo:\n    commands:\n      - method: sitemap\n"), 0644)
	qt.Assert(t, err, qt.IsNil)

	_, err = Load(path)
	qt.Assert(t, err, qt.ErrorMatches, `invalid config .*: extensions.seo.commands\[0\]: run is required`)
}

func TestSaveRoundTripAndRefuseOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "unyson.yaml")
	cfg := Default()
	cfg.WPPath = "/srv/wp"

	qt.Assert(t, Save(path, cfg, false), qt.IsNil)

	loaded, err := Load(path)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, loaded.WPPath, qt.Equals, "/srv/wp")
	qt.Assert(t, loaded.RequestTimeout, qt.Equals, DefaultRequestTimeout)

	err = Save(path, cfg, false)
	qt.Assert(t, err, qt.ErrorMatches, `config file .* already exists`)
	qt.Assert(t, Save(path, cfg, true), qt.IsNil)
}
