package command

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseArgs(t *testing.T) {
	args, opts := ParseArgs([]string{"backups", "--activate", "--version=2.1.0", "-x", "--", "--literal"})
	qt.Assert(t, args, qt.DeepEquals, []string{"backups", "-x", "--literal"})
	qt.Assert(t, opts, qt.DeepEquals, Options{"activate": "", "version": "2.1.0"})

	args, opts = ParseArgs(nil)
	qt.Assert(t, args, qt.HasLen, 0)
	qt.Assert(t, opts, qt.HasLen, 0)
}

func TestOptionsHelpers(t *testing.T) {
	opts := Options{"all": "", "format": "json", "dry-run": ""}

	qt.Assert(t, opts.Has("all"), qt.IsTrue)
	qt.Assert(t, opts.Get("format", "table"), qt.Equals, "json")
	qt.Assert(t, opts.Get("all", "x"), qt.Equals, "x")
	qt.Assert(t, opts.Get("missing", "table"), qt.Equals, "table")

	trimmed := opts.Without("all", "dry-run")
	qt.Assert(t, trimmed, qt.DeepEquals, Options{"format": "json"})
	qt.Assert(t, opts, qt.HasLen, 3)

	qt.Assert(t, trimmed.With("version", "2.0.0").Argv(), qt.DeepEquals, []string{"--format=json", "--version=2.0.0"})
	qt.Assert(t, Options{"force": ""}.Argv(), qt.DeepEquals, []string{"--force"})
}
