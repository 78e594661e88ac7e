package repo

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"unyson/internal/clierr"
)

func TestIsSSH(t *testing.T) {
	qt.Assert(t, isSSH("git@github.com:ThemeFuse/Unyson.git"), qt.IsTrue)
	qt.Assert(t, isSSH("ssh://git@example.test/unyson.git"), qt.IsTrue)
	qt.Assert(t, isSSH("https://github.com/ThemeFuse/Unyson.git"), qt.IsFalse)
}

func TestGitTagsUnreachable(t *testing.T) {
	_, err := GitTags(context.Background(), "file:///nonexistent/unyson-extension.git")
	qt.Assert(t, clierr.Is(err, clierr.CodeInvalidRequest), qt.IsTrue)
}
