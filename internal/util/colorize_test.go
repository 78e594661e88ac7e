package util

import (
	"testing"

	"github.com/fatih/color"
	qt "github.com/frankban/quicktest"
)

func TestColorizeStripsTokensWithoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	qt.Assert(t, Colorize("Invalid %gstatus%n command name"), qt.Equals, "Invalid status command name")
	qt.Assert(t, Colorize("100%% done"), qt.Equals, "100% done")
	qt.Assert(t, Colorize("50%z"), qt.Equals, "50%z")
	qt.Assert(t, Colorize("trailing %"), qt.Equals, "trailing %")
	qt.Assert(t, ColorizeLines("%yTips:%n a", "b"), qt.Equals, "Tips: a\nb")
}

func TestColorizeWrapsSegments(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	out := Colorize("plain %cname%n tail")
	qt.Assert(t, out, qt.Not(qt.Equals), "plain name tail")
	qt.Assert(t, out, qt.Contains, "name")
	qt.Assert(t, out[:6], qt.Equals, "plain ")
}
