package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/serum-errors/go-serum"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

// Report prints err the way WP-CLI prints errors, followed by its tip.
func Report(w io.Writer, err error) {
	msg := serum.Message(err)
	if msg == "" {
		msg = err.Error()
	}
	if clierr.Is(err, clierr.CodeCommandNotFound) {
		msg = "Invalid %g" + escapeTokens(clierr.Detail(err, "command")) + "%n command name"
		if owner := commandOwner(clierr.Detail(err, "group")); owner != "" {
			msg += " for " + owner
		}
	} else {
		msg = escapeTokens(msg)
	}

	lines := []string{"%RError:%n " + msg}
	if tip := clierr.Tip(err); tip != "" {
		lines = append(lines, strings.Split(tip, "\n")...)
	}
	fmt.Fprintln(w, util.ColorizeLines(lines...))
}

// commandOwner names the group an unknown command was looked up in:
// "ext backups" reads as the backups extension.
func commandOwner(group string) string {
	if name, ok := strings.CutPrefix(group, "ext "); ok {
		return "extension %c" + escapeTokens(name) + "%n"
	}
	if group == "" {
		return ""
	}
	return "%c" + escapeTokens(group) + "%n"
}

// escapeTokens keeps literal percent signs from being read as color tokens.
func escapeTokens(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
