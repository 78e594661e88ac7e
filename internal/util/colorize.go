package util

import (
	"strings"

	"github.com/fatih/color"
)

// tokenColors maps WP-CLI style color tokens to terminal attributes.
// %n resets; %%, when present, is a literal percent sign.
var tokenColors = map[byte]*color.Color{
	'y': color.New(color.FgYellow),
	'g': color.New(color.FgGreen),
	'b': color.New(color.FgBlue),
	'r': color.New(color.FgRed),
	'p': color.New(color.FgMagenta),
	'm': color.New(color.FgMagenta),
	'c': color.New(color.FgCyan),
	'w': color.New(color.FgWhite),
	'k': color.New(color.FgBlack),
	'Y': color.New(color.FgHiYellow, color.Bold),
	'G': color.New(color.FgHiGreen, color.Bold),
	'B': color.New(color.FgHiBlue, color.Bold),
	'R': color.New(color.FgHiRed, color.Bold),
	'C': color.New(color.FgHiCyan, color.Bold),
	'W': color.New(color.FgHiWhite, color.Bold),
	'U': color.New(color.Underline),
	'9': color.New(color.Bold),
}

// Colorize renders "%c...%n" style tokens. When color output is disabled
// (color.NoColor, e.g. not a terminal) the tokens are stripped instead.
func Colorize(s string) string {
	var b strings.Builder
	var active *color.Color
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if active != nil && !color.NoColor {
			b.WriteString(active.Sprint(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 >= len(s) {
			run.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch {
		case next == '%':
			run.WriteByte('%')
		case next == 'n':
			flush()
			active = nil
		case tokenColors[next] != nil:
			flush()
			active = tokenColors[next]
		default:
			run.WriteByte(s[i])
			continue
		}
		i++
	}
	flush()
	return b.String()
}

// ColorizeLines colorizes each message and joins them with newlines.
func ColorizeLines(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, Colorize(l))
	}
	return strings.Join(out, "\n")
}
