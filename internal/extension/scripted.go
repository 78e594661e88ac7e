package extension

import (
	"context"
	"strings"

	"unyson/internal/app"
	"unyson/internal/command"
	"unyson/internal/config"
)

// Scripted returns a factory whose group runs the declared wp invocations
// ahead of the generic lifecycle commands.
func Scripted(cmds []config.ScriptedCommand) Factory {
	return func(a *app.Context, name string) *command.Group {
		entries := make([]command.Entry, 0, len(cmds))
		for _, sc := range cmds {
			entries = append(entries, command.Entry{
				Method: sc.Method,
				Alias:  sc.Alias,
				Short:  sc.Short,
				Run:    runScript(a, name, sc.Run),
			})
		}
		return Generic(a, name).Prepend(entries...)
	}
}

// runScript substitutes the extension name into argv, then appends the
// invocation's own arguments and options.
func runScript(a *app.Context, name string, argv []string) command.Handler {
	return func(ctx context.Context, args []string, opts command.Options) error {
		full := make([]string, 0, len(argv)+len(args)+len(opts))
		for _, s := range argv {
			full = append(full, strings.ReplaceAll(s, config.NamePlaceholder, name))
		}
		full = append(full, args...)
		full = append(full, opts.Argv()...)
		return a.Host.WP(ctx, full)
	}
}
