package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unyson/internal/app"
	"unyson/internal/extension"
)

// AddExtCommand adds the per-extension dispatcher.
func AddExtCommand(rootCmd *cobra.Command, a *app.Context, registry *extension.Registry, opts *globalOptions) {
	extCmd := &cobra.Command{
		Use:   "ext <extension-name> <command> [--<arg-name>=<value>]",
		Short: "Run a command of one Unyson extension",
		Long: `Runs a command of a single extension. Extensions without commands of their
own accept the exts lifecycle commands bound to their name, so
'unyson ext backups install' is 'unyson exts install backups'. Commands
declared under extensions.<name>.commands in the config file run ahead of those.`,
		Example:            "  unyson ext backups install --activate\n  unyson ext backups version",
		DisableFlagParsing: true,
		RunE: func(cobraCmd *cobra.Command, raw []string) error {
			rest := opts.extract(raw)
			d := &extension.Dispatcher{App: a, Registry: registry}

			if wantsHelp(rest) {
				if len(rest) > 0 && rest[0] != "--help" && rest[0] != "-h" {
					return printGroupCommands(cobraCmd, d, rest[0])
				}
				return cobraCmd.Help()
			}
			return d.Run(cobraCmd.Context(), rest)
		},
	}
	rootCmd.AddCommand(extCmd)
}

func printGroupCommands(cobraCmd *cobra.Command, d *extension.Dispatcher, name string) error {
	g, _ := d.Group(name)
	w := tabwriter.NewWriter(cobraCmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Commands of unyson ext %s:\n", name)
	for _, e := range g.Entries {
		fmt.Fprintf(w, "  %s\t%s\n", e.Name(), e.Short)
	}
	return w.Flush()
}
