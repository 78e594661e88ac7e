package cmd

import (
	"github.com/spf13/cobra"

	"unyson/internal/command"
)

// AddGroupCommands mounts every entry of g as a subcommand of parent.
// Arguments reach the handler unparsed by cobra, as WP-CLI style
// positionals and --key=value options.
func AddGroupCommands(parent *cobra.Command, g *command.Group, opts *globalOptions) {
	for _, e := range g.Entries {
		name := e.Name()
		sub := &cobra.Command{
			Use:                name,
			Short:              e.Short,
			Long:               e.Long,
			Example:            e.Example,
			DisableFlagParsing: true,
			RunE: func(cobraCmd *cobra.Command, raw []string) error {
				rest := opts.extract(raw)
				if wantsHelp(rest) {
					return cobraCmd.Help()
				}
				args, options := command.ParseArgs(rest)
				return g.Dispatch(cobraCmd.Context(), name, args, options)
			},
		}
		parent.AddCommand(sub)
	}
}
