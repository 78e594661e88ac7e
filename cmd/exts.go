package cmd

import (
	"github.com/spf13/cobra"

	"unyson/internal/app"
	"unyson/internal/extension"
)

// AddExtsCommand adds the exts command group.
func AddExtsCommand(rootCmd *cobra.Command, a *app.Context, opts *globalOptions) {
	extsCmd := &cobra.Command{
		Use:     "exts",
		Short:   "Manage Unyson extensions",
		Long:    `Provides subcommands to list, install, uninstall, activate and inspect Unyson extensions.`,
		Aliases: []string{"extensions"},
	}
	AddGroupCommands(extsCmd, extension.NewGroup(a), opts)
	rootCmd.AddCommand(extsCmd)
}
