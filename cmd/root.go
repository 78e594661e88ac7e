package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unyson/cmd/version"
	"unyson/internal/app"
	"unyson/internal/config"
	"unyson/internal/extension"
	"unyson/internal/plugin"
	"unyson/internal/util"
)

// newAppContext builds the collaborators for one invocation. Tests replace it.
var newAppContext = app.New

// NewRootCmd assembles the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}
	// filled in by PersistentPreRunE; groups hold the pointer from the start
	appCtx := &app.Context{}
	registry := extension.NewRegistry()

	rootCmd := &cobra.Command{
		Use:   "unyson",
		Short: "Manage the Unyson framework and its extensions from the command line.",
		Long: `unyson installs, activates, updates and inspects the Unyson WordPress
framework plugin and its extensions. Every WordPress-side action is carried
out by the wp (WP-CLI) binary against the configured WordPress root.`,
		Version:       version.Get(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.DisableFlagParsing {
				opts.extract(args)
			}

			// --- Initialize Logger Early ---
			util.InitLoggerTo(stderr, opts.debug)

			// --- Load Config ---
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			if cfg.Debug && !opts.debug {
				util.InitLoggerTo(stderr, true)
				util.Log.Debug("Enabling debug mode based on config file.")
			}
			if opts.wpPath != "" {
				cfg.WPPath = opts.wpPath
			}
			if opts.wpBin != "" {
				cfg.WPBinary = opts.wpBin
			}

			// --- Build Context ---
			built, err := newAppContext(cfg, stdout, stderr)
			if err != nil {
				return err
			}
			*appCtx = *built

			return extension.RegisterConfigured(registry, cfg)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "Path of the configuration file (default ./unyson.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.wpPath, "path", "", "WordPress root passed to wp as --path")
	rootCmd.PersistentFlags().StringVar(&opts.wpBin, "wp-bin", "", "wp binary to run (default wp)")

	AddGroupCommands(rootCmd, plugin.NewGroup(appCtx), opts)
	AddExtsCommand(rootCmd, appCtx, opts)
	AddExtCommand(rootCmd, appCtx, registry, opts)
	AddServerCommand(rootCmd, appCtx)
	AddInitCommand(rootCmd, opts)

	return rootCmd
}

// Execute runs the command tree and exits with status 1 on any error.
func Execute() {
	rootCmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
