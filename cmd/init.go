package cmd

import (
	"github.com/spf13/cobra"

	"unyson/internal/config"
	"unyson/internal/util"
)

// AddInitCommand adds the init command, which writes a starter config file.
func AddInitCommand(rootCmd *cobra.Command, opts *globalOptions) {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default unyson.yaml",
		Long: `Creates the configuration file (./unyson.yaml, or the --config path) with
default settings. --path and --wp-bin are written into it when given.
An existing file is left untouched unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(opts.cfgFile)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if opts.wpPath != "" {
				cfg.WPPath = opts.wpPath
			}
			if opts.wpBin != "" {
				cfg.WPBinary = opts.wpBin
			}

			if err := config.Save(path, cfg, force); err != nil {
				return err
			}
			util.Log.Debugf("Wrote default configuration to %s", path)
			cobraCmd.Printf("Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
