package cmd

import (
	"github.com/spf13/cobra"

	"unyson/internal/api"
	"unyson/internal/app"
	"unyson/internal/util"
)

// AddServerCommand adds the server command group.
func AddServerCommand(rootCmd *cobra.Command, a *app.Context) {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the local Unyson status API server",
		Long:  `Provides commands to run a read-only JSON API describing the Unyson install.`,
	}

	var host string
	var port string
	var origin string

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the local status API server",
		Long: `Starts a local HTTP server exposing the plugin status, the published
versions and the installed extensions as JSON. Intended for local access only.`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			util.Log.Debugf("Serving status of WordPress at %q", a.Config.WPPath)
			return api.StartServer(a, host, port, origin)
		},
	}

	startCmd.Flags().StringVar(&host, "host", "localhost", "Host address for the API server to bind to")
	startCmd.Flags().StringVar(&port, "port", "8585", "Port for the API server to listen on")
	startCmd.Flags().StringVar(&origin, "cors-origin", "", "Origin allowed to call the API from a browser")

	serverCmd.AddCommand(startCmd)
	rootCmd.AddCommand(serverCmd)
}
