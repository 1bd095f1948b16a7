package cmd

import (
	"strings"

	"audiolist/config"

	"github.com/spf13/cobra"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the playlist HTTP server",
	Long:  `Start the HTTP server that serves the track API, the event feed and the web client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if serverPort != "" {
			cfg.Port = ":" + strings.TrimPrefix(serverPort, ":")
		}
		return run(cmd, cfg)
	},
}

func init() {
	serverCmd.Flags().StringVarP(&serverPort, "port", "p", "", "listen port, overrides PORT")
	rootCmd.AddCommand(serverCmd)
}
