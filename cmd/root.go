package cmd

import (
	"fmt"
	"os"

	"audiolist/config"
	"audiolist/logger"
	"audiolist/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audiolist",
	Short: "audiolist is a small playlist server that stores uploaded tracks in memory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, config.Load())
	},
}

// run initialises logging from cfg and blocks until the server exits.
func run(cmd *cobra.Command, cfg *config.Config) error {
	if err := logger.InitLogger(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer logger.Sync()

	return server.Start(cmd.Context(), cfg)
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
