package main

import (
	"fmt"
	"log/slog"
	"os"

	"Mala_Admin/internal/config"
	"Mala_Admin/internal/pkg"

	"github.com/spf13/cobra"
)

const programName = "mala-admin"

var (
	globalFlags = struct {
		debug bool
	}{}
	configFile string
)

func commonRun(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if globalFlags.debug {
		level = "debug"
	}
	logger := pkg.NewLogger(os.Stdout, level, cfg.Logging.Format).With("component", programName)
	slog.SetDefault(logger)
	if cfg.Auth.EphemeralSecret() {
		logger.Warn("auth.jwt_secret is not set; using a random key for this process, sessions end on restart")
	}
	return logger
}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Back office API for members, donations, complaints and media",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd, args)
		},
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(createAdminCommand())
	rootCmd.AddCommand(migrateCommand())

	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
