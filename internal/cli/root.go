// Package cli wires configuration, storage and transports into the storefront binary.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API: accounts, orders and payments",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the config and installs the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("config.Load: %w", err)
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return cfg, fmt.Errorf("cfg.Log.NewLogger: %w", err)
	}
	slog.SetDefault(logger)

	return cfg, nil
}
