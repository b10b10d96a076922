// Package main provides the entry point for the circles CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/circle-core/internal/infrastructure/config"
	"github.com/ersonp/circle-core/internal/infrastructure/logging"
)

var (
	version      = "0.1.0-dev"
	globalLocale string
	verbose      bool

	globalConfig *config.Config
	logger       = zap.NewNop()
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "circles",
		Short:         "Normalize event categories and filter circles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			cfg, err := config.LoadOrDefault(cwd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			globalConfig = cfg

			l, err := logging.New(cfg.Log, verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalLocale, "locale", "l", "", "Display locale (en, fr); defaults to display.locale from config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newCategoriesCmd(),
		newVibesCmd(),
		newImportCmd(),
		newListCmd(),
		newShowCmd(),
		newExportCmd(),
		newDeleteCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
