package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"serviq/internal/app"
	"serviq/internal/config"
	"serviq/internal/logging"
)

// version is overridden at build time with -ldflags "-X serviq/cmd/serviq/commands.version=...".
var version = "0.1.0"

var (
	// Global flags
	cfgFile string

	v      = config.New()
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "serviq",
	Short: "Serviq - orders and invoices for service businesses",
	Long: `Serviq keeps orders for a small service business and turns them into invoices.

Features:
  - HTTP API with Swagger UI
  - Interactive terminal UI with breadcrumb navigation
  - Gift promotions, discounts and tax on invoices
  - PNG and PDF invoice export
  - Order extraction from free text with Gemini`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./serviq.yaml or $HOME/.serviq/serviq.yaml)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("storage", config.BackendBadger, "Storage backend (memory, badger, postgres)")
	pf.String("data-dir", "./data", "Directory of the badger database")
	pf.String("postgres-dsn", "", "Postgres connection URL for the postgres backend")

	bindFlag(rootCmd, "log.level", "log-level")
	bindFlag(rootCmd, "storage.backend", "storage")
	bindFlag(rootCmd, "storage.data_dir", "data-dir")
	bindFlag(rootCmd, "storage.postgres_dsn", "postgres-dsn")
}

// bindFlag makes a flag of cmd the highest priority source of key.
func bindFlag(cmd *cobra.Command, key, name string) {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		f = cmd.Flags().Lookup(name)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return setupLogger()
}

func setupLogger() error {
	var paths []string
	if cfg.Log.File != "" {
		paths = []string{cfg.Log.File}
	}
	l, err := logging.New(cfg.Log.Level, paths...)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// openApp builds the application from the loaded configuration.
func openApp(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("app ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.Bool("ai", cfg.AI.APIKey != ""),
	)
	return a, nil
}
