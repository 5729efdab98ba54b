package main

import (
	"fmt"
	"os"

	"github.com/page-comments-api/internal/config"
	"github.com/page-comments-api/internal/database"
	"github.com/page-comments-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "page-comments-api",
		Short: "Comment service for a static site",
		Long: `Stores and serves comments for the pages of a static site.
Posting requires a short-lived token bound to the client address.
Without a subcommand the HTTP server is started.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().String("port", "", "listen port, overrides PORT")
	root.PersistentFlags().String("migrations-path", "", "migrations directory, overrides MIGRATIONS_PATH")

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newPagesCmd())

	return root
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if port, _ := flags.GetString("port"); port != "" {
		cfg.Server.Port = port
	}
	if path, _ := flags.GetString("migrations-path"); path != "" {
		cfg.Server.MigrationsPath = path
	}

	return cfg, nil
}

// bootstrap loads configuration, builds the logger and connects to the database
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, *database.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logger.New(cfg.Log)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, log, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, log, db, nil
}
