package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply all pending migrations or roll back the last one",
		ValidArgs: []string{"up", "down"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if args[0] == "down" {
				return db.MigrateDown(cfg.Server.MigrationsPath)
			}
			return db.RunMigrations(cfg.Server.MigrationsPath)
		},
	}
}
