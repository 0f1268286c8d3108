package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/runpro/runpro/internal/config"
	"github.com/runpro/runpro/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(cfg *config.Config, conn *sqlx.DB) error {
					return db.RunMigrations(conn.DB, cfg.DBDriver)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(cfg *config.Config, conn *sqlx.DB) error {
					return db.MigrateDown(conn.DB, cfg.DBDriver)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(cfg *config.Config, conn *sqlx.DB) error {
					version, err := db.MigrationVersion(conn.DB, cfg.DBDriver)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "current version: %d\n", version)
					return db.MigrationStatus(conn.DB, cfg.DBDriver)
				})
			},
		},
	)
	return cmd
}
