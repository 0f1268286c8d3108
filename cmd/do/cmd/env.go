package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/app"
	"github.com/runpro/runpro/internal/config"
	"github.com/runpro/runpro/internal/db"
	"github.com/runpro/runpro/internal/logger"
)

// withDB connects without migrating, so migrate commands see the schema as it is.
func withDB(fn func(cfg *config.Config, conn *sqlx.DB) error) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	return fn(cfg, conn)
}

// withApp boots the full application: migrated database and loaded training data.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
