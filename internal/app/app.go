package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/coach"
	"github.com/runpro/runpro/internal/config"
	"github.com/runpro/runpro/internal/db"
	"github.com/runpro/runpro/internal/markdown"
	"github.com/runpro/runpro/internal/repository"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/storage"
	"github.com/runpro/runpro/internal/tracker"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Settings        repository.SettingRepository
	TrainingService *service.TrainingService
	BackupService   *service.BackupService
	Coach           *coach.Coach
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Connect and run database migrations
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	recordRepository := repository.NewRecordRepository(database)
	shoeRepository := repository.NewShoeRepository(database)
	ledgerRepository := repository.NewLedgerRepository(database)
	settingRepository := repository.NewSettingRepository(database)

	// Storage (nil when no bucket is configured)
	backupStorage, err := storage.New(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	trainingService := service.NewTrainingService(
		database,
		goalRepository,
		recordRepository,
		shoeRepository,
		ledgerRepository,
		tracker.NewEngine(),
		cfg.ShoeLimit,
	)
	err = trainingService.Load(ctx)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	backupService := service.NewBackupService(trainingService, backupStorage)

	runCoach, err := coach.New(coach.GeminiFactory(cfg.GeminiModel), markdown.NewParser())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize coach: %w", err)
	}
	installAPIKey(ctx, runCoach, settingRepository, cfg.GeminiAPIKey)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Settings:        settingRepository,
		TrainingService: trainingService,
		BackupService:   backupService,
		Coach:           runCoach,
	}, nil
}

// installAPIKey prefers the environment key over one saved at runtime. A bad
// key leaves the coach disabled rather than failing startup.
func installAPIKey(ctx context.Context, c *coach.Coach, settings repository.SettingRepository, envKey string) {
	key, source := envKey, "env"
	if key == "" {
		saved, err := settings.Get(ctx, repository.SettingCoachAPIKey)
		if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
			slog.Warn("failed to read saved coach key", "error", err)
		}
		key, source = saved, "settings"
	}
	if key == "" {
		slog.Info("coach disabled, no API key")
		return
	}

	if err := c.SetAPIKey(ctx, key); err != nil {
		slog.Warn("coach disabled, API key rejected", "error", err, "source", source)
		return
	}
	slog.Info("coach enabled", "source", source)
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
