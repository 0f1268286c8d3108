package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const SettingCoachAPIKey = "coach_api_key"

var (
	ErrSettingNotFound = errors.New("setting not found")
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type settingRepository struct {
	db sqlx.ExtContext
}

func NewSettingRepository(db *sqlx.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE key = $1`

	err := sqlx.GetContext(ctx, r.db, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}

	return value, err
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now())
	return err
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM settings WHERE key = $1`
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
