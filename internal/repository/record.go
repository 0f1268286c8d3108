package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/model"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

type RecordRepository interface {
	All(ctx context.Context) ([]model.Record, error)
	Upsert(ctx context.Context, record *model.Record) error
	Delete(ctx context.Context, recordID string) error
	WithTx(tx *sqlx.Tx) RecordRepository
}

type recordRepository struct {
	db sqlx.ExtContext
}

func NewRecordRepository(db *sqlx.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) WithTx(tx *sqlx.Tx) RecordRepository {
	return &recordRepository{db: tx}
}

func (r *recordRepository) All(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	query := `SELECT * FROM records ORDER BY date DESC, created_at DESC`

	err := sqlx.SelectContext(ctx, r.db, &records, query)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordRepository) Upsert(ctx context.Context, record *model.Record) error {
	query := `INSERT INTO records (id, date, distance, time, pace, avg_hr, max_hr, cadence, shoe_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE
	          SET date = excluded.date, distance = excluded.distance, time = excluded.time,
	              pace = excluded.pace, avg_hr = excluded.avg_hr, max_hr = excluded.max_hr,
	              cadence = excluded.cadence, shoe_id = excluded.shoe_id`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Date,
		record.Distance,
		record.Time,
		record.Pace,
		record.AvgHR,
		record.MaxHR,
		record.Cadence,
		record.ShoeID,
		record.CreatedAt,
	)

	return err
}

func (r *recordRepository) Delete(ctx context.Context, recordID string) error {
	query := `DELETE FROM records WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, recordID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}
