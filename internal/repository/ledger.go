package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/model"
)

type LedgerRepository interface {
	Insert(ctx context.Context, entry *model.LedgerEntry) error
	ByShoe(ctx context.Context, shoeID string) ([]model.LedgerEntry, error)
	Balance(ctx context.Context, shoeID string) (float64, error)
	WithTx(tx *sqlx.Tx) LedgerRepository
}

type ledgerRepository struct {
	db sqlx.ExtContext
}

func NewLedgerRepository(db *sqlx.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *sqlx.Tx) LedgerRepository {
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Insert(ctx context.Context, entry *model.LedgerEntry) error {
	query := `INSERT INTO mileage_ledger (id, shoe_id, record_id, reason, requested_km, km, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ShoeID,
		entry.RecordID,
		entry.Reason,
		entry.Requested,
		entry.Km,
		entry.CreatedAt,
	)

	return err
}

func (r *ledgerRepository) ByShoe(ctx context.Context, shoeID string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	query := `SELECT * FROM mileage_ledger WHERE shoe_id = $1 ORDER BY created_at ASC`

	err := sqlx.SelectContext(ctx, r.db, &entries, query, shoeID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Balance sums the applied entries for a shoe
func (r *ledgerRepository) Balance(ctx context.Context, shoeID string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(km), 0) FROM mileage_ledger WHERE shoe_id = $1`
	err := sqlx.GetContext(ctx, r.db, &total, query, shoeID)
	return total, err
}
