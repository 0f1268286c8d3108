package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/model"
)

var (
	ErrShoeNotFound = errors.New("shoe not found")
)

type ShoeRepository interface {
	All(ctx context.Context) ([]model.Shoe, error)
	ByID(ctx context.Context, shoeID string) (*model.Shoe, error)
	Upsert(ctx context.Context, shoe *model.Shoe) error
	UpdateMileage(ctx context.Context, shoeID string, mileage float64) error
	Delete(ctx context.Context, shoeID string) error
	WithTx(tx *sqlx.Tx) ShoeRepository
}

type shoeRepository struct {
	db sqlx.ExtContext
}

func NewShoeRepository(db *sqlx.DB) ShoeRepository {
	return &shoeRepository{db: db}
}

func (r *shoeRepository) WithTx(tx *sqlx.Tx) ShoeRepository {
	return &shoeRepository{db: tx}
}

func (r *shoeRepository) All(ctx context.Context) ([]model.Shoe, error) {
	var shoes []model.Shoe
	query := `SELECT * FROM shoes ORDER BY created_at ASC, id ASC`

	err := sqlx.SelectContext(ctx, r.db, &shoes, query)
	if err != nil {
		return nil, err
	}

	return shoes, nil
}

func (r *shoeRepository) ByID(ctx context.Context, shoeID string) (*model.Shoe, error) {
	shoe := &model.Shoe{}
	query := `SELECT * FROM shoes WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, shoe, query, shoeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShoeNotFound
	}

	return shoe, err
}

func (r *shoeRepository) Upsert(ctx context.Context, shoe *model.Shoe) error {
	query := `INSERT INTO shoes (id, name, brand, mileage, max_mileage, color, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE
	          SET name = excluded.name, brand = excluded.brand, mileage = excluded.mileage,
	              max_mileage = excluded.max_mileage, color = excluded.color`

	_, err := r.db.ExecContext(ctx, query,
		shoe.ID,
		shoe.Name,
		shoe.Brand,
		shoe.Mileage,
		shoe.MaxMileage,
		shoe.Color,
		shoe.CreatedAt,
	)

	return err
}

func (r *shoeRepository) UpdateMileage(ctx context.Context, shoeID string, mileage float64) error {
	query := `UPDATE shoes SET mileage = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, mileage, shoeID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrShoeNotFound
	}

	return nil
}

func (r *shoeRepository) Delete(ctx context.Context, shoeID string) error {
	query := `DELETE FROM shoes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, shoeID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrShoeNotFound
	}

	return nil
}
