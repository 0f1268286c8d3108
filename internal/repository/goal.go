package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	All(ctx context.Context) ([]model.Goal, error)
	Upsert(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, goalID string) error
	WithTx(tx *sqlx.Tx) GoalRepository
}

type goalRepository struct {
	db sqlx.ExtContext
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{db: tx}
}

func (r *goalRepository) All(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	query := `SELECT * FROM goals ORDER BY date ASC`

	err := sqlx.SelectContext(ctx, r.db, &goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Upsert(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, date, type, target_dist, target_pace, interval_details, achieved, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE
	          SET date = excluded.date, type = excluded.type, target_dist = excluded.target_dist,
	              target_pace = excluded.target_pace, interval_details = excluded.interval_details,
	              achieved = excluded.achieved`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Date,
		goal.Type,
		goal.TargetDist,
		goal.TargetPace,
		goal.IntervalDetails,
		goal.Achieved,
		goal.CreatedAt,
	)

	return err
}

func (r *goalRepository) Delete(ctx context.Context, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
