package service

import (
	"context"
	"log/slog"

	"github.com/runpro/runpro/internal/model"
)

// PlanResult reports which plan dates became goals.
type PlanResult struct {
	Created []model.Goal `json:"created"`
	Skipped []string     `json:"skipped"`
}

// ApplyPlan adds a goal for each plan item, counting days from start. Dates
// that already have a goal are left alone. All goals are written together.
func (s *TrainingService) ApplyPlan(ctx context.Context, start string, items []model.TrainingPlanItem) (*PlanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	c, skipped, err := s.engine.PlanGoals(state, start, items)
	if _, err := s.commit(ctx, "apply_plan", c, err); err != nil {
		return nil, err
	}

	slog.Info("training plan applied", "start", start, "created", len(c.Goals), "skipped", len(skipped))
	return &PlanResult{Created: c.Goals, Skipped: skipped}, nil
}
