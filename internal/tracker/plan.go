package tracker

import (
	"errors"
	"fmt"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

var ErrInvalidPlan = errors.New("invalid training plan")

// PlanGoals turns plan items into goals dated from start. Dates that already
// hold a goal, or that an earlier item claimed, are returned as skipped.
func (e *Engine) PlanGoals(s *State, start string, items []model.TrainingPlanItem) (Change, []string, error) {
	if !runfmt.ValidDate(start) {
		return Change{}, nil, ErrNoDateSelected
	}

	var (
		c       Change
		skipped []string
		claimed = make(map[string]bool)
	)
	for i, item := range items {
		if item.DayOffset < 0 {
			return Change{}, nil, fmt.Errorf("%w: item %d has negative day offset", ErrInvalidPlan, i)
		}
		goal, err := e.planGoal(item)
		if err != nil {
			return Change{}, nil, fmt.Errorf("%w: item %d: %w", ErrInvalidPlan, i, err)
		}

		goal.Date = runfmt.AddDays(start, item.DayOffset)
		if _, ok := s.Goal(goal.Date); ok || claimed[goal.Date] {
			skipped = append(skipped, goal.Date)
			continue
		}
		claimed[goal.Date] = true
		c.Goals = append(c.Goals, goal)
	}
	return c, skipped, nil
}

func (e *Engine) planGoal(item model.TrainingPlanItem) (model.Goal, error) {
	goal := model.Goal{
		ID:         e.newID(),
		Type:       item.Type,
		TargetDist: item.TargetDist,
		TargetPace: runfmt.ParseClock(item.TargetPace).String(),
		CreatedAt:  e.now(),
	}

	switch item.Type {
	case model.GoalTypeInterval:
		d := item.IntervalDetails
		if d == nil {
			return model.Goal{}, ErrInvalidGoal
		}
		in := IntervalGoalInput{Sets: d.Sets, WorkDist: d.WorkDist, RestTime: d.RestTime}
		if !in.valid() {
			return model.Goal{}, ErrInvalidGoal
		}
		goal.TargetDist = in.TargetDistance()
		goal.IntervalDetails = in.details()
	case model.GoalTypeDistance:
		if item.TargetDist < 0 {
			return model.Goal{}, ErrInvalidGoal
		}
	default:
		return model.Goal{}, fmt.Errorf("unknown goal type %q", item.Type)
	}
	return goal, nil
}
