package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

// Engine computes the Change for each goal, record and shoe transition. It
// never mutates a State; callers apply the returned Change.
type Engine struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Engine)

// WithIDs replaces the id generator.
func WithIDs(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// WithClock replaces the time source used for CreatedAt stamps.
func WithClock(f func() time.Time) Option {
	return func(e *Engine) { e.now = f }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SaveGoal creates the goal for date. The new goal is never achieved.
func (e *Engine) SaveGoal(s *State, date string, in GoalInput) (Change, error) {
	if date == "" {
		return Change{}, ErrNoDateSelected
	}
	if in == nil || !in.valid() {
		return Change{}, ErrInvalidGoal
	}
	if _, ok := s.Goal(date); ok {
		return Change{}, ErrGoalExists
	}

	goal := model.Goal{
		ID:              e.newID(),
		Date:            date,
		Type:            in.Type(),
		TargetDist:      in.TargetDistance(),
		TargetPace:      in.TargetPace().String(),
		IntervalDetails: in.details(),
		CreatedAt:       e.now(),
	}
	return Change{Goals: []model.Goal{goal}}, nil
}

// Complete marks the goal on date achieved or not. Achieving writes the
// record from w and moves shoe mileage by the change in distance; reverting
// removes the record and gives its distance back.
func (e *Engine) Complete(s *State, date string, outcome bool, w Working) (Change, error) {
	if date == "" {
		return Change{}, ErrNoDateSelected
	}

	existing, hasRecord := s.Record(date)
	if outcome {
		if w.Actual.DistKm <= 0 {
			return Change{}, ErrDistanceRequired
		}
		if !validClock(w.Actual.Time) {
			return Change{}, ErrInvalidTime
		}
		if w.ShoeID != "" && (!hasRecord || w.ShoeID != existing.Shoe()) {
			if _, ok := s.Shoe(w.ShoeID); !ok {
				return Change{}, ErrShoeNotFound
			}
		}
	}

	var c Change
	if goal, ok := s.Goal(date); ok && goal.Achieved != outcome {
		goal.Achieved = outcome
		c.Goals = append(c.Goals, goal)
	}

	if !outcome {
		if hasRecord {
			c.credit(existing.Shoe(), existing.ID, model.LedgerReasonRevert, -existing.Distance)
			c.DeletedRecords = append(c.DeletedRecords, existing.ID)
		}
		return c, nil
	}

	rec := model.Record{
		Date:     date,
		Distance: w.Actual.DistKm,
		Time:     w.Actual.Time.String(),
		Pace:     runfmt.Pace(w.Actual.Time.Seconds(), w.Actual.DistKm),
		ShoeID:   optional(w.ShoeID),
	}

	if hasRecord {
		rec.ID = existing.ID
		rec.AvgHR = existing.AvgHR
		rec.MaxHR = existing.MaxHR
		rec.Cadence = existing.Cadence
		rec.CreatedAt = existing.CreatedAt

		if prev := existing.Shoe(); prev == w.ShoeID {
			c.credit(prev, rec.ID, model.LedgerReasonRevise, rec.Distance-existing.Distance)
		} else {
			c.credit(prev, rec.ID, model.LedgerReasonRevise, -existing.Distance)
			c.credit(w.ShoeID, rec.ID, model.LedgerReasonRevise, rec.Distance)
		}
	} else {
		rec.ID = e.newID()
		rec.CreatedAt = e.now()
		c.credit(w.ShoeID, rec.ID, model.LedgerReasonAchieve, rec.Distance)
	}

	c.Records = append(c.Records, rec)
	return c, nil
}

// DeleteGoal removes the goal on date. Any record on that date is kept.
func (e *Engine) DeleteGoal(s *State, date string, confirmed bool) (Change, error) {
	if date == "" {
		return Change{}, ErrNoDateSelected
	}
	if !confirmed {
		return Change{}, ErrNotConfirmed
	}
	goal, ok := s.Goal(date)
	if !ok {
		return Change{}, ErrGoalNotFound
	}
	return Change{DeletedGoals: []string{goal.ID}}, nil
}

// DeleteRecord is the revert transition behind a confirmation.
func (e *Engine) DeleteRecord(s *State, date string, confirmed bool) (Change, error) {
	if date == "" {
		return Change{}, ErrNoDateSelected
	}
	if !confirmed {
		return Change{}, ErrNotConfirmed
	}
	return e.Complete(s, date, false, Working{})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
