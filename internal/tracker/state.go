package tracker

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/runpro/runpro/internal/model"
)

// State is an immutable snapshot of goals, records and shoes. Goals and
// records are indexed by date (at most one each per date) and by id.
type State struct {
	goals       map[string]model.Goal
	goalDates   map[string]string
	records     map[string]model.Record
	recordDates map[string]string
	shoes       map[string]model.Shoe
}

func emptyState() *State {
	return &State{
		goals:       make(map[string]model.Goal),
		goalDates:   make(map[string]string),
		records:     make(map[string]model.Record),
		recordDates: make(map[string]string),
		shoes:       make(map[string]model.Shoe),
	}
}

// NewState indexes the given collections. Two goals or two records on the
// same date are rejected.
func NewState(goals []model.Goal, records []model.Record, shoes []model.Shoe) (*State, error) {
	s := emptyState()
	for _, g := range goals {
		if _, ok := s.goals[g.Date]; ok {
			return nil, fmt.Errorf("%w: goal on %s", ErrDuplicateDate, g.Date)
		}
		s.putGoal(g)
	}
	for _, r := range records {
		if _, ok := s.records[r.Date]; ok {
			return nil, fmt.Errorf("%w: record on %s", ErrDuplicateDate, r.Date)
		}
		s.putRecord(r)
	}
	for _, sh := range shoes {
		s.shoes[sh.ID] = sh
	}
	return s, nil
}

func (s *State) Goal(date string) (model.Goal, bool) {
	g, ok := s.goals[date]
	return g, ok
}

func (s *State) Record(date string) (model.Record, bool) {
	r, ok := s.records[date]
	return r, ok
}

func (s *State) Shoe(id string) (model.Shoe, bool) {
	sh, ok := s.shoes[id]
	return sh, ok
}

func (s *State) ShoeCount() int {
	return len(s.shoes)
}

// Goals returns goals in date order.
func (s *State) Goals() []model.Goal {
	out := slices.Collect(maps.Values(s.goals))
	slices.SortFunc(out, func(a, b model.Goal) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// Records returns records newest date first.
func (s *State) Records() []model.Record {
	out := slices.Collect(maps.Values(s.records))
	slices.SortFunc(out, func(a, b model.Record) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// Shoes returns shoes in the order they were added.
func (s *State) Shoes() []model.Shoe {
	out := slices.Collect(maps.Values(s.shoes))
	slices.SortFunc(out, func(a, b model.Shoe) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Apply returns the snapshot that results from c, leaving s untouched, along
// with every mileage change it made.
func (s *State) Apply(c Change) (*State, []Settlement) {
	next := &State{
		goals:       maps.Clone(s.goals),
		goalDates:   maps.Clone(s.goalDates),
		records:     maps.Clone(s.records),
		recordDates: maps.Clone(s.recordDates),
		shoes:       maps.Clone(s.shoes),
	}
	var settled []Settlement

	for _, id := range c.DeletedShoes {
		delete(next.shoes, id)
	}
	for _, sh := range c.Shoes {
		before := next.shoes[sh.ID]
		next.shoes[sh.ID] = sh
		if km := sh.Mileage - before.Mileage; km != 0 {
			reason := model.LedgerReasonManual
			if before.ID == "" {
				reason = model.LedgerReasonOpening
			}
			settled = append(settled, Settlement{
				MileageDelta: MileageDelta{ShoeID: sh.ID, Reason: reason, Km: km},
				Applied:      km,
				Mileage:      sh.Mileage,
			})
		}
	}

	for _, id := range c.DeletedGoals {
		if date, ok := next.goalDates[id]; ok {
			delete(next.goals, date)
			delete(next.goalDates, id)
		}
	}
	for _, g := range c.Goals {
		next.putGoal(g)
	}

	for _, id := range c.DeletedRecords {
		if date, ok := next.recordDates[id]; ok {
			delete(next.records, date)
			delete(next.recordDates, id)
		}
	}
	for _, r := range c.Records {
		next.putRecord(r)
	}

	for _, d := range c.Mileage {
		if st, ok := settle(next.shoes, d); ok {
			settled = append(settled, st)
		}
	}

	return next, settled
}

func (s *State) putGoal(g model.Goal) {
	if old, ok := s.goalDates[g.ID]; ok && old != g.Date {
		delete(s.goals, old)
	}
	if prev, ok := s.goals[g.Date]; ok && prev.ID != g.ID {
		delete(s.goalDates, prev.ID)
	}
	s.goals[g.Date] = g
	s.goalDates[g.ID] = g.Date
}

func (s *State) putRecord(r model.Record) {
	if old, ok := s.recordDates[r.ID]; ok && old != r.Date {
		delete(s.records, old)
	}
	if prev, ok := s.records[r.Date]; ok && prev.ID != r.ID {
		delete(s.recordDates, prev.ID)
	}
	s.records[r.Date] = r
	s.recordDates[r.ID] = r.Date
}
