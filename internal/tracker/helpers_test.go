package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runpro/runpro/internal/model"
)

var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	n := 0
	return NewEngine(
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func mustState(t *testing.T, goals []model.Goal, records []model.Record, shoes []model.Shoe) *State {
	t.Helper()
	s, err := NewState(goals, records, shoes)
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func distanceGoal(id, date string, km float64, achieved bool) model.Goal {
	return model.Goal{
		ID:         id,
		Date:       date,
		Type:       model.GoalTypeDistance,
		TargetDist: km,
		TargetPace: "5:30",
		Achieved:   achieved,
	}
}

func record(id, date string, km float64, shoeID string) model.Record {
	r := model.Record{ID: id, Date: date, Distance: km, Time: "50:00", Pace: "5:00"}
	if shoeID != "" {
		r.ShoeID = strPtr(shoeID)
	}
	return r
}

func shoe(id string, mileage float64) model.Shoe {
	return model.Shoe{
		ID:         id,
		Name:       "Pegasus",
		Brand:      "Nike",
		Mileage:    mileage,
		MaxMileage: 600,
		Color:      model.DefaultShoeColor,
	}
}

// apply runs a change and checks the audit invariant: every shoe moved by
// exactly the sum of its settlements.
func apply(t *testing.T, s *State, c Change) (*State, []Settlement) {
	t.Helper()
	next, settled := s.Apply(c)
	for id, delta := range Balance(settled) {
		before, _ := s.Shoe(id)
		after, ok := next.Shoe(id)
		if !ok {
			continue
		}
		require.InDelta(t, before.Mileage+delta, after.Mileage, 1e-9, "shoe %s", id)
	}
	return next, settled
}
