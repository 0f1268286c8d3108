package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpro/runpro/internal/model"
)

func TestNewStateRejectsDuplicateDates(t *testing.T) {
	_, err := NewState(
		[]model.Goal{distanceGoal("g1", "2024-03-01", 5, false), distanceGoal("g2", "2024-03-01", 6, false)},
		nil, nil,
	)
	assert.ErrorIs(t, err, ErrDuplicateDate)

	_, err = NewState(nil,
		[]model.Record{record("r1", "2024-03-01", 5, ""), record("r2", "2024-03-01", 6, "")},
		nil,
	)
	assert.ErrorIs(t, err, ErrDuplicateDate)
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	s := mustState(t, []model.Goal{distanceGoal("g1", "2024-03-01", 5, false)}, nil, []model.Shoe{shoe("s1", 10)})

	next, _ := s.Apply(Change{
		DeletedGoals: []string{"g1"},
		Records:      []model.Record{record("r1", "2024-03-02", 4, "s1")},
		Mileage:      []MileageDelta{{ShoeID: "s1", Km: 4, Reason: model.LedgerReasonAchieve}},
	})

	_, ok := s.Goal("2024-03-01")
	assert.True(t, ok)
	_, ok = s.Record("2024-03-02")
	assert.False(t, ok)
	sh, _ := s.Shoe("s1")
	assert.Equal(t, 10.0, sh.Mileage)

	_, ok = next.Goal("2024-03-01")
	assert.False(t, ok)
	sh, _ = next.Shoe("s1")
	assert.Equal(t, 14.0, sh.Mileage)
}

func TestApplyReindexesMovedEntries(t *testing.T) {
	s := mustState(t, []model.Goal{distanceGoal("g1", "2024-03-01", 5, false)}, nil, nil)

	moved := distanceGoal("g1", "2024-03-05", 5, false)
	next, _ := s.Apply(Change{Goals: []model.Goal{moved}})

	_, ok := next.Goal("2024-03-01")
	assert.False(t, ok)
	g, ok := next.Goal("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, "2024-03-05", g.Date)
}

func TestApplySkipsMissingShoe(t *testing.T) {
	s := mustState(t, nil, nil, nil)
	_, settled := s.Apply(Change{Mileage: []MileageDelta{{ShoeID: "gone", Km: 5}}})
	assert.Empty(t, settled)
}

func TestApplyRecordsManualMileage(t *testing.T) {
	s := mustState(t, nil, nil, []model.Shoe{shoe("s1", 10)})

	edited := shoe("s1", 25)
	added := shoe("s2", 7)
	next, settled := apply(t, s, Change{Shoes: []model.Shoe{edited, added}})

	require.Len(t, settled, 2)
	assert.Equal(t, model.LedgerReasonManual, settled[0].Reason)
	assert.Equal(t, 15.0, settled[0].Applied)
	assert.Equal(t, model.LedgerReasonOpening, settled[1].Reason)
	assert.Equal(t, 7.0, settled[1].Applied)
	assert.Equal(t, 2, next.ShoeCount())
}

func TestOrdering(t *testing.T) {
	early := shoe("b", 0)
	early.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := shoe("a", 0)
	late.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	s := mustState(t,
		[]model.Goal{distanceGoal("g2", "2024-03-02", 5, false), distanceGoal("g1", "2024-03-01", 5, false)},
		[]model.Record{record("r1", "2024-03-01", 5, ""), record("r2", "2024-03-02", 5, "")},
		[]model.Shoe{late, early},
	)

	goals := s.Goals()
	assert.Equal(t, "2024-03-01", goals[0].Date)
	records := s.Records()
	assert.Equal(t, "2024-03-02", records[0].Date)
	shoes := s.Shoes()
	assert.Equal(t, "b", shoes[0].ID)
}

func TestApplyDelta(t *testing.T) {
	assert.Equal(t, 15.0, ApplyDelta(10, 5))
	assert.Equal(t, 0.0, ApplyDelta(3, -10))
	assert.Equal(t, 0.0, ApplyDelta(0, 0))
}
