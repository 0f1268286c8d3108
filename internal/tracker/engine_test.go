package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

func TestDeriveMode(t *testing.T) {
	s := mustState(t,
		[]model.Goal{
			distanceGoal("g1", "2024-03-01", 5, false),
			distanceGoal("g2", "2024-03-02", 5, true),
		},
		[]model.Record{
			record("r2", "2024-03-02", 5, ""),
			record("r3", "2024-03-03", 5, ""),
		},
		nil,
	)

	tests := []struct {
		date string
		want Mode
	}{
		{"2024-03-01", ModeLog},
		{"2024-03-02", ModeView},
		{"2024-03-03", ModeCreate},
		{"2024-03-04", ModeCreate},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveMode(s, tt.date))
		})
	}
}

func TestSaveGoal(t *testing.T) {
	t.Run("interval target distance", func(t *testing.T) {
		e := testEngine()
		c, err := e.SaveGoal(mustState(t, nil, nil, nil), "2024-03-01", IntervalGoalInput{
			Sets: 5, WorkDist: 400, RestTime: 90, Pace: runfmt.Clock{Min: 4, Sec: 5},
		})
		require.NoError(t, err)
		require.Len(t, c.Goals, 1)

		g := c.Goals[0]
		assert.Equal(t, "id-1", g.ID)
		assert.Equal(t, model.GoalTypeInterval, g.Type)
		assert.InDelta(t, 2.0, g.TargetDist, 1e-9)
		assert.Equal(t, "4:05", g.TargetPace)
		assert.Equal(t, &model.IntervalDetails{Sets: 5, WorkDist: 400, RestTime: 90}, g.IntervalDetails)
		assert.False(t, g.Achieved)
		assert.Equal(t, fixedNow, g.CreatedAt)
	})

	t.Run("distance goal", func(t *testing.T) {
		c, err := testEngine().SaveGoal(mustState(t, nil, nil, nil), "2024-03-01", DistanceGoalInput{
			DistKm: 10, Pace: runfmt.Clock{Min: 5, Sec: 0},
		})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, c.Goals[0].TargetDist, 1e-9)
		assert.Equal(t, "5:00", c.Goals[0].TargetPace)
		assert.Nil(t, c.Goals[0].IntervalDetails)
	})

	t.Run("no date", func(t *testing.T) {
		_, err := testEngine().SaveGoal(mustState(t, nil, nil, nil), "", DistanceGoalInput{DistKm: 5})
		assert.ErrorIs(t, err, ErrNoDateSelected)
	})

	t.Run("existing goal", func(t *testing.T) {
		s := mustState(t, []model.Goal{distanceGoal("g1", "2024-03-01", 5, false)}, nil, nil)
		_, err := testEngine().SaveGoal(s, "2024-03-01", DistanceGoalInput{DistKm: 5})
		assert.ErrorIs(t, err, ErrGoalExists)
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := testEngine().SaveGoal(mustState(t, nil, nil, nil), "2024-03-01", IntervalGoalInput{Sets: 0, WorkDist: 400})
		assert.ErrorIs(t, err, ErrInvalidGoal)
	})
}

func TestAchieveThenRevert(t *testing.T) {
	e := testEngine()
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, false)},
		nil,
		[]model.Shoe{shoe("s1", 100)},
	)

	c, err := e.Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 10, Time: runfmt.Clock{Min: 50}},
		ShoeID: "s1",
	})
	require.NoError(t, err)

	s, settled := apply(t, s, c)
	rec, ok := s.Record("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, "5:00", rec.Pace)
	assert.Equal(t, "50:00", rec.Time)
	assert.Equal(t, "s1", rec.Shoe())
	goal, _ := s.Goal("2024-03-01")
	assert.True(t, goal.Achieved)
	sh, _ := s.Shoe("s1")
	assert.InDelta(t, 110.0, sh.Mileage, 1e-9)
	require.Len(t, settled, 1)
	assert.Equal(t, model.LedgerReasonAchieve, settled[0].Reason)

	c, err = e.Complete(s, "2024-03-01", false, Working{})
	require.NoError(t, err)
	s, _ = apply(t, s, c)

	_, ok = s.Record("2024-03-01")
	assert.False(t, ok)
	goal, ok = s.Goal("2024-03-01")
	require.True(t, ok, "revert keeps the goal")
	assert.False(t, goal.Achieved)
	sh, _ = s.Shoe("s1")
	assert.InDelta(t, 100.0, sh.Mileage, 1e-9)
}

func TestRevertClampsMileage(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 10, "s1")},
		[]model.Shoe{shoe("s1", 3)},
	)

	c, err := testEngine().Complete(s, "2024-03-01", false, Working{})
	require.NoError(t, err)
	next, settled := apply(t, s, c)

	sh, _ := next.Shoe("s1")
	assert.Equal(t, 0.0, sh.Mileage)
	require.Len(t, settled, 1)
	assert.Equal(t, -10.0, settled[0].Km)
	assert.Equal(t, -3.0, settled[0].Applied)
}

func TestReachieveAppliesDelta(t *testing.T) {
	hr := 150
	rec := record("r1", "2024-03-01", 10, "s1")
	rec.AvgHR = &hr
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{rec},
		[]model.Shoe{shoe("s1", 50)},
	)

	c, err := testEngine().Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 15, Time: runfmt.Clock{Min: 75}},
		ShoeID: "s1",
	})
	require.NoError(t, err)
	assert.Empty(t, c.Goals, "goal already achieved")
	next, _ := apply(t, s, c)

	sh, _ := next.Shoe("s1")
	assert.InDelta(t, 55.0, sh.Mileage, 1e-9)

	updated, _ := next.Record("2024-03-01")
	assert.Equal(t, "r1", updated.ID)
	assert.Equal(t, 15.0, updated.Distance)
	assert.Equal(t, "5:00", updated.Pace)
	assert.Equal(t, &hr, updated.AvgHR)
}

func TestReachieveWithNewShoeMovesMileageBetweenShoes(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 10, "s1")},
		[]model.Shoe{shoe("s1", 40), shoe("s2", 5)},
	)

	c, err := testEngine().Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 12, Time: runfmt.Clock{Min: 60}},
		ShoeID: "s2",
	})
	require.NoError(t, err)
	next, _ := apply(t, s, c)

	s1, _ := next.Shoe("s1")
	s2, _ := next.Shoe("s2")
	assert.InDelta(t, 30.0, s1.Mileage, 1e-9)
	assert.InDelta(t, 17.0, s2.Mileage, 1e-9)
}

func TestCompleteRequiresDistance(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, false)},
		nil,
		[]model.Shoe{shoe("s1", 20)},
	)

	c, err := testEngine().Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 0, Time: runfmt.Clock{Min: 30}},
		ShoeID: "s1",
	})
	assert.ErrorIs(t, err, ErrDistanceRequired)
	assert.True(t, c.IsEmpty())

	goal, _ := s.Goal("2024-03-01")
	assert.False(t, goal.Achieved)
	_, ok := s.Record("2024-03-01")
	assert.False(t, ok)
}

func TestCompleteRejectsMalformedTime(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 10, "s1")},
		[]model.Shoe{shoe("s1", 40)},
	)

	tests := []struct {
		name string
		time runfmt.Clock
	}{
		{"seconds past 59", runfmt.Clock{Min: 50, Sec: 75}},
		{"negative minutes", runfmt.Clock{Min: -50}},
		{"negative seconds", runfmt.Clock{Min: 50, Sec: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := testEngine().Complete(s, "2024-03-01", true, Working{
				Actual: Actual{DistKm: 12, Time: tt.time},
				ShoeID: "s1",
			})
			assert.ErrorIs(t, err, ErrInvalidTime)
			assert.True(t, c.IsEmpty())
		})
	}

	stored, _ := s.Record("2024-03-01")
	assert.InDelta(t, 10.0, stored.Distance, 1e-9)
}

func TestCompleteValidation(t *testing.T) {
	s := mustState(t, nil, nil, nil)
	e := testEngine()

	_, err := e.Complete(s, "", true, Working{Actual: Actual{DistKm: 5}})
	assert.ErrorIs(t, err, ErrNoDateSelected)

	_, err = e.Complete(s, "2024-03-01", true, Working{Actual: Actual{DistKm: 5}, ShoeID: "missing"})
	assert.ErrorIs(t, err, ErrShoeNotFound)
}

func TestCompleteKeepsDanglingShoe(t *testing.T) {
	// The record's shoe was deleted; re-saving without changing the
	// selection is allowed and moves no mileage.
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 10, "gone")},
		nil,
	)

	c, err := testEngine().Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 11, Time: runfmt.Clock{Min: 55}},
		ShoeID: "gone",
	})
	require.NoError(t, err)
	_, settled := apply(t, s, c)
	assert.Empty(t, settled)
}

func TestCompleteWithoutGoal(t *testing.T) {
	s := mustState(t, nil, nil, nil)
	c, err := testEngine().Complete(s, "2024-03-01", true, Working{
		Actual: Actual{DistKm: 3, Time: runfmt.Clock{Min: 18}},
	})
	require.NoError(t, err)
	assert.Empty(t, c.Goals)
	require.Len(t, c.Records, 1)
	assert.Equal(t, "6:00", c.Records[0].Pace)
	assert.Nil(t, c.Records[0].ShoeID)
}

func TestDeleteGoalLeavesRecord(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 10, "")},
		nil,
	)
	e := testEngine()

	_, err := e.DeleteGoal(s, "2024-03-01", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	c, err := e.DeleteGoal(s, "2024-03-01", true)
	require.NoError(t, err)
	next, _ := apply(t, s, c)

	_, ok := next.Goal("2024-03-01")
	assert.False(t, ok)
	// Orphaned record: a logged run with no goal.
	_, ok = next.Record("2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, ModeCreate, DeriveMode(next, "2024-03-01"))

	_, err = e.DeleteGoal(next, "2024-03-01", true)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestDeleteRecordReverts(t *testing.T) {
	s := mustState(t,
		[]model.Goal{distanceGoal("g1", "2024-03-01", 10, true)},
		[]model.Record{record("r1", "2024-03-01", 8, "s1")},
		[]model.Shoe{shoe("s1", 20)},
	)
	e := testEngine()

	_, err := e.DeleteRecord(s, "2024-03-01", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	c, err := e.DeleteRecord(s, "2024-03-01", true)
	require.NoError(t, err)
	next, _ := apply(t, s, c)

	assert.Equal(t, ModeLog, DeriveMode(next, "2024-03-01"))
	sh, _ := next.Shoe("s1")
	assert.InDelta(t, 12.0, sh.Mileage, 1e-9)
	goal, _ := next.Goal("2024-03-01")
	assert.False(t, goal.Achieved)
}
