package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/runpro/runpro/internal/model"
)

func day(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func TestWindowForWeek(t *testing.T) {
	// 2023-11-22 is a Wednesday.
	w := WindowFor(day("2023-11-22"), ModeWeek)
	start, end := w.Keys()
	assert.Equal(t, "2023-11-19", start)
	assert.Equal(t, "2023-11-25", end)

	// Sunday starts its own week.
	w = WindowFor(day("2023-11-19"), ModeWeek)
	start, _ = w.Keys()
	assert.Equal(t, "2023-11-19", start)

	// Week spanning a month boundary.
	w = WindowFor(day("2023-12-01"), ModeWeek)
	start, end = w.Keys()
	assert.Equal(t, "2023-11-26", start)
	assert.Equal(t, "2023-12-02", end)
}

func TestWindowForMonth(t *testing.T) {
	start, end := WindowFor(day("2024-02-10"), ModeMonth).Keys()
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	start, end = WindowFor(day("2023-12-31"), ModeMonth).Keys()
	assert.Equal(t, "2023-12-01", start)
	assert.Equal(t, "2023-12-31", end)
}

func TestAggregateWeek(t *testing.T) {
	goals := []model.Goal{
		{Date: "2023-11-20", TargetDist: 10},
		{Date: "2023-11-22", TargetDist: 5},
		{Date: "2023-11-28", TargetDist: 20}, // same month, next week
	}
	records := []model.Record{
		{Date: "2023-11-20", Distance: 7.5},
		{Date: "2023-11-21", Distance: 4.8},
		{Date: "2023-11-02", Distance: 30}, // same month, earlier week
	}

	got := Aggregate(day("2023-11-22"), ModeWeek, goals, records)
	assert.Equal(t, 12, got.Actual)
	assert.Equal(t, 15, got.Target)
	assert.Equal(t, "2023-11-19", got.Start)
	assert.Equal(t, "2023-11-25", got.End)
}

func TestAggregateMonthFloorsTotals(t *testing.T) {
	goals := []model.Goal{
		{Date: "2023-11-01", TargetDist: 2.0},
		{Date: "2023-11-30", TargetDist: 1.6},
		{Date: "2023-12-01", TargetDist: 50},
	}
	records := []model.Record{
		{Date: "2023-11-30", Distance: 3.99},
		{Date: "2023-10-31", Distance: 10},
	}

	got := Aggregate(day("2023-11-15"), ModeMonth, goals, records)
	assert.Equal(t, Totals{Actual: 3, Target: 3, Start: "2023-11-01", End: "2023-11-30", Mode: ModeMonth}, got)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(day("2023-11-15"), ModeWeek, nil, nil)
	assert.Zero(t, got.Actual)
	assert.Zero(t, got.Target)
}

func TestShift(t *testing.T) {
	assert.Equal(t, day("2023-11-29"), Shift(day("2023-11-22"), ModeWeek, 1))
	assert.Equal(t, day("2023-11-15"), Shift(day("2023-11-22"), ModeWeek, -1))
	assert.Equal(t, day("2024-01-22"), Shift(day("2023-11-22"), ModeMonth, 2))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeWeek, m)

	m, ok = ParseMode("month")
	assert.True(t, ok)
	assert.Equal(t, ModeMonth, m)

	_, ok = ParseMode("year")
	assert.False(t, ok)
}
