// Package stats projects goals and records onto the visible calendar window.
package stats

import (
	"math"
	"time"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeWeek, "":
		return ModeWeek, true
	case ModeMonth:
		return ModeMonth, true
	default:
		return "", false
	}
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the week (Sunday through Saturday) or calendar month
// containing ref.
func WindowFor(ref time.Time, mode Mode) Window {
	y, m, d := ref.Date()
	loc := ref.Location()

	if mode == ModeMonth {
		return Window{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, m+1, 0, 0, 0, 0, 0, loc),
		}
	}

	start := time.Date(y, m, d-int(ref.Weekday()), 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Keys returns the window bounds as day keys.
func (w Window) Keys() (start, end string) {
	return runfmt.FormatDate(w.Start), runfmt.FormatDate(w.End)
}

// Contains compares day keys lexically, which matches calendar order for
// the fixed-width layout.
func (w Window) Contains(date string) bool {
	start, end := w.Keys()
	return date >= start && date <= end
}

// Totals is actual vs. target distance in whole kilometers.
type Totals struct {
	Actual int    `json:"actual"`
	Target int    `json:"target"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Mode   Mode   `json:"mode"`
}

// Aggregate sums target distance over goals and actual distance over records
// dated inside the window, flooring both totals.
func Aggregate(ref time.Time, mode Mode, goals []model.Goal, records []model.Record) Totals {
	w := WindowFor(ref, mode)

	var target, actual float64
	for _, g := range goals {
		if w.Contains(g.Date) {
			target += g.TargetDist
		}
	}
	for _, r := range records {
		if w.Contains(r.Date) {
			actual += r.Distance
		}
	}

	start, end := w.Keys()
	return Totals{
		Actual: int(math.Floor(actual)),
		Target: int(math.Floor(target)),
		Start:  start,
		End:    end,
		Mode:   mode,
	}
}

// Shift moves ref by n weeks or n months.
func Shift(ref time.Time, mode Mode, n int) time.Time {
	if mode == ModeMonth {
		return ref.AddDate(0, n, 0)
	}
	return ref.AddDate(0, 0, 7*n)
}
