package stats

import (
	"time"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

// Day is one calendar cell.
type Day struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	IsToday   bool   `json:"isToday"`
	HasGoal   bool   `json:"hasGoal"`
	HasRecord bool   `json:"hasRecord"`
}

// Days lays out the visible cells for ref. Month view is padded with nil
// cells so the first day lands under its weekday column.
func Days(ref, today time.Time, mode Mode, goals []model.Goal, records []model.Record) []*Day {
	goalDates := make(map[string]bool, len(goals))
	for _, g := range goals {
		goalDates[g.Date] = true
	}
	recordDates := make(map[string]bool, len(records))
	for _, r := range records {
		recordDates[r.Date] = true
	}
	todayKey := runfmt.FormatDate(today)

	cell := func(t time.Time) *Day {
		key := runfmt.FormatDate(t)
		return &Day{
			Date:      key,
			Day:       t.Day(),
			IsToday:   key == todayKey,
			HasGoal:   goalDates[key],
			HasRecord: recordDates[key],
		}
	}

	w := WindowFor(ref, mode)
	var days []*Day

	if mode == ModeMonth {
		for i := 0; i < int(w.Start.Weekday()); i++ {
			days = append(days, nil)
		}
	}
	for t := w.Start; !t.After(w.End); t = t.AddDate(0, 0, 1) {
		days = append(days, cell(t))
	}

	return days
}
