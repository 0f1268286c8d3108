package tracker

import (
	"strings"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

// QuickInput is the raw form of a quick record.
type QuickInput struct {
	Date     string `json:"date"`
	Distance string `json:"distance"`
	ShoeID   string `json:"shoeId"`
}

const (
	quickTime = "00:00"
	quickPace = "0:00"
)

// QuickRecord logs a run outside the day editor. Time and pace are
// placeholders. A goal on the same date is marked achieved when the distance
// reaches its target.
func (e *Engine) QuickRecord(s *State, in QuickInput) (Change, error) {
	date := strings.TrimSpace(in.Date)
	raw := strings.TrimSpace(in.Distance)
	if date == "" || raw == "" {
		return Change{}, ErrQuickRecordIncomplete
	}
	if !runfmt.ValidDate(date) {
		return Change{}, ErrNoDateSelected
	}

	dist := runfmt.ParseFloat(raw)
	if dist < 0 {
		return Change{}, ErrNegativeDistance
	}
	if _, ok := s.Record(date); ok {
		return Change{}, ErrRecordExists
	}
	if in.ShoeID != "" {
		if _, ok := s.Shoe(in.ShoeID); !ok {
			return Change{}, ErrShoeNotFound
		}
	}

	rec := model.Record{
		ID:        e.newID(),
		Date:      date,
		Distance:  dist,
		Time:      quickTime,
		Pace:      quickPace,
		ShoeID:    optional(in.ShoeID),
		CreatedAt: e.now(),
	}

	c := Change{Records: []model.Record{rec}}
	c.credit(in.ShoeID, rec.ID, model.LedgerReasonQuick, dist)

	if goal, ok := s.Goal(date); ok && !goal.Achieved && dist >= goal.TargetDist {
		goal.Achieved = true
		c.Goals = append(c.Goals, goal)
	}
	return c, nil
}
