package tracker

import (
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
)

// Mode is what the day editor shows for a date.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeLog    Mode = "log"
	ModeView   Mode = "view"
	ModeEdit   Mode = "edit"
)

// Defaults used when seeding a date that has no goal yet.
const (
	DefaultTargetKm = 5
	DefaultSets     = 5
	DefaultWorkDist = 400 // meters
	DefaultRestTime = 90  // seconds

	// Assumed pace on interval work segments, seconds per km.
	IntervalReferencePace = 240
)

var DefaultPace = runfmt.Clock{Min: 5, Sec: 30}

// GoalInput is the target half of the working state. Exactly one of
// DistanceGoalInput and IntervalGoalInput is active.
type GoalInput interface {
	Type() string
	TargetDistance() float64
	TargetPace() runfmt.Clock
	details() *model.IntervalDetails
	valid() bool
}

type DistanceGoalInput struct {
	DistKm int          `json:"distKm"`
	Pace   runfmt.Clock `json:"pace"`
}

func (DistanceGoalInput) Type() string                    { return model.GoalTypeDistance }
func (in DistanceGoalInput) TargetDistance() float64      { return float64(in.DistKm) }
func (in DistanceGoalInput) TargetPace() runfmt.Clock     { return in.Pace }
func (DistanceGoalInput) details() *model.IntervalDetails { return nil }
func (in DistanceGoalInput) valid() bool                  { return in.DistKm >= 0 && validClock(in.Pace) }

type IntervalGoalInput struct {
	Sets     int          `json:"sets"`
	WorkDist int          `json:"workDist"` // meters
	RestTime int          `json:"restTime"` // seconds
	Pace     runfmt.Clock `json:"pace"`
}

func (IntervalGoalInput) Type() string { return model.GoalTypeInterval }

// TargetDistance is the total work distance in km.
func (in IntervalGoalInput) TargetDistance() float64 {
	return float64(in.Sets*in.WorkDist) / 1000
}

func (in IntervalGoalInput) TargetPace() runfmt.Clock { return in.Pace }

func (in IntervalGoalInput) details() *model.IntervalDetails {
	return &model.IntervalDetails{Sets: in.Sets, WorkDist: in.WorkDist, RestTime: in.RestTime}
}

func (in IntervalGoalInput) valid() bool {
	return in.Sets > 0 && in.WorkDist > 0 && in.RestTime >= 0 && validClock(in.Pace)
}

func validClock(c runfmt.Clock) bool {
	return c.Min >= 0 && c.Sec >= 0 && c.Sec < 60
}

// Actual is the logged half of the working state.
type Actual struct {
	DistKm float64      `json:"distKm"`
	Time   runfmt.Clock `json:"time"`
}

// Working is the scratch state of the day editor.
type Working struct {
	Goal     GoalInput `json:"goal"`
	Actual   Actual    `json:"actual"`
	ShoeID   string    `json:"shoeId"`
	Complete bool      `json:"isComplete"`
}

// DeriveMode maps the presence of a goal and a record on date to a Mode.
func DeriveMode(s *State, date string) Mode {
	if _, ok := s.Goal(date); !ok {
		return ModeCreate
	}
	if _, ok := s.Record(date); !ok {
		return ModeLog
	}
	return ModeView
}

// Seed builds the working state for date from whatever is stored there.
// With a goal but no record the actual fields hold a projection of the goal.
// A stored record's distance is seeded as is, not floored to whole km, so
// re-saving an unchanged record leaves its distance and the shoe mileage alone.
func Seed(s *State, date string) Working {
	goal, hasGoal := s.Goal(date)
	record, hasRecord := s.Record(date)

	targetKm := DefaultTargetKm
	pace := DefaultPace
	sets, work, rest := DefaultSets, DefaultWorkDist, DefaultRestTime
	if hasGoal {
		targetKm = runfmt.WholeKm(goal.TargetDist)
		pace = runfmt.ParseClock(goal.TargetPace)
		if d := goal.IntervalDetails; d != nil {
			sets = orDefault(d.Sets, DefaultSets)
			work = orDefault(d.WorkDist, DefaultWorkDist)
			rest = orDefault(d.RestTime, DefaultRestTime)
		}
	}

	var in GoalInput = DistanceGoalInput{DistKm: targetKm, Pace: pace}
	if hasGoal && goal.IsInterval() {
		in = IntervalGoalInput{Sets: sets, WorkDist: work, RestTime: rest, Pace: pace}
	}

	w := Working{Goal: in}
	switch {
	case hasRecord:
		w.Actual = Actual{DistKm: record.Distance, Time: runfmt.ParseClock(record.Time)}
		w.ShoeID = record.Shoe()
	case hasGoal:
		w.Actual = Project(in, targetKm)
	}
	if hasGoal {
		w.Complete = goal.Achieved
	}
	return w
}

// Project estimates the actual fields for a goal that has not been logged.
func Project(in GoalInput, distKm int) Actual {
	var total float64
	switch g := in.(type) {
	case IntervalGoalInput:
		work := float64(g.WorkDist) / 1000 * IntervalReferencePace
		total = (work + float64(g.RestTime)) * float64(g.Sets)
	case DistanceGoalInput:
		total = float64(distKm * g.Pace.Seconds())
	}
	return Actual{DistKm: float64(distKm), Time: runfmt.ClockFromSeconds(total)}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
