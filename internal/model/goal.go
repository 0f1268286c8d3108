package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	GoalTypeDistance = "distance"
	GoalTypeInterval = "interval"
)

// IntervalDetails describes a repeated work/rest workout.
type IntervalDetails struct {
	Sets     int `json:"sets"`
	WorkDist int `json:"workDist"` // meters
	RestTime int `json:"restTime"` // seconds
}

// Value stores the details as a JSON text column.
func (d IntervalDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *IntervalDetails) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), d)
	case []byte:
		return json.Unmarshal(v, d)
	default:
		return errors.New("interval details: unsupported column type")
	}
}

// Goal is the target session for one calendar date.
type Goal struct {
	ID              string           `db:"id" json:"id"`
	Date            string           `db:"date" json:"date"`
	Type            string           `db:"type" json:"type"`
	TargetDist      float64          `db:"target_dist" json:"targetDist"` // km
	TargetPace      string           `db:"target_pace" json:"targetPace"` // m:ss per km
	IntervalDetails *IntervalDetails `db:"interval_details" json:"intervalDetails"`
	Achieved        bool             `db:"achieved" json:"achieved"`
	CreatedAt       time.Time        `db:"created_at" json:"createdAt"`
}

func (g *Goal) IsInterval() bool {
	return g.Type == GoalTypeInterval
}

func ValidGoalType(t string) bool {
	return t == GoalTypeDistance || t == GoalTypeInterval
}
