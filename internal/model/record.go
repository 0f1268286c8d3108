package model

import (
	"time"
)

// Record is a logged run. Pace is always derived from Distance and Time.
type Record struct {
	ID        string    `db:"id" json:"id"`
	Date      string    `db:"date" json:"date"`
	Distance  float64   `db:"distance" json:"distance"` // km
	Time      string    `db:"time" json:"time"`         // elapsed m:ss
	Pace      string    `db:"pace" json:"pace"`         // m:ss per km
	AvgHR     *int      `db:"avg_hr" json:"avgHr"`
	MaxHR     *int      `db:"max_hr" json:"maxHr"`
	Cadence   *int      `db:"cadence" json:"cadence"`
	ShoeID    *string   `db:"shoe_id" json:"shoeId,omitempty"` // weak reference, may dangle
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Shoe returns the referenced shoe id or "" when none is set.
func (r *Record) Shoe() string {
	if r.ShoeID == nil {
		return ""
	}
	return *r.ShoeID
}
