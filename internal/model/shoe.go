package model

import (
	"math"
	"time"
)

const (
	ShoeColorOrange  = "bg-orange-500"
	ShoeColorLime    = "bg-lime-400"
	ShoeColorEmerald = "bg-emerald-500"
	ShoeColorSky     = "bg-sky-500"
	ShoeColorPurple  = "bg-purple-500"
	ShoeColorRose    = "bg-rose-500"

	DefaultShoeColor      = ShoeColorOrange
	DefaultShoeMaxMileage = 600.0

	// Above this share of MaxMileage a shoe is due for replacement.
	shoeWearWarningPercent = 80.0
)

var ShoeColors = []string{
	ShoeColorOrange,
	ShoeColorLime,
	ShoeColorEmerald,
	ShoeColorSky,
	ShoeColorPurple,
	ShoeColorRose,
}

// Shoe is a piece of gear whose Mileage is maintained incrementally from record
// changes. It is a counter, not a sum recomputed from records.
type Shoe struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Brand      string    `db:"brand" json:"brand"`
	Mileage    float64   `db:"mileage" json:"mileage"`
	MaxMileage float64   `db:"max_mileage" json:"maxMileage"`
	Color      string    `db:"color" json:"color"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// WearPercent is mileage as a percentage of MaxMileage, capped at 100.
func (s *Shoe) WearPercent() float64 {
	if s.MaxMileage <= 0 {
		return 100
	}
	return math.Min(s.Mileage/s.MaxMileage*100, 100)
}

func (s *Shoe) NeedsReplacement() bool {
	return s.WearPercent() > shoeWearWarningPercent
}

func ValidShoeColor(color string) bool {
	for _, c := range ShoeColors {
		if c == color {
			return true
		}
	}
	return false
}
