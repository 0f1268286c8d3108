package tracker

import (
	"math"

	"github.com/runpro/runpro/internal/model"
)

// MileageDelta is a signed distance to add to a shoe's mileage.
type MileageDelta struct {
	ShoeID   string  `json:"shoeId"`
	RecordID string  `json:"recordId,omitempty"`
	Reason   string  `json:"reason"`
	Km       float64 `json:"km"`
}

// Settlement is a delta after it was applied. Applied differs from Km only
// when the result was clamped at zero.
type Settlement struct {
	MileageDelta
	Applied float64 `json:"applied"`
	Mileage float64 `json:"mileage"`
}

// ApplyDelta adds km to mileage without letting the result go negative.
func ApplyDelta(mileage, km float64) float64 {
	return math.Max(0, mileage+km)
}

// settle applies d to the shoe it references. A missing shoe is left alone.
func settle(shoes map[string]model.Shoe, d MileageDelta) (Settlement, bool) {
	shoe, ok := shoes[d.ShoeID]
	if !ok {
		return Settlement{}, false
	}

	before := shoe.Mileage
	shoe.Mileage = ApplyDelta(before, d.Km)
	shoes[d.ShoeID] = shoe

	return Settlement{
		MileageDelta: d,
		Applied:      shoe.Mileage - before,
		Mileage:      shoe.Mileage,
	}, true
}

// Balance sums applied deltas per shoe.
func Balance(settled []Settlement) map[string]float64 {
	out := make(map[string]float64)
	for _, s := range settled {
		out[s.ShoeID] += s.Applied
	}
	return out
}
