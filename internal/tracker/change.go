package tracker

import "github.com/runpro/runpro/internal/model"

// Change is the complete set of writes produced by one operation. It is
// applied to a State and persisted as a unit.
type Change struct {
	Goals          []model.Goal
	DeletedGoals   []string
	Records        []model.Record
	DeletedRecords []string
	Shoes          []model.Shoe
	DeletedShoes   []string
	Mileage        []MileageDelta
}

func (c Change) IsEmpty() bool {
	return len(c.Goals) == 0 &&
		len(c.DeletedGoals) == 0 &&
		len(c.Records) == 0 &&
		len(c.DeletedRecords) == 0 &&
		len(c.Shoes) == 0 &&
		len(c.DeletedShoes) == 0 &&
		len(c.Mileage) == 0
}

// credit queues a mileage delta for shoeID. No shoe or a zero delta is a no-op.
func (c *Change) credit(shoeID, recordID, reason string, km float64) {
	if shoeID == "" || km == 0 {
		return
	}
	c.Mileage = append(c.Mileage, MileageDelta{
		ShoeID:   shoeID,
		RecordID: recordID,
		Reason:   reason,
		Km:       km,
	})
}
