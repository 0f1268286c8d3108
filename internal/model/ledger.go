package model

import "time"

// LedgerEntry is one applied change to a shoe's mileage. Km is the effective
// delta after clamping, so a shoe's mileage always equals its opening value
// plus the sum of its entries.
type LedgerEntry struct {
	ID        string    `db:"id" json:"id"`
	ShoeID    string    `db:"shoe_id" json:"shoeId"`
	RecordID  *string   `db:"record_id" json:"recordId,omitempty"`
	Reason    string    `db:"reason" json:"reason"`
	Requested float64   `db:"requested_km" json:"requestedKm"`
	Km        float64   `db:"km" json:"km"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const (
	LedgerReasonAchieve = "achieve"
	LedgerReasonRevise  = "revise"
	LedgerReasonRevert  = "revert"
	LedgerReasonQuick   = "quick"
	LedgerReasonManual  = "manual"
	LedgerReasonOpening = "opening"
)
