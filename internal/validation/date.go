package validation

import (
	"errors"

	"github.com/runpro/runpro/internal/runfmt"
)

var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// ValidateDate checks a calendar day key
func ValidateDate(date string) error {
	if !runfmt.ValidDate(date) {
		return ErrInvalidDate
	}
	return nil
}
