package validation

import (
	"errors"
	"strings"
)

const maxLabelLength = 100

var (
	ErrNameRequired  = errors.New("name is required")
	ErrNameTooLong   = errors.New("name is too long (max 100 characters)")
	ErrBrandRequired = errors.New("brand is required")
	ErrBrandTooLong  = errors.New("brand is too long (max 100 characters)")
)

// ValidateName validates a shoe model name
func ValidateName(name string) error {
	return validateLabel(name, ErrNameRequired, ErrNameTooLong)
}

// ValidateBrand validates a shoe brand
func ValidateBrand(brand string) error {
	return validateLabel(brand, ErrBrandRequired, ErrBrandTooLong)
}

func validateLabel(s string, required, tooLong error) error {
	trimmed := strings.TrimSpace(s)

	if trimmed == "" {
		return required
	}

	if len([]rune(trimmed)) > maxLabelLength {
		return tooLong
	}

	return nil
}
