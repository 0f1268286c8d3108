package tracker

import (
	"fmt"
	"strings"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/validation"
)

// ShoeInput is the shoe management form. Zero MaxMileage and empty Color
// take the defaults.
type ShoeInput struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Mileage    float64 `json:"mileage"`
	MaxMileage float64 `json:"maxMileage"`
	Color      string  `json:"color"`
}

func (in ShoeInput) validate() error {
	if err := validation.ValidateBrand(in.Brand); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShoe, err)
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShoe, err)
	}
	if in.Mileage < 0 || in.MaxMileage < 0 {
		return fmt.Errorf("%w: mileage must not be negative", ErrInvalidShoe)
	}
	if in.Color != "" && !model.ValidShoeColor(in.Color) {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidShoe, in.Color)
	}
	return nil
}

func (in ShoeInput) apply(shoe *model.Shoe) {
	shoe.Name = strings.TrimSpace(in.Name)
	shoe.Brand = strings.TrimSpace(in.Brand)
	shoe.Mileage = in.Mileage
	shoe.MaxMileage = in.MaxMileage
	if shoe.MaxMileage == 0 {
		shoe.MaxMileage = model.DefaultShoeMaxMileage
	}
	shoe.Color = in.Color
	if shoe.Color == "" {
		shoe.Color = model.DefaultShoeColor
	}
}

// AddShoe registers a shoe. A positive limit caps how many shoes may exist.
func (e *Engine) AddShoe(s *State, in ShoeInput, limit int) (Change, model.Shoe, error) {
	if err := in.validate(); err != nil {
		return Change{}, model.Shoe{}, err
	}
	if limit > 0 && s.ShoeCount() >= limit {
		return Change{}, model.Shoe{}, ErrShoeLimitReached
	}

	shoe := model.Shoe{ID: e.newID(), CreatedAt: e.now()}
	in.apply(&shoe)
	return Change{Shoes: []model.Shoe{shoe}}, shoe, nil
}

// UpdateShoe overwrites a shoe. A mileage edit is a manual override and is
// recorded as such when the change is applied.
func (e *Engine) UpdateShoe(s *State, id string, in ShoeInput) (Change, model.Shoe, error) {
	shoe, ok := s.Shoe(id)
	if !ok {
		return Change{}, model.Shoe{}, ErrShoeNotFound
	}
	if err := in.validate(); err != nil {
		return Change{}, model.Shoe{}, err
	}

	in.apply(&shoe)
	return Change{Shoes: []model.Shoe{shoe}}, shoe, nil
}

// RemoveShoe deletes a shoe. Records that point at it keep the dangling id.
func (e *Engine) RemoveShoe(s *State, id string, confirmed bool) (Change, error) {
	if !confirmed {
		return Change{}, ErrNotConfirmed
	}
	if _, ok := s.Shoe(id); !ok {
		return Change{}, ErrShoeNotFound
	}
	return Change{DeletedShoes: []string{id}}, nil
}
