package service

import (
	"context"
	"log/slog"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/tracker"
)

func (s *TrainingService) Shoes() ([]model.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return state.Shoes(), nil
}

func (s *TrainingService) Shoe(id string) (*model.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sh, ok := state.Shoe(id)
	if !ok {
		return nil, tracker.ErrShoeNotFound
	}
	return &sh, nil
}

func (s *TrainingService) CreateShoe(ctx context.Context, in tracker.ShoeInput) (*model.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	c, shoe, err := s.engine.AddShoe(state, in, s.shoeLimit)
	if _, err := s.commit(ctx, "create_shoe", c, err); err != nil {
		return nil, err
	}

	slog.Info("shoe created", "shoe_id", shoe.ID, "brand", shoe.Brand, "name", shoe.Name)
	return &shoe, nil
}

func (s *TrainingService) UpdateShoe(ctx context.Context, id string, in tracker.ShoeInput) (*model.Shoe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	c, shoe, err := s.engine.UpdateShoe(state, id, in)
	if _, err := s.commit(ctx, "update_shoe", c, err); err != nil {
		return nil, err
	}
	return &shoe, nil
}

// DeleteShoe removes a shoe. Records keep pointing at the removed id.
func (s *TrainingService) DeleteShoe(ctx context.Context, id string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return err
	}

	c, err := s.engine.RemoveShoe(state, id, confirmed)
	_, err = s.commit(ctx, "delete_shoe", c, err)
	if err == nil {
		slog.Info("shoe deleted", "shoe_id", id)
	}
	return err
}

// ShoeLedger is a shoe's mileage audit trail. Balance is the sum of the
// entries and matches the shoe's mileage while the shoe exists.
type ShoeLedger struct {
	Balance float64             `json:"balance"`
	Entries []model.LedgerEntry `json:"entries"`
}

// MileageLedger returns the audit trail of a shoe's mileage.
func (s *TrainingService) MileageLedger(ctx context.Context, id string) (*ShoeLedger, error) {
	entries, err := s.ledger.ByShoe(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx, id)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LedgerEntry{}
	}
	return &ShoeLedger{Balance: balance, Entries: entries}, nil
}
