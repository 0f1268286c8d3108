package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/observability"
	"github.com/runpro/runpro/internal/repository"
	"github.com/runpro/runpro/internal/runfmt"
	"github.com/runpro/runpro/internal/stats"
	"github.com/runpro/runpro/internal/tracker"
)

var (
	ErrNotLoaded   = errors.New("training data not loaded")
	ErrInvalidDate = errors.New("invalid date")
)

// DayView is everything the day editor needs for one date.
type DayView struct {
	Date    string          `json:"date"`
	Mode    tracker.Mode    `json:"mode"`
	Goal    *model.Goal     `json:"goal"`
	Record  *model.Record   `json:"record"`
	Shoe    *model.Shoe     `json:"shoe"`
	Working tracker.Working `json:"working"`
}

// CompleteRequest overrides the seeded working state. Nil fields keep the
// seeded value.
type CompleteRequest struct {
	Outcome    bool
	ActualDist *float64
	TimeMin    *int
	TimeSec    *int
	ShoeID     *string
}

// TrainingService owns the current snapshot of goals, records and shoes.
// Every operation runs under one lock: compute the change, write it in a
// single transaction, then publish the new snapshot.
type TrainingService struct {
	mu        sync.Mutex
	db        *sqlx.DB
	goals     repository.GoalRepository
	records   repository.RecordRepository
	shoes     repository.ShoeRepository
	ledger    repository.LedgerRepository
	engine    *tracker.Engine
	session   *tracker.Session
	shoeLimit int
	now       func() time.Time
}

func NewTrainingService(
	db *sqlx.DB,
	goals repository.GoalRepository,
	records repository.RecordRepository,
	shoes repository.ShoeRepository,
	ledger repository.LedgerRepository,
	engine *tracker.Engine,
	shoeLimit int,
) *TrainingService {
	return &TrainingService{
		db:        db,
		goals:     goals,
		records:   records,
		shoes:     shoes,
		ledger:    ledger,
		engine:    engine,
		shoeLimit: shoeLimit,
		now:       time.Now,
	}
}

// Load reads every goal, record and shoe into a fresh snapshot.
func (s *TrainingService) Load(ctx context.Context) error {
	goals, err := s.goals.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	records, err := s.records.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	shoes, err := s.shoes.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shoes: %w", err)
	}

	state, err := tracker.NewState(goals, records, shoes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		s.session = tracker.NewSession(s.engine, state)
	} else {
		s.session.Reset(state)
	}

	slog.Info("training data loaded", "goals", len(goals), "records", len(records), "shoes", len(shoes))
	return nil
}

// snapshot returns the current state. Callers must hold mu.
func (s *TrainingService) snapshot() (*tracker.State, error) {
	if s.session == nil {
		return nil, ErrNotLoaded
	}
	return s.session.State(), nil
}

func (s *TrainingService) Day(date string) (*DayView, error) {
	if !runfmt.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return dayView(state, date), nil
}

func dayView(state *tracker.State, date string) *DayView {
	view := &DayView{
		Date:    date,
		Mode:    tracker.DeriveMode(state, date),
		Working: tracker.Seed(state, date),
	}
	if g, ok := state.Goal(date); ok {
		view.Goal = &g
	}
	if r, ok := state.Record(date); ok {
		view.Record = &r
		if sh, ok := state.Shoe(r.Shoe()); ok {
			view.Shoe = &sh
		}
	}
	return view
}

func (s *TrainingService) SaveGoal(ctx context.Context, date string, in tracker.GoalInput) (*model.Goal, error) {
	if !runfmt.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.snapshot(); err != nil {
		return nil, err
	}

	s.session.Select(date)
	s.session.Working.Goal = in
	c, err := s.session.SaveGoal()
	if _, err := s.commit(ctx, "save_goal", c, err); err != nil {
		return nil, err
	}

	goal := c.Goals[0]
	slog.Info("goal saved", "date", date, "type", goal.Type, "target_dist", goal.TargetDist)
	return &goal, nil
}

// Complete runs the complete/revert transition for date and returns the
// resulting day.
func (s *TrainingService) Complete(ctx context.Context, date string, req CompleteRequest) (*DayView, error) {
	if !runfmt.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.snapshot(); err != nil {
		return nil, err
	}

	if s.session.Select(date) == tracker.ModeView {
		if err := s.session.Edit(); err != nil {
			return nil, err
		}
	}

	w := &s.session.Working
	if req.ActualDist != nil {
		w.Actual.DistKm = *req.ActualDist
	}
	if req.TimeMin != nil {
		w.Actual.Time.Min = *req.TimeMin
	}
	if req.TimeSec != nil {
		w.Actual.Time.Sec = *req.TimeSec
	}
	if req.ShoeID != nil {
		w.ShoeID = *req.ShoeID
	}

	op := "complete"
	if !req.Outcome {
		op = "revert"
	}
	c, err := s.session.Complete(req.Outcome)
	if _, err := s.commit(ctx, op, c, err); err != nil {
		return nil, err
	}

	return dayView(s.session.State(), date), nil
}

func (s *TrainingService) DeleteGoal(ctx context.Context, date string, confirmed bool) error {
	if !runfmt.ValidDate(date) {
		return ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.snapshot(); err != nil {
		return err
	}

	s.session.Select(date)
	c, err := s.session.DeleteGoal(confirmed)
	_, err = s.commit(ctx, "delete_goal", c, err)
	return err
}

func (s *TrainingService) DeleteRecord(ctx context.Context, date string, confirmed bool) error {
	if !runfmt.ValidDate(date) {
		return ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.snapshot(); err != nil {
		return err
	}

	s.session.Select(date)
	c, err := s.session.DeleteRecord(confirmed)
	_, err = s.commit(ctx, "delete_record", c, err)
	return err
}

func (s *TrainingService) QuickRecord(ctx context.Context, in tracker.QuickInput) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	c, err := s.engine.QuickRecord(state, in)
	if _, err := s.commit(ctx, "quick_record", c, err); err != nil {
		return nil, err
	}

	rec := c.Records[0]
	slog.Info("quick record saved", "date", rec.Date, "distance", rec.Distance, "goal_achieved", len(c.Goals) > 0)
	return &rec, nil
}

// Stats totals goal and record distance for the window around date.
func (s *TrainingService) Stats(date string, mode stats.Mode) (stats.Totals, error) {
	ref, err := s.reference(date)
	if err != nil {
		return stats.Totals{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return stats.Totals{}, err
	}
	return stats.Aggregate(ref, mode, state.Goals(), state.Records()), nil
}

// Calendar returns the visible cells for the window around date.
func (s *TrainingService) Calendar(date string, mode stats.Mode) ([]*stats.Day, error) {
	ref, err := s.reference(date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return stats.Days(ref, s.now(), mode, state.Goals(), state.Records()), nil
}

// RecentRecords returns up to limit records, newest first.
func (s *TrainingService) RecentRecords(limit int) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	records := state.Records()
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// reference parses date, defaulting to today.
func (s *TrainingService) reference(date string) (time.Time, error) {
	if date == "" {
		return s.now(), nil
	}
	t, err := runfmt.ParseDate(date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// commit persists c and publishes the new snapshot. transitionErr is the
// error from computing c; when set nothing is written. Callers hold mu.
func (s *TrainingService) commit(ctx context.Context, op string, c tracker.Change, transitionErr error) ([]tracker.Settlement, error) {
	if transitionErr != nil {
		observability.RecordTransition(op, transitionErr)
		s.session.Clear()
		return nil, transitionErr
	}

	start := time.Now()
	settled, err := s.session.Commit(c, func(next *tracker.State, c tracker.Change, settled []tracker.Settlement) error {
		return s.persist(ctx, next, c, settled)
	})
	observability.RecordTransition(op, err)
	if err != nil {
		s.session.Clear()
		slog.Error("failed to commit change", "error", err, "operation", op)
		return nil, fmt.Errorf("failed to commit %s: %w", op, err)
	}
	observability.ObserveCommit(start)

	for _, st := range settled {
		observability.RecordMileage(st.Reason, st.Applied, st.Applied != st.Km)
		slog.Debug("mileage applied", "shoe_id", st.ShoeID, "reason", st.Reason, "requested_km", st.Km, "applied_km", st.Applied)
	}
	return settled, nil
}

// persist writes one change in a single transaction.
func (s *TrainingService) persist(ctx context.Context, next *tracker.State, c tracker.Change, settled []tracker.Settlement) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	goals := s.goals.WithTx(tx)
	records := s.records.WithTx(tx)
	shoes := s.shoes.WithTx(tx)
	ledger := s.ledger.WithTx(tx)

	for _, id := range c.DeletedShoes {
		if err := shoes.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete shoe %s: %w", id, err)
		}
	}
	for _, sh := range c.Shoes {
		cur, _ := next.Shoe(sh.ID)
		if err := shoes.Upsert(ctx, &cur); err != nil {
			return fmt.Errorf("failed to save shoe %s: %w", sh.ID, err)
		}
	}

	for _, id := range c.DeletedGoals {
		if err := goals.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete goal %s: %w", id, err)
		}
	}
	for _, g := range c.Goals {
		if err := goals.Upsert(ctx, &g); err != nil {
			return fmt.Errorf("failed to save goal %s: %w", g.Date, err)
		}
	}

	for _, id := range c.DeletedRecords {
		if err := records.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete record %s: %w", id, err)
		}
	}
	for _, r := range c.Records {
		if err := records.Upsert(ctx, &r); err != nil {
			return fmt.Errorf("failed to save record %s: %w", r.Date, err)
		}
	}

	now := s.now()
	updated := make(map[string]bool)
	for _, st := range settled {
		if !updated[st.ShoeID] {
			sh, _ := next.Shoe(st.ShoeID)
			if err := shoes.UpdateMileage(ctx, st.ShoeID, sh.Mileage); err != nil {
				return fmt.Errorf("failed to update mileage for shoe %s: %w", st.ShoeID, err)
			}
			updated[st.ShoeID] = true
		}

		entry := &model.LedgerEntry{
			ID:        uuid.NewString(),
			ShoeID:    st.ShoeID,
			Reason:    st.Reason,
			Requested: st.Km,
			Km:        st.Applied,
			CreatedAt: now,
		}
		if st.RecordID != "" {
			entry.RecordID = &st.RecordID
		}
		if err := ledger.Insert(ctx, entry); err != nil {
			return fmt.Errorf("failed to write ledger entry: %w", err)
		}
	}

	return tx.Commit()
}
