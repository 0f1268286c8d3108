package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpro/runpro/internal/db"
	"github.com/runpro/runpro/internal/model"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "runpro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(conn) })
	return conn
}

func TestSettingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(openTestDB(t))

	_, err := repo.Get(ctx, SettingCoachAPIKey)
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, repo.Set(ctx, SettingCoachAPIKey, "first"))
	require.NoError(t, repo.Set(ctx, SettingCoachAPIKey, "second"))

	value, err := repo.Get(ctx, SettingCoachAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	require.NoError(t, repo.Delete(ctx, SettingCoachAPIKey))
	_, err = repo.Get(ctx, SettingCoachAPIKey)
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestGoalRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(openTestDB(t))
	created := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	goal := &model.Goal{
		ID:              "g1",
		Date:            "2024-03-01",
		Type:            model.GoalTypeInterval,
		TargetDist:      2,
		TargetPace:      "4:30",
		IntervalDetails: &model.IntervalDetails{Sets: 5, WorkDist: 400, RestTime: 90},
		CreatedAt:       created,
	}
	require.NoError(t, repo.Upsert(ctx, goal))

	goal.Achieved = true
	require.NoError(t, repo.Upsert(ctx, goal))

	goals, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Achieved)
	require.NotNil(t, goals[0].IntervalDetails)
	assert.Equal(t, 400, goals[0].IntervalDetails.WorkDist)
	assert.True(t, created.Equal(goals[0].CreatedAt))

	require.NoError(t, repo.Delete(ctx, "g1"))
	assert.ErrorIs(t, repo.Delete(ctx, "g1"), ErrGoalNotFound)
}

func TestLedgerRepositoryBalance(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))
	base := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	recordID := "r1"

	entries := []model.LedgerEntry{
		{ID: "l1", ShoeID: "s1", Reason: model.LedgerReasonOpening, Requested: 50, Km: 50, CreatedAt: base},
		{ID: "l2", ShoeID: "s1", RecordID: &recordID, Reason: model.LedgerReasonAchieve, Requested: 10, Km: 10, CreatedAt: base.Add(time.Hour)},
		{ID: "l3", ShoeID: "s2", Reason: model.LedgerReasonManual, Requested: 5, Km: 5, CreatedAt: base},
	}
	for i := range entries {
		require.NoError(t, repo.Insert(ctx, &entries[i]))
	}

	balance, err := repo.Balance(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, 60.0, balance, 1e-9)

	balance, err = repo.Balance(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, balance)

	got, err := repo.ByShoe(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "l1", got[0].ID)
	require.NotNil(t, got[1].RecordID)
	assert.Equal(t, "r1", *got[1].RecordID)
}
