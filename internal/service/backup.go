package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/storage"
)

// Snapshot is the full exported dataset.
type Snapshot struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Goals      []model.Goal   `json:"goals"`
	Records    []model.Record `json:"records"`
	Shoes      []model.Shoe   `json:"shoes"`
}

// Export returns every goal, record and shoe.
func (s *TrainingService) Export() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ExportedAt: s.now().UTC(),
		Goals:      state.Goals(),
		Records:    state.Records(),
		Shoes:      state.Shoes(),
	}, nil
}

// Backup is a stored snapshot.
type Backup struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type BackupService struct {
	training *TrainingService
	storage  storage.Storage
}

// NewBackupService accepts a nil storage; Backup then fails with
// storage.ErrNotConfigured.
func NewBackupService(training *TrainingService, storage storage.Storage) *BackupService {
	return &BackupService{
		training: training,
		storage:  storage,
	}
}

func (s *BackupService) Enabled() bool {
	return s.storage != nil
}

// Backup writes the current snapshot to backups/<timestamp>.json.
func (s *BackupService) Backup(ctx context.Context) (*Backup, error) {
	if s.storage == nil {
		return nil, storage.ErrNotConfigured
	}

	snap, err := s.training.Export()
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := fmt.Sprintf("backups/%s.json", snap.ExportedAt.Format("20060102T150405Z"))
	err = s.storage.Save(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	url, err := s.storage.DownloadURL(ctx, key)
	if err != nil {
		slog.Error("failed to presign backup URL", "error", err, "key", key)
	}

	slog.Info("backup stored", "key", key, "bytes", len(body))
	return &Backup{Key: key, URL: url}, nil
}
