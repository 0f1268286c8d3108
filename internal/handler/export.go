package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/runpro/runpro/internal/service"
)

type ExportHandler struct {
	training *service.TrainingService
	backups  *service.BackupService
}

func NewExportHandler(training *service.TrainingService, backups *service.BackupService) *ExportHandler {
	return &ExportHandler{
		training: training,
		backups:  backups,
	}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.training.Export()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=runpro-export.json")

	err = json.NewEncoder(w).Encode(snap)
	if err != nil {
		slog.Error("failed to encode export", "error", err)
	}
}

// Backup stores a snapshot in object storage and returns a download link.
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	b, err := h.backups.Backup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}
