package handler

import (
	"net/http"
	"strconv"

	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/tracker"
)

const defaultRecentLimit = 20

type RecordHandler struct {
	training *service.TrainingService
}

func NewRecordHandler(training *service.TrainingService) *RecordHandler {
	return &RecordHandler{
		training: training,
	}
}

// Recent lists records newest first, ?limit= defaults to 20.
func (h *RecordHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, errInvalidBody)
			return
		}
		limit = n
	}

	records, err := h.training.RecentRecords(limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Quick logs a run from the quick-record form. Date and distance arrive as
// the raw strings typed by the user.
func (h *RecordHandler) Quick(w http.ResponseWriter, r *http.Request) {
	var in tracker.QuickInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.training.QuickRecord(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
