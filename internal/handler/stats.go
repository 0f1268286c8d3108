package handler

import (
	"net/http"
	"time"

	"github.com/runpro/runpro/internal/runfmt"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/stats"
)

type StatsHandler struct {
	training *service.TrainingService
	now      func() time.Time
}

func NewStatsHandler(training *service.TrainingService) *StatsHandler {
	return &StatsHandler{
		training: training,
		now:      time.Now,
	}
}

type calendarResponse struct {
	Mode stats.Mode   `json:"mode"`
	Date string       `json:"date"`
	Prev string       `json:"prev"`
	Next string       `json:"next"`
	Days []*stats.Day `json:"days"`
}

// window reads ?date= and ?mode=, defaulting to this week.
func (h *StatsHandler) window(r *http.Request) (string, stats.Mode, error) {
	mode, ok := stats.ParseMode(r.URL.Query().Get("mode"))
	if !ok {
		return "", "", errInvalidBody
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = runfmt.FormatDate(h.now())
	}
	if !runfmt.ValidDate(date) {
		return "", "", service.ErrInvalidDate
	}
	return date, mode, nil
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	date, mode, err := h.window(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totals, err := h.training.Stats(date, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// Calendar returns the visible cells plus the dates of the neighbouring
// windows for paging.
func (h *StatsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	date, mode, err := h.window(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	days, err := h.training.Calendar(date, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref, _ := runfmt.ParseDate(date, time.Local)
	start := stats.WindowFor(ref, mode).Start
	writeJSON(w, http.StatusOK, calendarResponse{
		Mode: mode,
		Date: date,
		Prev: runfmt.FormatDate(stats.Shift(start, mode, -1)),
		Next: runfmt.FormatDate(stats.Shift(start, mode, 1)),
		Days: days,
	})
}
