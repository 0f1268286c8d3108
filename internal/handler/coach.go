package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/runpro/runpro/internal/coach"
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/repository"
	"github.com/runpro/runpro/internal/service"
)

type CoachHandler struct {
	coach    *coach.Coach
	training *service.TrainingService
	settings repository.SettingRepository
	timeout  time.Duration
}

func NewCoachHandler(
	coach *coach.Coach,
	training *service.TrainingService,
	settings repository.SettingRepository,
	timeout time.Duration,
) *CoachHandler {
	return &CoachHandler{
		coach:    coach,
		training: training,
		settings: settings,
		timeout:  timeout,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type planRequest struct {
	Weeks     int    `json:"weeks"`
	Goal      string `json:"goal"`
	Frequency int    `json:"frequency"`
}

type keyRequest struct {
	APIKey string `json:"apiKey"`
}

func (h *CoachHandler) context(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *CoachHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	records, err := h.training.RecentRecords(coach.AnalyzeLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.coach.Analyze(ctx, records))
}

func (h *CoachHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.coach.Ask(ctx, req.Question))
}

// Recovery advises on the most recent record.
func (h *CoachHandler) Recovery(w http.ResponseWriter, r *http.Request) {
	records, err := h.training.RecentRecords(1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var latest *model.Record
	if len(records) > 0 {
		latest = &records[0]
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.coach.RecoveryAdvice(ctx, latest))
}

func (h *CoachHandler) Gear(w http.ResponseWriter, r *http.Request) {
	shoes, err := h.training.Shoes()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.coach.GearAdvice(ctx, shoes))
}

func (h *CoachHandler) Insights(w http.ResponseWriter, r *http.Request) {
	records, err := h.training.RecentRecords(coach.AnalyzeLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	shoes, err := h.training.Shoes()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.coach.Insights(ctx, records, shoes))
}

// Plan generates a plan without applying it. The client reviews the items
// and sends them to the plan apply route.
func (h *CoachHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Goal = strings.TrimSpace(req.Goal)
	if req.Weeks < 1 || req.Frequency < 1 || req.Frequency > 7 || req.Goal == "" {
		writeError(w, r, errInvalidBody)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	items, err := h.coach.GeneratePlan(ctx, req.Weeks, req.Goal, req.Frequency)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// SetKey installs the API key and remembers it across restarts. An empty key
// turns the coach off.
func (h *CoachHandler) SetKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	key := strings.TrimSpace(req.APIKey)

	gen, err := h.coach.NewGenerator(r.Context(), key)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidKey, err))
		return
	}

	if key == "" {
		err = h.settings.Delete(r.Context(), repository.SettingCoachAPIKey)
	} else {
		err = h.settings.Set(r.Context(), repository.SettingCoachAPIKey, key)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.coach.Install(gen)

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": h.coach.Enabled()})
}

// TestKey checks a key with a tiny request without installing it.
func (h *CoachHandler) TestKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": h.coach.TestConnection(ctx, strings.TrimSpace(req.APIKey))})
}
