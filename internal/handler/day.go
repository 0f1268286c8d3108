package handler

import (
	"net/http"

	"github.com/runpro/runpro/internal/i18n"
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/runfmt"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/tracker"
	"github.com/runpro/runpro/internal/validation"
)

type DayHandler struct {
	training *service.TrainingService
}

func NewDayHandler(training *service.TrainingService) *DayHandler {
	return &DayHandler{
		training: training,
	}
}

type goalRequest struct {
	Type     string `json:"type"`
	DistKm   int    `json:"distKm"`
	Pace     string `json:"pace"`
	Sets     int    `json:"sets"`
	WorkDist int    `json:"workDist"`
	RestTime int    `json:"restTime"`
}

// input turns the form into the goal half of the working state. A blank pace
// takes the default.
func (req goalRequest) input() (tracker.GoalInput, error) {
	pace := tracker.DefaultPace
	if req.Pace != "" {
		pace = runfmt.ParseClock(req.Pace)
	}

	switch req.Type {
	case model.GoalTypeDistance, "":
		return tracker.DistanceGoalInput{DistKm: req.DistKm, Pace: pace}, nil
	case model.GoalTypeInterval:
		return tracker.IntervalGoalInput{
			Sets:     req.Sets,
			WorkDist: req.WorkDist,
			RestTime: req.RestTime,
			Pace:     pace,
		}, nil
	default:
		return nil, tracker.ErrInvalidGoal
	}
}

type completeRequest struct {
	Outcome    bool     `json:"outcome"`
	ActualDist *float64 `json:"actualDist"`
	TimeMin    *int     `json:"timeMin"`
	TimeSec    *int     `json:"timeSec"`
	ShoeID     *string  `json:"shoeId"`
}

func (h *DayHandler) Show(w http.ResponseWriter, r *http.Request) {
	view, err := h.training.Day(r.PathValue("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *DayHandler) SaveGoal(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if err := validation.ValidateDate(date); err != nil {
		writeError(w, r, err)
		return
	}

	var req goalRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.training.SaveGoal(r.Context(), date, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *DayHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := h.training.DeleteGoal(r.Context(), r.PathValue("date"), confirmed(r))
	if err != nil {
		writeError(w, r, needsConfirm(err, i18n.ConfirmDeleteGoal))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete records the outcome for the day. Fields left out of the body keep
// the values seeded from the goal or the existing record.
func (h *DayHandler) Complete(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if err := validation.ValidateDate(date); err != nil {
		writeError(w, r, err)
		return
	}

	var req completeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.training.Complete(r.Context(), date, service.CompleteRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *DayHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.training.DeleteRecord(r.Context(), r.PathValue("date"), confirmed(r))
	if err != nil {
		writeError(w, r, needsConfirm(err, i18n.ConfirmDeleteRecord))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
