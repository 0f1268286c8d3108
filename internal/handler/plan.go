package handler

import (
	"net/http"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/validation"
)

type PlanHandler struct {
	training *service.TrainingService
}

func NewPlanHandler(training *service.TrainingService) *PlanHandler {
	return &PlanHandler{
		training: training,
	}
}

type applyPlanRequest struct {
	Start string                   `json:"start"`
	Items []model.TrainingPlanItem `json:"items"`
}

func (h *PlanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyPlanRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.ValidateDate(req.Start); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.training.ApplyPlan(r.Context(), req.Start, req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.Skipped == nil {
		res.Skipped = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}
