package handler

import (
	"net/http"

	"github.com/runpro/runpro/internal/i18n"
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/tracker"
)

type ShoeHandler struct {
	training *service.TrainingService
}

func NewShoeHandler(training *service.TrainingService) *ShoeHandler {
	return &ShoeHandler{
		training: training,
	}
}

// shoeResponse adds the wear gauge to a shoe.
type shoeResponse struct {
	model.Shoe
	WearPercent      float64 `json:"wearPercent"`
	NeedsReplacement bool    `json:"needsReplacement"`
}

func newShoeResponse(s model.Shoe) shoeResponse {
	return shoeResponse{
		Shoe:             s,
		WearPercent:      s.WearPercent(),
		NeedsReplacement: s.NeedsReplacement(),
	}
}

func (h *ShoeHandler) List(w http.ResponseWriter, r *http.Request) {
	shoes, err := h.training.Shoes()
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]shoeResponse, 0, len(shoes))
	for _, s := range shoes {
		out = append(out, newShoeResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ShoeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tracker.ShoeInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	shoe, err := h.training.CreateShoe(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newShoeResponse(*shoe))
}

// Update replaces every editable field. Mileage is taken as a manual override.
func (h *ShoeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in tracker.ShoeInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	shoe, err := h.training.UpdateShoe(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newShoeResponse(*shoe))
}

func (h *ShoeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.training.DeleteShoe(r.Context(), r.PathValue("id"), confirmed(r))
	if err != nil {
		writeError(w, r, needsConfirm(err, i18n.ConfirmDeleteShoe))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Ledger lists the mileage entries of a shoe, oldest first. The trail
// outlives the shoe itself.
func (h *ShoeHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.training.MileageLedger(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}
