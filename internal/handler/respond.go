package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/runpro/runpro/internal/coach"
	"github.com/runpro/runpro/internal/ctxkeys"
	"github.com/runpro/runpro/internal/i18n"
	"github.com/runpro/runpro/internal/service"
	"github.com/runpro/runpro/internal/storage"
	"github.com/runpro/runpro/internal/tracker"
	"github.com/runpro/runpro/internal/validation"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidKey  = errors.New("api key rejected")
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// confirmError replaces the generic message of tracker.ErrNotConfirmed with
// the question for the thing being deleted.
type confirmError struct {
	err error
	key string
}

func (e *confirmError) Error() string { return e.err.Error() }
func (e *confirmError) Unwrap() error { return e.err }

func needsConfirm(err error, key string) error {
	if errors.Is(err, tracker.ErrNotConfirmed) {
		return &confirmError{err: err, key: key}
	}
	return err
}

// classify maps a service error to a status and a message key. Unknown errors
// are 500.
func classify(err error) (int, string) {
	var ce *confirmError
	switch {
	case errors.As(err, &ce):
		return http.StatusBadRequest, ce.key
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, i18n.InvalidRequest
	case errors.Is(err, tracker.ErrNoDateSelected):
		return http.StatusBadRequest, i18n.NoDateSelected
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, validation.ErrInvalidDate):
		return http.StatusBadRequest, i18n.InvalidDate
	case errors.Is(err, tracker.ErrDistanceRequired):
		return http.StatusBadRequest, i18n.DistanceRequired
	case errors.Is(err, tracker.ErrInvalidTime):
		return http.StatusBadRequest, i18n.InvalidTime
	case errors.Is(err, tracker.ErrInvalidGoal):
		return http.StatusBadRequest, i18n.InvalidGoal
	case errors.Is(err, tracker.ErrQuickRecordIncomplete):
		return http.StatusBadRequest, i18n.QuickRecordIncomplete
	case errors.Is(err, tracker.ErrNegativeDistance):
		return http.StatusBadRequest, i18n.NegativeDistance
	case errors.Is(err, validation.ErrNameRequired), errors.Is(err, validation.ErrBrandRequired):
		return http.StatusBadRequest, i18n.ShoeLabelsRequired
	case errors.Is(err, tracker.ErrInvalidShoe):
		return http.StatusBadRequest, i18n.InvalidShoe
	case errors.Is(err, coach.ErrPlanFailed):
		return http.StatusBadGateway, i18n.PlanFailed
	case errors.Is(err, tracker.ErrInvalidPlan), errors.Is(err, coach.ErrBadPlan):
		return http.StatusBadRequest, i18n.InvalidPlan
	case errors.Is(err, tracker.ErrNotConfirmed):
		return http.StatusBadRequest, i18n.InvalidRequest
	case errors.Is(err, errInvalidKey):
		return http.StatusBadRequest, i18n.InvalidAPIKey
	case errors.Is(err, coach.ErrNoAPIKey):
		return http.StatusBadRequest, i18n.NoAPIKey
	case errors.Is(err, tracker.ErrGoalExists):
		return http.StatusConflict, i18n.GoalExists
	case errors.Is(err, tracker.ErrRecordExists):
		return http.StatusConflict, i18n.RecordExists
	case errors.Is(err, tracker.ErrShoeLimitReached):
		return http.StatusConflict, i18n.ShoeLimitReached
	case errors.Is(err, tracker.ErrGoalNotFound):
		return http.StatusNotFound, i18n.GoalNotFound
	case errors.Is(err, tracker.ErrShoeNotFound):
		return http.StatusNotFound, i18n.ShoeNotFound
	case errors.Is(err, storage.ErrNotConfigured):
		return http.StatusServiceUnavailable, i18n.BackupsDisabled
	default:
		return http.StatusInternalServerError, i18n.Internal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError answers with a localized message for err.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, key := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	}

	var args []any
	if key == i18n.ShoeLimitReached {
		limit := 0
		if cfg := ctxkeys.Config(r.Context()); cfg != nil {
			limit = cfg.ShoeLimit
		}
		args = append(args, limit)
	}

	writeJSON(w, status, errorBody{
		Error:   key,
		Message: i18n.T(ctxkeys.Locale(r.Context()), key, args...),
	})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
