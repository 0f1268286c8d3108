package routes

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runpro/runpro/internal/app"
	"github.com/runpro/runpro/internal/handler"
	"github.com/runpro/runpro/internal/middleware"
)

// SetupRoutes builds the HTTP surface. coachLimiter bounds coach calls per
// client; the caller owns its cleanup loop.
func SetupRoutes(app *app.App, coachLimiter *middleware.RateLimiter) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	day := handler.NewDayHandler(app.TrainingService)
	record := handler.NewRecordHandler(app.TrainingService)
	stats := handler.NewStatsHandler(app.TrainingService)
	shoe := handler.NewShoeHandler(app.TrainingService)
	coach := handler.NewCoachHandler(app.Coach, app.TrainingService, app.Settings, app.Cfg.CoachTimeout)
	plan := handler.NewPlanHandler(app.TrainingService)
	export := handler.NewExportHandler(app.TrainingService, app.BackupService)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// ============================================================================
	// TRAINING
	// ============================================================================

	// Day editor
	mux.HandleFunc("GET /api/days/{date}", day.Show)
	mux.HandleFunc("POST /api/days/{date}/goal", day.SaveGoal)
	mux.HandleFunc("DELETE /api/days/{date}/goal", day.DeleteGoal)
	mux.HandleFunc("POST /api/days/{date}/complete", day.Complete)
	mux.HandleFunc("DELETE /api/days/{date}/record", day.DeleteRecord)

	// Records
	mux.HandleFunc("GET /api/records", record.Recent)
	mux.HandleFunc("POST /api/records/quick", record.Quick)

	// Stats
	mux.HandleFunc("GET /api/stats", stats.Stats)
	mux.HandleFunc("GET /api/calendar", stats.Calendar)

	// Shoes
	mux.HandleFunc("GET /api/shoes", shoe.List)
	mux.HandleFunc("POST /api/shoes", shoe.Create)
	mux.HandleFunc("PUT /api/shoes/{id}", shoe.Update)
	mux.HandleFunc("DELETE /api/shoes/{id}", shoe.Delete)
	mux.HandleFunc("GET /api/shoes/{id}/ledger", shoe.Ledger)

	// Plans
	mux.HandleFunc("POST /api/plan/apply", plan.Apply)

	// Export
	mux.HandleFunc("GET /api/export", export.Export)
	mux.HandleFunc("POST /api/backup", export.Backup)

	// ============================================================================
	// COACH (rate limited)
	// ============================================================================

	limit := middleware.Limit(coachLimiter)

	mux.HandleFunc("POST /api/coach/analyze", limit(coach.Analyze))
	mux.HandleFunc("POST /api/coach/ask", limit(coach.Ask))
	mux.HandleFunc("POST /api/coach/recovery", limit(coach.Recovery))
	mux.HandleFunc("POST /api/coach/gear", limit(coach.Gear))
	mux.HandleFunc("POST /api/coach/insights", limit(coach.Insights))
	mux.HandleFunc("POST /api/coach/plan", limit(coach.Plan))
	mux.HandleFunc("PUT /api/coach/key", coach.SetKey)
	mux.HandleFunc("POST /api/coach/key/test", limit(coach.TestKey))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.Locale(app.Cfg.DefaultLocale),
		middleware.RequestLogging,
	)

	return handler
}

// NewCoachLimiter allows COACH_RATE_LIMIT coach calls per client per minute.
func NewCoachLimiter(app *app.App) *middleware.RateLimiter {
	return middleware.NewRateLimiter(app.Cfg.CoachRateLimit, time.Minute)
}
