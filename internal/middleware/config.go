package middleware

import (
	"net/http"

	"github.com/runpro/runpro/internal/config"
	"github.com/runpro/runpro/internal/ctxkeys"
	"github.com/runpro/runpro/internal/i18n"
)

// Config middleware adds the sanitized app configuration to the request context.
// Secrets like the Gemini key and S3 credentials are excluded.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Locale negotiates the response language from Accept-Language, falling
// back to the configured default.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := i18n.Match(r.Header.Get("Accept-Language"), defaultLocale)
			w.Header().Set("Content-Language", tag.String())
			ctx := ctxkeys.WithLocale(r.Context(), tag)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
