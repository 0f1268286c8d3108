package ctxkeys

import (
	"context"

	"golang.org/x/text/language"

	"github.com/runpro/runpro/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ConfigKey contextKey = "config"
	LocaleKey contextKey = "locale"
)

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

// Locale returns the negotiated response language, Korean when unset.
func Locale(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(LocaleKey).(language.Tag)
	if !ok {
		return language.Korean
	}
	return tag
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, LocaleKey, tag)
}
