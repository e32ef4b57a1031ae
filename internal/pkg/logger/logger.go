package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/rs/zerolog"
)

// New debug/development 輸出易讀格式, 其他環境輸出 json
func New(env string, w io.Writer) *zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := zerolog.InfoLevel
	switch constants.ENV(env) {
	case constants.Debug:
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case constants.Dev:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Str("service", "storefront").Logger()
	return &l
}

func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// FromContext 優先使用 request 上掛的 logger
func FromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if fallback == nil {
		return Nop()
	}
	return fallback
}
