package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// 記錄request 請求, 並在 ctx 掛上帶 request_id 與 user_id 的 logger
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}

			reqLogger := logger.With().
				Str("request_id", getRequestID(r)).
				Logger()
			if userID, ok := service.ViewerFromContext(r.Context()).UserID(); ok {
				reqLogger = reqLogger.With().Int64("user_id", userID).Logger()
			}

			next.ServeHTTP(recoder, r.WithContext(reqLogger.WithContext(r.Context())))

			reqLogger.Info().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}
