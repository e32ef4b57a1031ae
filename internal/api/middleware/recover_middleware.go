package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/storefront/internal/api/response"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().
					Str("panic", fmt.Sprintf("%v", rec)).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Msg("request panicked")

				response.ErrorJSON(w, fmt.Errorf("panic: %v", rec))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
