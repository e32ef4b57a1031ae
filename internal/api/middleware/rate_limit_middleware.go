package middleware

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/response"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/rs/zerolog"
)

// RateLimitMiddleware 已登入以 user id 計算, 匿名以 remote addr 計算
// limiter 為 nil 時不限流, limiter 本身出錯時放行
func RateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), rateLimitKey(r))
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.ErrorJSON(w, apperr.TooManyRequests("too many requests, please retry later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if userID, ok := service.ViewerFromContext(r.Context()).UserID(); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + r.RemoteAddr
}
