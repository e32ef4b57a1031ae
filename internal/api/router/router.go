package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/api/response"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// checkoutLimiter 只套用在下單, nil 表示不限流
func SetupRouter(server *api.Server, tokenMaker token.Maker, checkoutLimiter ratelimit.Limiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.With(m.RateLimitMiddleware(checkoutLimiter)).Post("/", server.OrderHandler.PlaceOrder)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/my-orders", server.OrderHandler.MyOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
			r.Patch("/{id}/status", server.OrderHandler.UpdateStatus)
		})
	})

	return r
}
