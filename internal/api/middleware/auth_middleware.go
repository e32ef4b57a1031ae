package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/response"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

// 驗證ctx內是否為已登入的 viewer, 角色檢查留給 service
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := service.ViewerFromContext(r.Context()).UserID(); !ok {
			response.ErrorJSON(w, apperr.Unauthenticated("login required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
