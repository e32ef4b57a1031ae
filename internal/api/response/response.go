package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func SuccessJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Code: status, Message: "success", Data: data})
}

// ErrorJSON 依 apperr 分類決定 status, 500 不回傳內部錯誤細節
func ErrorJSON(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	status := code.HTTPStatus()

	body := Response{Code: status, Message: code.String()}
	var stockErr *apperr.InsufficientStockError
	var appErr *apperr.Error
	switch {
	case errors.As(err, &stockErr):
		body.Message = stockErr.Error()
		body.Data = stockErr
	case status == http.StatusInternalServerError:
	case errors.As(err, &appErr):
		body.Message = appErr.Message
	}
	writeJSON(w, status, body)
}
