package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorJSON(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "validation", err: apperr.Validation("cart is empty"), status: http.StatusBadRequest, message: "cart is empty"},
		{name: "not found", err: apperr.NotFound("order", 3), status: http.StatusNotFound, message: "order 3 not found"},
		{name: "forbidden", err: apperr.Forbidden("admin role required"), status: http.StatusForbidden, message: "admin role required"},
		{name: "persistence hides detail", err: apperr.Persistence(errors.New("pq: connection refused"), "create order"), status: http.StatusInternalServerError, message: "internal error"},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, message: "internal error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorJSON(rec, tc.err)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decode(t, rec)
			require.EqualValues(t, tc.status, body["code"])
			require.Equal(t, tc.message, body["message"])
		})
	}
}

func TestErrorJSONInsufficientStock(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorJSON(rec, apperr.InsufficientStock(1, 5, 10))

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	data := body["data"].(map[string]any)
	require.EqualValues(t, 1, data["product_id"])
	require.EqualValues(t, 5, data["available"])
	require.EqualValues(t, 10, data["requested"])
}

func TestSuccessJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessJSON(rec, http.StatusCreated, map[string]int64{"order_id": 4})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "success", body["message"])
	require.EqualValues(t, 4, body["data"].(map[string]any)["order_id"])
}
