package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", gerr.Validation("days must be within 1..365"), http.StatusBadRequest, "days must be within 1..365"},
		{"unauthorized", gerr.Unauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found wrapped", fmt.Errorf("load: %w", gerr.TransactionNotFound), http.StatusNotFound, "no transaction found"},
		{"precondition", gerr.TransactionNotSuccesful, http.StatusBadRequest, "transaction not successful"},
		{"rate limited", gerr.RateLimited, http.StatusTooManyRequests, "too many requests, please try again later"},
		{"unavailable", gerr.ProviderUnavailable, http.StatusServiceUnavailable, "payment provider unavailable"},
		{"plain error", errors.New("dial tcp: refused"), http.StatusInternalServerError, "Failed to fetch analytics"},
		{"internal status", gerr.AnalyticsUnavailable, http.StatusInternalServerError, "Failed to fetch analytics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "Failed to fetch analytics")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Reference string `json:"reference"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reference":"tx_1"}`))
	require.NoError(t, Decode(httptest.NewRecorder(), r, &v))
	assert.Equal(t, "tx_1", v.Reference)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reference":`))
	err := Decode(httptest.NewRecorder(), r, &v)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func statusOf(err error) int {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), err, "")
	return rec.Code
}
