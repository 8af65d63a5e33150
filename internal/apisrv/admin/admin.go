package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jekabolt/storefront-ledger/internal/analytics"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/response"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

const msgAnalyticsFailed = "Failed to fetch analytics"

// Server implements handlers for admin.
type Server struct {
	analytics dependency.Analytics
}

// New creates a new server with admin handlers.
func New(a dependency.Analytics) *Server {
	return &Server{analytics: a}
}

// GetAnalytics answers GET /api/admin/analytics?days=N.
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r.URL.Query().Get("days"))
	if err != nil {
		response.Error(w, r, err, msgAnalyticsFailed)
		return
	}
	data, err := s.analytics.GetAnalytics(r.Context(), days)
	if err != nil {
		response.Error(w, r, err, msgAnalyticsFailed)
		return
	}
	response.JSON(w, http.StatusOK, data)
}

func parseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return analytics.DefaultLookbackDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, gerr.Validation("days must be a positive integer")
	}
	return days, nil
}
