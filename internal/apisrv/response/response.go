// Package response writes JSON answers and maps service errors to HTTP
// statuses.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jekabolt/storefront-ledger/internal/dto"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"google.golang.org/grpc/codes"
)

const maxBodyBytes = 1 << 20

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response", slog.String("err", err.Error()))
	}
}

// Error writes err as {"error": msg}. The status follows the error code.
// Errors without a client-facing code are logged and answered with fallback.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := gerr.Code(err)
	status := runtime.HTTPStatusFromCode(code)
	msg := gerr.Message(err)
	switch code {
	case codes.Internal, codes.Unknown, codes.DataLoss:
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		msg = fallback
	case codes.Unavailable:
		slog.Default().WarnContext(r.Context(), "upstream unavailable",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}
	JSON(w, status, dto.ErrorResponse{Error: msg})
}

// Decode reads a JSON body into v. A malformed body is a validation error.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return gerr.Validation("invalid request body")
	}
	return nil
}
