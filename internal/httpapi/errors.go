package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/breakeven"
	"github.com/finbr/brcalc/internal/domain"
)

// apiError is the JSON error envelope returned by every endpoint:
// {"error":{"code":"...","message":"..."}}.
type apiError struct {
	Code    string
	Message string
	Status  int
}

func newError(code, message string, status int) apiError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return apiError{
		Code:    sanitize(code, 80),
		Message: sanitize(message, 512),
		Status:  status,
	}
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// writeError writes the structured error as JSON.
func writeError(ctx context.Context, w http.ResponseWriter, err apiError) {
	writeJSONResponse(w, err.Status, errorEnvelope{
		Error: errorBody{
			Code:      err.Code,
			Message:   err.Message,
			RequestID: sanitize(middleware.GetReqID(ctx), 80),
		},
	})
}

// writeServiceError maps domain errors onto HTTP statuses. Validation
// failures are the caller's fault; anything else is logged and hidden.
func writeServiceError(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, err error) {
	if err == nil {
		return
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(ctx, w, newError("validation_failed", ve.Error(), http.StatusBadRequest))
	case errors.Is(err, breakeven.ErrNoCrossover):
		writeError(ctx, w, newError("no_crossover", err.Error(), http.StatusUnprocessableEntity))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(ctx, w, newError("request_timeout", "request cancelled before completion", http.StatusServiceUnavailable))
	default:
		if logger != nil {
			logger.Error("request failed",
				zap.String("request_id", middleware.GetReqID(ctx)),
				zap.Error(err),
			)
		}
		writeError(ctx, w, newError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
