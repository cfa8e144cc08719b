package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbr/brcalc/internal/config"
)

const maxBodySize = 64 * 1024

var (
	errBodyTooLarge = errors.New("request body too large")
	errEmptyBody    = errors.New("request body is required")
)

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = maxBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// decodeBody reads and unmarshals a JSON request body into v, writing the
// error response itself when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()
	body, err := readLimitedBody(r, maxBodySize)
	if err != nil {
		switch {
		case errors.Is(err, errEmptyBody):
			writeError(ctx, w, newError("invalid_request", "request body is required", http.StatusBadRequest))
		case errors.Is(err, errBodyTooLarge):
			writeError(ctx, w, newError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		default:
			writeError(ctx, w, newError("invalid_request", err.Error(), http.StatusBadRequest))
		}
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, w, newError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return false
	}
	return true
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Amount is a money field accepting a JSON number or a string such as
// "R$ 1.234,56". Garbage and negatives decode to zero.
type Amount decimal.Decimal

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(config.ParseAmount(rawScalar(data)))
	return nil
}

// Decimal returns the parsed value.
func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

// Percent is Amount with an optional trailing "%".
type Percent decimal.Decimal

func (p *Percent) UnmarshalJSON(data []byte) error {
	*p = Percent(config.ParsePercent(rawScalar(data)))
	return nil
}

// Decimal returns the parsed value.
func (p Percent) Decimal() decimal.Decimal { return decimal.Decimal(p) }

// Count is a non-negative integer field accepting a number or a string.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(config.ParseCount(rawScalar(data)))
	return nil
}

func rawScalar(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
