package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbr/brcalc/internal/compliance"
	"github.com/finbr/brcalc/internal/domain"
)

type stubComplianceService struct {
	overview    []compliance.EntryStatus
	overviewErr error
	recorded    []string
	recordErr   error
	current     *domain.ComplianceReview
	history     []domain.ComplianceReview
	gotRange    domain.HistoryRange
	gotEntry    string
}

func (s *stubComplianceService) Overview(context.Context) ([]compliance.EntryStatus, error) {
	return s.overview, s.overviewErr
}

func (s *stubComplianceService) RecordReview(_ context.Context, entryID, reviewerID, reviewerName, note string) (domain.ComplianceReview, error) {
	if s.recordErr != nil {
		return domain.ComplianceReview{}, s.recordErr
	}
	s.recorded = append(s.recorded, entryID+"|"+reviewerID+"|"+reviewerName+"|"+note)
	return domain.ComplianceReview{ID: "rev_1", EntryID: entryID, ReviewerID: reviewerID, ReviewerName: reviewerName}, nil
}

func (s *stubComplianceService) CurrentReview(_ context.Context, entryID string) (*domain.ComplianceReview, error) {
	s.gotEntry = entryID
	return s.current, nil
}

func (s *stubComplianceService) History(_ context.Context, entryID string, rng domain.HistoryRange) ([]domain.ComplianceReview, error) {
	s.gotEntry = entryID
	s.gotRange = rng
	return s.history, nil
}

func newComplianceRouter(svc ComplianceService) http.Handler {
	return NewRouter(WithComplianceRoutes(NewComplianceHandlers(svc, nil).Routes))
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestComplianceHandlers_ListEntries(t *testing.T) {
	svc := &stubComplianceService{overview: []compliance.EntryStatus{
		{Entry: domain.ComplianceEntry{ID: "pf-inss", Scope: domain.ScopePF}},
	}}
	rr := doRequest(newComplianceRouter(svc), http.MethodGet, "/api/v1/compliance/entries", "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	entries := decodeJSON(t, rr)["entries"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)["entry"].(map[string]any)
	assert.Equal(t, "pf-inss", entry["id"])
	assert.Nil(t, entries[0].(map[string]any)["current_review"])
}

func TestComplianceHandlers_ListEntriesFailure(t *testing.T) {
	svc := &stubComplianceService{overviewErr: errors.New("db down")}
	rr := doRequest(newComplianceRouter(svc), http.MethodGet, "/api/v1/compliance/entries", "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal_error", errorCode(t, rr))
	assert.NotContains(t, rr.Body.String(), "db down")
}

func TestComplianceHandlers_RecordReview(t *testing.T) {
	svc := &stubComplianceService{}
	rr := doRequest(newComplianceRouter(svc), http.MethodPost, "/api/v1/compliance/entries/pf-irrf/reviews",
		`{"reviewer_id": "u-1", "reviewer_name": "Ana", "note": "tabela conferida"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	review := decodeJSON(t, rr)["review"].(map[string]any)
	assert.Equal(t, "rev_1", review["id"])
	assert.Equal(t, []string{"pf-irrf|u-1|Ana|tabela conferida"}, svc.recorded)
}

func TestComplianceHandlers_RecordReviewValidation(t *testing.T) {
	svc := &stubComplianceService{recordErr: domain.NewValidationError("reviewer_name", "reviewer name is required")}
	rr := doRequest(newComplianceRouter(svc), http.MethodPost, "/api/v1/compliance/entries/pf-irrf/reviews",
		`{"reviewer_id": "u-1"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rr))
}

func TestComplianceHandlers_History(t *testing.T) {
	svc := &stubComplianceService{history: []domain.ComplianceReview{{ID: "rev_2"}, {ID: "rev_1"}}}
	router := newComplianceRouter(svc)

	rr := doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pj-mei/reviews?range=last_30_days", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	payload := decodeJSON(t, rr)
	assert.Equal(t, "pj-mei", payload["entry_id"])
	assert.Equal(t, "30d", payload["range"])
	assert.Len(t, payload["reviews"], 2)
	assert.Equal(t, domain.HistoryLast30Days, svc.gotRange)

	rr = doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pj-mei/reviews", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.HistoryAll, svc.gotRange)

	rr = doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pj-mei/reviews?range=week", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rr))
}

func TestComplianceHandlers_CurrentReviewEmpty(t *testing.T) {
	svc := &stubComplianceService{}
	rr := doRequest(newComplianceRouter(svc), http.MethodGet, "/api/v1/compliance/entries/unknown/reviews/current", "")

	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeJSON(t, rr)
	assert.Contains(t, payload, "review")
	assert.Nil(t, payload["review"])
	assert.Equal(t, "unknown", svc.gotEntry)
}

func TestComplianceHandlers_NilService(t *testing.T) {
	rr := doRequest(newComplianceRouter(nil), http.MethodGet, "/api/v1/compliance/entries", "")

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "compliance_service_unavailable", errorCode(t, rr))
}

func TestComplianceHandlers_WithMemoryService(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	seq := 0
	svc, err := compliance.NewService(compliance.ServiceDeps{
		Reviews: compliance.NewMemoryRepository(),
		Clock:   func() time.Time { return clock },
		IDGenerator: func() string {
			seq++
			return fmt.Sprintf("rev_%d", seq)
		},
	})
	require.NoError(t, err)
	router := newComplianceRouter(svc)

	clock = now.Add(-45 * 24 * time.Hour)
	rr := doRequest(router, http.MethodPost, "/api/v1/compliance/entries/pf-inss/reviews",
		`{"reviewer_id": "u-1", "reviewer_name": "Ana"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	clock = now
	rr = doRequest(router, http.MethodPost, "/api/v1/compliance/entries/pf-inss/reviews",
		`{"reviewer_id": "u-2", "reviewer_name": "Bruno", "note": "  "}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	review := decodeJSON(t, rr)["review"].(map[string]any)
	assert.Nil(t, review["note"])

	rr = doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pf-inss/reviews/current", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rev_2", decodeJSON(t, rr)["review"].(map[string]any)["id"])

	rr = doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pf-inss/reviews?range=30d", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON(t, rr)["reviews"], 1)

	rr = doRequest(router, http.MethodGet, "/api/v1/compliance/entries/pf-inss/reviews?range=all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON(t, rr)["reviews"], 2)

	rr = doRequest(router, http.MethodPost, "/api/v1/compliance/entries/nope/reviews",
		`{"reviewer_id": "u-1", "reviewer_name": "Ana"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rr))
}
