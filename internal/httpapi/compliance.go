package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/compliance"
	"github.com/finbr/brcalc/internal/domain"
)

// ComplianceService is the subset of compliance.Service used by the handlers.
type ComplianceService interface {
	Overview(ctx context.Context) ([]compliance.EntryStatus, error)
	RecordReview(ctx context.Context, entryID, reviewerID, reviewerName, note string) (domain.ComplianceReview, error)
	CurrentReview(ctx context.Context, entryID string) (*domain.ComplianceReview, error)
	History(ctx context.Context, entryID string, rng domain.HistoryRange) ([]domain.ComplianceReview, error)
}

// ComplianceHandlers exposes the compliance matrix and its review log.
type ComplianceHandlers struct {
	service ComplianceService
	logger  *zap.Logger
}

// NewComplianceHandlers constructs compliance handlers.
func NewComplianceHandlers(service ComplianceService, logger *zap.Logger) *ComplianceHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplianceHandlers{service: service, logger: logger}
}

// Routes registers the /compliance endpoints.
func (h *ComplianceHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/entries", h.listEntries)
	r.Route("/entries/{entryID}/reviews", func(rr chi.Router) {
		rr.Post("/", h.recordReview)
		rr.Get("/", h.history)
		rr.Get("/current", h.currentReview)
	})
}

type entriesResponse struct {
	Entries []compliance.EntryStatus `json:"entries"`
}

type recordReviewRequest struct {
	ReviewerID   string `json:"reviewer_id"`
	ReviewerName string `json:"reviewer_name"`
	Note         string `json:"note"`
}

type reviewResponse struct {
	Review *domain.ComplianceReview `json:"review"`
}

type historyResponse struct {
	EntryID string                    `json:"entry_id"`
	Range   domain.HistoryRange       `json:"range"`
	Reviews []domain.ComplianceReview `json:"reviews"`
}

func (h *ComplianceHandlers) available(w http.ResponseWriter, r *http.Request) bool {
	if h.service == nil {
		writeError(r.Context(), w, newError("compliance_service_unavailable", "compliance service unavailable", http.StatusServiceUnavailable))
		return false
	}
	return true
}

func (h *ComplianceHandlers) listEntries(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	statuses, err := h.service.Overview(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if statuses == nil {
		statuses = []compliance.EntryStatus{}
	}
	writeJSONResponse(w, http.StatusOK, entriesResponse{Entries: statuses})
}

func (h *ComplianceHandlers) recordReview(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	var req recordReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.service.RecordReview(r.Context(),
		strings.TrimSpace(chi.URLParam(r, "entryID")),
		req.ReviewerID,
		req.ReviewerName,
		req.Note,
	)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, reviewResponse{Review: &review})
}

func (h *ComplianceHandlers) currentReview(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	review, err := h.service.CurrentReview(r.Context(), strings.TrimSpace(chi.URLParam(r, "entryID")))
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, reviewResponse{Review: review})
}

func (h *ComplianceHandlers) history(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}
	rng, err := domain.ParseHistoryRange(r.URL.Query().Get("range"))
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	entryID := strings.TrimSpace(chi.URLParam(r, "entryID"))
	reviews, err := h.service.History(r.Context(), entryID, rng)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if reviews == nil {
		reviews = []domain.ComplianceReview{}
	}
	writeJSONResponse(w, http.StatusOK, historyResponse{EntryID: entryID, Range: rng, Reviews: reviews})
}
