package compliance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/domain"
)

const (
	reviewIDPrefix = "rev_"
	historyWindow  = 30 * 24 * time.Hour
)

// ServiceDeps bundles collaborators required to construct a Service.
type ServiceDeps struct {
	Registry    *Registry
	Reviews     Repository
	Clock       func() time.Time
	IDGenerator func() string
	Logger      *zap.Logger
}

// Service records and queries compliance reviews.
type Service struct {
	registry *Registry
	reviews  Repository
	clock    func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// EntryStatus pairs an entry with its current review, if any.
type EntryStatus struct {
	Entry   domain.ComplianceEntry   `json:"entry" yaml:"entry"`
	Current *domain.ComplianceReview `json:"current_review" yaml:"current_review"`
}

// NewService wires dependencies into a Service. A nil Registry uses the
// embedded matrix.
func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Reviews == nil {
		return nil, errors.New("compliance service: review repository is required")
	}

	registry := deps.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return reviewIDPrefix + ulid.Make().String()
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		registry: registry,
		reviews:  deps.Reviews,
		clock: func() time.Time {
			return clock().UTC()
		},
		newID:  idGen,
		logger: logger,
	}, nil
}

// Entries returns the static compliance matrix.
func (s *Service) Entries() []domain.ComplianceEntry {
	return s.registry.Entries()
}

// Overview returns every entry with its current review.
func (s *Service) Overview(ctx context.Context) ([]EntryStatus, error) {
	entries := s.registry.Entries()
	out := make([]EntryStatus, 0, len(entries))
	for _, e := range entries {
		current, err := s.CurrentReview(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, EntryStatus{Entry: e, Current: current})
	}
	return out, nil
}

// RecordReview appends a review of entryID. The note is trimmed; an empty
// note is stored as null.
func (s *Service) RecordReview(ctx context.Context, entryID, reviewerID, reviewerName, note string) (domain.ComplianceReview, error) {
	entryID = strings.TrimSpace(entryID)
	if !s.registry.Has(entryID) {
		return domain.ComplianceReview{}, domain.NewValidationError("entry_id", "unknown compliance entry %q", entryID)
	}
	reviewerID = strings.TrimSpace(reviewerID)
	if reviewerID == "" {
		return domain.ComplianceReview{}, domain.NewValidationError("reviewer_id", "reviewer id is required")
	}
	reviewerName = strings.TrimSpace(reviewerName)
	if reviewerName == "" {
		return domain.ComplianceReview{}, domain.NewValidationError("reviewer_name", "reviewer name is required")
	}

	review := domain.ComplianceReview{
		ID:           s.newID(),
		EntryID:      entryID,
		ReviewerID:   reviewerID,
		ReviewerName: reviewerName,
		ReviewedAt:   s.clock(),
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		review.Note = &trimmed
	}

	if err := s.reviews.Insert(ctx, review); err != nil {
		return domain.ComplianceReview{}, fmt.Errorf("record review: %w", err)
	}

	s.logger.Info("compliance review recorded",
		zap.String("review_id", review.ID),
		zap.String("entry_id", entryID),
		zap.String("reviewer_id", reviewerID),
	)
	return review, nil
}

// CurrentReview returns the latest review of entryID, or nil when it has
// none. Reviews sharing a timestamp resolve to the one inserted last.
func (s *Service) CurrentReview(ctx context.Context, entryID string) (*domain.ComplianceReview, error) {
	reviews, err := s.sorted(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	current := reviews[0]
	return &current, nil
}

// History returns the reviews of entryID newest first. HistoryLast30Days keeps
// reviews no older than 30 days.
func (s *Service) History(ctx context.Context, entryID string, rng domain.HistoryRange) ([]domain.ComplianceReview, error) {
	reviews, err := s.sorted(ctx, entryID)
	if err != nil {
		return nil, err
	}

	switch rng {
	case domain.HistoryAll, "":
		return reviews, nil
	case domain.HistoryLast30Days:
		cutoff := s.clock().Add(-historyWindow)
		filtered := reviews[:0]
		for _, rv := range reviews {
			if !rv.ReviewedAt.Before(cutoff) {
				filtered = append(filtered, rv)
			}
		}
		return filtered, nil
	default:
		return nil, domain.NewValidationError("range", "unknown history range %q", rng)
	}
}

// sorted lists reviews newest first, later insertions first on equal times.
func (s *Service) sorted(ctx context.Context, entryID string) ([]domain.ComplianceReview, error) {
	reviews, err := s.reviews.ListByEntry(ctx, strings.TrimSpace(entryID))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].ReviewedAt.After(reviews[j].ReviewedAt)
	})
	return reviews, nil
}
