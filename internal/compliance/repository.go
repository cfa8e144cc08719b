package compliance

import (
	"context"
	"sync"

	"github.com/finbr/brcalc/internal/domain"
)

// Repository persists the append-only review log.
type Repository interface {
	// Insert appends one review. Reviews are never updated or deleted.
	Insert(ctx context.Context, review domain.ComplianceReview) error
	// ListByEntry returns every review for entryID in insertion order.
	ListByEntry(ctx context.Context, entryID string) ([]domain.ComplianceReview, error)
}

// MemoryRepository keeps reviews in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string][]domain.ComplianceReview
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reviews: make(map[string][]domain.ComplianceReview)}
}

func (m *MemoryRepository) Insert(ctx context.Context, review domain.ComplianceReview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.EntryID] = append(m.reviews[review.EntryID], review)
	return nil
}

func (m *MemoryRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.ComplianceReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.reviews[entryID]
	out := make([]domain.ComplianceReview, len(src))
	copy(out, src)
	return out, nil
}
