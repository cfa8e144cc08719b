package compliance

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	entries := r.Entries()
	require.Len(t, entries, 7)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		assert.NotEmpty(t, e.Topic, e.ID)
		assert.NotEmpty(t, e.FormulaDescription, e.ID)
		assert.Equal(t, "2026-02-16", e.LastReviewed, e.ID)
	}
	assert.Equal(t, []string{"pf-inss", "pf-irrf", "pf-fgts", "pj-mei", "pj-simples", "pj-lp", "open-data"}, ids)

	e, ok := r.Entry("open-data")
	require.True(t, ok)
	assert.Equal(t, domain.ScopeBoth, e.Scope)

	_, ok = r.Entry("missing")
	assert.False(t, ok)
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "entries:\n  - { scope: PF, topic: x }\n"},
		{"duplicate id", "entries:\n  - { id: a, scope: PF }\n  - { id: a, scope: PJ }\n"},
		{"bad scope", "entries:\n  - { id: a, scope: PX }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	_, err := NewRegistry([]byte("entries: {"))
	assert.Error(t, err)
}

func TestMemoryRepository_ConcurrentInserts(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Insert(ctx, domain.ComplianceReview{
				ID:         "rev_" + string(rune('A'+i%26)),
				EntryID:    "pf-inss",
				ReviewedAt: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	reviews, err := repo.ListByEntry(ctx, "pf-inss")
	require.NoError(t, err)
	assert.Len(t, reviews, 50)
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewMemoryRepository()
	assert.ErrorIs(t, repo.Insert(ctx, domain.ComplianceReview{EntryID: "pf-inss"}), context.Canceled)
}

func TestPostgresRepository(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping PostgreSQL repository test")
	}

	ctx := context.Background()
	pool, err := OpenPool(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	entryID := "test-" + time.Now().UTC().Format("20060102150405.000000000")
	_, err = pool.Exec(ctx, "DELETE FROM compliance_matrix_reviews WHERE row_id = $1", entryID)
	require.NoError(t, err)

	note := "ok"
	at := time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, domain.ComplianceReview{ID: entryID + "-1", EntryID: entryID, ReviewerID: "u1", ReviewerName: "Alice", Note: &note, ReviewedAt: at}))
	require.NoError(t, repo.Insert(ctx, domain.ComplianceReview{ID: entryID + "-2", EntryID: entryID, ReviewerID: "u2", ReviewerName: "Bob", ReviewedAt: at.Add(time.Hour)}))

	reviews, err := repo.ListByEntry(ctx, entryID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Alice", reviews[0].ReviewerName)
	require.NotNil(t, reviews[0].Note)
	assert.Equal(t, "ok", *reviews[0].Note)
	assert.Nil(t, reviews[1].Note)
	assert.True(t, reviews[1].ReviewedAt.Equal(at.Add(time.Hour)))

	_, err = pool.Exec(ctx, "DELETE FROM compliance_matrix_reviews WHERE row_id = $1", entryID)
	require.NoError(t, err)
}

func TestPostgresRepository_NilPool(t *testing.T) {
	repo := NewPostgresRepository(nil)
	assert.ErrorIs(t, repo.Insert(context.Background(), domain.ComplianceReview{}), ErrPoolNotInitialized)
	_, err := repo.ListByEntry(context.Background(), "pf-inss")
	assert.ErrorIs(t, err, ErrPoolNotInitialized)
	assert.ErrorIs(t, repo.EnsureSchema(context.Background()), ErrPoolNotInitialized)
}
