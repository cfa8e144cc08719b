package compliance

import (
	_ "embed"
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed entries.yaml
var defaultEntries []byte

// Registry is the read-only compliance matrix.
type Registry struct {
	entries []domain.ComplianceEntry
	byID    map[string]int
}

// NewRegistry parses a registry document of the form {entries: [...]}.
// Entry ids must be non-empty and unique, and scopes must be PF, PJ or PF/PJ.
func NewRegistry(data []byte) (*Registry, error) {
	var doc struct {
		Entries []domain.ComplianceEntry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse compliance registry: %w", err)
	}

	r := &Registry{
		entries: doc.Entries,
		byID:    make(map[string]int, len(doc.Entries)),
	}
	for i, e := range doc.Entries {
		if e.ID == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("entries[%d].id", i), "id is required")
		}
		if _, dup := r.byID[e.ID]; dup {
			return nil, domain.NewValidationError(fmt.Sprintf("entries[%d].id", i), "duplicate id %q", e.ID)
		}
		switch e.Scope {
		case domain.ScopePF, domain.ScopePJ, domain.ScopeBoth:
		default:
			return nil, domain.NewValidationError(fmt.Sprintf("entries[%d].scope", i), "unknown scope %q", e.Scope)
		}
		r.byID[e.ID] = i
	}
	return r, nil
}

// DefaultRegistry returns the embedded compliance matrix.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("compliance: embedded registry is invalid: %v", err))
	}
	return r
}

// Entries returns every entry in document order.
func (r *Registry) Entries() []domain.ComplianceEntry {
	out := make([]domain.ComplianceEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Entry looks up an entry by id.
func (r *Registry) Entry(id string) (domain.ComplianceEntry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain.ComplianceEntry{}, false
	}
	return r.entries[i], true
}

// Has reports whether id names a known entry.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}
