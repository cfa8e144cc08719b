package domain

import (
	"strings"
	"time"
)

// Scope says whether a compliance entry concerns individuals, companies or both.
type Scope string

const (
	ScopePF   Scope = "PF"
	ScopePJ   Scope = "PJ"
	ScopeBoth Scope = "PF/PJ"
)

// ComplianceEntry maps a calculator to its formula and legal basis. Entries
// are author-maintained and read-only at runtime.
type ComplianceEntry struct {
	ID                 string `yaml:"id" json:"id"`
	Scope              Scope  `yaml:"scope" json:"scope"`
	Topic              string `yaml:"topic" json:"topic"`
	FormulaDescription string `yaml:"formula" json:"formula_description"`
	LegalReference     string `yaml:"legal_reference" json:"legal_reference"`
	Periodicity        string `yaml:"periodicity" json:"periodicity"`
	LastReviewed       string `yaml:"last_reviewed" json:"last_reviewed"`
	Notes              string `yaml:"notes" json:"notes"`
}

// ComplianceReview is one append-only audit record against an entry.
type ComplianceReview struct {
	ID           string    `json:"id" yaml:"id"`
	EntryID      string    `json:"entry_id" yaml:"entry_id"`
	ReviewerID   string    `json:"reviewer_id" yaml:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name" yaml:"reviewer_name"`
	Note         *string   `json:"note" yaml:"note"`
	ReviewedAt   time.Time `json:"reviewed_at" yaml:"reviewed_at"`
}

// HistoryRange filters review history by age.
type HistoryRange string

const (
	HistoryLast30Days HistoryRange = "30d"
	HistoryAll        HistoryRange = "all"
)

// ParseHistoryRange accepts "30d", "last_30_days" or "all"; empty means all.
func ParseHistoryRange(v string) (HistoryRange, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return HistoryAll, nil
	case "30d", "last_30_days", "last-30-days":
		return HistoryLast30Days, nil
	default:
		return "", NewValidationError("range", "unknown history range %q (want 30d or all)", v)
	}
}
