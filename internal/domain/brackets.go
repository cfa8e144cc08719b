package domain

import (
	"github.com/shopspring/decimal"
)

// BracketMode selects how a bracket table is applied to an amount.
type BracketMode int

const (
	// Marginal taxes each slice of the amount at the rate of the band it falls in.
	Marginal BracketMode = iota
	// SingleLookup picks the one band containing the amount and applies a flat
	// formula (amount x rate - deduction) using only that band.
	SingleLookup
)

func (m BracketMode) String() string {
	switch m {
	case Marginal:
		return "marginal"
	case SingleLookup:
		return "single_lookup"
	default:
		return "unknown"
	}
}

// BracketRow is one band of a bracket table. Max is the inclusive upper bound
// of the band; a nil Max means the band is unbounded (+Inf) and may only
// appear as the last row.
//
// Deduction is subtracted from amount x Rate in single-lookup mode. Tables
// that add a flat extra (FGTS withdrawal tiers) store it negated.
type BracketRow struct {
	Max       *decimal.Decimal `yaml:"max" json:"max"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal  `yaml:"deduction" json:"deduction"`
}

// Unbounded reports whether the row extends to +Inf.
func (b BracketRow) Unbounded() bool { return b.Max == nil }

// Contains reports whether amount falls at or below the row's upper bound.
func (b BracketRow) Contains(amount decimal.Decimal) bool {
	return b.Max == nil || amount.LessThanOrEqual(*b.Max)
}

// FgtsTierRow is one tier of the FGTS anniversary-withdrawal table.
type FgtsTierRow struct {
	MaxBalance *decimal.Decimal `yaml:"max_balance" json:"max_balance"`
	Aliquot    decimal.Decimal  `yaml:"aliquot" json:"aliquot"`
	ExtraFlat  decimal.Decimal  `yaml:"extra_flat" json:"extra_flat"`
}

// Bracket converts the tier into a single-lookup bracket row.
func (t FgtsTierRow) Bracket() BracketRow {
	return BracketRow{Max: t.MaxBalance, Rate: t.Aliquot, Deduction: t.ExtraFlat.Neg()}
}

// Bound returns a pointer to v, for building bracket rows in code.
func Bound(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
