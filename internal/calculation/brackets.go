package calculation

import (
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BRACKET ENGINE:
//
// Two ways of applying a table:
//
//  1. Marginal (INSS): each band's rate applies only to the slice of the
//     amount inside that band; slices are summed. The walk stops as soon as
//     the amount is at or below the previous band's ceiling.
//
//  2. Single lookup (IRRF, FGTS tiers, Simples annexes): the first band with
//     amount <= Max is selected and max(0, amount x Rate - Deduction) is
//     returned, using only that band.
//
// Zero or negative amounts always yield zero.

// BracketTable is a validated, ordered bracket table.
type BracketTable struct {
	rows []domain.BracketRow
}

// NewBracketTable validates rows and returns a table holding its own copy.
// Rows must be non-empty, strictly ascending by Max, and only the last row
// may (and must) be unbounded. Rates may not be negative.
func NewBracketTable(rows []domain.BracketRow) (BracketTable, error) {
	if err := ValidateBrackets(rows); err != nil {
		return BracketTable{}, err
	}
	return BracketTable{rows: domain.CloneRows(rows)}, nil
}

// ValidateBrackets checks the table invariants.
func ValidateBrackets(rows []domain.BracketRow) error {
	if len(rows) == 0 {
		return domain.NewValidationError("brackets", "table is empty")
	}
	prev := decimal.Zero
	for i, row := range rows {
		last := i == len(rows)-1
		if row.Rate.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("brackets[%d].rate", i), "rate %s is negative", row.Rate)
		}
		if row.Unbounded() {
			if !last {
				return domain.NewValidationError(fmt.Sprintf("brackets[%d].max", i), "only the last row may be unbounded")
			}
			continue
		}
		if last {
			return domain.NewValidationError(fmt.Sprintf("brackets[%d].max", i), "last row must be unbounded")
		}
		if !row.Max.GreaterThan(prev) {
			return domain.NewValidationError(fmt.Sprintf("brackets[%d].max", i), "max %s is not above previous max %s", row.Max, prev)
		}
		prev = *row.Max
	}
	return nil
}

// Apply applies the table to amount in the given mode.
func (t BracketTable) Apply(amount decimal.Decimal, mode domain.BracketMode) decimal.Decimal {
	return ApplyBrackets(amount, t.rows, mode)
}

// taxTables holds the bracket tables of one tax year.
type taxTables struct {
	inss            BracketTable
	irrf            BracketTable
	fgts            BracketTable
	simplesComercio BracketTable
	simplesServicos BracketTable
}

func fgtsRows(cfg domain.TaxYearConfig) []domain.BracketRow {
	rows := make([]domain.BracketRow, len(cfg.FGTS.WithdrawalTiers))
	for i, tier := range cfg.FGTS.WithdrawalTiers {
		rows[i] = tier.Bracket()
	}
	return rows
}

// newTaxTables validates every bracket table of cfg. Errors name the
// offending table.
func newTaxTables(cfg domain.TaxYearConfig) (taxTables, error) {
	var t taxTables
	named := []struct {
		name string
		rows []domain.BracketRow
		dst  *BracketTable
	}{
		{"inss.bands", cfg.INSS.Bands, &t.inss},
		{"irrf.bands", cfg.IRRF.Bands, &t.irrf},
		{"simples.comercio", cfg.Simples.Comercio, &t.simplesComercio},
		{"simples.servicos", cfg.Simples.Servicos, &t.simplesServicos},
		{"fgts.withdrawal_tiers", fgtsRows(cfg), &t.fgts},
	}
	for _, n := range named {
		table, err := NewBracketTable(n.rows)
		if err != nil {
			return taxTables{}, fmt.Errorf("%s: %w", n.name, err)
		}
		*n.dst = table
	}
	return t, nil
}

// tablesOf wraps the rows of cfg without validating them, for the
// package-level calculators.
func tablesOf(cfg domain.TaxYearConfig) taxTables {
	return taxTables{
		inss:            BracketTable{rows: cfg.INSS.Bands},
		irrf:            BracketTable{rows: cfg.IRRF.Bands},
		fgts:            BracketTable{rows: fgtsRows(cfg)},
		simplesComercio: BracketTable{rows: cfg.Simples.Comercio},
		simplesServicos: BracketTable{rows: cfg.Simples.Servicos},
	}
}

// ApplyBrackets applies rows to amount. It does not validate rows; use
// NewBracketTable for tables coming from configuration.
func ApplyBrackets(amount decimal.Decimal, rows []domain.BracketRow, mode domain.BracketMode) decimal.Decimal {
	if !amount.IsPositive() || len(rows) == 0 {
		return decimal.Zero
	}

	switch mode {
	case domain.Marginal:
		return applyMarginal(amount, rows)
	case domain.SingleLookup:
		row, ok := lookupRow(amount, rows)
		if !ok {
			return decimal.Zero
		}
		return decimal.Max(decimal.Zero, amount.Mul(row.Rate).Sub(row.Deduction))
	default:
		panic(fmt.Sprintf("calculation: unknown bracket mode %d", mode))
	}
}

// MarginalSlices returns the per-band contributions of a marginal walk. Their
// sum equals ApplyBrackets(amount, rows, Marginal).
func MarginalSlices(amount decimal.Decimal, rows []domain.BracketRow) []decimal.Decimal {
	slices := make([]decimal.Decimal, len(rows))
	for i := range slices {
		slices[i] = decimal.Zero
	}
	if !amount.IsPositive() {
		return slices
	}

	prevMax := decimal.Zero
	for i, row := range rows {
		if amount.LessThanOrEqual(prevMax) {
			break
		}
		upper := amount
		if !row.Unbounded() {
			upper = decimal.Min(amount, *row.Max)
		}
		slice := decimal.Max(decimal.Zero, upper.Sub(prevMax))
		slices[i] = slice.Mul(row.Rate)
		if row.Unbounded() {
			break
		}
		prevMax = *row.Max
	}
	return slices
}

func applyMarginal(amount decimal.Decimal, rows []domain.BracketRow) decimal.Decimal {
	total := decimal.Zero
	for _, s := range MarginalSlices(amount, rows) {
		total = total.Add(s)
	}
	return total
}

// lookupRow picks the first row whose ceiling contains amount. When no row
// does (a table without an unbounded tail), the last row is the catch-all.
func lookupRow(amount decimal.Decimal, rows []domain.BracketRow) (domain.BracketRow, bool) {
	if len(rows) == 0 {
		return domain.BracketRow{}, false
	}
	for _, row := range rows {
		if row.Contains(amount) {
			return row, true
		}
	}
	return rows[len(rows)-1], true
}
