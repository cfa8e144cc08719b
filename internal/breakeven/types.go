package breakeven

import (
	"errors"
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Request defines a break-even search between two regimes over a monthly
// revenue range. The solver looks for the revenue where both regimes owe the
// same monthly tax.
type Request struct {
	A        domain.Regime   `json:"a"`
	B        domain.Regime   `json:"b"`
	Activity domain.Activity `json:"activity"`
	Payroll  decimal.Decimal `json:"payroll"` // Monthly payroll, used by Lucro Presumido

	// Monthly revenue bounds of the search
	MinRevenue decimal.Decimal `json:"min_revenue"`
	MaxRevenue decimal.Decimal `json:"max_revenue"`

	Tolerance     decimal.Decimal `json:"tolerance"`      // Width of the final revenue interval
	MaxIterations int             `json:"max_iterations"` // Maximum bisection steps
}

// Result contains the outcome of a break-even search
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	// Crossover point
	Revenue decimal.Decimal `json:"revenue"`
	TaxA    decimal.Decimal `json:"tax_a"`
	TaxB    decimal.Decimal `json:"tax_b"`

	// Cheaper regime on each side of the crossover
	CheaperBelow domain.Regime `json:"cheaper_below"`
	CheaperAbove domain.Regime `json:"cheaper_above"`

	// Whether each regime is still within its revenue limit at the crossover
	EligibleA bool `json:"eligible_a"`
	EligibleB bool `json:"eligible_b"`
}

// Pair is an ordered pair of regimes
type Pair struct {
	A domain.Regime `json:"a"`
	B domain.Regime `json:"b"`
}

// MatrixResult contains break-even points for every pair of regimes
type MatrixResult struct {
	Results         []Result `json:"results"`
	NoCrossover     []Pair   `json:"no_crossover"` // Pairs whose tax curves never cross in range
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on revenue
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01), // one centavo of revenue
		MaxIterations: 100,
	}
}

// DefaultMinRevenue and DefaultMaxRevenue bound the monthly revenue search
// when a request leaves both bounds at zero.
var (
	DefaultMinRevenue = decimal.NewFromInt(1000)
	DefaultMaxRevenue = decimal.NewFromInt(400000)
)

// Validate checks that the request is internally consistent
func (r *Request) Validate() error {
	if !r.A.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "invalid regime a",
			Cause:     domain.NewValidationError("a", "unknown regime %q", r.A),
		}
	}
	if !r.B.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "invalid regime b",
			Cause:     domain.NewValidationError("b", "unknown regime %q", r.B),
		}
	}
	if r.A == r.B {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "regimes must differ",
			Cause:     domain.NewValidationError("b", "must differ from a (%s)", r.A),
		}
	}
	if r.Activity != "" && !r.Activity.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "invalid activity",
			Cause:     domain.NewValidationError("activity", "unknown activity %q", r.Activity),
		}
	}
	if r.MinRevenue.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min_revenue cannot be negative",
			Cause:     domain.NewValidationError("min_revenue", "must not be negative, got %s", r.MinRevenue),
		}
	}
	if !r.MinRevenue.LessThan(r.MaxRevenue) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min_revenue must be below max_revenue",
			Cause: domain.NewValidationError("max_revenue",
				"must be greater than min_revenue (%s), got %s", r.MinRevenue, r.MaxRevenue),
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// ErrNoCrossover is the cause of a BreakEvenError when the tax difference
// keeps the same sign over the whole revenue range.
var ErrNoCrossover = errors.New("tax curves do not cross")

func noCrossover(req Request) *BreakEvenError {
	return &BreakEvenError{
		Operation: "solve",
		Message: fmt.Sprintf("no break-even between %s and %s for revenue in [%s, %s]",
			req.A, req.B, req.MinRevenue.StringFixed(2), req.MaxRevenue.StringFixed(2)),
		Cause: ErrNoCrossover,
	}
}
