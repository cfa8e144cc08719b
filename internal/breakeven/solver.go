package breakeven

import (
	"context"
	"fmt"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the monthly revenue where two regimes owe the same tax
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// sample is one evaluation of both regimes at a revenue
type sample struct {
	revenue decimal.Decimal
	taxA    domain.RegimeResult
	taxB    domain.RegimeResult
}

// diff returns tax_A - tax_B
func (s sample) diff() decimal.Decimal {
	return s.taxA.MonthlyTaxEstimate.Sub(s.taxB.MonthlyTaxEstimate)
}

// Solve bisects tax_A(rev) - tax_B(rev) over [MinRevenue, MaxRevenue]. The
// endpoints must bracket a sign change; otherwise a BreakEvenError wrapping
// ErrNoCrossover is returned. Running out of iterations is not an error: the
// midpoint of the last interval is returned with Success false.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	// Apply defaults
	if req.MinRevenue.IsZero() && req.MaxRevenue.IsZero() {
		req.MinRevenue = DefaultMinRevenue
		req.MaxRevenue = DefaultMaxRevenue
	}
	if req.Activity == "" {
		req.Activity = domain.ActivityServico
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	lo, err := s.evaluate(req, req.MinRevenue)
	if err != nil {
		return nil, err
	}
	hi, err := s.evaluate(req, req.MaxRevenue)
	if err != nil {
		return nil, err
	}

	// Sign of tax_A - tax_B below the crossover
	loSign := lo.diff().Sign()
	if loSign == 0 {
		loSign = -hi.diff().Sign()
	}

	if lo.diff().IsZero() {
		return s.result(req, lo, loSign, 0, true, "Break-even at the lower bound"), nil
	}
	if hi.diff().IsZero() {
		return s.result(req, hi, loSign, 0, true, "Break-even at the upper bound"), nil
	}
	if lo.diff().Sign() == hi.diff().Sign() {
		return nil, noCrossover(req)
	}

	mid := lo
	iterations := 0

	for iterations < req.MaxIterations {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		midRevenue := lo.revenue.Add(hi.revenue).Div(decimal.NewFromInt(2))
		mid, err = s.evaluate(req, midRevenue)
		if err != nil {
			return nil, err
		}

		d := mid.diff()
		if d.IsZero() {
			return s.result(req, mid, loSign, iterations, true, "Exact break-even found"), nil
		}
		if d.Sign() == loSign {
			lo = mid
		} else {
			hi = mid
		}

		// Check convergence
		if hi.revenue.Sub(lo.revenue).LessThanOrEqual(req.Tolerance) {
			return s.result(req, mid, loSign, iterations, true,
				fmt.Sprintf("Bisection converged within R$ %s", req.Tolerance.String())), nil
		}
	}

	return s.result(req, mid, loSign, iterations, false,
		fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)), nil
}

// evaluate estimates both regimes at revenue
func (s *Solver) evaluate(req Request, revenue decimal.Decimal) (sample, error) {
	a, err := s.CalcEngine.EstimateRegime(domain.RegimeInput{
		Regime:         req.A,
		MonthlyRevenue: revenue,
		Payroll:        req.Payroll,
		Activity:       req.Activity,
	})
	if err != nil {
		return sample{}, &BreakEvenError{Operation: "solve", Message: "failed to estimate regime a", Cause: err}
	}
	b, err := s.CalcEngine.EstimateRegime(domain.RegimeInput{
		Regime:         req.B,
		MonthlyRevenue: revenue,
		Payroll:        req.Payroll,
		Activity:       req.Activity,
	})
	if err != nil {
		return sample{}, &BreakEvenError{Operation: "solve", Message: "failed to estimate regime b", Cause: err}
	}
	return sample{revenue: revenue, taxA: a, taxB: b}, nil
}

// result creates a solver result from the final sample
func (s *Solver) result(req Request, at sample, belowSign, iterations int, success bool, info string) *Result {
	res := &Result{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Revenue:         at.revenue,
		TaxA:            at.taxA.MonthlyTaxEstimate,
		TaxB:            at.taxB.MonthlyTaxEstimate,
		EligibleA:       !at.taxA.LimitExceeded,
		EligibleB:       !at.taxB.LimitExceeded,
	}

	if belowSign < 0 {
		res.CheaperBelow, res.CheaperAbove = req.A, req.B
	} else {
		res.CheaperBelow, res.CheaperAbove = req.B, req.A
	}
	return res
}
