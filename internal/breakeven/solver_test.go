package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Simples Comércio (Anexo I, second band) costs 0.073*r - 495 per month and
// Lucro Presumido on commerce with no payroll costs 0.0557*r, so they cross
// at r = 495 / 0.0173.
const simplesVsPresumido = 28612.716763

func commerceRequest() Request {
	return Request{
		A:          domain.RegimeSimplesComercio,
		B:          domain.RegimeLucroPresumido,
		Activity:   domain.ActivityComercio,
		MinRevenue: d("1000"),
		MaxRevenue: d("40000"),
	}
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	options := SolverOptions{Tolerance: d("1"), MaxIterations: 10}

	solver := NewSolver(calcEngine, options)

	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, options, solver.Options)
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	assert.Equal(t, 100, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(d("0.01")))
}

func TestSolver_Solve_FindsCrossover(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Solve(context.Background(), commerceRequest())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Greater(t, result.Iterations, 0)
	assert.InDelta(t, simplesVsPresumido, result.Revenue.InexactFloat64(), 0.02)
	assert.InDelta(t, result.TaxA.InexactFloat64(), result.TaxB.InexactFloat64(), 0.01)
	assert.Equal(t, domain.RegimeSimplesComercio, result.CheaperBelow)
	assert.Equal(t, domain.RegimeLucroPresumido, result.CheaperAbove)
	assert.True(t, result.EligibleA)
	assert.True(t, result.EligibleB)
}

func TestSolver_Solve_SymmetricInRegimeOrder(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	req := commerceRequest()
	req.A, req.B = req.B, req.A
	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, simplesVsPresumido, result.Revenue.InexactFloat64(), 0.02)
	assert.Equal(t, domain.RegimeSimplesComercio, result.CheaperBelow)
	assert.Equal(t, domain.RegimeLucroPresumido, result.CheaperAbove)
}

func TestSolver_Solve_NoSignChange(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	req := commerceRequest()
	req.A = domain.RegimeMEI

	result, err := solver.Solve(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)

	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "solve", beErr.Operation)
	assert.ErrorIs(t, err, ErrNoCrossover)
}

func TestSolver_Solve_BreakEvenAtBound(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	// MEI commerce and Simples Comércio both charge 4% in the first band.
	req := commerceRequest()
	req.A = domain.RegimeMEI
	req.B = domain.RegimeSimplesComercio

	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Iterations)
	assert.True(t, result.Revenue.Equal(d("1000")))
	assert.Equal(t, domain.RegimeMEI, result.CheaperAbove)
}

func TestSolver_Solve_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"unknown regime a", func(r *Request) { r.A = "lucro-real" }, "a"},
		{"unknown regime b", func(r *Request) { r.B = "" }, "b"},
		{"same regime", func(r *Request) { r.B = r.A }, "b"},
		{"unknown activity", func(r *Request) { r.Activity = "industria" }, "activity"},
		{"negative min", func(r *Request) { r.MinRevenue = d("-1") }, "min_revenue"},
		{"inverted range", func(r *Request) { r.MinRevenue = d("50000") }, "max_revenue"},
	}

	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := commerceRequest()
			tt.mutate(&req)

			_, err := solver.Solve(context.Background(), req)
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), err.Error())
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSolver_Solve_AppliesDefaults(t *testing.T) {
	solver := NewSolver(calculation.NewCalculationEngine(), SolverOptions{Tolerance: d("1"), MaxIterations: 60})

	req := Request{A: domain.RegimeSimplesComercio, B: domain.RegimeLucroPresumido, Activity: domain.ActivityComercio}
	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Request.MinRevenue.Equal(DefaultMinRevenue))
	assert.True(t, result.Request.MaxRevenue.Equal(DefaultMaxRevenue))
	assert.True(t, result.Request.Tolerance.Equal(d("1")))
	assert.Equal(t, 60, result.Request.MaxIterations)
}

func TestSolver_Solve_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, commerceRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_Solve_MaxIterationsExceeded(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	req := commerceRequest()
	req.MaxIterations = 3

	result, err := solver.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "Max iterations (3)")
}

func TestSolver_SolveMatrix(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	regimes := []domain.Regime{domain.RegimeSimplesComercio, domain.RegimeLucroPresumido, domain.RegimeSimplesServicos}
	result, err := solver.SolveMatrix(context.Background(), commerceRequest(), regimes)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.InDelta(t, simplesVsPresumido, result.Results[0].Revenue.InexactFloat64(), 0.02)
	assert.ElementsMatch(t, []Pair{
		{A: domain.RegimeSimplesComercio, B: domain.RegimeSimplesServicos},
		{A: domain.RegimeLucroPresumido, B: domain.RegimeSimplesServicos},
	}, result.NoCrossover)
	require.Len(t, result.Recommendations, 3)
	assert.Contains(t, result.Recommendations[0], "Simples Nacional (Comércio) é mais barato")
	assert.Contains(t, result.Recommendations[1], "não se cruzam")
}

func TestSolver_SolveMatrix_TooFewRegimes(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.SolveMatrix(context.Background(), commerceRequest(), []domain.Regime{domain.RegimeMEI})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSolver_SolveMatrix_PropagatesCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.SolveMatrix(ctx, commerceRequest(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
