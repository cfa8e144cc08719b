package compare

import (
	"fmt"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates regime and loan comparisons
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// RegimeOptions configures a regime comparison
type RegimeOptions struct {
	BaseRegime     domain.Regime   // Regime the others are compared against
	Regimes        []domain.Regime // Regimes to include; empty means all
	MonthlyRevenue decimal.Decimal
	Payroll        decimal.Decimal
	Activity       domain.Activity
}

// CompareRegimes estimates every requested regime for the same revenue
// profile and marks the cheapest eligible one.
func (ce *CompareEngine) CompareRegimes(options RegimeOptions) (*ComparisonSet, error) {
	regimes := options.Regimes
	if len(regimes) == 0 {
		regimes = domain.Regimes
	}
	base := options.BaseRegime
	if base == "" {
		base = regimes[0]
	}

	found := false
	for _, r := range regimes {
		if r == base {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NewValidationError("base", "base regime %q is not among the compared regimes", base)
	}

	results := make([]ComparisonResult, 0, len(regimes))
	var baseResult ComparisonResult
	for _, regime := range regimes {
		estimate, err := ce.CalcEngine.EstimateRegime(domain.RegimeInput{
			Regime:         regime,
			MonthlyRevenue: options.MonthlyRevenue,
			Payroll:        options.Payroll,
			Activity:       options.Activity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to estimate regime %s: %w", regime, err)
		}
		metrics := ce.MetricsCalculator.CalculateMetrics(estimate)
		if regime == base {
			baseResult = metrics
		}
		results = append(results, metrics)
	}

	best := cheapest(results)
	alternatives := []ComparisonResult{}
	for _, r := range results {
		r.Cheapest = r.Regime == best
		if r.Regime == base {
			baseResult.Cheapest = r.Cheapest
			continue
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(r, baseResult))
	}

	activity := options.Activity
	if activity == "" {
		activity = domain.ActivityServico
	}
	compSet := &ComparisonSet{
		BaseRegime:         base,
		MonthlyRevenue:     options.MonthlyRevenue,
		Payroll:            options.Payroll,
		Activity:           activity,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		CheapestRegime:     best,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareLoanSystems amortizes the same loan under PRICE and SAC.
func (ce *CompareEngine) CompareLoanSystems(principal decimal.Decimal, months int, annualRatePct decimal.Decimal) (*LoanComparison, error) {
	lc := &LoanComparison{
		Principal:     principal,
		Months:        months,
		AnnualRatePct: annualRatePct,
	}
	for _, system := range domain.AmortizationSystems {
		result, err := ce.CalcEngine.Amortize(domain.LoanInput{
			Principal:     principal,
			Months:        months,
			AnnualRatePct: annualRatePct,
			System:        system,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to amortize with %s: %w", system, err)
		}
		lc.Results = append(lc.Results, result)
	}

	price, sac := lc.Results[0], lc.Results[1]
	lc.Cheaper = domain.SAC
	if price.TotalInterest.LessThan(sac.TotalInterest) {
		lc.Cheaper = domain.PRICE
	}
	lc.InterestSavings = price.TotalInterest.Sub(sac.TotalInterest).Abs()
	return lc, nil
}
