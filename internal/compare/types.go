package compare

import (
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/finbr/brcalc/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one regime's estimate with its deltas against the base
type ComparisonResult struct {
	Regime domain.Regime       `json:"regime"`
	Label  string              `json:"label"`
	Result domain.RegimeResult `json:"result"`

	// Key Metrics
	MonthlyTax       decimal.Decimal `json:"monthlyTax"`
	AnnualTax        decimal.Decimal `json:"annualTax"`
	EffectiveRatePct decimal.Decimal `json:"effectiveRatePct"`
	Eligible         bool            `json:"eligible"` // projected revenue within the regime limit

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`

	Cheapest bool `json:"cheapest"`
}

// ComparisonSet represents a regime comparison for one revenue profile
type ComparisonSet struct {
	BaseRegime         domain.Regime      `json:"baseRegime"`
	MonthlyRevenue     decimal.Decimal    `json:"monthlyRevenue"`
	Payroll            decimal.Decimal    `json:"payroll"`
	Activity           domain.Activity    `json:"activity"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	CheapestRegime     domain.Regime      `json:"cheapestRegime"`
	Recommendations    []string           `json:"recommendations"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// LoanComparison puts PRICE and SAC side by side for the same loan
type LoanComparison struct {
	Principal       decimal.Decimal           `json:"principal"`
	Months          int                       `json:"months"`
	AnnualRatePct   decimal.Decimal           `json:"annualRatePct"`
	Results         []domain.LoanResult       `json:"results"`
	Cheaper         domain.AmortizationSystem `json:"cheaper"`
	InterestSavings decimal.Decimal           `json:"interestSavings"` // interest difference between the systems
}

// MetricsCalculator extracts comparison metrics from regime estimates
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one estimate
func (mc *MetricsCalculator) CalculateMetrics(result domain.RegimeResult) ComparisonResult {
	return ComparisonResult{
		Regime:           result.Regime,
		Label:            result.Regime.Label(),
		Result:           result,
		MonthlyTax:       result.MonthlyTaxEstimate,
		AnnualTax:        result.MonthlyTaxEstimate.Mul(decimal.NewFromInt(12)),
		EffectiveRatePct: result.EffectiveRatePct,
		Eligible:         !result.LimitExceeded,
	}
}

// CalculateComparison computes deltas between a regime and the base
func (mc *MetricsCalculator) CalculateComparison(regime, base ComparisonResult) ComparisonResult {
	regime.TaxDiffFromBase = regime.MonthlyTax.Sub(base.MonthlyTax)
	regime.TaxPctFromBase = decimal.Zero
	if !base.MonthlyTax.IsZero() {
		regime.TaxPctFromBase = regime.TaxDiffFromBase.
			Div(base.MonthlyTax).
			Mul(decimal.NewFromInt(100))
	}
	return regime
}

// cheapest returns the regime with the lowest monthly tax among eligible
// results, falling back to all results when none is eligible. Ties keep the
// first result.
func cheapest(results []ComparisonResult) domain.Regime {
	pick := func(eligibleOnly bool) (domain.Regime, bool) {
		var best *ComparisonResult
		for i := range results {
			r := &results[i]
			if eligibleOnly && !r.Eligible {
				continue
			}
			if best == nil || r.MonthlyTax.LessThan(best.MonthlyTax) {
				best = r
			}
		}
		if best == nil {
			return "", false
		}
		return best.Regime, true
	}
	if r, ok := pick(true); ok {
		return r
	}
	r, _ := pick(false)
	return r
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}

	for _, r := range compSet.All() {
		if !r.Eligible {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: receita anual projetada acima do limite; regime indisponível", r.Label))
		}
	}

	if compSet.CheapestRegime != "" && compSet.CheapestRegime != compSet.BaseRegime {
		for _, alt := range compSet.AlternativeResults {
			if alt.Regime != compSet.CheapestRegime {
				continue
			}
			if alt.TaxDiffFromBase.IsNegative() {
				recommendations = append(recommendations,
					fmt.Sprintf("Menor carga: %s economiza %s por mês em relação a %s",
						alt.Label, output.FormatCurrency(alt.TaxDiffFromBase.Neg()), compSet.BaseResult.Label))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Menor carga elegível: %s, %s por mês acima de %s",
						alt.Label, output.FormatCurrency(alt.TaxDiffFromBase), compSet.BaseResult.Label))
			}
		}
	} else if compSet.CheapestRegime == compSet.BaseRegime {
		recommendations = append(recommendations,
			fmt.Sprintf("Menor carga: %s já é o regime mais barato", compSet.BaseResult.Label))
	}

	return recommendations
}
