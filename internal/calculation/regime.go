package calculation

import (
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// REGIME ESTIMATES:
//
// MEI: monthly tax = revenue x aliquot(activity); annual limit from the
// tax year (81 000 in 2024).
//
// Simples Nacional: RBT12 is projected as revenue x 12. The annex row is
// selected by single lookup and the effective rate is
// max(0, (RBT12 x nominal - deduction) / RBT12).
//
// Lucro Presumido: IRPJ and CSLL on the presumed base, PIS/COFINS on revenue,
// payroll charges on payroll. No revenue ceiling.
//
// Zero revenue always yields a zero effective rate.

var monthsPerYear = decimal.NewFromInt(12)

// EstimateRegimeTax estimates the monthly tax for one regime. in.Regime must
// be valid; the engine checks it before calling.
func EstimateRegimeTax(cfg domain.TaxYearConfig, in domain.RegimeInput) domain.RegimeResult {
	return estimateRegimeTax(cfg, tablesOf(cfg), in)
}

func estimateRegimeTax(cfg domain.TaxYearConfig, t taxTables, in domain.RegimeInput) domain.RegimeResult {
	revenue := nonNegative(in.MonthlyRevenue)
	annual := revenue.Mul(monthsPerYear)

	switch in.Regime {
	case domain.RegimeMEI:
		return estimateMEI(cfg.MEI, in.Activity, revenue, annual)
	case domain.RegimeSimplesComercio:
		return estimateSimples(cfg.Simples, t.simplesComercio, in.Regime, revenue, annual)
	case domain.RegimeSimplesServicos:
		return estimateSimples(cfg.Simples, t.simplesServicos, in.Regime, revenue, annual)
	case domain.RegimeLucroPresumido:
		return estimateLucroPresumido(cfg.LucroPresumido, in.Activity, revenue, nonNegative(in.Payroll), annual)
	default:
		panic(fmt.Sprintf("calculation: unknown regime %q", in.Regime))
	}
}

// EstimateMEIFixedDAS returns the fixed monthly DAS guide of a MEI: the INSS
// share of the minimum wage plus the ICMS/ISS add-on for the activity.
func EstimateMEIFixedDAS(cfg domain.TaxYearConfig, activity domain.Activity) decimal.Decimal {
	return cfg.MEI.MinimumWage.Mul(cfg.MEI.INSSRate).Add(cfg.MEI.FixedAddOn.For(activity))
}

func estimateMEI(rules domain.MEIRules, activity domain.Activity, revenue, annual decimal.Decimal) domain.RegimeResult {
	aliquot := rules.Aliquots.For(activity)
	monthlyTax := revenue.Mul(aliquot)
	limit := rules.AnnualLimit
	return domain.RegimeResult{
		Regime:                  domain.RegimeMEI,
		EffectiveRatePct:        ratioPct(monthlyTax, revenue),
		MonthlyTaxEstimate:      monthlyTax,
		AnnualRevenueProjection: annual,
		AnnualLimit:             &limit,
		LimitExceeded:           annual.GreaterThan(limit),
	}
}

func estimateSimples(rules domain.SimplesRules, annex BracketTable, regime domain.Regime, revenue, annual decimal.Decimal) domain.RegimeResult {
	effective := decimal.Zero
	if annual.IsPositive() {
		annualTax := annex.Apply(annual, domain.SingleLookup)
		effective = annualTax.Div(annual)
	}
	limit := rules.AnnualLimit
	return domain.RegimeResult{
		Regime:                  regime,
		EffectiveRatePct:        effective.Mul(hundred),
		MonthlyTaxEstimate:      revenue.Mul(effective),
		AnnualRevenueProjection: annual,
		AnnualLimit:             &limit,
		LimitExceeded:           annual.GreaterThan(limit),
	}
}

func estimateLucroPresumido(rules domain.LucroPresumidoRules, activity domain.Activity, revenue, payroll, annual decimal.Decimal) domain.RegimeResult {
	base := revenue.Mul(rules.Presumption.For(activity))
	breakdown := domain.PresumidoBreakdown{
		PresumedBase:   base,
		IRPJ:           base.Mul(rules.IRPJRate),
		CSLL:           base.Mul(rules.CSLLRate),
		PISCOFINS:      revenue.Mul(rules.PISCOFINSRate),
		PayrollCharges: payroll.Mul(rules.PayrollChargesRate),
	}
	monthlyTax := breakdown.IRPJ.Add(breakdown.CSLL).Add(breakdown.PISCOFINS).Add(breakdown.PayrollCharges)
	return domain.RegimeResult{
		Regime:                  domain.RegimeLucroPresumido,
		EffectiveRatePct:        ratioPct(monthlyTax, revenue),
		MonthlyTaxEstimate:      monthlyTax,
		AnnualRevenueProjection: annual,
		AnnualLimit:             nil,
		LimitExceeded:           false,
		Breakdown:               &breakdown,
	}
}

// ratioPct returns part/whole as a percentage, or zero when whole is not positive.
func ratioPct(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
