package calculation

import (
	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// EmergencyReserve returns the target reserve for months of monthlyCost.
func EmergencyReserve(monthlyCost decimal.Decimal, months int) decimal.Decimal {
	if months < 0 {
		months = 0
	}
	return nonNegative(monthlyCost).Mul(decimal.NewFromInt(int64(months)))
}

// ThirteenthSalary splits one month's gross pay into the two installments.
func ThirteenthSalary(grossMonthly decimal.Decimal) domain.ThirteenthSalary {
	total := nonNegative(grossMonthly)
	half := total.Div(two)
	return domain.ThirteenthSalary{
		Total:             total,
		FirstInstallment:  half,
		SecondInstallment: half,
	}
}

// VacationReserve returns pct percent of gross pay to set aside monthly.
func VacationReserve(grossMonthly, pct decimal.Decimal) decimal.Decimal {
	return nonNegative(grossMonthly).Mul(nonNegative(pct)).Div(hundred)
}

// ClassifyCreditScore clamps score into 0..1000, rounds it and bands it.
func ClassifyCreditScore(score decimal.Decimal) domain.CreditScore {
	clamped := decimal.Min(decimal.Max(score, decimal.Zero), decimal.NewFromInt(1000))
	s := int(clamped.Round(0).IntPart())

	var band domain.CreditScoreBand
	switch {
	case s >= 800:
		band = domain.ScoreExcellent
	case s >= 650:
		band = domain.ScoreGood
	case s >= 500:
		band = domain.ScoreRegular
	default:
		band = domain.ScoreLow
	}
	return domain.CreditScore{Score: s, Band: band}
}
