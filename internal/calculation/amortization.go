package calculation

import (
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AMORTIZATION ASSUMPTIONS:
//
// 1. Monthly rate is the nominal annual rate divided by 12 (no compounding
//    conversion): r = annualRatePct / 12 / 100.
//
// 2. SAC totals use the closed form months x Am + r x P x (months+1)/2 and
//    take the last installment's interest as exactly one amortization slice
//    (Am x r). This is a modeling approximation that may differ from a bank's
//    day-count convention by a few cents; Schedule gives the month-by-month
//    figures instead.
//
// 3. months <= 0 is floored to 1.

// powPrecision bounds the digits kept while raising (1+r) to the term.
const powPrecision = 28

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(twelve).Div(hundred)
}

// Amortize summarizes a loan under the PRICE or SAC system. The input system
// must be valid; the engine checks it before calling.
func Amortize(in domain.LoanInput) domain.LoanResult {
	result := domain.LoanResult{
		System:           in.System,
		FirstInstallment: decimal.Zero,
		LastInstallment:  decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalInterest:    decimal.Zero,
	}
	principal := in.Principal
	if !principal.IsPositive() {
		return result
	}

	months := in.Months
	if months < 1 {
		months = 1
	}
	n := decimal.NewFromInt(int64(months))
	r := MonthlyRate(in.AnnualRatePct)

	if !r.IsPositive() {
		installment := principal.Div(n)
		result.FirstInstallment = installment
		result.LastInstallment = installment
		result.TotalPaid = principal
		return result
	}

	switch in.System {
	case domain.PRICE:
		installment := priceInstallment(principal, r, months)
		result.FirstInstallment = installment
		result.LastInstallment = installment
		result.TotalPaid = installment.Mul(n)
	case domain.SAC:
		amort := principal.Div(n)
		result.FirstInstallment = amort.Add(principal.Mul(r))
		result.LastInstallment = amort.Add(amort.Mul(r))
		seriesInterest := r.Mul(principal).Mul(n.Add(one)).Div(two)
		result.TotalPaid = n.Mul(amort).Add(seriesInterest)
	default:
		panic(fmt.Sprintf("calculation: unknown amortization system %q", in.System))
	}

	result.TotalInterest = result.TotalPaid.Sub(principal)
	return result
}

// Schedule returns the month-by-month installments of a loan. The final
// month absorbs rounding residue so the closing balance is exactly zero.
func Schedule(in domain.LoanInput) []domain.Installment {
	principal := in.Principal
	if !principal.IsPositive() {
		return nil
	}
	months := in.Months
	if months < 1 {
		months = 1
	}
	n := decimal.NewFromInt(int64(months))
	r := decimal.Max(decimal.Zero, MonthlyRate(in.AnnualRatePct))

	var pricePayment decimal.Decimal
	if in.System == domain.PRICE {
		if r.IsPositive() {
			pricePayment = priceInstallment(principal, r, months)
		} else {
			pricePayment = principal.Div(n)
		}
	}
	sacAmort := principal.Div(n)

	schedule := make([]domain.Installment, 0, months)
	balance := principal
	for k := 1; k <= months; k++ {
		interest := balance.Mul(r)
		var amort decimal.Decimal
		switch in.System {
		case domain.PRICE:
			amort = pricePayment.Sub(interest)
		case domain.SAC:
			amort = sacAmort
		default:
			panic(fmt.Sprintf("calculation: unknown amortization system %q", in.System))
		}
		if k == months || amort.GreaterThan(balance) {
			amort = balance
		}
		balance = balance.Sub(amort)
		schedule = append(schedule, domain.Installment{
			Number:       k,
			Payment:      amort.Add(interest),
			Interest:     interest,
			Amortization: amort,
			Balance:      balance,
		})
	}
	return schedule
}

func priceInstallment(principal, r decimal.Decimal, months int) decimal.Decimal {
	growth := powInt(one.Add(r), months)
	factor := one.Sub(one.Div(growth))
	return principal.Mul(r).Div(factor)
}

// powInt raises base to a non-negative integer power by squaring, rounding
// intermediate products so digit counts stay bounded.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		base = base.Mul(base).Round(powPrecision)
		exp >>= 1
	}
	return result
}
