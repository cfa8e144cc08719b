package calculation

import (
	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// PAYROLL ASSUMPTIONS:
//
// 1. INSS is marginal over the employee bands, capped at the ceiling.
// 2. IRRF base = gross - INSS - dependents x per-dependent deduction, floored
//    at zero; tax is a single lookup with the band's deduction.
// 3. FGTS is an employer deposit and is not subtracted from net pay.

// IRRFBase returns the taxable base after INSS and dependent deductions.
func IRRFBase(cfg domain.TaxYearConfig, gross, inss decimal.Decimal, dependents int) decimal.Decimal {
	if dependents < 0 {
		dependents = 0
	}
	depDeduction := cfg.IRRF.DependentDeduction.Mul(decimal.NewFromInt(int64(dependents)))
	return decimal.Max(decimal.Zero, gross.Sub(inss).Sub(depDeduction))
}

// CalculatePayroll computes the monthly withholding breakdown.
func CalculatePayroll(cfg domain.TaxYearConfig, in domain.PayrollInput) domain.PayrollResult {
	return calculatePayroll(cfg, tablesOf(cfg), in)
}

func calculatePayroll(cfg domain.TaxYearConfig, t taxTables, in domain.PayrollInput) domain.PayrollResult {
	gross := nonNegative(in.GrossMonthly)
	inss := t.inss.Apply(gross, domain.Marginal)
	base := IRRFBase(cfg, gross, inss, in.Dependents)
	irrf := t.irrf.Apply(base, domain.SingleLookup)

	return domain.PayrollResult{
		Gross:                  gross,
		INSS:                   inss,
		IRRF:                   irrf,
		FGTSDeposit:            gross.Mul(cfg.FGTS.DepositRate),
		Net:                    gross.Sub(inss).Sub(irrf),
		TaxableIncomeAfterINSS: base,
	}
}

// EstimateFGTSWithdrawal returns the anniversary-withdrawal amount for an
// FGTS balance. A balance equal to a tier's ceiling uses that tier.
func EstimateFGTSWithdrawal(cfg domain.TaxYearConfig, balance decimal.Decimal) decimal.Decimal {
	return tablesOf(cfg).fgts.Apply(balance, domain.SingleLookup)
}
