package calculation

import (
	"testing"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationEngine_SetLogger(t *testing.T) {
	ce := NewCalculationEngine()
	assert.IsType(t, NopLogger{}, ce.Logger)

	logger := &TestLogger{}
	ce.SetLogger(logger)
	assert.Equal(t, logger, ce.Logger)

	ce.SetLogger(nil)
	assert.IsType(t, NopLogger{}, ce.Logger)
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	ce := NewCalculationEngine()
	logger := &TestLogger{}
	ce.SetLogger(logger)

	ce.Payroll(domain.PayrollInput{GrossMonthly: dec("5000")})
	assert.Empty(t, logger.Lines, "no debug output unless Debug is set")

	ce.Debug = true
	ce.Payroll(domain.PayrollInput{GrossMonthly: dec("5000")})
	assert.Equal(t, []string{"DEBUG"}, logger.Lines)
}

func TestNewCalculationEngineWithConfig(t *testing.T) {
	cfg := domain.DefaultTaxYear2024()
	ce, err := NewCalculationEngineWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2024, ce.TaxYear().Metadata.Year)

	broken := domain.DefaultTaxYear2024()
	broken.IRRF.Bands = broken.IRRF.Bands[:2]
	_, err = NewCalculationEngineWithConfig(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "irrf.bands")
	assert.True(t, domain.IsValidation(err))

	negative := domain.DefaultTaxYear2024()
	negative.FGTS.DepositRate = dec("-0.08")
	_, err = NewCalculationEngineWithConfig(negative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fgts.deposit_rate")
}

func TestCalculationEngine_Validation(t *testing.T) {
	ce := NewCalculationEngine()

	_, err := ce.Amortize(domain.LoanInput{Principal: dec("1000"), Months: 10, System: "german"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = ce.Schedule(domain.LoanInput{Principal: dec("1000"), Months: 10, System: ""})
	assert.True(t, domain.IsValidation(err))

	_, err = ce.EstimateRegime(domain.RegimeInput{Regime: "lucro-real", MonthlyRevenue: dec("1000")})
	assert.True(t, domain.IsValidation(err))

	_, err = ce.EstimateRegime(domain.RegimeInput{Regime: domain.RegimeMEI, Activity: "industria"})
	assert.True(t, domain.IsValidation(err))

	_, err = ce.MEIFixedDAS("industria")
	assert.True(t, domain.IsValidation(err))
}

func TestCalculationEngine_Defaults(t *testing.T) {
	ce := NewCalculationEngine()

	result, err := ce.EstimateRegime(domain.RegimeInput{Regime: domain.RegimeMEI, MonthlyRevenue: dec("6000")})
	require.NoError(t, err)
	assertDecimalEqual(t, "360", result.MonthlyTaxEstimate, "empty activity defaults to services")

	das, err := ce.MEIFixedDAS("")
	require.NoError(t, err)
	assertDecimalEqual(t, "75.6", das)

	loan, err := ce.Amortize(domain.LoanInput{Principal: dec("350000"), Months: 360, AnnualRatePct: dec("11.5"), System: domain.PRICE})
	require.NoError(t, err)
	assertDecimalNear(t, "3466.02", loan.FirstInstallment, "0.01")

	assertDecimalEqual(t, "2950", ce.FGTSWithdrawal(dec("12000")))
}

func TestCalculationEngine_TaxYearIsCopied(t *testing.T) {
	cfg := domain.DefaultTaxYear2024()
	ce, err := NewCalculationEngineWithConfig(cfg)
	require.NoError(t, err)

	// Changing the caller's config after construction has no effect
	cfg.INSS.Bands[0].Rate = dec("0.5")
	*cfg.INSS.Bands[0].Max = dec("100000")
	assertDecimalEqual(t, "728.819", ce.Payroll(domain.PayrollInput{GrossMonthly: dec("6500")}).INSS)

	// Neither does changing the returned copy
	view := ce.TaxYear()
	view.IRRF.Bands[4].Rate = dec("0.9")
	*view.FGTS.WithdrawalTiers[0].MaxBalance = dec("1")
	view.Simples.Comercio[0].Rate = dec("0.9")
	assertDecimalEqual(t, "691.074775", ce.Payroll(domain.PayrollInput{GrossMonthly: dec("6500")}).IRRF)
	assertDecimalEqual(t, "250", ce.FGTSWithdrawal(dec("500")))
	assert.Equal(t, domain.DefaultTaxYear2024().Simples.Comercio[0].Rate.String(), ce.TaxYear().Simples.Comercio[0].Rate.String())
}

func TestCalculationEngine_ScheduleLimit(t *testing.T) {
	ce := NewCalculationEngine()

	schedule, err := ce.Schedule(domain.LoanInput{Principal: dec("100000"), Months: MaxScheduleMonths, AnnualRatePct: dec("12"), System: domain.SAC})
	require.NoError(t, err)
	assert.Len(t, schedule, MaxScheduleMonths)

	_, err = ce.Schedule(domain.LoanInput{Principal: dec("100000"), Months: MaxScheduleMonths + 1, AnnualRatePct: dec("12"), System: domain.SAC})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "months")
}
