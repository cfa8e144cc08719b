package calculation

import (
	"fmt"

	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxScheduleMonths bounds the month-by-month schedule (100 years).
const MaxScheduleMonths = 1200

// CalculationEngine binds the calculators to one tax year. Its tables are
// private copies validated at construction; the engine is safe for
// concurrent use.
type CalculationEngine struct {
	taxYear domain.TaxYearConfig
	tables  taxTables
	Logger  Logger
	Debug   bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine with the compiled-in 2024 tables
func NewCalculationEngine() *CalculationEngine {
	ce, err := NewCalculationEngineWithConfig(domain.DefaultTaxYear2024())
	if err != nil {
		panic(fmt.Sprintf("calculation: built-in tax year is invalid: %v", err))
	}
	return ce
}

// NewCalculationEngineWithConfig creates an engine for a loaded tax year,
// validating every table first. The engine keeps its own copy of cfg.
func NewCalculationEngineWithConfig(cfg domain.TaxYearConfig) (*CalculationEngine, error) {
	cfg = cfg.Clone()
	tables, err := newTaxTables(cfg)
	if err == nil {
		err = validateScalars(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid tax year %d: %w", cfg.Metadata.Year, err)
	}
	return &CalculationEngine{
		taxYear: cfg,
		tables:  tables,
		Logger:  NopLogger{},
	}, nil
}

// TaxYear returns a copy of the tables the engine calculates with.
func (ce *CalculationEngine) TaxYear() domain.TaxYearConfig {
	return ce.taxYear.Clone()
}

// SetLogger sets the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) debugf(format string, args ...any) {
	if ce.Debug && ce.Logger != nil {
		ce.Logger.Debugf(format, args...)
	}
}

// ValidateTaxYear checks every bracket table and the scalar rates of cfg.
func ValidateTaxYear(cfg domain.TaxYearConfig) error {
	if _, err := newTaxTables(cfg); err != nil {
		return err
	}
	return validateScalars(cfg)
}

func validateScalars(cfg domain.TaxYearConfig) error {
	scalars := []struct {
		name  string
		value decimal.Decimal
	}{
		{"irrf.dependent_deduction", cfg.IRRF.DependentDeduction},
		{"fgts.deposit_rate", cfg.FGTS.DepositRate},
		{"mei.annual_limit", cfg.MEI.AnnualLimit},
		{"mei.minimum_wage", cfg.MEI.MinimumWage},
		{"mei.inss_rate", cfg.MEI.INSSRate},
		{"simples.annual_limit", cfg.Simples.AnnualLimit},
		{"lucro_presumido.irpj_rate", cfg.LucroPresumido.IRPJRate},
		{"lucro_presumido.csll_rate", cfg.LucroPresumido.CSLLRate},
		{"lucro_presumido.pis_cofins_rate", cfg.LucroPresumido.PISCOFINSRate},
		{"lucro_presumido.payroll_charges_rate", cfg.LucroPresumido.PayrollChargesRate},
	}
	for _, s := range scalars {
		if s.value.IsNegative() {
			return domain.NewValidationError(s.name, "must not be negative, got %s", s.value)
		}
	}
	return nil
}

// Amortize validates the system and summarizes the loan.
func (ce *CalculationEngine) Amortize(in domain.LoanInput) (domain.LoanResult, error) {
	if !in.System.Valid() {
		return domain.LoanResult{}, domain.NewValidationError("system", "unknown amortization system %q", in.System)
	}
	result := Amortize(in)
	ce.debugf("amortize %s principal=%s months=%d rate=%s%% first=%s total=%s",
		in.System, in.Principal, in.Months, in.AnnualRatePct, result.FirstInstallment.StringFixed(2), result.TotalPaid.StringFixed(2))
	return result, nil
}

// Schedule validates the system and the term and returns the month-by-month
// table.
func (ce *CalculationEngine) Schedule(in domain.LoanInput) ([]domain.Installment, error) {
	if !in.System.Valid() {
		return nil, domain.NewValidationError("system", "unknown amortization system %q", in.System)
	}
	if in.Months > MaxScheduleMonths {
		return nil, domain.NewValidationError("months", "schedule is limited to %d months, got %d", MaxScheduleMonths, in.Months)
	}
	return Schedule(in), nil
}

// Payroll computes INSS, IRRF, FGTS deposit and net pay.
func (ce *CalculationEngine) Payroll(in domain.PayrollInput) domain.PayrollResult {
	result := calculatePayroll(ce.taxYear, ce.tables, in)
	ce.debugf("payroll gross=%s deps=%d inss=%s irrf=%s net=%s",
		result.Gross, in.Dependents, result.INSS.StringFixed(2), result.IRRF.StringFixed(2), result.Net.StringFixed(2))
	return result
}

// EstimateRegime validates the regime and estimates its monthly tax. An empty
// activity defaults to services.
func (ce *CalculationEngine) EstimateRegime(in domain.RegimeInput) (domain.RegimeResult, error) {
	if !in.Regime.Valid() {
		return domain.RegimeResult{}, domain.NewValidationError("regime", "unknown regime %q", in.Regime)
	}
	if in.Activity == "" {
		in.Activity = domain.ActivityServico
	}
	if !in.Activity.Valid() {
		return domain.RegimeResult{}, domain.NewValidationError("activity", "unknown activity %q", in.Activity)
	}
	result := estimateRegimeTax(ce.taxYear, ce.tables, in)
	ce.debugf("regime %s revenue=%s tax=%s effective=%s%%",
		in.Regime, in.MonthlyRevenue, result.MonthlyTaxEstimate.StringFixed(2), result.EffectiveRatePct.StringFixed(2))
	return result, nil
}

// MEIFixedDAS returns the fixed monthly DAS guide for activity.
func (ce *CalculationEngine) MEIFixedDAS(activity domain.Activity) (decimal.Decimal, error) {
	if activity == "" {
		activity = domain.ActivityServico
	}
	if !activity.Valid() {
		return decimal.Zero, domain.NewValidationError("activity", "unknown activity %q", activity)
	}
	return EstimateMEIFixedDAS(ce.taxYear, activity), nil
}

// FGTSWithdrawal estimates the anniversary withdrawal for balance.
func (ce *CalculationEngine) FGTSWithdrawal(balance decimal.Decimal) decimal.Decimal {
	amount := ce.tables.fgts.Apply(balance, domain.SingleLookup)
	ce.debugf("fgts balance=%s withdrawal=%s", balance, amount.StringFixed(2))
	return amount
}
