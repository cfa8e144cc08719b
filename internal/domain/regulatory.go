package domain

import (
	"github.com/shopspring/decimal"
)

// TaxYearConfig contains every legal table and rate the calculators need for
// one fiscal year. It is loaded from a tax-year YAML file or built from the
// compiled-in defaults, and threaded through each estimator call so tables
// can be swapped per year without code changes.
type TaxYearConfig struct {
	Metadata       TaxYearMetadata     `yaml:"metadata" json:"metadata"`
	INSS           INSSRules           `yaml:"inss" json:"inss"`
	IRRF           IRRFRules           `yaml:"irrf" json:"irrf"`
	FGTS           FGTSRules           `yaml:"fgts" json:"fgts"`
	MEI            MEIRules            `yaml:"mei" json:"mei"`
	Simples        SimplesRules        `yaml:"simples" json:"simples"`
	LucroPresumido LucroPresumidoRules `yaml:"lucro_presumido" json:"lucro_presumido"`
}

// TaxYearMetadata contains information about the table set
type TaxYearMetadata struct {
	Year        int    `yaml:"year" json:"year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// INSSRules contains the employee contribution bands. The last band is
// unbounded with a zero rate, which models the contribution ceiling.
type INSSRules struct {
	Bands []BracketRow `yaml:"bands" json:"bands"`
}

// IRRFRules contains the monthly withholding table
type IRRFRules struct {
	Bands              []BracketRow    `yaml:"bands" json:"bands"`
	DependentDeduction decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
}

// FGTSRules contains the employer deposit rate and the anniversary-withdrawal tiers
type FGTSRules struct {
	DepositRate     decimal.Decimal `yaml:"deposit_rate" json:"deposit_rate"`
	WithdrawalTiers []FgtsTierRow   `yaml:"withdrawal_tiers" json:"withdrawal_tiers"`
}

// ActivityRates holds one rate per activity category.
type ActivityRates struct {
	Comercio decimal.Decimal `yaml:"comercio" json:"comercio"`
	Servico  decimal.Decimal `yaml:"servico" json:"servico"`
	Misto    decimal.Decimal `yaml:"misto" json:"misto"`
}

// For returns the rate for a. Unknown activities get the mixed rate.
func (r ActivityRates) For(a Activity) decimal.Decimal {
	switch a {
	case ActivityComercio:
		return r.Comercio
	case ActivityServico:
		return r.Servico
	default:
		return r.Misto
	}
}

// MEIRules contains micro-entrepreneur rules
type MEIRules struct {
	AnnualLimit decimal.Decimal `yaml:"annual_limit" json:"annual_limit"`
	Aliquots    ActivityRates   `yaml:"aliquots" json:"aliquots"`
	MinimumWage decimal.Decimal `yaml:"minimum_wage" json:"minimum_wage"`
	INSSRate    decimal.Decimal `yaml:"inss_rate" json:"inss_rate"`
	FixedAddOn  ActivityRates   `yaml:"fixed_add_on" json:"fixed_add_on"`
}

// SimplesRules contains Simples Nacional annex tables keyed on RBT12
type SimplesRules struct {
	AnnualLimit decimal.Decimal `yaml:"annual_limit" json:"annual_limit"`
	Comercio    []BracketRow    `yaml:"comercio" json:"comercio"`
	Servicos    []BracketRow    `yaml:"servicos" json:"servicos"`
}

// LucroPresumidoRules contains presumed-profit rates
type LucroPresumidoRules struct {
	Presumption        ActivityRates   `yaml:"presumption" json:"presumption"`
	IRPJRate           decimal.Decimal `yaml:"irpj_rate" json:"irpj_rate"`
	CSLLRate           decimal.Decimal `yaml:"csll_rate" json:"csll_rate"`
	PISCOFINSRate      decimal.Decimal `yaml:"pis_cofins_rate" json:"pis_cofins_rate"`
	PayrollChargesRate decimal.Decimal `yaml:"payroll_charges_rate" json:"payroll_charges_rate"`
}

// DefaultTaxYear2024 returns the tables in force for 2024.
func DefaultTaxYear2024() TaxYearConfig {
	return TaxYearConfig{
		Metadata: TaxYearMetadata{
			Year:        2024,
			LastUpdated: "2026-02-16",
			Description: "Tabelas federais 2024 (INSS, IRRF, FGTS, MEI, Simples Nacional, Lucro Presumido)",
		},
		INSS: INSSRules{
			Bands: []BracketRow{
				{Max: Bound(1412.00), Rate: decimal.NewFromFloat(0.075)},
				{Max: Bound(2666.68), Rate: decimal.NewFromFloat(0.09)},
				{Max: Bound(4000.03), Rate: decimal.NewFromFloat(0.12)},
				{Max: Bound(7786.02), Rate: decimal.NewFromFloat(0.14)},
				{Rate: decimal.Zero},
			},
		},
		IRRF: IRRFRules{
			Bands: []BracketRow{
				{Max: Bound(2259.20), Rate: decimal.Zero, Deduction: decimal.Zero},
				{Max: Bound(2826.65), Rate: decimal.NewFromFloat(0.075), Deduction: decimal.NewFromFloat(169.44)},
				{Max: Bound(3751.05), Rate: decimal.NewFromFloat(0.15), Deduction: decimal.NewFromFloat(381.44)},
				{Max: Bound(4664.68), Rate: decimal.NewFromFloat(0.225), Deduction: decimal.NewFromFloat(662.77)},
				{Rate: decimal.NewFromFloat(0.275), Deduction: decimal.NewFromFloat(896.00)},
			},
			DependentDeduction: decimal.NewFromFloat(189.59),
		},
		FGTS: FGTSRules{
			DepositRate: decimal.NewFromFloat(0.08),
			WithdrawalTiers: []FgtsTierRow{
				{MaxBalance: Bound(500), Aliquot: decimal.NewFromFloat(0.5), ExtraFlat: decimal.Zero},
				{MaxBalance: Bound(1000), Aliquot: decimal.NewFromFloat(0.4), ExtraFlat: decimal.NewFromInt(50)},
				{MaxBalance: Bound(5000), Aliquot: decimal.NewFromFloat(0.3), ExtraFlat: decimal.NewFromInt(150)},
				{MaxBalance: Bound(10000), Aliquot: decimal.NewFromFloat(0.2), ExtraFlat: decimal.NewFromInt(650)},
				{MaxBalance: Bound(15000), Aliquot: decimal.NewFromFloat(0.15), ExtraFlat: decimal.NewFromInt(1150)},
				{MaxBalance: Bound(20000), Aliquot: decimal.NewFromFloat(0.1), ExtraFlat: decimal.NewFromInt(1900)},
				{Aliquot: decimal.NewFromFloat(0.05), ExtraFlat: decimal.NewFromInt(2900)},
			},
		},
		MEI: MEIRules{
			AnnualLimit: decimal.NewFromInt(81000),
			Aliquots: ActivityRates{
				Comercio: decimal.NewFromFloat(0.04),
				Servico:  decimal.NewFromFloat(0.06),
				Misto:    decimal.NewFromFloat(0.055),
			},
			MinimumWage: decimal.NewFromInt(1412),
			INSSRate:    decimal.NewFromFloat(0.05),
			FixedAddOn: ActivityRates{
				Comercio: decimal.NewFromInt(1),
				Servico:  decimal.NewFromInt(5),
				Misto:    decimal.NewFromInt(6),
			},
		},
		Simples: SimplesRules{
			AnnualLimit: decimal.NewFromInt(4800000),
			Comercio: []BracketRow{
				{Max: Bound(180000), Rate: decimal.NewFromFloat(0.04), Deduction: decimal.Zero},
				{Max: Bound(360000), Rate: decimal.NewFromFloat(0.073), Deduction: decimal.NewFromInt(5940)},
				{Max: Bound(720000), Rate: decimal.NewFromFloat(0.095), Deduction: decimal.NewFromInt(13860)},
				{Max: Bound(1800000), Rate: decimal.NewFromFloat(0.107), Deduction: decimal.NewFromInt(22500)},
				{Max: Bound(3600000), Rate: decimal.NewFromFloat(0.143), Deduction: decimal.NewFromInt(87300)},
				{Rate: decimal.NewFromFloat(0.19), Deduction: decimal.NewFromInt(378000)},
			},
			Servicos: []BracketRow{
				{Max: Bound(180000), Rate: decimal.NewFromFloat(0.155), Deduction: decimal.Zero},
				{Max: Bound(360000), Rate: decimal.NewFromFloat(0.18), Deduction: decimal.NewFromInt(4500)},
				{Max: Bound(720000), Rate: decimal.NewFromFloat(0.195), Deduction: decimal.NewFromInt(9900)},
				{Max: Bound(1800000), Rate: decimal.NewFromFloat(0.205), Deduction: decimal.NewFromInt(17100)},
				{Max: Bound(3600000), Rate: decimal.NewFromFloat(0.23), Deduction: decimal.NewFromInt(62100)},
				{Rate: decimal.NewFromFloat(0.305), Deduction: decimal.NewFromInt(540000)},
			},
		},
		LucroPresumido: LucroPresumidoRules{
			Presumption: ActivityRates{
				Comercio: decimal.NewFromFloat(0.08),
				Servico:  decimal.NewFromFloat(0.32),
				Misto:    decimal.NewFromFloat(0.08),
			},
			IRPJRate:           decimal.NewFromFloat(0.15),
			CSLLRate:           decimal.NewFromFloat(0.09),
			PISCOFINSRate:      decimal.NewFromFloat(0.0365),
			PayrollChargesRate: decimal.NewFromFloat(0.28),
		},
	}
}

// Clone returns a deep copy of c. Bracket bounds are copied too, so the
// clone shares no memory with c.
func (c TaxYearConfig) Clone() TaxYearConfig {
	c.INSS.Bands = CloneRows(c.INSS.Bands)
	c.IRRF.Bands = CloneRows(c.IRRF.Bands)
	c.Simples.Comercio = CloneRows(c.Simples.Comercio)
	c.Simples.Servicos = CloneRows(c.Simples.Servicos)
	if c.FGTS.WithdrawalTiers != nil {
		tiers := make([]FgtsTierRow, len(c.FGTS.WithdrawalTiers))
		for i, tier := range c.FGTS.WithdrawalTiers {
			tier.MaxBalance = cloneBound(tier.MaxBalance)
			tiers[i] = tier
		}
		c.FGTS.WithdrawalTiers = tiers
	}
	return c
}

// CloneRows returns a deep copy of rows.
func CloneRows(rows []BracketRow) []BracketRow {
	if rows == nil {
		return nil
	}
	out := make([]BracketRow, len(rows))
	for i, row := range rows {
		row.Max = cloneBound(row.Max)
		out[i] = row
	}
	return out
}

func cloneBound(b *decimal.Decimal) *decimal.Decimal {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
