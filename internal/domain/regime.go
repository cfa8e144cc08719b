package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Regime is a company tax regime. The set is closed; every switch over it
// must handle all four values.
type Regime string

const (
	RegimeMEI             Regime = "mei"
	RegimeSimplesComercio Regime = "simples-comercio"
	RegimeSimplesServicos Regime = "simples-servicos"
	RegimeLucroPresumido  Regime = "lucro-presumido"
)

// Regimes lists every regime in display order.
var Regimes = []Regime{RegimeMEI, RegimeSimplesComercio, RegimeSimplesServicos, RegimeLucroPresumido}

// Valid reports whether r is a known regime.
func (r Regime) Valid() bool {
	switch r {
	case RegimeMEI, RegimeSimplesComercio, RegimeSimplesServicos, RegimeLucroPresumido:
		return true
	}
	return false
}

// Label returns the display name.
func (r Regime) Label() string {
	switch r {
	case RegimeMEI:
		return "MEI"
	case RegimeSimplesComercio:
		return "Simples Nacional (Comércio)"
	case RegimeSimplesServicos:
		return "Simples Nacional (Serviços)"
	case RegimeLucroPresumido:
		return "Lucro Presumido"
	default:
		return string(r)
	}
}

// ParseRegime parses a regime identifier such as "simples-comercio".
func ParseRegime(v string) (Regime, error) {
	r := Regime(strings.ToLower(strings.TrimSpace(v)))
	if !r.Valid() {
		return "", NewValidationError("regime", "unknown regime %q", v)
	}
	return r, nil
}

// Activity is the business activity category used for MEI aliquots and the
// Lucro Presumido presumption percentage.
type Activity string

const (
	ActivityComercio Activity = "comercio"
	ActivityServico  Activity = "servico"
	ActivityMisto    Activity = "misto"
)

// Valid reports whether a is a known activity.
func (a Activity) Valid() bool {
	switch a {
	case ActivityComercio, ActivityServico, ActivityMisto:
		return true
	}
	return false
}

// ParseActivity parses an activity identifier.
func ParseActivity(v string) (Activity, error) {
	a := Activity(strings.ToLower(strings.TrimSpace(v)))
	if !a.Valid() {
		return "", NewValidationError("activity", "unknown activity %q (want comercio, servico or misto)", v)
	}
	return a, nil
}

// RegimeInput is the input of a regime estimate. Payroll is only used by
// Lucro Presumido; Activity by MEI and Lucro Presumido.
type RegimeInput struct {
	Regime         Regime          `json:"regime" yaml:"regime"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue" yaml:"monthly_revenue"`
	Payroll        decimal.Decimal `json:"payroll" yaml:"payroll"`
	Activity       Activity        `json:"activity" yaml:"activity"`
}

// PresumidoBreakdown itemizes a Lucro Presumido monthly estimate.
type PresumidoBreakdown struct {
	PresumedBase   decimal.Decimal `json:"presumed_base" yaml:"presumed_base"`
	IRPJ           decimal.Decimal `json:"irpj" yaml:"irpj"`
	CSLL           decimal.Decimal `json:"csll" yaml:"csll"`
	PISCOFINS      decimal.Decimal `json:"pis_cofins" yaml:"pis_cofins"`
	PayrollCharges decimal.Decimal `json:"payroll_charges" yaml:"payroll_charges"`
}

// RegimeResult is the estimate for one regime. AnnualLimit is nil when the
// regime has no revenue ceiling.
type RegimeResult struct {
	Regime                  Regime              `json:"regime" yaml:"regime"`
	EffectiveRatePct        decimal.Decimal     `json:"effective_rate_pct" yaml:"effective_rate_pct"`
	MonthlyTaxEstimate      decimal.Decimal     `json:"monthly_tax_estimate" yaml:"monthly_tax_estimate"`
	AnnualRevenueProjection decimal.Decimal     `json:"annual_revenue_projection" yaml:"annual_revenue_projection"`
	AnnualLimit             *decimal.Decimal    `json:"annual_limit" yaml:"annual_limit"`
	LimitExceeded           bool                `json:"limit_exceeded" yaml:"limit_exceeded"`
	Breakdown               *PresumidoBreakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}
