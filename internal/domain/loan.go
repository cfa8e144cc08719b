package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmortizationSystem is the loan repayment system.
type AmortizationSystem string

const (
	// PRICE is the French system: constant installments.
	PRICE AmortizationSystem = "price"
	// SAC is the constant-amortization system: declining installments.
	SAC AmortizationSystem = "sac"
)

// AmortizationSystems lists every supported system.
var AmortizationSystems = []AmortizationSystem{PRICE, SAC}

// Valid reports whether s is a known system.
func (s AmortizationSystem) Valid() bool {
	switch s {
	case PRICE, SAC:
		return true
	}
	return false
}

// Label returns the display name.
func (s AmortizationSystem) Label() string {
	return strings.ToUpper(string(s))
}

// ParseAmortizationSystem parses a case-insensitive system name.
func ParseAmortizationSystem(v string) (AmortizationSystem, error) {
	s := AmortizationSystem(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", NewValidationError("system", "unknown amortization system %q (want price or sac)", v)
	}
	return s, nil
}

// LoanInput describes a loan to amortize.
type LoanInput struct {
	Principal     decimal.Decimal    `json:"principal" yaml:"principal"`
	Months        int                `json:"months" yaml:"months"`
	AnnualRatePct decimal.Decimal    `json:"annual_rate_pct" yaml:"annual_rate_pct"`
	System        AmortizationSystem `json:"system" yaml:"system"`
}

// LoanResult summarizes an amortization schedule.
type LoanResult struct {
	System           AmortizationSystem `json:"system" yaml:"system"`
	FirstInstallment decimal.Decimal    `json:"first_installment" yaml:"first_installment"`
	LastInstallment  decimal.Decimal    `json:"last_installment" yaml:"last_installment"`
	TotalPaid        decimal.Decimal    `json:"total_paid" yaml:"total_paid"`
	TotalInterest    decimal.Decimal    `json:"total_interest" yaml:"total_interest"`
}

// Installment is one month of a full amortization schedule.
type Installment struct {
	Number       int             `json:"number" yaml:"number"`
	Payment      decimal.Decimal `json:"payment" yaml:"payment"`
	Interest     decimal.Decimal `json:"interest" yaml:"interest"`
	Amortization decimal.Decimal `json:"amortization" yaml:"amortization"`
	Balance      decimal.Decimal `json:"balance" yaml:"balance"`
}
