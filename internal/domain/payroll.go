package domain

import "github.com/shopspring/decimal"

// PayrollInput is a CLT employee's monthly gross pay.
type PayrollInput struct {
	GrossMonthly decimal.Decimal `json:"gross_monthly" yaml:"gross_monthly"`
	Dependents   int             `json:"dependents" yaml:"dependents"`
}

// PayrollResult is the monthly withholding breakdown.
type PayrollResult struct {
	Gross                  decimal.Decimal `json:"gross" yaml:"gross"`
	INSS                   decimal.Decimal `json:"inss" yaml:"inss"`
	IRRF                   decimal.Decimal `json:"irrf" yaml:"irrf"`
	FGTSDeposit            decimal.Decimal `json:"fgts_deposit" yaml:"fgts_deposit"`
	Net                    decimal.Decimal `json:"net" yaml:"net"`
	TaxableIncomeAfterINSS decimal.Decimal `json:"taxable_income_after_inss" yaml:"taxable_income_after_inss"`
}

// ThirteenthSalary is the 13th salary and its two installments.
type ThirteenthSalary struct {
	Total             decimal.Decimal `json:"total" yaml:"total"`
	FirstInstallment  decimal.Decimal `json:"first_installment" yaml:"first_installment"`
	SecondInstallment decimal.Decimal `json:"second_installment" yaml:"second_installment"`
}

// CreditScoreBand classifies a 0-1000 credit score.
type CreditScoreBand string

const (
	ScoreExcellent CreditScoreBand = "Excelente"
	ScoreGood      CreditScoreBand = "Bom"
	ScoreRegular   CreditScoreBand = "Regular"
	ScoreLow       CreditScoreBand = "Baixo"
)

// CreditScore is a normalized score and its band.
type CreditScore struct {
	Score int             `json:"score" yaml:"score"`
	Band  CreditScoreBand `json:"band" yaml:"band"`
}
