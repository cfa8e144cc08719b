package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/finbr/brcalc/internal/compliance"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is a titled list of labelled values with an optional table. Data
// holds the underlying result for the structured (JSON/YAML) formats.
type Report struct {
	Title string
	Lines []Line
	Table *Table
	Notes []string
	Data  any
}

// Line is one labelled value of a report.
type Line struct {
	Label string
	Value string
}

// Table is a header plus rows of cells.
type Table struct {
	Header []string
	Rows   [][]string
}

func (r *Report) add(label, value string) {
	r.Lines = append(r.Lines, Line{Label: label, Value: value})
}

// LoanReport summarizes a loan and, when schedule is non-empty, lists it.
func LoanReport(in domain.LoanInput, result domain.LoanResult, schedule []domain.Installment) *Report {
	r := &Report{Title: "Financiamento " + in.System.Label(), Data: result}
	r.add("Principal", FormatCurrency(in.Principal))
	r.add("Prazo (meses)", strconv.Itoa(in.Months))
	r.add("Taxa anual", FormatPercentage(in.AnnualRatePct))
	r.add("Primeira parcela", FormatCurrency(result.FirstInstallment))
	r.add("Última parcela", FormatCurrency(result.LastInstallment))
	r.add("Total pago", FormatCurrency(result.TotalPaid))
	r.add("Juros totais", FormatCurrency(result.TotalInterest))
	if in.System == domain.SAC {
		r.Notes = append(r.Notes, "Totais do SAC usam a aproximação por série aritmética; o cronograma mostra os valores mês a mês.")
	}

	if len(schedule) > 0 {
		r.Data = struct {
			Summary  domain.LoanResult    `json:"summary" yaml:"summary"`
			Schedule []domain.Installment `json:"schedule" yaml:"schedule"`
		}{result, schedule}
		r.Table = &Table{Header: []string{"Parcela", "Prestação", "Juros", "Amortização", "Saldo"}}
		for _, inst := range schedule {
			r.Table.Rows = append(r.Table.Rows, []string{
				strconv.Itoa(inst.Number),
				inst.Payment.StringFixed(2),
				inst.Interest.StringFixed(2),
				inst.Amortization.StringFixed(2),
				inst.Balance.StringFixed(2),
			})
		}
	}
	return r
}

// PayrollReport shows the monthly withholding breakdown.
func PayrollReport(in domain.PayrollInput, result domain.PayrollResult) *Report {
	r := &Report{Title: "Folha de pagamento (CLT)", Data: result}
	r.add("Salário bruto", FormatCurrency(result.Gross))
	r.add("Dependentes", strconv.Itoa(in.Dependents))
	r.add("INSS", FormatCurrency(result.INSS))
	r.add("Base IRRF", FormatCurrency(result.TaxableIncomeAfterINSS))
	r.add("IRRF", FormatCurrency(result.IRRF))
	r.add("Salário líquido", FormatCurrency(result.Net))
	r.add("FGTS (depósito do empregador)", FormatCurrency(result.FGTSDeposit))
	return r
}

// RegimeReport shows one regime estimate.
func RegimeReport(result domain.RegimeResult) *Report {
	r := &Report{Title: "Estimativa " + result.Regime.Label(), Data: result}
	r.add("Imposto mensal estimado", FormatCurrency(result.MonthlyTaxEstimate))
	r.add("Alíquota efetiva", FormatPercentage(result.EffectiveRatePct))
	r.add("Receita anual projetada", FormatCurrency(result.AnnualRevenueProjection))
	if result.AnnualLimit != nil {
		r.add("Limite anual", FormatCurrency(*result.AnnualLimit))
		r.add("Limite excedido", yesNo(result.LimitExceeded))
	} else {
		r.add("Limite anual", "sem limite")
	}
	if b := result.Breakdown; b != nil {
		r.add("Base presumida", FormatCurrency(b.PresumedBase))
		r.add("IRPJ", FormatCurrency(b.IRPJ))
		r.add("CSLL", FormatCurrency(b.CSLL))
		r.add("PIS/COFINS", FormatCurrency(b.PISCOFINS))
		r.add("Encargos sobre folha", FormatCurrency(b.PayrollCharges))
	}
	if result.LimitExceeded {
		r.Notes = append(r.Notes, "A receita anual projetada excede o limite do regime.")
	}
	return r
}

// AmountReport shows a single computed amount with its inputs.
func AmountReport(title string, inputs []Line, label string, amount decimal.Decimal) *Report {
	r := &Report{Title: title, Lines: append([]Line(nil), inputs...)}
	r.add(label, FormatCurrency(amount))
	r.Data = map[string]decimal.Decimal{"amount": amount}
	return r
}

// ThirteenthReport shows the 13th salary split.
func ThirteenthReport(result domain.ThirteenthSalary) *Report {
	r := &Report{Title: "13º salário", Data: result}
	r.add("Total", FormatCurrency(result.Total))
	r.add("1ª parcela", FormatCurrency(result.FirstInstallment))
	r.add("2ª parcela", FormatCurrency(result.SecondInstallment))
	return r
}

// CreditScoreReport shows a classified score.
func CreditScoreReport(score domain.CreditScore) *Report {
	r := &Report{Title: "Score de crédito", Data: score}
	r.add("Score", strconv.Itoa(score.Score))
	r.add("Faixa", string(score.Band))
	return r
}

// ComplianceReport lists entries with their current review.
func ComplianceReport(statuses []compliance.EntryStatus) *Report {
	r := &Report{
		Title: "Matriz de conformidade PF/PJ",
		Table: &Table{Header: []string{"ID", "Escopo", "Tema", "Periodicidade", "Última revisão", "Revisor atual"}},
		Data:  statuses,
	}
	for _, st := range statuses {
		e := st.Entry
		reviewer := "-"
		if st.Current != nil {
			reviewer = fmt.Sprintf("%s (%s)", st.Current.ReviewerName, st.Current.ReviewedAt.Format(time.DateOnly))
		}
		r.Table.Rows = append(r.Table.Rows, []string{e.ID, string(e.Scope), e.Topic, e.Periodicity, e.LastReviewed, reviewer})
	}
	return r
}

// ReviewsReport lists reviews of one entry, newest first.
func ReviewsReport(entryID string, reviews []domain.ComplianceReview) *Report {
	r := &Report{
		Title: "Revisões de " + entryID,
		Table: &Table{Header: []string{"ID", "Revisor", "Data", "Nota"}},
		Data:  reviews,
	}
	for _, rv := range reviews {
		note := ""
		if rv.Note != nil {
			note = *rv.Note
		}
		r.Table.Rows = append(r.Table.Rows, []string{rv.ID, rv.ReviewerName, rv.ReviewedAt.Format(time.RFC3339), note})
	}
	if len(reviews) == 0 {
		r.Notes = append(r.Notes, "Nenhuma revisão registrada.")
	}
	return r
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
