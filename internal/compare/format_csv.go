package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for regime comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Type",
		"Monthly Tax",
		"Annual Tax",
		"Effective Rate %",
		"Eligible",
		"Tax Diff from Base",
		"Tax % Change",
		"Cheapest",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		string(result.Regime),
		rowType,
		result.MonthlyTax.StringFixed(2),
		result.AnnualTax.StringFixed(2),
		result.EffectiveRatePct.StringFixed(2),
		strconv.FormatBool(result.Eligible),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		strconv.FormatBool(result.Cheapest),
	}
}

// FormatLoans generates CSV output for a PRICE vs SAC comparison
func (cf *CSVFormatter) FormatLoans(lc *LoanComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"System", "First Installment", "Last Installment", "Total Paid", "Total Interest"}); err != nil {
		return "", err
	}
	for _, r := range lc.Results {
		row := []string{
			string(r.System),
			r.FirstInstallment.StringFixed(2),
			r.LastInstallment.StringFixed(2),
			r.TotalPaid.StringFixed(2),
			r.TotalInterest.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
