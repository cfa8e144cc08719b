package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/finbr/brcalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("COMPARAÇÃO DE REGIMES TRIBUTÁRIOS\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Receita mensal: %s | Folha: %s | Atividade: %s\n",
		output.FormatCurrency(compSet.MonthlyRevenue), output.FormatCurrency(compSet.Payroll), compSet.Activity))
	sb.WriteString("\n")

	// Column widths
	nameWidth := 30
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Imposto mensal",
		numWidth, "Alíquota efetiva",
		numWidth, "Dif. vs base"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}
	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Label
	switch {
	case isBase:
		name += " (base)"
	}
	if result.Cheapest {
		name = "* " + name
	}
	if !result.Eligible {
		name += " [limite]"
	}

	diff := "-"
	if !isBase {
		diff = tf.deltaSymbol(result.TaxDiffFromBase) + output.FormatCurrency(result.TaxDiffFromBase)
	}

	return fmt.Sprintf("%s %*s %*s %*s\n",
		padRight(tf.truncate(name, nameWidth), nameWidth),
		numWidth, output.FormatCurrency(result.MonthlyTax),
		numWidth, output.FormatPercentage(result.EffectiveRatePct),
		numWidth, diff)
}

// FormatLoans formats a PRICE vs SAC comparison
func (tf *TableFormatter) FormatLoans(lc *LoanComparison) string {
	var sb strings.Builder

	sb.WriteString("PRICE x SAC\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Principal: %s | Prazo: %d meses | Taxa: %s a.a.\n\n",
		output.FormatCurrency(lc.Principal), lc.Months, output.FormatPercentage(lc.AnnualRatePct)))

	numWidth := 18
	sb.WriteString(fmt.Sprintf("%-8s %*s %*s %*s %*s\n", "Sistema",
		numWidth, "1ª parcela", numWidth, "Última parcela", numWidth, "Total pago", numWidth, "Juros"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range lc.Results {
		sb.WriteString(fmt.Sprintf("%-8s %*s %*s %*s %*s\n", r.System.Label(),
			numWidth, output.FormatCurrency(r.FirstInstallment),
			numWidth, output.FormatCurrency(r.LastInstallment),
			numWidth, output.FormatCurrency(r.TotalPaid),
			numWidth, output.FormatCurrency(r.TotalInterest)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%s paga %s a menos de juros.\n", lc.Cheaper.Label(), output.FormatCurrency(lc.InterestSavings)))
	return sb.String()
}

// deltaSymbol returns a + for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base: %s %s", compSet.BaseResult.Label, output.FormatCurrency(compSet.BaseResult.MonthlyTax)))
	}

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		change := "="
		if !alt.TaxDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.TaxDiffFromBase) + output.FormatCurrency(alt.TaxDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Label, change))
	}

	return sb.String()
}

// padRight pads s with spaces to width runes; fmt pads by bytes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
