package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finbr/brcalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted report for one break-even search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("PONTO DE EQUILÍBRIO ENTRE REGIMES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Regime A:            %s\n", result.Request.A.Label()))
	sb.WriteString(fmt.Sprintf("Regime B:            %s\n", result.Request.B.Label()))
	sb.WriteString(fmt.Sprintf("Atividade:           %s\n", result.Request.Activity))
	sb.WriteString(fmt.Sprintf("Faixa pesquisada:    %s a %s\n",
		output.FormatCurrency(result.Request.MinRevenue), output.FormatCurrency(result.Request.MaxRevenue)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterações:           %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergência:        %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTADO\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Receita de equilíbrio: %s/mês\n", output.FormatCurrency(result.Revenue)))
	sb.WriteString(fmt.Sprintf("Imposto A:             %s%s\n", output.FormatCurrency(result.TaxA), tf.limitFlag(result.EligibleA)))
	sb.WriteString(fmt.Sprintf("Imposto B:             %s%s\n", output.FormatCurrency(result.TaxB), tf.limitFlag(result.EligibleB)))
	sb.WriteString(fmt.Sprintf("Abaixo:                %s é mais barato\n", result.CheaperBelow.Label()))
	sb.WriteString(fmt.Sprintf("Acima:                 %s é mais barato\n", result.CheaperAbove.Label()))

	return sb.String()
}

// FormatMatrix formats results for every regime pair
func (tf *TableFormatter) FormatMatrix(result *MatrixResult) string {
	var sb strings.Builder

	sb.WriteString("PONTOS DE EQUILÍBRIO\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-24s %-24s %15s %12s\n", "Mais barato abaixo", "Mais barato acima", "Receita/mês", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%s %s %15s %12s\n",
			padRight(tf.truncate(res.CheaperBelow.Label(), 24), 24),
			padRight(tf.truncate(res.CheaperAbove.Label(), 24), 24),
			tf.formatShort(res.Revenue),
			tf.formatStatus(res.Success)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMatrix formats matrix results as JSON
func (jf *JSONFormatter) FormatMatrix(result *MatrixResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Convergiu"
	}
	return "⚠ Não convergiu"
}

func (tf *TableFormatter) limitFlag(eligible bool) string {
	if eligible {
		return ""
	}
	return " (acima do limite)"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "R$" + millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return "R$" + thousands.StringFixed(1) + "K"
	}
	return "R$" + d.StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
