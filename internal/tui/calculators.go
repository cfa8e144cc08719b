package tui

import (
	"context"
	"strconv"

	"github.com/finbr/brcalc/internal/breakeven"
	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/compare"
	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/finbr/brcalc/internal/output"
)

// field describes one input of a calculator form
type field struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
}

// calculator is one entry of the home menu. Run receives the raw form
// values keyed by field key and returns the rendered result.
type calculator struct {
	ID          string
	Title       string
	Description string
	Fields      []field
	Run         func(engine *calculation.CalculationEngine, values map[string]string) (string, error)
}

// calculators lists the menu in display order.
var calculators = []calculator{
	{
		ID:          "payroll",
		Title:       "Folha de pagamento",
		Description: "INSS, IRRF, FGTS e salário líquido",
		Fields: []field{
			{Key: "gross", Label: "Salário bruto", Placeholder: "R$ 6.500,00"},
			{Key: "dependents", Label: "Dependentes", Default: "0"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			in := domain.PayrollInput{
				GrossMonthly: config.ParseAmount(v["gross"]),
				Dependents:   config.ParseCount(v["dependents"]),
			}
			return renderReport(output.PayrollReport(in, engine.Payroll(in)))
		},
	},
	{
		ID:          "amortize",
		Title:       "Financiamento",
		Description: "Parcelas PRICE ou SAC",
		Fields: []field{
			{Key: "principal", Label: "Valor financiado", Placeholder: "R$ 100.000,00"},
			{Key: "months", Label: "Prazo (meses)", Default: "12"},
			{Key: "rate", Label: "Juros anuais (%)", Placeholder: "12%"},
			{Key: "system", Label: "Sistema", Default: "price", Placeholder: "price ou sac"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			system, err := domain.ParseAmortizationSystem(v["system"])
			if err != nil {
				return "", err
			}
			in := domain.LoanInput{
				Principal:     config.ParseAmount(v["principal"]),
				Months:        config.ParseCount(v["months"]),
				AnnualRatePct: config.ParsePercent(v["rate"]),
				System:        system,
			}
			result, err := engine.Amortize(in)
			if err != nil {
				return "", err
			}
			return renderReport(output.LoanReport(in, result, nil))
		},
	},
	{
		ID:          "regime",
		Title:       "Regime tributário",
		Description: "Imposto mensal de MEI, Simples ou Lucro Presumido",
		Fields: []field{
			{Key: "regime", Label: "Regime", Placeholder: "mei, simples-comercio, simples-servicos, lucro-presumido"},
			{Key: "revenue", Label: "Faturamento mensal", Placeholder: "R$ 30.000,00"},
			{Key: "payroll", Label: "Folha mensal", Default: "0"},
			{Key: "activity", Label: "Atividade", Default: "servico", Placeholder: "comercio, servico, misto"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			regime, err := domain.ParseRegime(v["regime"])
			if err != nil {
				return "", err
			}
			activity, err := parseActivity(v["activity"])
			if err != nil {
				return "", err
			}
			result, err := engine.EstimateRegime(domain.RegimeInput{
				Regime:         regime,
				MonthlyRevenue: config.ParseAmount(v["revenue"]),
				Payroll:        config.ParseAmount(v["payroll"]),
				Activity:       activity,
			})
			if err != nil {
				return "", err
			}
			return renderReport(output.RegimeReport(result))
		},
	},
	{
		ID:          "compare-regimes",
		Title:       "Comparar regimes",
		Description: "Todos os regimes lado a lado",
		Fields: []field{
			{Key: "revenue", Label: "Faturamento mensal", Placeholder: "R$ 30.000,00"},
			{Key: "payroll", Label: "Folha mensal", Default: "0"},
			{Key: "activity", Label: "Atividade", Default: "servico", Placeholder: "comercio, servico, misto"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			activity, err := parseActivity(v["activity"])
			if err != nil {
				return "", err
			}
			compSet, err := compare.NewCompareEngine(engine).CompareRegimes(compare.RegimeOptions{
				MonthlyRevenue: config.ParseAmount(v["revenue"]),
				Payroll:        config.ParseAmount(v["payroll"]),
				Activity:       activity,
			})
			if err != nil {
				return "", err
			}
			return (&compare.TableFormatter{}).Format(compSet), nil
		},
	},
	{
		ID:          "break-even",
		Title:       "Ponto de equilíbrio",
		Description: "Faturamento em que dois regimes custam o mesmo",
		Fields: []field{
			{Key: "a", Label: "Regime A", Default: "simples-comercio"},
			{Key: "b", Label: "Regime B", Default: "lucro-presumido"},
			{Key: "activity", Label: "Atividade", Default: "comercio", Placeholder: "comercio, servico, misto"},
			{Key: "payroll", Label: "Folha mensal", Default: "0"},
			{Key: "min", Label: "Faturamento mínimo", Default: "1000"},
			{Key: "max", Label: "Faturamento máximo", Default: "400000"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			req := breakeven.Request{
				Payroll:    config.ParseAmount(v["payroll"]),
				MinRevenue: config.ParseAmount(v["min"]),
				MaxRevenue: config.ParseAmount(v["max"]),
			}
			var err error
			if req.A, err = domain.ParseRegime(v["a"]); err != nil {
				return "", err
			}
			if req.B, err = domain.ParseRegime(v["b"]); err != nil {
				return "", err
			}
			if req.Activity, err = parseActivity(v["activity"]); err != nil {
				return "", err
			}
			result, err := breakeven.NewDefaultSolver(engine).Solve(context.Background(), req)
			if err != nil {
				return "", err
			}
			return (&breakeven.TableFormatter{}).Format(result), nil
		},
	},
	{
		ID:          "fgts",
		Title:       "Saque-aniversário FGTS",
		Description: "Valor do saque pela faixa de saldo",
		Fields: []field{
			{Key: "balance", Label: "Saldo FGTS", Placeholder: "R$ 12.000,00"},
		},
		Run: func(engine *calculation.CalculationEngine, v map[string]string) (string, error) {
			balance := config.ParseAmount(v["balance"])
			return renderReport(output.AmountReport("Saque-aniversário FGTS",
				[]output.Line{{Label: "Saldo", Value: output.FormatCurrency(balance)}},
				"Saque estimado", engine.FGTSWithdrawal(balance)))
		},
	},
	{
		ID:          "emergency",
		Title:       "Reserva de emergência",
		Description: "Meses de custo fixo guardados",
		Fields: []field{
			{Key: "monthly-cost", Label: "Custo mensal", Placeholder: "R$ 3.000,00"},
			{Key: "months", Label: "Meses", Default: "6"},
		},
		Run: func(_ *calculation.CalculationEngine, v map[string]string) (string, error) {
			cost := config.ParseAmount(v["monthly-cost"])
			months := config.ParseCount(v["months"])
			return renderReport(output.AmountReport("Reserva de emergência",
				[]output.Line{
					{Label: "Custo mensal", Value: output.FormatCurrency(cost)},
					{Label: "Meses", Value: strconv.Itoa(months)},
				},
				"Reserva alvo", calculation.EmergencyReserve(cost, months)))
		},
	},
	{
		ID:          "thirteenth",
		Title:       "13º salário",
		Description: "Valor e as duas parcelas",
		Fields: []field{
			{Key: "gross", Label: "Salário bruto", Placeholder: "R$ 5.000,00"},
		},
		Run: func(_ *calculation.CalculationEngine, v map[string]string) (string, error) {
			return renderReport(output.ThirteenthReport(calculation.ThirteenthSalary(config.ParseAmount(v["gross"]))))
		},
	},
	{
		ID:          "score",
		Title:       "Score de crédito",
		Description: "Faixa de um score de 0 a 1000",
		Fields: []field{
			{Key: "score", Label: "Score", Placeholder: "750"},
		},
		Run: func(_ *calculation.CalculationEngine, v map[string]string) (string, error) {
			return renderReport(output.CreditScoreReport(calculation.ClassifyCreditScore(config.ParseAmount(v["score"]))))
		},
	},
}

func parseActivity(v string) (domain.Activity, error) {
	if v == "" {
		return "", nil
	}
	return domain.ParseActivity(v)
}

func renderReport(report *output.Report) (string, error) {
	data, err := (output.ConsoleFormatter{}).Format(report)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
