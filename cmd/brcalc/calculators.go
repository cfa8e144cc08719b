package main

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/finbr/brcalc/internal/output"
)

// Numeric flags are read as strings and parsed with the config parsers so
// "R$ 1.234,56" and "12%" work on the command line.
func amountFlag(cmd *cobra.Command, name string) decimal.Decimal {
	v, _ := cmd.Flags().GetString(name)
	return config.ParseAmount(v)
}

func percentFlag(cmd *cobra.Command, name string) decimal.Decimal {
	v, _ := cmd.Flags().GetString(name)
	return config.ParsePercent(v)
}

func countFlag(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetString(name)
	return config.ParseCount(v)
}

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Amortize a loan under the PRICE or SAC system",
	Long: `Amortize a loan under the PRICE (constant installments) or SAC (constant
amortization) system.

Examples:
  brcalc amortize --principal "R$ 100.000,00" --months 360 --rate 12 --system price
  brcalc amortize --principal 12000 --months 12 --rate 12% --system sac --schedule`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		systemName, _ := cmd.Flags().GetString("system")
		system, err := domain.ParseAmortizationSystem(systemName)
		if err != nil {
			return err
		}

		in := domain.LoanInput{
			Principal:     amountFlag(cmd, "principal"),
			Months:        countFlag(cmd, "months"),
			AnnualRatePct: percentFlag(cmd, "rate"),
			System:        system,
		}
		result, err := engine.Amortize(in)
		if err != nil {
			return err
		}

		var schedule []domain.Installment
		if withSchedule, _ := cmd.Flags().GetBool("schedule"); withSchedule {
			if schedule, err = engine.Schedule(in); err != nil {
				return err
			}
		}
		return writeReport(cmd, output.LoanReport(in, result, schedule))
	},
}

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Compute INSS, IRRF, FGTS and net pay for a CLT salary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		in := domain.PayrollInput{
			GrossMonthly: amountFlag(cmd, "gross"),
			Dependents:   countFlag(cmd, "dependents"),
		}
		return writeReport(cmd, output.PayrollReport(in, engine.Payroll(in)))
	},
}

var regimeCmd = &cobra.Command{
	Use:   "regime",
	Short: "Estimate the monthly tax of a business regime",
	Long: `Estimate the monthly tax of one business regime.

Regimes: mei, simples-comercio, simples-servicos, lucro-presumido.
Activities: comercio, servico (default), misto.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("regime")
		regime, err := domain.ParseRegime(name)
		if err != nil {
			return err
		}
		activity, err := activityFlag(cmd)
		if err != nil {
			return err
		}

		result, err := engine.EstimateRegime(domain.RegimeInput{
			Regime:         regime,
			MonthlyRevenue: amountFlag(cmd, "revenue"),
			Payroll:        amountFlag(cmd, "payroll"),
			Activity:       activity,
		})
		if err != nil {
			return err
		}
		return writeReport(cmd, output.RegimeReport(result))
	},
}

var meiDASCmd = &cobra.Command{
	Use:   "mei-das",
	Short: "Show the fixed monthly MEI DAS for an activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		activity, err := activityFlag(cmd)
		if err != nil {
			return err
		}
		das, err := engine.MEIFixedDAS(activity)
		if err != nil {
			return err
		}
		shown := activity
		if shown == "" {
			shown = domain.ActivityServico
		}
		return writeReport(cmd, output.AmountReport("DAS MEI",
			[]output.Line{{Label: "Atividade", Value: string(shown)}},
			"DAS mensal", das))
	},
}

var fgtsCmd = &cobra.Command{
	Use:   "fgts",
	Short: "Estimate the FGTS anniversary withdrawal for a balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		balance := amountFlag(cmd, "balance")
		return writeReport(cmd, output.AmountReport("Saque-aniversário FGTS",
			[]output.Line{{Label: "Saldo", Value: output.FormatCurrency(balance)}},
			"Saque estimado", engine.FGTSWithdrawal(balance)))
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Classify a 0-1000 credit score",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeReport(cmd, output.CreditScoreReport(calculation.ClassifyCreditScore(amountFlag(cmd, "score"))))
	},
}

func plannerCmd() *cobra.Command {
	planner := &cobra.Command{
		Use:   "planner",
		Short: "Household reserve planners",
	}

	emergency := &cobra.Command{
		Use:   "emergency",
		Short: "Emergency reserve for a number of months of expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cost := amountFlag(cmd, "monthly-cost")
			months := countFlag(cmd, "months")
			return writeReport(cmd, output.AmountReport("Reserva de emergência",
				[]output.Line{
					{Label: "Custo mensal", Value: output.FormatCurrency(cost)},
					{Label: "Meses", Value: strconv.Itoa(months)},
				},
				"Reserva alvo", calculation.EmergencyReserve(cost, months)))
		},
	}
	emergency.Flags().String("monthly-cost", "0", "Monthly household cost")
	emergency.Flags().String("months", "6", "Months of expenses to cover")

	thirteenth := &cobra.Command{
		Use:   "thirteenth",
		Short: "13th salary and its two installments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeReport(cmd, output.ThirteenthReport(calculation.ThirteenthSalary(amountFlag(cmd, "gross"))))
		},
	}
	thirteenth.Flags().String("gross", "0", "Gross monthly salary")

	vacation := &cobra.Command{
		Use:   "vacation",
		Short: "Monthly amount to set aside for vacation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gross := amountFlag(cmd, "gross")
			pct := percentFlag(cmd, "pct")
			return writeReport(cmd, output.AmountReport("Reserva de férias",
				[]output.Line{
					{Label: "Salário bruto", Value: output.FormatCurrency(gross)},
					{Label: "Percentual", Value: output.FormatPercentage(pct)},
				},
				"Reserva mensal", calculation.VacationReserve(gross, pct)))
		},
	}
	vacation.Flags().String("gross", "0", "Gross monthly salary")
	vacation.Flags().String("pct", "11.11", "Percent of gross pay to reserve")

	planner.AddCommand(emergency, thirteenth, vacation)
	return planner
}

func activityFlag(cmd *cobra.Command) (domain.Activity, error) {
	v, _ := cmd.Flags().GetString("activity")
	if v == "" {
		return "", nil
	}
	return domain.ParseActivity(v)
}

func init() {
	amortizeCmd.Flags().String("principal", "0", "Loan principal")
	amortizeCmd.Flags().String("months", "12", "Term in months")
	amortizeCmd.Flags().String("rate", "0", "Nominal annual interest rate in percent")
	amortizeCmd.Flags().String("system", "price", "Amortization system (price, sac)")
	amortizeCmd.Flags().Bool("schedule", false, "Print the month-by-month schedule")

	payrollCmd.Flags().String("gross", "0", "Gross monthly salary")
	payrollCmd.Flags().String("dependents", "0", "Number of IRRF dependents")

	regimeCmd.Flags().String("regime", "", "Regime (mei, simples-comercio, simples-servicos, lucro-presumido)")
	regimeCmd.Flags().String("revenue", "0", "Monthly gross revenue")
	regimeCmd.Flags().String("payroll", "0", "Monthly payroll (Lucro Presumido)")
	regimeCmd.Flags().String("activity", "", "Activity (comercio, servico, misto)")
	_ = regimeCmd.MarkFlagRequired("regime")

	meiDASCmd.Flags().String("activity", "", "Activity (comercio, servico, misto)")

	fgtsCmd.Flags().String("balance", "0", "FGTS account balance")

	scoreCmd.Flags().String("score", "0", "Credit score (0-1000)")
}
