package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finbr/brcalc/internal/breakeven"
	"github.com/finbr/brcalc/internal/compare"
	"github.com/finbr/brcalc/internal/domain"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare regimes or loan systems side by side",
	}

	regimes := &cobra.Command{
		Use:   "regimes",
		Short: "Compare the monthly tax of several regimes for one revenue profile",
		Long: `Compare the monthly tax of several regimes for the same revenue, payroll
and activity. The cheapest regime whose revenue limit is respected is marked.

Examples:
  brcalc compare regimes --revenue 30000 --payroll 4500 --activity servico
  brcalc compare regimes --revenue 30000 --base lucro-presumido --with mei,simples-servicos -f csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			opts := compare.RegimeOptions{
				MonthlyRevenue: amountFlag(cmd, "revenue"),
				Payroll:        amountFlag(cmd, "payroll"),
			}
			if opts.Activity, err = activityFlag(cmd); err != nil {
				return err
			}
			if base, _ := cmd.Flags().GetString("base"); base != "" {
				if opts.BaseRegime, err = domain.ParseRegime(base); err != nil {
					return err
				}
			}
			with, _ := cmd.Flags().GetString("with")
			if opts.Regimes, err = parseRegimeList(with); err != nil {
				return err
			}
			if opts.BaseRegime != "" && len(opts.Regimes) > 0 && !containsRegime(opts.Regimes, opts.BaseRegime) {
				opts.Regimes = append([]domain.Regime{opts.BaseRegime}, opts.Regimes...)
			}

			compSet, err := compare.NewCompareEngine(engine).CompareRegimes(opts)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			default:
				out = (&compare.TableFormatter{}).Format(compSet)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	regimes.Flags().String("revenue", "0", "Monthly gross revenue")
	regimes.Flags().String("payroll", "0", "Monthly payroll (Lucro Presumido)")
	regimes.Flags().String("activity", "", "Activity (comercio, servico, misto)")
	regimes.Flags().String("base", "", "Regime the others are compared against (default: first compared regime)")
	regimes.Flags().String("with", "", "Comma-separated regimes to compare (default: all)")

	loans := &cobra.Command{
		Use:   "loans",
		Short: "Compare PRICE and SAC for the same loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			lc, err := compare.NewCompareEngine(engine).CompareLoanSystems(
				amountFlag(cmd, "principal"),
				countFlag(cmd, "months"),
				percentFlag(cmd, "rate"),
			)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).FormatLoans(lc)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).FormatLoans(lc)
			default:
				out = (&compare.TableFormatter{}).FormatLoans(lc)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	loans.Flags().String("principal", "0", "Loan principal")
	loans.Flags().String("months", "12", "Term in months")
	loans.Flags().String("rate", "0", "Nominal annual interest rate in percent")

	cmd.AddCommand(regimes, loans)
	return cmd
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even",
	Short: "Find the monthly revenue where two regimes cost the same",
	Long: `Find the monthly revenue at which two regimes owe the same tax, by
bisection over a revenue range. With --matrix every pair of regimes is solved.

Examples:
  brcalc break-even --a simples-comercio --b lucro-presumido --activity comercio --max 40000
  brcalc break-even --matrix --activity servico --payroll 4500`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		template := breakeven.Request{
			Payroll:    amountFlag(cmd, "payroll"),
			MinRevenue: amountFlag(cmd, "min"),
			MaxRevenue: amountFlag(cmd, "max"),
		}
		if template.Activity, err = activityFlag(cmd); err != nil {
			return err
		}
		solver := breakeven.NewDefaultSolver(engine)
		format, _ := cmd.Flags().GetString("format")
		asJSON := strings.EqualFold(format, "json")

		if matrix, _ := cmd.Flags().GetBool("matrix"); matrix {
			with, _ := cmd.Flags().GetString("with")
			regimes, err := parseRegimeList(with)
			if err != nil {
				return err
			}
			result, err := solver.SolveMatrix(cmd.Context(), template, regimes)
			if err != nil {
				return err
			}
			if asJSON {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMatrix(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMatrix(result))
			return nil
		}

		a, _ := cmd.Flags().GetString("a")
		b, _ := cmd.Flags().GetString("b")
		if template.A, err = domain.ParseRegime(a); err != nil {
			return err
		}
		if template.B, err = domain.ParseRegime(b); err != nil {
			return err
		}

		result, err := solver.Solve(cmd.Context(), template)
		if err != nil {
			return err
		}
		if asJSON {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func parseRegimeList(v string) ([]domain.Regime, error) {
	var regimes []domain.Regime
	for _, name := range strings.Split(v, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		regime, err := domain.ParseRegime(name)
		if err != nil {
			return nil, err
		}
		regimes = append(regimes, regime)
	}
	return regimes, nil
}

func containsRegime(regimes []domain.Regime, r domain.Regime) bool {
	for _, x := range regimes {
		if x == r {
			return true
		}
	}
	return false
}

func init() {
	breakEvenCmd.Flags().String("a", "", "First regime")
	breakEvenCmd.Flags().String("b", "", "Second regime")
	breakEvenCmd.Flags().String("activity", "", "Activity (comercio, servico, misto)")
	breakEvenCmd.Flags().String("payroll", "0", "Monthly payroll (Lucro Presumido)")
	breakEvenCmd.Flags().String("min", "0", "Lower bound of the revenue search")
	breakEvenCmd.Flags().String("max", "0", "Upper bound of the revenue search (min and max both zero search R$ 1.000 to R$ 400.000)")
	breakEvenCmd.Flags().Bool("matrix", false, "Solve every pair of regimes")
	breakEvenCmd.Flags().String("with", "", "Comma-separated regimes for --matrix (default: all)")
}
