package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/observability"
	"github.com/finbr/brcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "brcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "brcalc",
	Short: "Brazilian tax and personal finance calculator",
	Long: `Calculators for CLT payroll (INSS, IRRF, FGTS), PRICE/SAC loans, MEI,
Simples Nacional and Lucro Presumido estimates, FGTS anniversary withdrawal
and household reserve planning, plus the PF/PJ compliance matrix and its
review log.

Amounts accept pt-BR input such as "R$ 1.234,56"; invalid or negative values
are treated as zero.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "console", "Output format ("+strings.Join(output.FormatNames(), ", ")+")")
	rootCmd.PersistentFlags().String("tax-year", "", "Path to a tax-year YAML file (default: $BRCALC_TAX_YEAR or the built-in 2024 tables)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(amortizeCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(regimeCmd)
	rootCmd.AddCommand(meiDASCmd)
	rootCmd.AddCommand(fgtsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(plannerCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(complianceCmd())
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

// newEngine builds the calculation engine for the tax year selected by
// --tax-year or BRCALC_TAX_YEAR, with --debug traces on stderr.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	path, _ := cmd.Flags().GetString("tax-year")
	if path == "" {
		settings, err := config.LoadSettings()
		if err != nil {
			return nil, err
		}
		path = settings.TaxYearPath
	}

	cfg, err := config.NewTaxYearLoader().LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewCalculationEngineWithConfig(*cfg)
	if err != nil {
		return nil, err
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(observability.NewEngineLogger(observability.NewWriterLogger(cmd.ErrOrStderr(), zapcore.DebugLevel)))
	}
	engine.Debug = debugMode
	return engine, nil
}

func writeReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	return output.Write(cmd.OutOrStdout(), format, report)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
