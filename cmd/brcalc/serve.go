package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/calculation"
	"github.com/finbr/brcalc/internal/compliance"
	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/httpapi"
	"github.com/finbr/brcalc/internal/observability"
)

const shutdownTimeout = 15 * time.Second

var validateCmd = &cobra.Command{
	Use:   "validate [tax-year-file]",
	Short: "Validate a tax-year YAML file",
	Long: `Validate a tax-year YAML file: every bracket table must be ordered with
a single unbounded last row. Without a file the built-in 2024 tables are
checked; --print writes them as YAML, a starting point for a new year.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := config.NewTaxYearLoader()
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		cfg, err := loader.LoadOrDefault(path)
		if err != nil {
			return err
		}
		if err := loader.Validate(cfg); err != nil {
			return err
		}

		if printYAML, _ := cmd.Flags().GetBool("print"); printYAML {
			data, err := loader.Marshal(*cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if path == "" {
			path = "built-in tables"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tax year %d (%s) is valid\n", cfg.Metadata.Year, path)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators and compliance log over HTTP",
	Long: `Serve the calculators and the compliance review log as a JSON API.

Configuration comes from the environment (or a .env file): BRCALC_ADDR,
DATABASE_URL, LOG_LEVEL and BRCALC_TAX_YEAR. Without DATABASE_URL reviews
are kept in memory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.Addr = addr
		}
		if path, _ := cmd.Flags().GetString("tax-year"); path != "" {
			settings.TaxYearPath = path
		}

		logger, err := observability.NewLogger(settings.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialise logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		return runServer(cmd.Context(), settings, logger)
	},
}

func runServer(ctx context.Context, settings config.Settings, logger *zap.Logger) error {
	taxYear, err := config.NewTaxYearLoader().LoadOrDefault(settings.TaxYearPath)
	if err != nil {
		return err
	}
	engine, err := calculation.NewCalculationEngineWithConfig(*taxYear)
	if err != nil {
		return err
	}
	engine.SetLogger(observability.NewEngineLogger(logger.Named("engine")))
	engine.Debug = logger.Core().Enabled(zap.DebugLevel)

	healthOpts := []httpapi.HealthOption{httpapi.WithTaxYear(taxYear.Metadata.Year)}

	var svc *compliance.Service
	if settings.DatabaseURL != "" {
		pool, err := compliance.OpenPool(ctx, settings.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo := compliance.NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		healthOpts = append(healthOpts, httpapi.WithHealthCheck("database", pool.Ping))
		if svc, err = compliance.NewService(compliance.ServiceDeps{Reviews: repo, Logger: logger.Named("compliance")}); err != nil {
			return err
		}
	} else {
		logger.Warn("DATABASE_URL not set; compliance reviews are kept in memory")
		if svc, err = compliance.NewService(compliance.ServiceDeps{Reviews: compliance.NewMemoryRepository(), Logger: logger.Named("compliance")}); err != nil {
			return err
		}
	}

	router := httpapi.NewRouter(
		httpapi.WithMiddlewares(
			observability.RecoveryMiddleware(logger),
			observability.RequestLoggerMiddleware(logger.Named("http")),
		),
		httpapi.WithHealthHandlers(httpapi.NewHealthHandlers(healthOpts...)),
		httpapi.WithCalculatorRoutes(httpapi.NewCalculatorHandlers(engine, logger).Routes),
		httpapi.WithComplianceRoutes(httpapi.NewComplianceHandlers(svc, logger).Routes),
	)

	server := &http.Server{
		Addr:              settings.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      35 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	serveErr := make(chan error, 1)
	go func() {
		serverLogger.Info("brcalc api listening", zap.Int("tax_year", taxYear.Metadata.Year))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-shutdown:
		logger.Info("shutdown signal received; draining requests")
	case <-ctx.Done():
		logger.Info("context cancelled; draining requests")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	validateCmd.Flags().Bool("print", false, "Print the tables as YAML")
	serveCmd.Flags().String("addr", "", "Listen address (default: $BRCALC_ADDR or :8080)")
}
