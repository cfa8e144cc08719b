package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finbr/brcalc/internal/compliance"
	"github.com/finbr/brcalc/internal/config"
	"github.com/finbr/brcalc/internal/domain"
	"github.com/finbr/brcalc/internal/output"
)

// openComplianceService returns a service backed by Postgres when
// DATABASE_URL is set and by process memory otherwise. The returned func
// releases the pool.
func openComplianceService(ctx context.Context, settings config.Settings, logger *zap.Logger) (*compliance.Service, func(), error) {
	if settings.DatabaseURL == "" {
		svc, err := compliance.NewService(compliance.ServiceDeps{
			Reviews: compliance.NewMemoryRepository(),
			Logger:  logger,
		})
		return svc, func() {}, err
	}

	pool, err := compliance.OpenPool(ctx, settings.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := compliance.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	svc, err := compliance.NewService(compliance.ServiceDeps{Reviews: repo, Logger: logger})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return svc, pool.Close, nil
}

// withComplianceService runs fn against the configured compliance service.
func withComplianceService(cmd *cobra.Command, fn func(*compliance.Service) error) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if settings.DatabaseURL == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "aviso: DATABASE_URL não definido; revisões ficam apenas em memória")
	}
	svc, closeFn, err := openComplianceService(cmd.Context(), settings, zap.NewNop())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc)
}

func complianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "PF/PJ compliance matrix and its review log",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List compliance entries with their current review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComplianceService(cmd, func(svc *compliance.Service) error {
				statuses, err := svc.Overview(cmd.Context())
				if err != nil {
					return err
				}
				return writeReport(cmd, output.ComplianceReport(statuses))
			})
		},
	}

	review := &cobra.Command{
		Use:   "review <entry-id>",
		Short: "Record a review of a compliance entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviewerID, _ := cmd.Flags().GetString("reviewer-id")
			reviewerName, _ := cmd.Flags().GetString("reviewer-name")
			note, _ := cmd.Flags().GetString("note")
			return withComplianceService(cmd, func(svc *compliance.Service) error {
				rv, err := svc.RecordReview(cmd.Context(), args[0], reviewerID, reviewerName, note)
				if err != nil {
					return err
				}
				return writeReport(cmd, output.ReviewsReport(rv.EntryID, []domain.ComplianceReview{rv}))
			})
		},
	}
	review.Flags().String("reviewer-id", "", "Reviewer identifier")
	review.Flags().String("reviewer-name", "", "Reviewer display name")
	review.Flags().String("note", "", "Optional review note")

	current := &cobra.Command{
		Use:   "current <entry-id>",
		Short: "Show the latest review of a compliance entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComplianceService(cmd, func(svc *compliance.Service) error {
				rv, err := svc.CurrentReview(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var reviews []domain.ComplianceReview
				if rv != nil {
					reviews = append(reviews, *rv)
				}
				return writeReport(cmd, output.ReviewsReport(strings.TrimSpace(args[0]), reviews))
			})
		},
	}

	history := &cobra.Command{
		Use:   "history <entry-id>",
		Short: "List reviews of a compliance entry, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeFlag, _ := cmd.Flags().GetString("range")
			rng, err := domain.ParseHistoryRange(rangeFlag)
			if err != nil {
				return err
			}
			return withComplianceService(cmd, func(svc *compliance.Service) error {
				reviews, err := svc.History(cmd.Context(), args[0], rng)
				if err != nil {
					return err
				}
				return writeReport(cmd, output.ReviewsReport(strings.TrimSpace(args[0]), reviews))
			})
		},
	}
	history.Flags().String("range", "all", "History range (30d, all)")

	cmd.AddCommand(list, review, current, history)
	return cmd
}
