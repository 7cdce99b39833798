package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

const defaultGenerationDay = 1

// BillingJobParams configure the recurring billing sweep.
type BillingJobParams struct {
	Logger        *logger.Logger
	Billing       billingRunner
	GenerationDay int
}

type billingRunner interface {
	GenerateMonthly(ctx context.Context, now time.Time) (int, error)
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// NewBillingJob builds the job that raises monthly bills and flags late ones.
func NewBillingJob(params BillingJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Billing == nil {
		return nil, fmt.Errorf("billing service required")
	}
	generationDay := params.GenerationDay
	if generationDay < 1 || generationDay > 28 {
		generationDay = defaultGenerationDay
	}
	return &billingJob{
		logg:          params.Logger,
		billing:       params.Billing,
		generationDay: generationDay,
		now:           time.Now,
	}, nil
}

type billingJob struct {
	logg          *logger.Logger
	billing       billingRunner
	generationDay int
	now           func() time.Time
}

func (j *billingJob) Name() string { return "billing" }

// Run performs both sweeps even when one fails so a broken generation pass
// never blocks overdue detection.
func (j *billingJob) Run(ctx context.Context) error {
	var errs []error
	if err := j.generateBills(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := j.markOverdue(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

func (j *billingJob) generateBills(ctx context.Context) error {
	now := j.now().UTC()
	if now.Day() != j.generationDay {
		return nil
	}
	created, err := j.billing.GenerateMonthly(ctx, now)
	if err != nil {
		return fmt.Errorf("generate monthly bills: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"created": created,
		"period":  now.Format("2006-01"),
	})
	j.logg.Info(logCtx, "monthly bill generation complete")
	return nil
}

func (j *billingJob) markOverdue(ctx context.Context) error {
	marked, err := j.billing.MarkOverdue(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("mark overdue bills: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"marked": marked})
	j.logg.Info(logCtx, "overdue bill sweep complete")
	return nil
}
