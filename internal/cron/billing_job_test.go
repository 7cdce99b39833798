package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

type fakeBillingRunner struct {
	generated    int
	marked       int
	generateErr  error
	overdueErr   error
	generateRuns int
	overdueRuns  int
	lastNow      time.Time
}

func (f *fakeBillingRunner) GenerateMonthly(ctx context.Context, now time.Time) (int, error) {
	f.generateRuns++
	f.lastNow = now
	if f.generateErr != nil {
		return 0, f.generateErr
	}
	return f.generated, nil
}

func (f *fakeBillingRunner) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	f.overdueRuns++
	if f.overdueErr != nil {
		return 0, f.overdueErr
	}
	return f.marked, nil
}

func TestBillingJobGeneratesOnConfiguredDay(t *testing.T) {
	runner := &fakeBillingRunner{generated: 12, marked: 3}
	job := newBillingJob(t, runner, 5)
	job.now = func() time.Time { return time.Date(2026, 6, 5, 2, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.generateRuns != 1 {
		t.Fatalf("expected one generation pass, got %d", runner.generateRuns)
	}
	if runner.overdueRuns != 1 {
		t.Fatalf("expected one overdue pass, got %d", runner.overdueRuns)
	}
}

func TestBillingJobSkipsGenerationOnOtherDays(t *testing.T) {
	runner := &fakeBillingRunner{}
	job := newBillingJob(t, runner, 1)
	job.now = func() time.Time { return time.Date(2026, 6, 17, 2, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.generateRuns != 0 {
		t.Fatalf("expected no generation pass, got %d", runner.generateRuns)
	}
	if runner.overdueRuns != 1 {
		t.Fatalf("expected overdue pass to run daily, got %d", runner.overdueRuns)
	}
}

func TestBillingJobRunsOverdueEvenWhenGenerationFails(t *testing.T) {
	runner := &fakeBillingRunner{generateErr: errors.New("boom")}
	job := newBillingJob(t, runner, 1)
	job.now = func() time.Time { return time.Date(2026, 6, 1, 2, 0, 0, 0, time.UTC) }

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if runner.overdueRuns != 1 {
		t.Fatalf("expected overdue pass despite generation failure, got %d", runner.overdueRuns)
	}
}

func newBillingJob(t *testing.T, runner *fakeBillingRunner, generationDay int) *billingJob {
	t.Helper()
	jobIface, err := NewBillingJob(BillingJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Billing:       runner,
		GenerationDay: generationDay,
	})
	if err != nil {
		t.Fatalf("NewBillingJob: %v", err)
	}
	job, ok := jobIface.(*billingJob)
	if !ok {
		t.Fatalf("expected billingJob, got %T", jobIface)
	}
	return job
}
