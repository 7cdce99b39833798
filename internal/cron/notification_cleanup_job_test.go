package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
)

func TestNotificationCleanupJobPurgesWithConfiguredRetention(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	cleaner := &fakeNotificationCleaner{deleted: 42}
	job := newNotificationCleanupJob(t, cleaner, 15*24*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cleaner.called != 1 {
		t.Fatalf("expected cleaner called once, got %d", cleaner.called)
	}
	if cleaner.lastRetention != 15*24*time.Hour {
		t.Fatalf("expected retention 360h, got %s", cleaner.lastRetention)
	}
	if !cleaner.lastNow.Equal(now) {
		t.Fatalf("expected now %s, got %s", now, cleaner.lastNow)
	}
}

func TestNotificationCleanupJobDefaultsRetention(t *testing.T) {
	cleaner := &fakeNotificationCleaner{}
	job := newNotificationCleanupJob(t, cleaner, 0)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cleaner.lastRetention != defaultNotificationRetention {
		t.Fatalf("expected default retention, got %s", cleaner.lastRetention)
	}
}

func TestNotificationCleanupJobPropagatesErrors(t *testing.T) {
	cleaner := &fakeNotificationCleaner{err: errors.New("boom")}
	job := newNotificationCleanupJob(t, cleaner, 0)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newNotificationCleanupJob(t *testing.T, cleaner *fakeNotificationCleaner, retention time.Duration) *notificationCleanupJob {
	t.Helper()
	jobIface, err := NewNotificationCleanupJob(NotificationCleanupJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Notifications: cleaner,
		Retention:     retention,
	})
	if err != nil {
		t.Fatalf("NewNotificationCleanupJob: %v", err)
	}
	job, ok := jobIface.(*notificationCleanupJob)
	if !ok {
		t.Fatalf("expected notificationCleanupJob, got %T", jobIface)
	}
	return job
}

type fakeNotificationCleaner struct {
	deleted       int64
	err           error
	called        int
	lastRetention time.Duration
	lastNow       time.Time
}

func (f *fakeNotificationCleaner) Cleanup(ctx context.Context, retention time.Duration, now time.Time) (int64, error) {
	f.called++
	f.lastRetention = retention
	f.lastNow = now
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}
