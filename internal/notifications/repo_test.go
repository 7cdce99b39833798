package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Amanshah2829/smart-society-sub000/pkg/db/models"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	notifications := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  site_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  link TEXT,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(notifications).Error)
	return db
}

func insertNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, created time.Time, readAt *time.Time) *models.Notification {
	t.Helper()

	n := &models.Notification{
		ID:        uuid.New(),
		SiteID:    uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationTypeBillCreated,
		Title:     "title",
		Message:   "message",
		ReadAt:    readAt,
		CreatedAt: created,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestRepositoryDeleteReadOlderThan(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	cutoff := now.Add(-30 * 24 * time.Hour)

	staleReadAt := now.Add(-59 * 24 * time.Hour)
	staleRead := insertNotification(t, db, userID, now.Add(-60*24*time.Hour), &staleReadAt)
	staleUnread := insertNotification(t, db, userID, now.Add(-60*24*time.Hour), nil)
	freshReadAt := now.Add(-time.Hour)
	freshRead := insertNotification(t, db, userID, now.Add(-2*time.Hour), &freshReadAt)

	purged, err := repo.DeleteReadOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)

	ids := map[uuid.UUID]bool{}
	for _, n := range remaining {
		ids[n.ID] = true
	}
	assert.False(t, ids[staleRead.ID], "old read notification should be purged")
	assert.True(t, ids[staleUnread.ID], "unread notification must survive regardless of age")
	assert.True(t, ids[freshRead.ID], "read notification inside the window must survive")
}

func TestRepositoryMarkReadOnlyTouchesOwnerRow(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)

	ownerID := uuid.New()
	now := time.Now().UTC()
	note := insertNotification(t, db, ownerID, now.Add(-time.Hour), nil)

	touched, err := repo.MarkRead(context.Background(), uuid.New(), note.ID, now)
	require.NoError(t, err)
	assert.Zero(t, touched)

	touched, err = repo.MarkRead(context.Background(), ownerID, note.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), touched)

	unread, err := repo.CountUnread(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
