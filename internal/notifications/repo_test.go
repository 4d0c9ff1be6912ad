package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db/models"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  link TEXT,
  read_at DATETIME,
  created_at DATETIME
);`).Error)
	return db
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, createdAt time.Time) uuid.UUID {
	t.Helper()
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationTypeBookingUpdate,
		Title:     "Booking update",
		Message:   "Your booking changed",
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(n).Error)
	return n.ID
}

func TestListPaginatesWithoutLosingRows(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Now().UTC().Add(-5 * time.Hour)
	want := make(map[uuid.UUID]bool, 5)
	for i := 0; i < 5; i++ {
		id := seedNotification(t, db, userID, base.Add(time.Duration(i)*time.Hour))
		want[id] = true
	}
	// Another user's notification never shows up.
	seedNotification(t, db, uuid.New(), base)

	seen := map[uuid.UUID]bool{}
	var cursor *pagination.Cursor
	pages := 0
	for {
		rows, next, err := repo.List(ctx, listNotificationsParams{UserID: userID, Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		for _, row := range rows {
			require.False(t, seen[row.ID], "row %s repeated across pages", row.ID)
			seen[row.ID] = true
		}
		pages++
		if next == nil {
			break
		}
		cursor = next
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, want, seen)
}
