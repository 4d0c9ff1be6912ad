package vendors

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
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  legacy_ref TEXT,
  business_name TEXT NOT NULL,
  category_id TEXT,
  description TEXT,
  location TEXT,
  rating_sum INTEGER NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func seedVendorRow(t *testing.T, db *gorm.DB, createdAt time.Time) uuid.UUID {
	t.Helper()
	vendor := &models.Vendor{
		ID:           uuid.New(),
		BusinessName: "Vendor " + uuid.NewString()[:8],
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor.ID
}

func TestListPaginatesWithoutLosingRows(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-5 * time.Hour)
	want := make(map[uuid.UUID]bool, 5)
	for i := 0; i < 5; i++ {
		id := seedVendorRow(t, db, base.Add(time.Duration(i)*time.Hour))
		want[id] = true
	}

	seen := map[uuid.UUID]bool{}
	cursor := ""
	pages := 0
	for {
		page, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: cursor}, nil)
		require.NoError(t, err)
		for _, vendor := range page.Vendors {
			require.False(t, seen[vendor.ID], "row %s repeated across pages", vendor.ID)
			seen[vendor.ID] = true
		}
		pages++
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, want, seen)
}
