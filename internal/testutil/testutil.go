package testutil

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is its own database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func strPtr(s string) *string { return &s }

// SeedUser inserts a user directly, bypassing registration hooks.
func SeedUser(t *testing.T, db *gorm.DB, id, phone string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           id,
		FirstName:    id,
		Email:        id + "@example.com",
		Phone:        phone,
		ProfileImage: strPtr("https://img.example.com/" + id + ".jpg"),
		Subscription: models.SubscriptionFree,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func SeedGroup(t *testing.T, db *gorm.DB, owner, name string) *models.Group {
	t.Helper()
	g := &models.Group{Owner: owner, Name: name, EmojiThumbnail: "📸"}
	require.NoError(t, db.Create(g).Error)
	return g
}

func SeedAlbum(t *testing.T, db *gorm.DB, owner, name string) *models.Album {
	t.Helper()
	a := &models.Album{Owner: owner, Name: name}
	require.NoError(t, db.Create(a).Error)
	return a
}
