package store

import (
	"testing"

	"chathub-service/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB points the store at a fresh in-memory sqlite database. The
// models are the same GORM schema production runs against Postgres.
func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled :memory: database is one database per connection.
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)
	database.Postgres = db
}

func seedUsers(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := UpsertUser(id, "User "+id, id+"@example.com")
		require.NoError(t, err)
	}
}
