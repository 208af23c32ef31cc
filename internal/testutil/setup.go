package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"player_bonus_service/internal/bonus"
	"player_bonus_service/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// SetupTestDB creates a private in-memory SQLite database and runs the
// migrations. One connection is shared by all callers, so concurrent writers
// are serialized the same way a real database serializes conflicting rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared&_foreign_keys=1", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "SetupTestDB: Open")

	sqlDB, err := db.DB()
	require.NoError(t, err, "SetupTestDB: DB")
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "SetupTestDB: Migrate")
	return db
}

// CreatePlayer inserts a player row and returns it.
func CreatePlayer(t *testing.T, db *gorm.DB, name, email string) *bonus.Player {
	t.Helper()
	p := &bonus.Player{Name: name, Email: email}
	require.NoError(t, db.Create(p).Error, "CreatePlayer")
	return p
}
