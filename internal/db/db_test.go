package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snnyvrz/bookshelf/internal/config"
	"github.com/snnyvrz/bookshelf/internal/model"
)

func TestConnectWithRetry_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:          config.DriverSQLite,
		SQLitePath:        filepath.Join(t.TempDir(), "books.db"),
		DBConnectAttempts: 1,
	}

	gdb, err := ConnectWithRetry(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable(&model.Book{}))
	assert.True(t, gdb.Migrator().HasTable(&model.User{}))
	assert.True(t, gdb.Migrator().HasColumn(&model.Book{}, "genrer"))
}

func TestConnectWithRetry_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle", DBConnectAttempts: 1}

	_, err := ConnectWithRetry(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	cfg := &config.Config{
		DBDriver:          config.DriverSQLite,
		SQLitePath:        filepath.Join(t.TempDir(), "missing-dir", "books.db"),
		DBConnectAttempts: 2,
		DBConnectDelay:    time.Millisecond,
	}

	_, err := ConnectWithRetry(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "after 2 attempts")
}
