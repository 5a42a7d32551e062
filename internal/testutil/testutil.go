// Package testutil provides isolated in-memory databases and seed helpers.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snnyvrz/bookshelf/internal/model"
)

// NewTestDB opens a fresh shared-cache in-memory SQLite database with the
// schema migrated. Every call gets its own database name so tests can run in
// parallel without sharing rows.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewErrorDB opens a database without any tables, so every query fails.
func NewErrorDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:errdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to error test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// SeedUser stores a user whose password is "password123".
func SeedUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	user := model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}

	return user
}

func SeedBook(t *testing.T, db *gorm.DB, owner model.User, title, author, genrer string) model.Book {
	t.Helper()

	book := model.Book{
		ID:     uuid.New(),
		Title:  title,
		Author: author,
		Genrer: genrer,
		UserID: owner.ID,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}
