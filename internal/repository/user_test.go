package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/testutil"
)

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "Ada", Email: "  Ada@Example.com ", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "ada@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "A", Email: "dup@example.com", PasswordHash: "x"}))

	err := repo.Create(ctx, &model.User{Name: "B", Email: "dup@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
