package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestGormBookRepository_ListByUser_OnlyOwnBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")

	a1 := testutil.SeedBook(t, db, alice, "Dune", "Frank Herbert", "Sci-Fi")
	a2 := testutil.SeedBook(t, db, alice, "Emma", "Jane Austen", "Romance")
	testutil.SeedBook(t, db, bob, "Ulysses", "James Joyce", "Modernist")

	books, err := repo.ListByUser(context.Background(), alice.ID)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		assert.Equal(t, alice.ID, b.UserID)
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, ids)
}

func TestGormBookRepository_ListByUser_EmptyIsNotNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	books, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestGormBookRepository_Create_KeepsCallerID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	owner := testutil.SeedUser(t, db, "owner@example.com")

	id := uuid.New()
	book := &model.Book{ID: id, Title: "T", Author: "A", Genrer: "G", UserID: owner.ID}
	require.NoError(t, repo.Create(context.Background(), book))

	stored, err := repo.FindByID(context.Background(), owner.ID, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "G", stored.Genrer)
}

func TestGormBookRepository_FindByID_ScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	book := testutil.SeedBook(t, db, alice, "Dune", "Frank Herbert", "Sci-Fi")

	found, err := repo.FindByID(context.Background(), alice.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)

	_, err = repo.FindByID(context.Background(), bob.ID, book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormBookRepository_Update_MergesSuppliedFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	owner := testutil.SeedUser(t, db, "owner@example.com")
	book := testutil.SeedBook(t, db, owner, "Old Title", "Old Author", "Old Genre")

	err := repo.Update(context.Background(), owner.ID, book.ID, BookPatch{
		Title:  strPtr("New Title"),
		Author: strPtr(""),
	})
	require.NoError(t, err)

	var stored model.Book
	require.NoError(t, db.First(&stored, "id = ?", book.ID).Error)
	assert.Equal(t, "New Title", stored.Title)
	assert.Equal(t, "Old Author", stored.Author)
	assert.Equal(t, "Old Genre", stored.Genrer)
	assert.Equal(t, owner.ID, stored.UserID)
}

func TestGormBookRepository_Update_OtherOwnerIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	book := testutil.SeedBook(t, db, alice, "Dune", "Frank Herbert", "Sci-Fi")

	err := repo.Update(context.Background(), bob.ID, book.ID, BookPatch{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var stored model.Book
	require.NoError(t, db.First(&stored, "id = ?", book.ID).Error)
	assert.Equal(t, "Dune", stored.Title)
}

func TestGormBookRepository_Update_EmptyPatchChecksExistence(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	owner := testutil.SeedUser(t, db, "owner@example.com")
	book := testutil.SeedBook(t, db, owner, "Dune", "Frank Herbert", "Sci-Fi")

	assert.NoError(t, repo.Update(context.Background(), owner.ID, book.ID, BookPatch{}))
	assert.ErrorIs(t,
		repo.Update(context.Background(), owner.ID, uuid.New(), BookPatch{}),
		gorm.ErrRecordNotFound,
	)
}

func TestGormBookRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	book := testutil.SeedBook(t, db, alice, "Dune", "Frank Herbert", "Sci-Fi")

	assert.ErrorIs(t, repo.Delete(context.Background(), bob.ID, book.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(context.Background(), alice.ID, book.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), alice.ID, book.ID), gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Book{}).Where("id = ?", book.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormBookRepository_ErrorsPropagate(t *testing.T) {
	repo := NewGormBookRepository(testutil.NewErrorDB(t))
	ctx := context.Background()

	_, err := repo.ListByUser(ctx, uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, uuid.New(), uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
