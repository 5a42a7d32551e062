package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/model"
)

// BookRepository runs every query scoped to the owning user. A book owned by
// someone else behaves exactly like a missing one: gorm.ErrRecordNotFound.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Book, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch BookPatch) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BookPatch carries the fields of a partial update. Nil and empty values
// keep the stored value.
type BookPatch struct {
	Title  *string
	Author *string
	Genrer *string
}

func (p BookPatch) columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Title != nil && *p.Title != "" {
		cols["title"] = *p.Title
	}
	if p.Author != nil && *p.Author != "" {
		cols["author"] = *p.Author
	}
	if p.Genrer != nil && *p.Genrer != "" {
		cols["genrer"] = *p.Genrer
	}
	return cols
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Book, error) {
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&book).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

// Update applies the patch in one conditional statement so that ownership
// and existence are checked by the same write. An empty patch only checks
// that the book exists.
func (r *GormBookRepository) Update(ctx context.Context, userID, id uuid.UUID, patch BookPatch) error {
	scoped := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ? AND user_id = ?", id, userID)

	cols := patch.columns()
	if len(cols) == 0 {
		var count int64
		if err := scoped.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	result := scoped.Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
