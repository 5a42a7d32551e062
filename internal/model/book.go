package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is owned by exactly one user. Column names follow the public wire
// format, including the historical "genrer" spelling.
type Book struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string    `gorm:"not null" json:"title"`
	Author string    `gorm:"not null" json:"author"`
	Genrer string    `gorm:"column:genrer;not null" json:"genrer"`
	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
