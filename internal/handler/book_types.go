package handler

import (
	"github.com/google/uuid"

	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/repository"
)

type BookIDParams struct {
	ID string `uri:"id" binding:"required"`
}

type CreateBookRequest struct {
	Title  string `json:"title" binding:"required" example:"Dune"`
	Author string `json:"author" binding:"required" example:"Frank Herbert"`
	Genrer string `json:"genrer" binding:"required" example:"Sci-Fi"`
}

// UpdateBookRequest fields are all optional. An empty string keeps the
// stored value.
type UpdateBookRequest struct {
	Title  *string `json:"title" example:"Dune Messiah"`
	Author *string `json:"author"`
	Genrer *string `json:"genrer"`
}

func (r UpdateBookRequest) patch() repository.BookPatch {
	return repository.BookPatch{
		Title:  r.Title,
		Author: r.Author,
		Genrer: r.Genrer,
	}
}

type Book struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Genrer string    `json:"genrer"`
	UserID uuid.UUID `json:"user_id"`
}

type ListBooksResponse struct {
	Books []Book `json:"books"`
}

// GetBookResponse omits "book" entirely when the lookup found nothing.
type GetBookResponse struct {
	Book *Book `json:"book,omitempty"`
}

func toBook(b model.Book) Book {
	return Book{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Genrer: b.Genrer,
		UserID: b.UserID,
	}
}

func toListBooksResponse(books []model.Book) ListBooksResponse {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, toBook(b))
	}
	return ListBooksResponse{Books: out}
}
