package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/auth"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/repository"
	"github.com/snnyvrz/bookshelf/internal/validation"
)

// NotFoundMode selects how a scoped miss is reported.
type NotFoundMode string

const (
	// NotFoundCompat: GET answers 200 without a book, PUT answers 200 with
	// an error body, DELETE answers 404.
	NotFoundCompat NotFoundMode = "compat"
	// NotFoundStrict: every operation answers 404.
	NotFoundStrict NotFoundMode = "strict"
)

type BookHandler struct {
	repo         repository.BookRepository
	log          *zap.Logger
	notFoundMode NotFoundMode
}

type BookHandlerOption func(*BookHandler)

func WithNotFoundMode(mode NotFoundMode) BookHandlerOption {
	return func(h *BookHandler) {
		h.notFoundMode = mode
	}
}

func NewBookHandler(repo repository.BookRepository, log *zap.Logger, opts ...BookHandlerOption) *BookHandler {
	h := &BookHandler{
		repo:         repo,
		log:          log,
		notFoundMode: NotFoundCompat,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the book routes. r must already be guarded by the
// authentication middleware.
func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  List every book owned by the caller
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ListBooksResponse
// @Failure      401  {object}  ErrorMessageResponse      "Authentication required"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	books, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list books failed", zap.Stringer("user_id", userID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	c.JSON(http.StatusOK, toListBooksResponse(books))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get one of the caller's books. In compat mode a missing book yields 200 with no "book" field.
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  GetBookResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      401  {object}  ErrorMessageResponse      "Authentication required"
// @Failure      404  {object}  ErrorMessageResponse      "Book not found (strict mode)"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookID, ok := bindBookID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if h.notFoundMode == NotFoundStrict {
				writeNotFound(c, http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, GetBookResponse{})
			return
		}

		h.log.Error("fetch book failed",
			zap.Stringer("user_id", userID),
			zap.Stringer("book_id", bookID),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	resp := toBook(*book)
	c.JSON(http.StatusOK, GetBookResponse{Book: &resp})
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book owned by the caller. The response has no body.
// @Tags         books
// @Accept       json
// @Security     BearerAuth
// @Param        payload  body  CreateBookRequest  true  "Book to create"
// @Success      201  {string}  string  "Created"
// @Failure      400  {object}  validation.ErrorResponse  "Validation error"
// @Failure      401  {object}  ErrorMessageResponse      "Authentication required"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		ID:     uuid.New(),
		Title:  req.Title,
		Author: req.Author,
		Genrer: req.Genrer,
		UserID: userID,
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		h.log.Error("create book failed", zap.Stringer("user_id", userID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_CREATE_FAILED",
			"failed to create book",
		)
		return
	}

	c.Status(http.StatusCreated)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Merge the supplied fields over one of the caller's books. Absent or empty fields keep their value. In compat mode a missing book yields 200 with an error body.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string             true  "Book ID (UUID)"
// @Param        payload  body  UpdateBookRequest  true  "Fields to update"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID or payload"
// @Failure      401  {object}  ErrorMessageResponse      "Authentication required"
// @Failure      404  {object}  ErrorMessageResponse      "Book not found (strict mode)"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookID, ok := bindBookID(c)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.repo.Update(c.Request.Context(), userID, bookID, req.patch()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if h.notFoundMode == NotFoundStrict {
				writeNotFound(c, http.StatusNotFound)
				return
			}
			writeNotFound(c, http.StatusOK)
			return
		}

		h.log.Error("update book failed",
			zap.Stringer("user_id", userID),
			zap.Stringer("book_id", bookID),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError,
			"BOOK_UPDATE_FAILED",
			"failed to update book",
		)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Book updated successfully"})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete one of the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      401  {object}  ErrorMessageResponse      "Authentication required"
// @Failure      404  {object}  ErrorMessageResponse      "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookID, ok := bindBookID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), userID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeNotFound(c, http.StatusNotFound)
			return
		}

		h.log.Error("delete book failed",
			zap.Stringer("user_id", userID),
			zap.Stringer("book_id", bookID),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		writeUnauthorized(c)
		return uuid.Nil, false
	}
	return userID, true
}

func bindBookID(c *gin.Context) (uuid.UUID, bool) {
	var params BookIDParams
	if !validation.BindAndValidateURI(c, &params) {
		return uuid.Nil, false
	}

	// only the canonical dashed form, in either letter case
	bookID, err := uuid.Parse(params.ID)
	if len(params.ID) != 36 || err != nil {
		validation.AbortWithFieldError(c, "id", "uuid", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return bookID, true
}
