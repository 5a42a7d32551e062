package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/auth"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/repository"
)

const (
	testCookieName = "token"
	missingBookID  = "550e8400-e29b-41d4-a716-446655440000"
)

var testIssuer = auth.NewTokenIssuer("test-secret", time.Hour)

type fakeBookRepo struct {
	CreateFn     func(ctx context.Context, b *model.Book) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]model.Book, error)
	FindByIDFn   func(ctx context.Context, userID, id uuid.UUID) (*model.Book, error)
	UpdateFn     func(ctx context.Context, userID, id uuid.UUID, patch repository.BookPatch) error
	DeleteFn     func(ctx context.Context, userID, id uuid.UUID) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Book, error) {
	if f.ListByUserFn != nil {
		return f.ListByUserFn(ctx, userID)
	}
	return []model.Book{}, nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, userID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) Update(ctx context.Context, userID, id uuid.UUID, patch repository.BookPatch) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, userID, id, patch)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, userID, id)
	}
	return nil
}

func setupBookRouterWithRepo(bookRepo repository.BookRepository, opts ...BookHandlerOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	mw := auth.NewMiddleware(testIssuer, testCookieName)

	h := NewBookHandler(bookRepo, zap.NewNop(), opts...)
	h.RegisterRoutes(r.Group("", mw.Handler()))

	return r
}

func setupTestRouter(db *gorm.DB, opts ...BookHandlerOption) *gin.Engine {
	return setupBookRouterWithRepo(repository.NewGormBookRepository(db), opts...)
}

func setupAccountRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	accounts := auth.NewService(repository.NewGormUserRepository(db), testIssuer, bcrypt.MinCost)

	NewUserHandler(accounts, zap.NewNop()).RegisterRoutes(r.Group(""))
	NewSessionHandler(accounts, CookieConfig{Name: testCookieName, TTL: time.Hour}, zap.NewNop()).
		RegisterRoutes(r.Group(""))

	return r
}

// newRequest builds a request authenticated as userID. A nil userID sends no
// credentials. A non-nil body is JSON encoded unless it is already a string.
func newRequest(t *testing.T, method, path string, body any, userID *uuid.UUID) *http.Request {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if userID != nil {
		token, err := testIssuer.Issue(*userID)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
