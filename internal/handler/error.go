package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/bookshelf/internal/validation"
)

const msgBookNotFound = "Book not found"

// MessageResponse is returned by successful writes that carry no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorMessageResponse is the body of not-found and unauthenticated signals.
type ErrorMessageResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

func writeNotFound(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, ErrorMessageResponse{Error: msgBookNotFound})
}

func writeUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorMessageResponse{Error: "authentication required"})
}
