package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for caller data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyAuthType = "auth_type"
)

// AuthType indicates how the caller was authenticated
type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeCookie AuthType = "cookie"
)

// Middleware rejects requests that carry no valid token.
type Middleware struct {
	tokens     *TokenIssuer
	cookieName string
}

func NewMiddleware(tokens *TokenIssuer, cookieName string) *Middleware {
	return &Middleware{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// Handler returns a gin handler that resolves the caller or aborts with 401.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bearer wins over the cookie when both are present
		if userID, ok := m.tryBearer(c); ok {
			setCaller(c, userID, AuthTypeBearer)
			c.Next()
			return
		}

		if userID, ok := m.tryCookie(c); ok {
			setCaller(c, userID, AuthTypeCookie)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
	}
}

func (m *Middleware) tryBearer(c *gin.Context) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return uuid.Nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return uuid.Nil, false
	}

	userID, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func (m *Middleware) tryCookie(c *gin.Context) (uuid.UUID, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return uuid.Nil, false
	}

	userID, err := m.tokens.Parse(token)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func setCaller(c *gin.Context, userID uuid.UUID, authType AuthType) {
	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyAuthType, authType)
}

// UserID returns the authenticated caller. ok is false when the request did
// not pass through the middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

func GetAuthType(c *gin.Context) AuthType {
	if v, exists := c.Get(ContextKeyAuthType); exists {
		if t, ok := v.(AuthType); ok {
			return t
		}
	}
	return ""
}
