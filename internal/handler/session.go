package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snnyvrz/bookshelf/internal/auth"
	"github.com/snnyvrz/bookshelf/internal/validation"
)

type CreateSessionRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type CreateSessionResponse struct {
	Token string `json:"token"`
}

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type SessionHandler struct {
	accounts *auth.Service
	cookie   CookieConfig
	log      *zap.Logger
}

func NewSessionHandler(accounts *auth.Service, cookie CookieConfig, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		accounts: accounts,
		cookie:   cookie,
		log:      log,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/session", h.CreateSession)
	r.DELETE("/session", h.DeleteSession)
}

// CreateSession godoc
// @Summary      Log in
// @Description  Exchange credentials for a token. The token is also set as an HttpOnly cookie.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateSessionRequest      true  "Credentials"
// @Success      200      {object}  CreateSessionResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      401      {object}  validation.ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(c, http.StatusUnauthorized,
				"INVALID_CREDENTIALS",
				"invalid email or password",
			)
			return
		}

		h.log.Error("create session failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"SESSION_CREATE_FAILED",
			"failed to create session",
		)
		return
	}

	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))
	c.JSON(http.StatusOK, CreateSessionResponse{Token: token})
}

// DeleteSession godoc
// @Summary      Log out
// @Description  Clear the session cookie
// @Tags         session
// @Success      204  {string}  string  "No content"
// @Router       /session [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
