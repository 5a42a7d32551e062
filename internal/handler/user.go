package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snnyvrz/bookshelf/internal/auth"
	"github.com/snnyvrz/bookshelf/internal/validation"
)

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

type RegisterUserResponse struct {
	ID uuid.UUID `json:"id"`
}

type UserHandler struct {
	accounts *auth.Service
	log      *zap.Logger
}

func NewUserHandler(accounts *auth.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, log: log}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("/register", h.Register)
	}
}

// Register godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterUserRequest       true  "Account to create"
// @Success      201      {object}  RegisterUserResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      409      {object}  validation.ErrorResponse  "Email already registered"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			validation.AbortWithFieldError(c, "password", "max", "password must be at most 72 bytes")
			return
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			writeError(c, http.StatusConflict,
				"EMAIL_TAKEN",
				"email already registered",
			)
			return
		}

		h.log.Error("register user failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"USER_CREATE_FAILED",
			"failed to create user",
		)
		return
	}

	c.JSON(http.StatusCreated, RegisterUserResponse{ID: user.ID})
}
