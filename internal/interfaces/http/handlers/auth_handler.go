package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/interfaces/http/middleware"
	"college-portal.backend/internal/interfaces/http/response"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/utils"
)

// AuthService is the part of the auth usecase the handler needs
type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.UserView, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, access *jwt.Claims) error
	GetUser(ctx context.Context, id uuid.UUID) (*entities.UserView, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated,
		"Registration submitted. You can sign in once your account is approved.",
		gin.H{"userData": user},
	)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// RefreshToken rotates a refresh token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input entities.RefreshInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("refreshToken is required"))
		return
	}

	tokens, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Logout clears the stored refresh token and revokes the presented access token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	claims, _ := middleware.GetClaims(c)

	if err := h.authUsecase.Logout(c.Request.Context(), userID, claims); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	h.writeUser(c, userID)
}

// GetUser returns a user by id. Callers may read their own record; reading
// anyone else's needs a HOD or PROFESSOR role.
// GET /api/v1/auth/user/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		response.Error(c, domainerrors.Validation("Invalid user ID"))
		return
	}
	if id != callerID {
		if role, _ := middleware.GetUserRole(c); !role.IsStaff() {
			response.Error(c, domainerrors.Forbidden("cannot view another user"))
			return
		}
	}
	h.writeUser(c, id)
}

func (h *AuthHandler) writeUser(c *gin.Context, id uuid.UUID) {
	user, err := h.authUsecase.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":        user,
		"roleProfile": user.RoleProfile(),
	})
}
