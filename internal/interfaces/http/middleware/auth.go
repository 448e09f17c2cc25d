package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/interfaces/http/response"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// UserStatusKey is the context key for the verification status
	UserStatusKey = "userStatus"
	// ClaimsKey is the context key for the verified access claims
	ClaimsKey = "accessClaims"
)

// AccessVerifier checks access tokens
type AccessVerifier interface {
	VerifyAccess(tokenString string) *jwt.Claims
}

// UserFinder loads the current state of a user
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// RevocationChecker reports whether an access token id was revoked
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate requires a valid bearer access token whose subject still
// exists. denylist may be nil.
func Authenticate(tokens AccessVerifier, users UserFinder, denylist RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Error(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		claims := tokens.VerifyAccess(strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix)))
		if claims == nil {
			response.Error(c, domainerrors.Unauthorized("invalid or expired token"))
			return
		}

		if denylist != nil {
			revoked, err := denylist.IsRevoked(ctx, claims.ID)
			if err != nil {
				logger.Error(ctx, "Token denylist lookup failed", zap.Error(err))
				response.Error(c, domainerrors.Unavailable("authentication is temporarily unavailable"))
				return
			}
			if revoked {
				response.Error(c, domainerrors.Unauthorized("token has been revoked"))
				return
			}
		}

		user, err := users.GetByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.Error(c, domainerrors.Unauthorized("user no longer exists"))
				return
			}
			response.Error(c, err)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserRoleKey, user.Role)
		c.Set(UserStatusKey, user.VerificationStatus)
		c.Set(ClaimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(ctx, logger.UserIDKey, user.ID.String()))

		c.Next()
	}
}

// RequireRole lets the request through only when the stored role of the
// authenticated user is one of roles. It must run after Authenticate.
func RequireRole(users UserFinder, roles ...entities.UserRole) gin.HandlerFunc {
	allowed := make(map[entities.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.Error(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.Error(c, domainerrors.Unauthorized("user no longer exists"))
				return
			}
			response.Error(c, err)
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			response.Error(c, domainerrors.Forbidden("insufficient permissions"))
			return
		}

		c.Set(UserRoleKey, user.Role)
		c.Set(UserStatusKey, user.VerificationStatus)
		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(entities.UserRole)
	return r, ok
}

// GetClaims gets the verified access claims from context
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	claims, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	cl, ok := claims.(*jwt.Claims)
	return cl, ok && cl != nil
}
