package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"college-portal.backend/internal/domain/entities"
	"college-portal.backend/internal/interfaces/http/middleware"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/utils"
)

type authServiceStub struct {
	registerFn func(ctx context.Context, input *entities.RegisterInput) (*entities.UserView, error)
	loginFn    func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	logoutFn   func(ctx context.Context, userID uuid.UUID, access *jwt.Claims) error
	getUserFn  func(ctx context.Context, id uuid.UUID) (*entities.UserView, error)
}

func (s authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.UserView, error) {
	return s.registerFn(ctx, input)
}
func (s authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}
func (s authServiceStub) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}
func (s authServiceStub) Logout(ctx context.Context, userID uuid.UUID, access *jwt.Claims) error {
	return s.logoutFn(ctx, userID, access)
}
func (s authServiceStub) GetUser(ctx context.Context, id uuid.UUID) (*entities.UserView, error) {
	return s.getUserFn(ctx, id)
}

type verificationServiceStub struct {
	listFn   func(ctx context.Context, page, limit int) ([]*entities.VerificationRequest, utils.PaginationMeta, error)
	decideFn func(ctx context.Context, callerID uuid.UUID, input *entities.DecideInput) (*entities.DecisionResult, error)
}

func (s verificationServiceStub) ListPending(ctx context.Context, page, limit int) ([]*entities.VerificationRequest, utils.PaginationMeta, error) {
	return s.listFn(ctx, page, limit)
}
func (s verificationServiceStub) Decide(ctx context.Context, callerID uuid.UUID, input *entities.DecideInput) (*entities.DecisionResult, error) {
	return s.decideFn(ctx, callerID, input)
}

// withUser stands in for Authenticate
func withUser(userID uuid.UUID, claims *jwt.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		if claims != nil {
			c.Set(middleware.ClaimsKey, claims)
		}
		c.Next()
	}
}

// withCaller is withUser plus the stored role Authenticate resolves
func withCaller(userID uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
