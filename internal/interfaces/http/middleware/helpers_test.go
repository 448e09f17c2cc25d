package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/pkg/jwt"
)

type stubUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
	err   error
	calls int
}

func newStubUsers(users ...*entities.User) *stubUsers {
	s := &stubUsers{users: make(map[uuid.UUID]*entities.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUsers) set(u *entities.User) {
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
}

func (s *stubUsers) remove(id uuid.UUID) {
	s.mu.Lock()
	delete(s.users, id)
	s.mu.Unlock()
}

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revoked[tokenID], nil
}

var errStoreDown = errors.New("store down")

func newTokens() *jwt.JWTService {
	return jwt.NewJWTService(
		jwt.DomainConfig{Secret: "mw-access", Expiry: time.Minute},
		jwt.DomainConfig{Secret: "mw-refresh", Expiry: time.Hour},
	)
}

func newUser(role entities.UserRole, status entities.VerificationStatus) *entities.User {
	return &entities.User{
		ID:                 uuid.New(),
		Name:               "Test User",
		Email:              "user@college.edu",
		Role:               role,
		VerificationStatus: status,
	}
}

func serve(r http.Handler, method, path, token string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New()
}
