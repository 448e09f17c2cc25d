package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/domain/repositories"
	"college-portal.backend/pkg/crypto"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/logger"
	"college-portal.backend/pkg/metrics"
	"college-portal.backend/pkg/utils"
)

// TokenRevoker denies access tokens before their natural expiry
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthUsecase handles registration, login and the refresh-token session
type AuthUsecase struct {
	uow            repositories.UnitOfWork
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	departmentRepo repositories.DepartmentRepository
	requestRepo    repositories.VerificationRequestRepository
	hasher         *crypto.Hasher
	jwtService     *jwt.JWTService
	gate           *RefreshGate
	revoker        TokenRevoker
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	departmentRepo repositories.DepartmentRepository,
	requestRepo repositories.VerificationRequestRepository,
	hasher *crypto.Hasher,
	jwtService *jwt.JWTService,
	gate *RefreshGate,
	revoker TokenRevoker,
) *AuthUsecase {
	return &AuthUsecase{
		uow:            uow,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		departmentRepo: departmentRepo,
		requestRepo:    requestRepo,
		hasher:         hasher,
		jwtService:     jwtService,
		gate:           gate,
		revoker:        revoker,
	}
}

// Register creates a PENDING user, its role profile and a registration
// request in one transaction. Checks run in a fixed order and the first
// failure wins.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.UserView, error) {
	view, err := u.register(ctx, input)
	result := "success"
	if err != nil {
		result = "failure"
	}
	role := string(input.Role)
	if !input.Role.Valid() {
		role = "unknown"
	}
	metrics.AuthRegistrationsTotal.WithLabelValues(role, result).Inc()
	return view, err
}

func (u *AuthUsecase) register(ctx context.Context, input *entities.RegisterInput) (*entities.UserView, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dept, err := u.departmentRepo.GetByCode(ctx, input.Department)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("department %q not found: %w", input.Department, domainerrors.ErrNotFound)
		}
		return nil, err
	}

	if err := u.checkRoleUniqueness(ctx, input, dept.ID); err != nil {
		return nil, err
	}

	_, err = u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, fmt.Errorf("email already in use: %w", domainerrors.ErrConflict)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:                 utils.GenerateUUIDv7(),
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       passwordHash,
		Role:               input.Role,
		VerificationStatus: entities.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	profile, err := entities.BuildRoleProfile(input, user.ID, dept.ID)
	if err != nil {
		return nil, err
	}

	request := &entities.VerificationRequest{
		ID:     utils.GenerateUUIDv7(),
		UserID: user.ID,
		Type:   entities.RequestTypeRegistration,
		Status: entities.StatusPending,
		Snapshot: entities.UserSnapshot{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Role:         user.Role,
			Department:   dept.Code,
			EnrollmentNo: input.EnrollmentNo,
			TeacherID:    input.TeacherID,
			CreatedAt:    now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := u.profileRepo.Create(txCtx, profile); err != nil {
			return err
		}
		return u.requestRepo.Create(txCtx, request)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("department", dept.Code),
	)
	return entities.NewUserView(user, &profile), nil
}

func (u *AuthUsecase) checkRoleUniqueness(ctx context.Context, input *entities.RegisterInput, departmentID uuid.UUID) error {
	var (
		taken bool
		err   error
		what  string
	)
	switch input.Role {
	case entities.RoleHOD:
		taken, err = u.profileRepo.HodExistsForDepartment(ctx, departmentID)
		what = "department already has an HOD"
	case entities.RoleStudent:
		taken, err = u.profileRepo.EnrollmentNoExists(ctx, input.EnrollmentNo)
		what = "enrollmentNo already in use"
	case entities.RoleProfessor:
		taken, err = u.profileRepo.TeacherIDExists(ctx, input.TeacherID)
		what = "teacherId already in use"
	}
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s: %w", what, domainerrors.ErrConflict)
	}
	return nil
}

// Login authenticates an APPROVED user and starts a new session,
// replacing any previous refresh token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	resp, err := u.login(ctx, input)
	switch {
	case err == nil:
		metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	case errors.Is(err, domainerrors.ErrNotApproved):
		metrics.AuthLoginsTotal.WithLabelValues("not_approved").Inc()
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		metrics.AuthLoginsTotal.WithLabelValues("invalid_credentials").Inc()
	default:
		metrics.AuthLoginsTotal.WithLabelValues("error").Inc()
	}
	return resp, err
}

func (u *AuthUsecase) login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := u.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password of user %s: %w", user.ID, err)
	}
	if !ok || input.Role != user.Role {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsApproved() {
		return nil, domainerrors.ErrNotApproved
	}

	pair, err := u.jwtService.IssuePair(user.ID)
	if err != nil {
		return nil, issueError(err)
	}
	if err := u.userRepo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()

	profile, err := u.loadProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         entities.NewUserView(user, profile),
	}, nil
}

// RefreshToken rotates a refresh token. A token that is not the one stored
// for its user is treated as stolen: the session is revoked and
// ErrTokenReuse returned.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims := u.jwtService.VerifyRefresh(refreshToken)
	if claims == nil {
		return nil, fmt.Errorf("invalid or expired refresh token: %w", domainerrors.ErrUnauthorized)
	}

	rotateCtx := context.WithoutCancel(ctx)
	pair, _, err := u.gate.Do(refreshToken, func() (*jwt.TokenPair, error) {
		return u.rotate(rotateCtx, claims.UserID, refreshToken)
	})
	return pair, err
}

func (u *AuthUsecase) rotate(ctx context.Context, userID uuid.UUID, presented string) (*jwt.TokenPair, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", domainerrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.RefreshToken.Valid || user.RefreshToken.String != presented {
		return nil, u.revokeOnReuse(ctx, user.ID, "stored token mismatch")
	}

	pair, err := u.jwtService.IssuePair(user.ID)
	if err != nil {
		return nil, issueError(err)
	}

	swapped, err := u.userRepo.CompareAndSwapRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, u.revokeOnReuse(ctx, user.ID, "token rotated concurrently")
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return pair, nil
}

func (u *AuthUsecase) revokeOnReuse(ctx context.Context, userID uuid.UUID, reason string) error {
	metrics.RefreshReuseTotal.Inc()
	logger.Warn(ctx, "Refresh token reuse detected, revoking session",
		zap.String("user_id", userID.String()),
		zap.String("reason", reason),
	)
	if err := u.userRepo.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		logger.Error(ctx, "Failed to clear refresh token after reuse", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return domainerrors.ErrTokenReuse
}

// Logout ends the user's session. The stored refresh token is cleared and
// the presented access token denied until it expires. Repeating a logout
// is not an error.
func (u *AuthUsecase) Logout(ctx context.Context, userID uuid.UUID, access *jwt.Claims) error {
	if err := u.userRepo.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	if access == nil || access.ID == "" || u.revoker == nil {
		return nil
	}
	if err := u.revoker.Revoke(ctx, access.ID, u.denyFor(access)); err != nil {
		logger.Error(ctx, "Failed to deny access token on logout",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// denyFor is the remaining life of an access token, capped at one access
// lifetime
func (u *AuthUsecase) denyFor(access *jwt.Claims) time.Duration {
	ttl := u.jwtService.AccessTTL()
	if access.ExpiresAt != nil {
		if remaining := time.Until(access.ExpiresAt.Time); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

// GetUser returns the user view with its role profile
func (u *AuthUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entities.UserView, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}

	profile, err := u.loadProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	return entities.NewUserView(user, profile), nil
}

func (u *AuthUsecase) loadProfile(ctx context.Context, user *entities.User) (*entities.RoleProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, user.ID, user.Role)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func issueError(err error) error {
	if errors.Is(err, jwt.ErrMissingSecret) {
		return fmt.Errorf("%v: %w", err, domainerrors.ErrConfiguration)
	}
	return err
}
