package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
)

func newUser(email string) *entities.User {
	now := time.Now()
	return &entities.User{
		ID:                 uuid.New(),
		Name:               "Ann",
		Email:              email,
		PasswordHash:       "hash",
		Role:               entities.RoleStudent,
		VerificationStatus: entities.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser("ann@x.com")
	u.ProfilePicture = null.StringFrom("ann.png")
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, entities.StatusPending, byID.VerificationStatus)
	require.Equal(t, "ann.png", byID.ProfilePicture.String)
	require.False(t, byID.RefreshToken.Valid)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, repo.UpdateVerificationStatus(ctx, u.ID, entities.StatusApproved))
	byID, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, byID.IsApproved())

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@x.com")))
	err := repo.Create(ctx, newUser("dup@x.com"))
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUserRepository_RefreshTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser("ann@x.com")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SetRefreshToken(ctx, u.ID, "r1"))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "r1", got.RefreshToken.String)

	swapped, err := repo.CompareAndSwapRefreshToken(ctx, u.ID, "r1", "r2")
	require.NoError(t, err)
	require.True(t, swapped)

	swapped, err = repo.CompareAndSwapRefreshToken(ctx, u.ID, "r1", "r3")
	require.NoError(t, err)
	require.False(t, swapped, "stale token must lose the swap")

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "r2", got.RefreshToken.String)

	require.NoError(t, repo.ClearRefreshToken(ctx, u.ID))
	require.NoError(t, repo.ClearRefreshToken(ctx, u.ID), "clearing twice is fine")
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.RefreshToken.Valid)

	swapped, err = repo.CompareAndSwapRefreshToken(ctx, u.ID, "r2", "r4")
	require.NoError(t, err)
	require.False(t, swapped, "a cleared slot never matches")
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.UpdateVerificationStatus(ctx, id, entities.StatusApproved), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetRefreshToken(ctx, id, "x"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.ClearRefreshToken(ctx, id), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, id), domainerrors.ErrNotFound)
}
