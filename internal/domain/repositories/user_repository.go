package repositories

import (
	"context"

	"github.com/google/uuid"

	"college-portal.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetRefreshToken overwrites the stored refresh token.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	// ClearRefreshToken nulls the stored refresh token. Clearing an empty
	// slot is not an error.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
	// CompareAndSwapRefreshToken replaces current with next only if current
	// is still the stored value. It reports whether the swap happened.
	CompareAndSwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error)
}
