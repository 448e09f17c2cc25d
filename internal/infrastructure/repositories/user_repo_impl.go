package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		PasswordHash:       user.PasswordHash,
		Role:               string(user.Role),
		VerificationStatus: string(user.VerificationStatus),
		ProfilePicture:     sql.NullString{String: user.ProfilePicture.String, Valid: user.ProfilePicture.Valid},
		RefreshToken:       sql.NullString{String: user.RefreshToken.String, Valid: user.RefreshToken.Valid},
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
	return translateWriteError(GetDB(ctx, r.db).Create(m).Error, "user")
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return r.toEntity(&m), nil
}

// UpdateVerificationStatus sets the user's approval state
func (r *UserRepository) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	return r.update(ctx, id, map[string]interface{}{
		"verification_status": string(status),
		"updated_at":          time.Now(),
	})
}

// SetRefreshToken overwrites the stored refresh token
func (r *UserRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.update(ctx, id, map[string]interface{}{
		"refresh_token": token,
		"updated_at":    time.Now(),
	})
}

// ClearRefreshToken nulls the stored refresh token
func (r *UserRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, map[string]interface{}{
		"refresh_token": gorm.Expr("NULL"),
		"updated_at":    time.Now(),
	})
}

// CompareAndSwapRefreshToken rotates the stored token only if it still equals current
func (r *UserRepository) CompareAndSwapRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error) {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Updates(map[string]interface{}{
			"refresh_token": next,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete hard deletes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               entities.UserRole(m.Role),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		ProfilePicture:     null.NewString(m.ProfilePicture.String, m.ProfilePicture.Valid),
		RefreshToken:       null.NewString(m.RefreshToken.String, m.RefreshToken.Valid),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
