package repositories

import (
	"context"

	"github.com/google/uuid"

	"college-portal.backend/internal/domain/entities"
)

// ProfileRepository persists the role-specific side records
type ProfileRepository interface {
	Create(ctx context.Context, profile entities.RoleProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID, role entities.UserRole) (*entities.RoleProfile, error)
	EnrollmentNoExists(ctx context.Context, enrollmentNo string) (bool, error)
	TeacherIDExists(ctx context.Context, teacherID string) (bool, error)
	HodExistsForDepartment(ctx context.Context, departmentID uuid.UUID) (bool, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// DepartmentRepository defines department lookups
type DepartmentRepository interface {
	Create(ctx context.Context, department *entities.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	GetByCode(ctx context.Context, code string) (*entities.Department, error)
}
