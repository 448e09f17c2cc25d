package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"college-portal.backend/internal/domain/entities"
	"college-portal.backend/internal/infrastructure/models"
)

// DepartmentRepository implements department lookups
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create inserts a department; codes are stored upper-case
func (r *DepartmentRepository) Create(ctx context.Context, department *entities.Department) error {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	now := time.Now()
	department.Code = strings.ToUpper(strings.TrimSpace(department.Code))
	department.CreatedAt, department.UpdatedAt = now, now

	m := &models.Department{
		ID:        department.ID,
		Code:      department.Code,
		Name:      department.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return translateWriteError(GetDB(ctx, r.db).Create(m).Error, "department")
}

// GetByID gets a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	var m models.Department
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDepartmentEntity(&m), nil
}

// GetByCode gets a department by its code, case-insensitively
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*entities.Department, error) {
	var m models.Department
	if err := GetDB(ctx, r.db).Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDepartmentEntity(&m), nil
}

func toDepartmentEntity(m *models.Department) *entities.Department {
	return &entities.Department{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
