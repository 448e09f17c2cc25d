package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/infrastructure/models"
)

// ProfileRepository stores role profiles across the students, professors
// and hods tables
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts the row for whichever variant the profile carries
func (r *ProfileRepository) Create(ctx context.Context, profile entities.RoleProfile) error {
	if !profile.Valid() {
		return fmt.Errorf("role profile does not match role %q: %w", profile.Role, domainerrors.ErrValidation)
	}

	db := GetDB(ctx, r.db)
	now := time.Now()
	switch {
	case profile.Student != nil:
		s := profile.Student
		m := &models.Student{ID: s.ID, UserID: s.UserID, EnrollmentNo: s.EnrollmentNo, DepartmentID: s.DepartmentID, CreatedAt: now}
		return translateWriteError(db.Create(m).Error, "enrollmentNo")
	case profile.Professor != nil:
		p := profile.Professor
		m := &models.Professor{ID: p.ID, UserID: p.UserID, TeacherID: p.TeacherID, DepartmentID: p.DepartmentID, CreatedAt: now}
		return translateWriteError(db.Create(m).Error, "teacherId")
	default:
		h := profile.Hod
		m := &models.Hod{ID: h.ID, UserID: h.UserID, DepartmentID: h.DepartmentID, CreatedAt: now}
		return translateWriteError(db.Create(m).Error, "department HOD")
	}
}

// GetByUserID loads the profile of a user with the given role
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID, role entities.UserRole) (*entities.RoleProfile, error) {
	db := GetDB(ctx, r.db)
	switch role {
	case entities.RoleStudent:
		var m models.Student
		if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
			return nil, notFound(err)
		}
		return &entities.RoleProfile{Role: role, Student: &entities.StudentProfile{
			ID: m.ID, UserID: m.UserID, EnrollmentNo: m.EnrollmentNo, DepartmentID: m.DepartmentID,
		}}, nil
	case entities.RoleProfessor:
		var m models.Professor
		if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
			return nil, notFound(err)
		}
		return &entities.RoleProfile{Role: role, Professor: &entities.ProfessorProfile{
			ID: m.ID, UserID: m.UserID, TeacherID: m.TeacherID, DepartmentID: m.DepartmentID,
		}}, nil
	case entities.RoleHOD:
		var m models.Hod
		if err := db.Where("user_id = ?", userID).First(&m).Error; err != nil {
			return nil, notFound(err)
		}
		return &entities.RoleProfile{Role: role, Hod: &entities.HodProfile{
			ID: m.ID, UserID: m.UserID, DepartmentID: m.DepartmentID,
		}}, nil
	}
	return nil, domainerrors.ErrNotFound
}

// EnrollmentNoExists reports whether a student already holds the number
func (r *ProfileRepository) EnrollmentNoExists(ctx context.Context, enrollmentNo string) (bool, error) {
	return r.exists(ctx, &models.Student{}, "enrollment_no = ?", enrollmentNo)
}

// TeacherIDExists reports whether a professor already holds the id
func (r *ProfileRepository) TeacherIDExists(ctx context.Context, teacherID string) (bool, error) {
	return r.exists(ctx, &models.Professor{}, "teacher_id = ?", teacherID)
}

// HodExistsForDepartment reports whether the department already has a head
func (r *ProfileRepository) HodExistsForDepartment(ctx context.Context, departmentID uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Hod{}, "department_id = ?", departmentID)
}

// DeleteByUserID removes every profile row of the user
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	for _, m := range []interface{}{&models.Student{}, &models.Professor{}, &models.Hod{}} {
		if err := db.Where("user_id = ?", userID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ProfileRepository) exists(ctx context.Context, model interface{}, query string, arg interface{}) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(model).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
