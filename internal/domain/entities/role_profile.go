package entities

import (
	"fmt"

	"github.com/google/uuid"

	domainerrors "college-portal.backend/internal/domain/errors"
)

// StudentProfile holds student-only attributes
type StudentProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	EnrollmentNo string
	DepartmentID uuid.UUID
}

// ProfessorProfile holds professor-only attributes
type ProfessorProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TeacherID    string
	DepartmentID uuid.UUID
}

// HodProfile links a head of department to the department it heads
type HodProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	DepartmentID uuid.UUID
}

// RoleProfile is the role-specific side record of a user. Exactly one of
// Student, Professor or Hod is set, matching Role.
type RoleProfile struct {
	Role      UserRole
	Student   *StudentProfile
	Professor *ProfessorProfile
	Hod       *HodProfile
}

// NewStudentProfile builds the STUDENT variant
func NewStudentProfile(userID, departmentID uuid.UUID, enrollmentNo string) RoleProfile {
	return RoleProfile{
		Role: RoleStudent,
		Student: &StudentProfile{
			ID:           uuid.New(),
			UserID:       userID,
			EnrollmentNo: enrollmentNo,
			DepartmentID: departmentID,
		},
	}
}

// NewProfessorProfile builds the PROFESSOR variant
func NewProfessorProfile(userID, departmentID uuid.UUID, teacherID string) RoleProfile {
	return RoleProfile{
		Role: RoleProfessor,
		Professor: &ProfessorProfile{
			ID:           uuid.New(),
			UserID:       userID,
			TeacherID:    teacherID,
			DepartmentID: departmentID,
		},
	}
}

// NewHodProfile builds the HOD variant
func NewHodProfile(userID, departmentID uuid.UUID) RoleProfile {
	return RoleProfile{
		Role: RoleHOD,
		Hod: &HodProfile{
			ID:           uuid.New(),
			UserID:       userID,
			DepartmentID: departmentID,
		},
	}
}

// BuildRoleProfile dispatches on the registration role. The input must
// already have passed Validate.
func BuildRoleProfile(input *RegisterInput, userID, departmentID uuid.UUID) (RoleProfile, error) {
	switch input.Role {
	case RoleStudent:
		return NewStudentProfile(userID, departmentID, input.EnrollmentNo), nil
	case RoleProfessor:
		return NewProfessorProfile(userID, departmentID, input.TeacherID), nil
	case RoleHOD:
		return NewHodProfile(userID, departmentID), nil
	default:
		return RoleProfile{}, fmt.Errorf("unknown role %q: %w", input.Role, domainerrors.ErrValidation)
	}
}

// UserID returns the owning user id
func (p RoleProfile) UserID() uuid.UUID {
	switch {
	case p.Student != nil:
		return p.Student.UserID
	case p.Professor != nil:
		return p.Professor.UserID
	case p.Hod != nil:
		return p.Hod.UserID
	}
	return uuid.Nil
}

// DepartmentID returns the department of whichever variant is set
func (p RoleProfile) DepartmentID() uuid.UUID {
	switch {
	case p.Student != nil:
		return p.Student.DepartmentID
	case p.Professor != nil:
		return p.Professor.DepartmentID
	case p.Hod != nil:
		return p.Hod.DepartmentID
	}
	return uuid.Nil
}

// Valid reports whether exactly the variant matching Role is set
func (p RoleProfile) Valid() bool {
	set := 0
	for _, ok := range []bool{p.Student != nil, p.Professor != nil, p.Hod != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch p.Role {
	case RoleStudent:
		return p.Student != nil
	case RoleProfessor:
		return p.Professor != nil
	case RoleHOD:
		return p.Hod != nil
	}
	return false
}
