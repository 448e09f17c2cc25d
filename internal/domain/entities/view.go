package entities

import (
	"time"

	"github.com/google/uuid"
)

// StudentView is the student sub-object of a UserView
type StudentView struct {
	EnrollmentNo string    `json:"enrollmentNo"`
	DepartmentID uuid.UUID `json:"departmentId"`
}

// ProfessorView is the professor sub-object of a UserView
type ProfessorView struct {
	TeacherID    string    `json:"teacherId"`
	DepartmentID uuid.UUID `json:"departmentId"`
}

// HodView is the HOD sub-object of a UserView
type HodView struct {
	DepartmentID uuid.UUID `json:"departmentId"`
}

// UserView is the normalized user shape returned to clients
type UserView struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Role               UserRole           `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	ProfilePicture     *string            `json:"profilePicture"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	Student            *StudentView       `json:"student,omitempty"`
	Professor          *ProfessorView     `json:"professor,omitempty"`
	Hod                *HodView           `json:"hod,omitempty"`
}

// NewUserView builds the view from a user and its (optional) role profile.
// A profile owned by another user is ignored.
func NewUserView(user *User, profile *RoleProfile) *UserView {
	if user == nil {
		return nil
	}
	view := &UserView{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		VerificationStatus: user.VerificationStatus,
		ProfilePicture:     user.ProfilePicture.Ptr(),
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
	if profile == nil || profile.UserID() != user.ID {
		return view
	}
	departmentID := profile.DepartmentID()
	switch {
	case profile.Student != nil:
		view.Student = &StudentView{EnrollmentNo: profile.Student.EnrollmentNo, DepartmentID: departmentID}
	case profile.Professor != nil:
		view.Professor = &ProfessorView{TeacherID: profile.Professor.TeacherID, DepartmentID: departmentID}
	case profile.Hod != nil:
		view.Hod = &HodView{DepartmentID: departmentID}
	}
	return view
}

// RoleProfile returns whichever role sub-object is set, or nil
func (v *UserView) RoleProfile() interface{} {
	switch {
	case v == nil:
		return nil
	case v.Student != nil:
		return v.Student
	case v.Professor != nil:
		return v.Professor
	case v.Hod != nil:
		return v.Hod
	}
	return nil
}
