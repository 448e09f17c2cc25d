package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleProfessor UserRole = "PROFESSOR"
	RoleHOD       UserRole = "HOD"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleHOD:
		return true
	}
	return false
}

// IsStaff reports whether r is a HOD or PROFESSOR
func (r UserRole) IsStaff() bool {
	return r == RoleHOD || r == RoleProfessor
}

// VerificationStatus is the approval state of a user or a verification request
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "PENDING"
	StatusApproved VerificationStatus = "APPROVED"
	StatusRejected VerificationStatus = "REJECTED"
)

// CanTransitionTo reports whether s may move to next. Only PENDING moves,
// and only to a terminal state.
func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// User represents a user entity
type User struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Role               UserRole           `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	ProfilePicture     null.String        `json:"profilePicture"`
	RefreshToken       null.String        `json:"-"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// IsApproved reports whether the user may log in
func (u *User) IsApproved() bool {
	return u != nil && u.VerificationStatus == StatusApproved
}

// CanDecideRequests reports whether the user may approve or reject registrations
func (u *User) CanDecideRequests() bool {
	return u.IsApproved() && u.Role.IsStaff()
}
