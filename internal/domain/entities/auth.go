package entities

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	domainerrors "college-portal.backend/internal/domain/errors"
)

const (
	// MinPasswordLength is the shortest password accepted at registration
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt can hash
	MaxPasswordBytes = 72
	// IdentifierLength is the exact length of an enrollment number or teacher id
	IdentifierLength = 12
)

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required"`
	Password     string   `json:"password" binding:"required"`
	Role         UserRole `json:"role" binding:"required"`
	Department   string   `json:"department" binding:"required"`
	EnrollmentNo string   `json:"enrollmentNo"`
	TeacherID    string   `json:"teacherId"`
}

// Normalize trims surrounding whitespace and lowercases the email
func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Department = strings.TrimSpace(in.Department)
	in.EnrollmentNo = strings.TrimSpace(in.EnrollmentNo)
	in.TeacherID = strings.TrimSpace(in.TeacherID)
}

// Validate checks field presence and the per-role field rules
func (in *RegisterInput) Validate() error {
	if in.Name == "" {
		return invalid("name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || strings.ContainsAny(in.Email, "<> ") {
		return invalid("email is invalid")
	}
	if len(in.Password) < MinPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(in.Password) > MaxPasswordBytes {
		return invalid(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	if in.Department == "" {
		return invalid("department is required")
	}

	switch in.Role {
	case RoleStudent:
		if len(in.EnrollmentNo) != IdentifierLength {
			return invalid(fmt.Sprintf("enrollmentNo must be exactly %d characters", IdentifierLength))
		}
		if in.TeacherID != "" {
			return invalid("teacherId is not allowed for students")
		}
	case RoleProfessor:
		if len(in.TeacherID) != IdentifierLength {
			return invalid(fmt.Sprintf("teacherId must be exactly %d characters", IdentifierLength))
		}
		if in.EnrollmentNo != "" {
			return invalid("enrollmentNo is not allowed for professors")
		}
	case RoleHOD:
		if in.EnrollmentNo != "" || in.TeacherID != "" {
			return invalid("enrollmentNo and teacherId are not allowed for HODs")
		}
	default:
		return invalid("role must be one of STUDENT, PROFESSOR, HOD")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, domainerrors.ErrValidation)
}

// LoginInput represents input for user login
type LoginInput struct {
	Role     UserRole `json:"role" binding:"required"`
	Email    string   `json:"email" binding:"required"`
	Password string   `json:"password" binding:"required"`
}

// RefreshInput carries the refresh token to rotate
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// DecideInput is an approver's decision on a verification request
type DecideInput struct {
	ApproverID uuid.UUID      `json:"approverId"`
	RequestID  uuid.UUID      `json:"requestId" binding:"required"`
	Action     DecisionAction `json:"action" binding:"required"`
	Reason     string         `json:"reason"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         *UserView `json:"userData,omitempty"`
}

// DecisionResult is returned by an approval decision. User and tokens are
// only set on APPROVE.
type DecisionResult struct {
	RequestID uuid.UUID          `json:"requestId"`
	Status    VerificationStatus `json:"status"`
	User      *UserView          `json:"userData,omitempty"`
	Tokens    *AuthResponse      `json:"tokens,omitempty"`
}
