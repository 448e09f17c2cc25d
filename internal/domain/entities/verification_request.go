package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RequestType is the lifecycle event a verification request decides
type RequestType string

const (
	RequestTypeRegistration RequestType = "REGISTRATION"
)

// DecisionAction is what an approver does with a pending request
type DecisionAction string

const (
	ActionApprove DecisionAction = "APPROVE"
	ActionReject  DecisionAction = "REJECT"
)

// Valid reports whether a is APPROVE or REJECT
func (a DecisionAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// Outcome is the status a request moves to under a
func (a DecisionAction) Outcome() VerificationStatus {
	if a == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// UserSnapshot is the user data captured when a request is opened
type UserSnapshot struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	Department   string    `json:"department"`
	EnrollmentNo string    `json:"enrollmentNo,omitempty"`
	TeacherID    string    `json:"teacherId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VerificationRequest is a ledger entry for a pending lifecycle decision
type VerificationRequest struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"userId"`
	Type         RequestType        `json:"type"`
	Status       VerificationStatus `json:"status"`
	ApprovedByID uuid.NullUUID      `json:"approvedById"`
	Reason       null.String        `json:"reason"`
	Snapshot     UserSnapshot       `json:"snapshot"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CanBeDecided reports whether action may still be applied to the request
func (r *VerificationRequest) CanBeDecided(action DecisionAction) bool {
	return r != nil && action.Valid() && r.Status.CanTransitionTo(action.Outcome())
}
