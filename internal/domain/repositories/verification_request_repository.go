package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"college-portal.backend/internal/domain/entities"
)

// VerificationRequestRepository defines verification ledger operations
type VerificationRequestRepository interface {
	Create(ctx context.Context, request *entities.VerificationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationRequest, int64, error)
	CountPending(ctx context.Context) (int64, error)
	// MarkDecided moves a PENDING request to status. It fails with
	// ErrAlreadyProcessed when the request is no longer pending.
	MarkDecided(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, approverID uuid.UUID, reason null.String) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
