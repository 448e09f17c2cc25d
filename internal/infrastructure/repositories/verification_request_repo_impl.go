package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"college-portal.backend/internal/domain/entities"
	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/internal/infrastructure/models"
)

// VerificationRequestRepository implements the verification ledger
type VerificationRequestRepository struct {
	db *gorm.DB
}

// NewVerificationRequestRepository creates a new verification request repository
func NewVerificationRequestRepository(db *gorm.DB) *VerificationRequestRepository {
	return &VerificationRequestRepository{db: db}
}

// Create inserts a request. A second PENDING request for the same user
// violates the partial unique index and surfaces as ErrConflict.
func (r *VerificationRequestRepository) Create(ctx context.Context, request *entities.VerificationRequest) error {
	snapshot, err := json.Marshal(request.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	m := &models.VerificationRequest{
		ID:           request.ID,
		UserID:       request.UserID,
		Type:         string(request.Type),
		Status:       string(request.Status),
		ApprovedByID: request.ApprovedByID,
		Reason:       sql.NullString{String: request.Reason.String, Valid: request.Reason.Valid},
		Snapshot:     datatypes.JSON(snapshot),
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
	return translateWriteError(GetDB(ctx, r.db).Create(m).Error, "pending verification request")
}

// GetByID gets a request by ID
func (r *VerificationRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationRequest, error) {
	var m models.VerificationRequest
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toVerificationRequestEntity(&m)
}

// ListPending returns PENDING requests oldest first, with the total count
func (r *VerificationRequestRepository) ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationRequest, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.VerificationRequest{}).Where("status = ?", string(entities.StatusPending)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.VerificationRequest
	if err := db.Where("status = ?", string(entities.StatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.VerificationRequest, 0, len(rows))
	for i := range rows {
		item, err := toVerificationRequestEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// CountPending returns the size of the approval backlog
func (r *VerificationRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.VerificationRequest{}).
		Where("status = ?", string(entities.StatusPending)).
		Count(&total).Error
	return total, err
}

// MarkDecided moves a PENDING request to a terminal status. The status
// guard in the WHERE clause makes concurrent decisions race-safe.
func (r *VerificationRequestRepository) MarkDecided(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, approverID uuid.UUID, reason null.String) error {
	result := GetDB(ctx, r.db).Model(&models.VerificationRequest{}).
		Where("id = ? AND status = ?", id, string(entities.StatusPending)).
		Updates(map[string]interface{}{
			"status":         string(status),
			"approved_by_id": uuid.NullUUID{UUID: approverID, Valid: true},
			"reason":         sql.NullString{String: reason.String, Valid: reason.Valid},
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

// DeleteByUserID removes every request of the user
func (r *VerificationRequestRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&models.VerificationRequest{}).Error
}

func toVerificationRequestEntity(m *models.VerificationRequest) (*entities.VerificationRequest, error) {
	var snapshot entities.UserSnapshot
	if len(m.Snapshot) > 0 {
		if err := json.Unmarshal(m.Snapshot, &snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot of request %s: %w", m.ID, err)
		}
	}
	return &entities.VerificationRequest{
		ID:           m.ID,
		UserID:       m.UserID,
		Type:         entities.RequestType(m.Type),
		Status:       entities.VerificationStatus(m.Status),
		ApprovedByID: m.ApprovedByID,
		Reason:       null.NewString(m.Reason.String, m.Reason.Valid),
		Snapshot:     snapshot,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
