package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VerificationRequest struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_verification_requests_pending,where:status = 'PENDING'"`
	Type         string         `gorm:"type:varchar(30);not null"`
	Status       string         `gorm:"type:varchar(20);not null;index"`
	ApprovedByID uuid.NullUUID  `gorm:"type:uuid"`
	Reason       sql.NullString `gorm:"type:text"`
	Snapshot     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
