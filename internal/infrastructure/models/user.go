package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name               string         `gorm:"type:varchar(100);not null"`
	Email              string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string         `gorm:"type:varchar(255);not null"`
	Role               string         `gorm:"type:varchar(20);not null"`
	VerificationStatus string         `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ProfilePicture     sql.NullString `gorm:"type:varchar(512)"`
	RefreshToken       sql.NullString `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
