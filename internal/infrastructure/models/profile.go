package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	EnrollmentNo string    `gorm:"type:varchar(12);uniqueIndex;not null"`
	DepartmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
}

type Professor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	TeacherID    string    `gorm:"type:varchar(12);uniqueIndex;not null"`
	DepartmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
}

// Hod has a unique department_id: one head per department.
type Hod struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	DepartmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt    time.Time
}
