package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusHandled ReportStatus = "handled"
)

type ReportCategory string

const (
	ReportCategorySafety   ReportCategory = "safety"
	ReportCategoryBehavior ReportCategory = "behavior"
	ReportCategoryMisuse   ReportCategory = "misuse"
	ReportCategoryOther    ReportCategory = "other"
)

type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReporterID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ReportedUserID *uuid.UUID `gorm:"type:uuid;index"`
	RideID         *uuid.UUID `gorm:"type:uuid"`

	Category    ReportCategory `gorm:"type:varchar(20);not null"`
	Description string         `gorm:"type:varchar(1000);not null"`

	Status      ReportStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
	AdminAction *string      `gorm:"type:varchar(20)"`
	AdminNotes  *string      `gorm:"type:varchar(500)"`
	HandledAt   *time.Time
	HandledBy   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Report) TableName() string {
	return "reports"
}

// AuditLog is the append-only trail of admin actions.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AdminID    uuid.UUID `gorm:"type:uuid;index;not null"`
	AdminName  string    `gorm:"type:varchar(255);not null"`
	ActionType string    `gorm:"type:varchar(50);not null"`
	TargetType string    `gorm:"type:varchar(50);not null"`
	TargetID   string    `gorm:"type:varchar(64);not null"`
	Details    string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

type EventTag struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name        string     `gorm:"type:varchar(50);not null"`
	Description *string    `gorm:"type:varchar(200)"`
	IsActive    bool       `gorm:"not null;default:true"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EventTag) TableName() string {
	return "event_tags"
}
