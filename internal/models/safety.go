package models

import (
	"time"

	"github.com/google/uuid"
)

type SOSStatus string

const (
	SOSStatusActive    SOSStatus = "active"
	SOSStatusReviewing SOSStatus = "reviewing"
	SOSStatusResolved  SOSStatus = "resolved"
)

// SOSEvent is an append-only alert raised by either ride participant.
// Only admin actions move it through its status enum.
type SOSEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	RideRequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	TriggeredBy   uuid.UUID `gorm:"type:uuid;not null"`

	Latitude     *float64 `gorm:"type:double precision"`
	Longitude    *float64 `gorm:"type:double precision"`
	LocationText *string  `gorm:"type:varchar(255)"`
	Message      *string  `gorm:"type:varchar(1000)"`

	Status     SOSStatus `gorm:"type:varchar(20);index;not null;default:'active'"`
	AdminNotes *string   `gorm:"type:varchar(500)"`
	ReviewedAt *time.Time
	ResolvedAt *time.Time
	ResolvedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SOSEvent) TableName() string {
	return "sos_events"
}

// SafeCompletion records a rider's explicit confirmation that a ride ended
// without incident. Append-only.
type SafeCompletion struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	RideRequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	RideID        uuid.UUID `gorm:"type:uuid;index;not null"`
	RiderID       uuid.UUID `gorm:"type:uuid;index;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SafeCompletion) TableName() string {
	return "safe_completions"
}
