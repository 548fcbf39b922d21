package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusOngoing   RequestStatus = "ongoing"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

type RideRequest struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	RideID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ride_rider;not null"`
	RiderID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ride_rider;not null"`

	Status   RequestStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
	RidePIN  *string       `gorm:"type:varchar(4)"`
	IsUrgent bool          `gorm:"not null;default:false"`

	RideStartedAt   *time.Time
	ReachedSafelyAt *time.Time
	CompletedAt     *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RideRequest) TableName() string {
	return "ride_requests"
}

// SeatHolding reports whether the request currently occupies a seat.
func (s RequestStatus) SeatHolding() bool {
	return s == RequestStatusAccepted || s == RequestStatusOngoing
}
