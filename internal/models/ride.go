package models

import (
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

const (
	RideDateLayout = "2006-01-02"
	RideTimeLayout = "15:04"
)

type Ride struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	DriverID uuid.UUID `gorm:"type:uuid;index;not null"`

	Source         string   `gorm:"type:varchar(255);not null"`
	Destination    string   `gorm:"type:varchar(255);not null"`
	SourceLat      *float64 `gorm:"type:double precision"`
	SourceLng      *float64 `gorm:"type:double precision"`
	DestinationLat *float64 `gorm:"type:double precision"`
	DestinationLng *float64 `gorm:"type:double precision"`

	// Departure is stored as a calendar date plus a wall-clock time so
	// recurrence duplicates can be detected on the (driver, source,
	// destination, date, time) tuple.
	Date string `gorm:"type:varchar(10);index;not null"`
	Time string `gorm:"type:varchar(5);not null"`

	TotalSeats    int        `gorm:"not null"`
	EstimatedCost float64    `gorm:"not null"`
	Status        RideStatus `gorm:"type:varchar(20);index;not null;default:'active'"`
	PickupPoint   *string    `gorm:"type:varchar(50)"`

	IsRecurring       bool       `gorm:"not null;default:false"`
	RecurrencePattern *string    `gorm:"type:varchar(30)"`
	ParentRideID      *uuid.UUID `gorm:"type:uuid"`
	EventTagID        *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Ride) TableName() string {
	return "rides"
}

// DepartureTime combines the stored date and time in UTC. The zero time is
// returned when either field is malformed.
func (r *Ride) DepartureTime() time.Time {
	t, err := time.Parse(RideDateLayout+" "+RideTimeLayout, r.Date+" "+r.Time)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Terminal reports whether the ride can no longer change status.
func (r *Ride) Terminal() bool {
	return r.Status == RideStatusCompleted || r.Status == RideStatusCancelled
}
