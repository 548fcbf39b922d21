package models

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	RideRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_request_rater;not null"`
	RaterID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_request_rater;not null"`
	RatedUserID   uuid.UUID `gorm:"type:uuid;index;not null"`

	Rating   int     `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
