package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	RideRequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	SenderID      uuid.UUID `gorm:"type:uuid;not null"`
	Message       string    `gorm:"type:varchar(1000);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
