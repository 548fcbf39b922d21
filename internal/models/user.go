package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleRider  UserRole = "rider"
	RoleDriver UserRole = "driver"
	RoleAdmin  UserRole = "admin"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Role           UserRole  `gorm:"type:varchar(20);not null;check:role IN ('rider', 'driver', 'admin')"`
	IsAdmin        bool      `gorm:"not null;default:false"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:'unverified'"`
	StudentIDImage     string             `gorm:"type:text"`
	RejectionReason    *string            `gorm:"type:varchar(500)"`
	VerifiedAt         *time.Time

	VehicleModel  *string `gorm:"type:varchar(100)"`
	VehicleNumber *string `gorm:"type:varchar(50)"`
	VehicleColor  *string `gorm:"type:varchar(50)"`
	Branch        *string `gorm:"type:varchar(20)"`
	AcademicYear  *string `gorm:"type:varchar(10)"`

	IsActive     bool `gorm:"not null;default:true"`
	IsSuspended  bool `gorm:"not null;default:false"`
	WarningCount int  `gorm:"not null;default:0"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
