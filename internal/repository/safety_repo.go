package repository

import (
	"context"

	"campuspool/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SafetyRepository struct {
	db *gorm.DB
}

func NewSafetyRepository(db *gorm.DB) *SafetyRepository {
	return &SafetyRepository{db: db}
}

func (r *SafetyRepository) CreateSOS(ctx context.Context, event *models.SOSEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *SafetyRepository) GetSOS(ctx context.Context, id uuid.UUID) (*models.SOSEvent, error) {
	var event models.SOSEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *SafetyRepository) UpdateSOS(ctx context.Context, event *models.SOSEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *SafetyRepository) ListSOS(ctx context.Context) ([]models.SOSEvent, error) {
	var events []models.SOSEvent
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *SafetyRepository) HasActiveSOS(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SOSEvent{}).
		Where("ride_request_id = ? AND status = ?", requestID, models.SOSStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *SafetyRepository) CountActiveSOS(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SOSEvent{}).
		Where("status = ?", models.SOSStatusActive).
		Count(&count).Error
	return count, err
}

func (r *SafetyRepository) CreateSafeCompletion(ctx context.Context, completion *models.SafeCompletion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}
