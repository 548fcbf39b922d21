package repository

import (
	"context"

	"campuspool/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModerationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) *ModerationRepository {
	return &ModerationRepository{db: db}
}

func (r *ModerationRepository) CreateReport(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ModerationRepository) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ModerationRepository) UpdateReport(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *ModerationRepository) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *ModerationRepository) CountReportsByStatus(ctx context.Context, status models.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *ModerationRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ModerationRepository) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *ModerationRepository) CreateEventTag(ctx context.Context, tag *models.EventTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *ModerationRepository) GetEventTag(ctx context.Context, id uuid.UUID) (*models.EventTag, error) {
	var tag models.EventTag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *ModerationRepository) UpdateEventTag(ctx context.Context, tag *models.EventTag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *ModerationRepository) ListActiveEventTags(ctx context.Context) ([]models.EventTag, error) {
	var tags []models.EventTag
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at ASC").Find(&tags).Error
	return tags, err
}
