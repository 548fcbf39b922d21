package repository

import (
	"context"
	"strings"

	"campuspool/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

func (r *RideRepository) Create(ctx context.Context, ride *models.Ride) error {
	return r.db.WithContext(ctx).Create(ride).Error
}

// CreateBatch inserts a recurring ride together with its expanded
// occurrences in a single transaction.
func (r *RideRepository) CreateBatch(ctx context.Context, rides []*models.Ride) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ride := range rides {
			if err := tx.Create(ride).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RideRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ride).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *RideRepository) Update(ctx context.Context, ride *models.Ride) error {
	return r.db.WithContext(ctx).Save(ride).Error
}

// RideFilter narrows the active-ride listing. Empty fields are ignored.
type RideFilter struct {
	Source      string
	Destination string
	Date        string
	PickupPoint string
	EventTagID  *uuid.UUID
}

func (r *RideRepository) ListActive(ctx context.Context, filter RideFilter) ([]models.Ride, error) {
	q := r.db.WithContext(ctx).Where("status = ?", models.RideStatusActive)

	if filter.Source != "" {
		q = q.Where("LOWER(source) LIKE ?", "%"+strings.ToLower(filter.Source)+"%")
	}
	if filter.Destination != "" {
		q = q.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(filter.Destination)+"%")
	}
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.PickupPoint != "" {
		q = q.Where("pickup_point = ?", filter.PickupPoint)
	}
	if filter.EventTagID != nil {
		q = q.Where("event_tag_id = ?", *filter.EventTagID)
	}

	var rides []models.Ride
	err := q.Order("date ASC, time ASC").Find(&rides).Error
	return rides, err
}

func (r *RideRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Ride, error) {
	var rides []models.Ride
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("date DESC, time DESC").
		Find(&rides).Error
	return rides, err
}

// ExistsDuplicate reports whether the driver already has a ride on the same
// route at the same date and time. Used to dedup recurrence expansion.
func (r *RideRepository) ExistsDuplicate(ctx context.Context, driverID uuid.UUID, source, destination, date, timeOfDay string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ride{}).
		Where("driver_id = ? AND source = ? AND destination = ? AND date = ? AND time = ?",
			driverID, source, destination, date, timeOfDay).
		Count(&count).Error
	return count > 0, err
}

func (r *RideRepository) CountCompletedByDriver(ctx context.Context, driverID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ride{}).
		Where("driver_id = ? AND status = ?", driverID, models.RideStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *RideRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ride{}).Count(&count).Error
	return count, err
}

func (r *RideRepository) CountByStatus(ctx context.Context, status models.RideStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ride{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CompletedDatesForDriver returns the distinct calendar dates, newest
// first, of the driver's completed rides on or after since.
func (r *RideRepository) CompletedDatesForDriver(ctx context.Context, driverID uuid.UUID, since string) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).Model(&models.Ride{}).
		Distinct("date").
		Where("driver_id = ? AND status = ? AND date >= ?", driverID, models.RideStatusCompleted, since).
		Order("date DESC").
		Pluck("date", &dates).Error
	return dates, err
}
