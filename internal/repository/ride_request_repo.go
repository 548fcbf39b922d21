package repository

import (
	"context"
	"time"

	"campuspool/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RideRequestRepository struct {
	db *gorm.DB
}

func NewRideRequestRepository(db *gorm.DB) *RideRequestRepository {
	return &RideRequestRepository{db: db}
}

func (r *RideRequestRepository) Create(ctx context.Context, request *models.RideRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *RideRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RideRequest, error) {
	var request models.RideRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *RideRequestRepository) Update(ctx context.Context, request *models.RideRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *RideRequestRepository) ListByRider(ctx context.Context, riderID uuid.UUID) ([]models.RideRequest, error) {
	var requests []models.RideRequest
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByDriver returns every request on rides owned by the driver.
func (r *RideRequestRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.RideRequest, error) {
	var requests []models.RideRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN rides ON rides.id = ride_requests.ride_id").
		Where("rides.driver_id = ?", driverID).
		Order("ride_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RideRequestRepository) ListByRide(ctx context.Context, rideID uuid.UUID) ([]models.RideRequest, error) {
	var requests []models.RideRequest
	err := r.db.WithContext(ctx).
		Where("ride_id = ?", rideID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *RideRequestRepository) ExistsForRideAndRider(ctx context.Context, rideID, riderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Where("ride_id = ? AND rider_id = ?", rideID, riderID).
		Count(&count).Error
	return count > 0, err
}

// CountSeatsTaken counts the requests currently holding a seat on the ride.
// Once a ride is completed its finished requests still count as taken, so
// historical views keep adding up.
func (r *RideRequestRepository) CountSeatsTaken(ctx context.Context, rideID uuid.UUID, includeCompleted bool) (int64, error) {
	statuses := []models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusOngoing}
	if includeCompleted {
		statuses = append(statuses, models.RequestStatusCompleted)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Where("ride_id = ? AND status IN ?", rideID, statuses).
		Count(&count).Error
	return count, err
}

func (r *RideRequestRepository) CountOngoing(ctx context.Context, rideID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Where("ride_id = ? AND status = ?", rideID, models.RequestStatusOngoing).
		Count(&count).Error
	return count, err
}

// AcceptIfSeatAvailable flips a pending request to accepted and stores its
// PIN, but only while the ride's accepted+ongoing count is still below
// totalSeats. Concurrent accepts write different request rows, so the
// transaction first touches the parent ride row: that takes the ride's row
// lock and serializes accepts per ride, which makes the seat re-count read
// a settled state instead of a snapshot that misses an in-flight accept.
func (r *RideRequestRepository) AcceptIfSeatAvailable(ctx context.Context, requestID, rideID uuid.UUID, pin string, totalSeats int) (bool, error) {
	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx.Exec(`UPDATE rides SET updated_at = updated_at WHERE id = ?`, rideID)
		if lock.Error != nil {
			return lock.Error
		}
		if lock.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var held int64
		if err := tx.Model(&models.RideRequest{}).
			Where("ride_id = ? AND status IN ?", rideID,
				[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusOngoing}).
			Count(&held).Error; err != nil {
			return err
		}
		if int(held) >= totalSeats {
			return nil
		}

		result := tx.Exec(
			`UPDATE ride_requests SET status = ?, ride_pin = ?, updated_at = ?
			 WHERE id = ? AND status = ?`,
			models.RequestStatusAccepted, pin, time.Now().UTC(),
			requestID, models.RequestStatusPending,
		)
		if result.Error != nil {
			return result.Error
		}
		accepted = result.RowsAffected > 0
		return nil
	})
	return accepted, err
}

// CancelOpenByRide cancels every pending or accepted request on the ride.
// Used by the ride-cancellation cascade.
func (r *RideRequestRepository) CancelOpenByRide(ctx context.Context, rideID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Where("ride_id = ? AND status IN ?", rideID,
			[]models.RequestStatus{models.RequestStatusPending, models.RequestStatusAccepted}).
		Update("status", models.RequestStatusCancelled).Error
}

func (r *RideRequestRepository) CountCompletedByRider(ctx context.Context, riderID uuid.UUID) (int64, error) {
	return r.CountByRiderAndStatuses(ctx, riderID, []models.RequestStatus{models.RequestStatusCompleted})
}

func (r *RideRequestRepository) CountByRiderAndStatuses(ctx context.Context, riderID uuid.UUID, statuses []models.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Where("rider_id = ? AND status IN ?", riderID, statuses).
		Count(&count).Error
	return count, err
}

// CompletedDatesForRider returns the distinct ride dates, newest first, of
// the rider's completed requests on or after since.
func (r *RideRequestRepository) CompletedDatesForRider(ctx context.Context, riderID uuid.UUID, since string) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).Model(&models.RideRequest{}).
		Joins("JOIN rides ON rides.id = ride_requests.ride_id").
		Distinct("rides.date").
		Where("ride_requests.rider_id = ? AND ride_requests.status = ? AND rides.date >= ?",
			riderID, models.RequestStatusCompleted, since).
		Order("rides.date DESC").
		Pluck("rides.date", &dates).Error
	return dates, err
}
