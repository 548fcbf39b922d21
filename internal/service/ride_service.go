package service

import (
	"context"
	"errors"
	"time"

	"campuspool/internal/catalog"
	"campuspool/internal/config"
	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RideService struct {
	rides    *repository.RideRepository
	requests *repository.RideRequestRepository
	users    *repository.UserRepository
	ratings  *repository.RatingRepository
	tags     *repository.ModerationRepository
	trust    *TrustCalculator
	cfg      config.RideConfig
}

func NewRideService(
	rides *repository.RideRepository,
	requests *repository.RideRequestRepository,
	users *repository.UserRepository,
	ratings *repository.RatingRepository,
	tags *repository.ModerationRepository,
	trust *TrustCalculator,
	cfg config.RideConfig,
) *RideService {
	return &RideService{
		rides:    rides,
		requests: requests,
		users:    users,
		ratings:  ratings,
		tags:     tags,
		trust:    trust,
		cfg:      cfg,
	}
}

// UserSummary is the slice of a profile shown alongside rides and requests.
type UserSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	AverageRating *float64   `json:"average_rating"`
	RideCount     int        `json:"ride_count"`
	TrustLevel    TrustLabel `json:"trust_level"`
	VehicleModel  *string    `json:"vehicle_model,omitempty"`
	VehicleNumber *string    `json:"vehicle_number,omitempty"`
	VehicleColor  *string    `json:"vehicle_color,omitempty"`
}

// RideView is a ride with its derived seat availability and driver summary.
// Seats are recomputed from the request table on every read.
type RideView struct {
	models.Ride
	SeatsAvailable  int          `json:"seats_available"`
	CostPerRider    float64      `json:"cost_per_rider"`
	PickupPointName *string      `json:"pickup_point_name,omitempty"`
	Driver          *UserSummary `json:"driver,omitempty"`
	MatchScore      *int         `json:"match_score,omitempty"`
	Recommended     bool         `json:"recommended"`
}

type CreateRideInput struct {
	Source            string
	Destination       string
	SourceLat         *float64
	SourceLng         *float64
	DestinationLat    *float64
	DestinationLng    *float64
	Date              string
	Time              string
	TotalSeats        int
	EstimatedCost     float64
	PickupPoint       *string
	IsRecurring       bool
	RecurrencePattern *string
	RecurrenceDays    int
	EventTagID        *uuid.UUID
}

// CreateRide posts a ride, expanding recurring rides into per-day instances
// up to the recurrence horizon. The base ride and all instances are written
// in one transaction; duplicates on (driver, route, date, time) are skipped.
func (s *RideService) CreateRide(ctx context.Context, driver *models.User, in CreateRideInput) (*models.Ride, int, error) {
	if driver.Role != models.RoleDriver {
		return nil, 0, ErrDriverOnly
	}
	if driver.VerificationStatus != models.VerificationVerified {
		return nil, 0, ErrUnverifiedDriver
	}

	if _, err := time.Parse(models.RideDateLayout, in.Date); err != nil {
		return nil, 0, ErrInvalidDateTime
	}
	if _, err := time.Parse(models.RideTimeLayout, in.Time); err != nil {
		return nil, 0, ErrInvalidDateTime
	}
	if in.PickupPoint != nil {
		if _, ok := catalog.PickupPointByID(*in.PickupPoint); !ok {
			return nil, 0, ErrInvalidPickupPoint
		}
	}
	if in.EventTagID != nil {
		tag, err := s.tags.GetEventTag(ctx, *in.EventTagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrTagNotFound
			}
			return nil, 0, err
		}
		if !tag.IsActive {
			return nil, 0, ErrTagNotFound
		}
	}

	var pattern catalog.RecurrencePattern
	if in.IsRecurring {
		if in.RecurrencePattern == nil {
			return nil, 0, ErrInvalidRecurrence
		}
		var ok bool
		pattern, ok = catalog.RecurrencePatternByID(*in.RecurrencePattern)
		if !ok {
			return nil, 0, ErrInvalidRecurrence
		}
		if in.RecurrenceDays <= 0 {
			return nil, 0, ErrRecurrenceHorizon
		}
		if in.RecurrenceDays > s.cfg.MaxRecurrenceDays {
			in.RecurrenceDays = s.cfg.MaxRecurrenceDays
		}
	}

	base := &models.Ride{
		ID:                uuid.New(),
		DriverID:          driver.ID,
		Source:            in.Source,
		Destination:       in.Destination,
		SourceLat:         in.SourceLat,
		SourceLng:         in.SourceLng,
		DestinationLat:    in.DestinationLat,
		DestinationLng:    in.DestinationLng,
		Date:              in.Date,
		Time:              in.Time,
		TotalSeats:        in.TotalSeats,
		EstimatedCost:     in.EstimatedCost,
		Status:            models.RideStatusActive,
		PickupPoint:       in.PickupPoint,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
		EventTagID:        in.EventTagID,
	}

	if !in.IsRecurring {
		if err := s.rides.Create(ctx, base); err != nil {
			return nil, 0, err
		}
		return base, 1, nil
	}

	startDate, _ := time.Parse(models.RideDateLayout, in.Date)
	batch := []*models.Ride{base}
	for offset := 1; offset <= in.RecurrenceDays; offset++ {
		day := startDate.AddDate(0, 0, offset)
		if !pattern.Matches(day.Weekday()) {
			continue
		}
		date := day.Format(models.RideDateLayout)
		exists, err := s.rides.ExistsDuplicate(ctx, driver.ID, in.Source, in.Destination, date, in.Time)
		if err != nil {
			return nil, 0, err
		}
		if exists {
			continue
		}
		instance := *base
		instance.ID = uuid.New()
		instance.Date = date
		instance.ParentRideID = &base.ID
		batch = append(batch, &instance)
	}

	if err := s.rides.CreateBatch(ctx, batch); err != nil {
		return nil, 0, err
	}
	return base, len(batch), nil
}

// SearchInput narrows and ranks the active-ride listing. Unknown pickup
// points and malformed dates are ignored rather than rejected.
type SearchInput struct {
	Source      string
	Destination string
	Date        string
	PickupPoint string
	EventTagID  *uuid.UUID
}

func (s *RideService) Search(ctx context.Context, in SearchInput) ([]RideView, error) {
	filter := repository.RideFilter{
		Source:      in.Source,
		Destination: in.Destination,
		EventTagID:  in.EventTagID,
	}
	if _, err := time.Parse(models.RideDateLayout, in.Date); err == nil {
		filter.Date = in.Date
	}
	if _, ok := catalog.PickupPointByID(in.PickupPoint); ok {
		filter.PickupPoint = in.PickupPoint
	}

	rides, err := s.rides.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	ranked := RankRides(rides, in.Source, in.Destination)
	views := make([]RideView, 0, len(ranked))
	for _, scored := range ranked {
		view, err := s.view(ctx, &scored.Ride)
		if err != nil {
			return nil, err
		}
		if in.Source != "" || in.Destination != "" {
			score := scored.Score
			view.MatchScore = &score
			view.Recommended = scored.Recommended
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *RideService) GetRide(ctx context.Context, rideID uuid.UUID) (*RideView, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	return s.view(ctx, ride)
}

type UpdateRideInput struct {
	Date          *string
	Time          *string
	TotalSeats    *int
	EstimatedCost *float64
	PickupPoint   *string
}

func (s *RideService) UpdateRide(ctx context.Context, user *models.User, rideID uuid.UUID, in UpdateRideInput) (*RideView, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if ride.DriverID != user.ID {
		return nil, ErrNotRideOwner
	}
	if ride.Terminal() {
		return nil, ErrRideNotEditable
	}

	if in.Date != nil {
		if _, err := time.Parse(models.RideDateLayout, *in.Date); err != nil {
			return nil, ErrInvalidDateTime
		}
		ride.Date = *in.Date
	}
	if in.Time != nil {
		if _, err := time.Parse(models.RideTimeLayout, *in.Time); err != nil {
			return nil, ErrInvalidDateTime
		}
		ride.Time = *in.Time
	}
	if in.TotalSeats != nil {
		taken, err := s.requests.CountSeatsTaken(ctx, ride.ID, false)
		if err != nil {
			return nil, err
		}
		if int64(*in.TotalSeats) < taken {
			return nil, ErrSeatsBelowTaken
		}
		ride.TotalSeats = *in.TotalSeats
	}
	if in.EstimatedCost != nil {
		ride.EstimatedCost = *in.EstimatedCost
	}
	if in.PickupPoint != nil {
		if _, ok := catalog.PickupPointByID(*in.PickupPoint); !ok {
			return nil, ErrInvalidPickupPoint
		}
		ride.PickupPoint = in.PickupPoint
	}

	if err := s.rides.Update(ctx, ride); err != nil {
		return nil, err
	}
	return s.view(ctx, ride)
}

// CancelRide cancels an active ride and cascades the cancellation to its
// pending and accepted requests. Ongoing requests are left untouched.
func (s *RideService) CancelRide(ctx context.Context, user *models.User, rideID uuid.UUID) error {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRideNotFound
		}
		return err
	}
	if ride.DriverID != user.ID && !user.IsAdmin {
		return ErrNotRideOwner
	}
	if ride.Terminal() {
		return ErrRideNotEditable
	}

	ride.Status = models.RideStatusCancelled
	if err := s.rides.Update(ctx, ride); err != nil {
		return err
	}
	return s.requests.CancelOpenByRide(ctx, ride.ID)
}

func (s *RideService) MyRides(ctx context.Context, driverID uuid.UUID) ([]RideView, error) {
	rides, err := s.rides.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	views := make([]RideView, 0, len(rides))
	for i := range rides {
		view, err := s.view(ctx, &rides[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *RideService) view(ctx context.Context, ride *models.Ride) (*RideView, error) {
	taken, err := s.requests.CountSeatsTaken(ctx, ride.ID, ride.Status == models.RideStatusCompleted)
	if err != nil {
		return nil, err
	}
	available := ride.TotalSeats - int(taken)
	if available < 0 {
		available = 0
	}

	view := &RideView{
		Ride:           *ride,
		SeatsAvailable: available,
		// The driver rides too, so the estimate splits across taken+1.
		CostPerRider: ride.EstimatedCost / float64(taken+1),
	}
	if ride.PickupPoint != nil {
		if pp, ok := catalog.PickupPointByID(*ride.PickupPoint); ok {
			view.PickupPointName = &pp.Name
		}
	}

	driver, err := s.users.GetByID(ctx, ride.DriverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}
	summary, err := s.userSummary(ctx, driver)
	if err != nil {
		return nil, err
	}
	view.Driver = summary
	return view, nil
}

func (s *RideService) userSummary(ctx context.Context, driver *models.User) (*UserSummary, error) {
	values, err := s.ratings.ValuesForUser(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	avg := AverageRating(values)

	completed, err := s.rides.CountCompletedByDriver(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	asRider, err := s.requests.CountByRiderAndStatuses(ctx, driver.ID,
		[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusCompleted})
	if err != nil {
		return nil, err
	}
	rideCount := int(completed + asRider)

	return &UserSummary{
		ID:            driver.ID.String(),
		Name:          driver.Name,
		AverageRating: avg,
		RideCount:     rideCount,
		TrustLevel:    s.trust.Label(rideCount, avg),
		VehicleModel:  driver.VehicleModel,
		VehicleNumber: driver.VehicleNumber,
		VehicleColor:  driver.VehicleColor,
	}, nil
}
