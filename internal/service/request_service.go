package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"campuspool/internal/config"
	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// averageSpeedKmh feeds the rough arrival estimate on the live ride view.
const averageSpeedKmh = 30.0

type RequestService struct {
	requests *repository.RideRequestRepository
	rides    *repository.RideRepository
	users    *repository.UserRepository
	safety   *repository.SafetyRepository
	rideSvc  *RideService
	cfg      config.RideConfig
}

func NewRequestService(
	requests *repository.RideRequestRepository,
	rides *repository.RideRepository,
	users *repository.UserRepository,
	safety *repository.SafetyRepository,
	rideSvc *RideService,
	cfg config.RideConfig,
) *RequestService {
	return &RequestService{
		requests: requests,
		rides:    rides,
		users:    users,
		safety:   safety,
		rideSvc:  rideSvc,
		cfg:      cfg,
	}
}

// RequestView pairs a request with its ride and the counterpart's summary.
// Rider is filled on the driver-facing listing, Driver on the rider-facing one.
type RequestView struct {
	models.RideRequest
	Ride   *RideView    `json:"ride,omitempty"`
	Rider  *UserSummary `json:"rider,omitempty"`
	Driver *UserSummary `json:"driver,omitempty"`
}

// RequestRide creates a pending request for a seat. The seat check here is
// advisory only; the binding check happens when the driver accepts.
func (s *RequestService) RequestRide(ctx context.Context, rider *models.User, rideID uuid.UUID, isUrgent bool) (*models.RideRequest, error) {
	if rider.Role != models.RoleRider {
		return nil, ErrRiderOnly
	}

	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if ride.Status != models.RideStatusActive {
		return nil, ErrRideNotActive
	}

	exists, err := s.requests.ExistsForRideAndRider(ctx, rideID, rider.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	taken, err := s.requests.CountSeatsTaken(ctx, rideID, false)
	if err != nil {
		return nil, err
	}
	if int(taken) >= ride.TotalSeats {
		return nil, ErrNoSeatsAvailable
	}

	if isUrgent {
		until := time.Until(ride.DepartureTime())
		if until < 0 || until > s.cfg.UrgentHorizon {
			return nil, ErrUrgentOutsideHorizon
		}
	}

	request := &models.RideRequest{
		ID:       uuid.New(),
		RideID:   rideID,
		RiderID:  rider.ID,
		Status:   models.RequestStatusPending,
		IsUrgent: isUrgent,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// RespondToRequest accepts or rejects a pending request. Accepting mints a
// 4-digit PIN and claims a seat through a guarded update, so two accepts
// racing on the last seat cannot both win.
func (s *RequestService) RespondToRequest(ctx context.Context, driver *models.User, requestID uuid.UUID, accept bool) (*models.RideRequest, error) {
	request, ride, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driver.ID {
		return nil, ErrNotRideOwner
	}
	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	if !accept {
		request.Status = models.RequestStatusRejected
		if err := s.requests.Update(ctx, request); err != nil {
			return nil, err
		}
		return request, nil
	}

	pin := fmt.Sprintf("%04d", rand.IntN(9000)+1000)
	ok, err := s.requests.AcceptIfSeatAvailable(ctx, request.ID, ride.ID, pin, ride.TotalSeats)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the guarded update: either the request changed under us or
		// the seats filled. Re-read to tell the two apart.
		current, err := s.requests.GetByID(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		if current.Status != models.RequestStatusPending {
			return nil, ErrRequestNotPending
		}
		return nil, ErrNoSeatsAvailable
	}
	return s.requests.GetByID(ctx, request.ID)
}

// StartRide moves an accepted request to ongoing. The driver must present
// the exact PIN the rider was issued.
func (s *RequestService) StartRide(ctx context.Context, driver *models.User, requestID uuid.UUID, pin string) (*models.RideRequest, error) {
	request, ride, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID != driver.ID {
		return nil, ErrNotRideOwner
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, ErrRequestNotAccepted
	}
	if request.RidePIN == nil || *request.RidePIN != pin {
		return nil, ErrInvalidPIN
	}

	now := time.Now().UTC()
	request.Status = models.RequestStatusOngoing
	request.RideStartedAt = &now
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// MarkReachedSafely completes the rider's leg and records a safe-completion
// entry. When the last ongoing leg finishes, the ride itself completes.
func (s *RequestService) MarkReachedSafely(ctx context.Context, rider *models.User, requestID uuid.UUID) (*models.RideRequest, error) {
	request, ride, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RiderID != rider.ID {
		return nil, ErrNotRequestRider
	}
	if request.Status != models.RequestStatusOngoing {
		return nil, ErrRequestNotOngoing
	}

	now := time.Now().UTC()
	request.Status = models.RequestStatusCompleted
	request.ReachedSafelyAt = &now
	request.CompletedAt = &now
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	completion := &models.SafeCompletion{
		ID:            uuid.New(),
		RideRequestID: request.ID,
		RideID:        ride.ID,
		RiderID:       rider.ID,
	}
	if err := s.safety.CreateSafeCompletion(ctx, completion); err != nil {
		return nil, err
	}

	ongoing, err := s.requests.CountOngoing(ctx, ride.ID)
	if err != nil {
		return nil, err
	}
	if ongoing == 0 && ride.Status == models.RideStatusActive {
		ride.Status = models.RideStatusCompleted
		if err := s.rides.Update(ctx, ride); err != nil {
			return nil, err
		}
	}
	return request, nil
}

// CancelRequest lets the rider back out while the request is still pending
// or accepted.
func (s *RequestService) CancelRequest(ctx context.Context, rider *models.User, requestID uuid.UUID) (*models.RideRequest, error) {
	request, _, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RiderID != rider.ID {
		return nil, ErrNotRequestRider
	}
	if request.Status != models.RequestStatusPending && request.Status != models.RequestStatusAccepted {
		return nil, ErrRequestNotPending
	}

	request.Status = models.RequestStatusCancelled
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// MyRequests lists the rider's requests newest first, each with its ride.
func (s *RequestService) MyRequests(ctx context.Context, riderID uuid.UUID) ([]RequestView, error) {
	requests, err := s.requests.ListByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		view := RequestView{RideRequest: requests[i]}
		rideView, err := s.rideSvc.GetRide(ctx, requests[i].RideID)
		if err != nil && !errors.Is(err, ErrRideNotFound) {
			return nil, err
		}
		if rideView != nil {
			view.Ride = rideView
			view.Driver = rideView.Driver
		}
		views = append(views, view)
	}
	return views, nil
}

// DriverRequests lists every request on the driver's rides, each with the
// requesting rider's summary.
func (s *RequestService) DriverRequests(ctx context.Context, driverID uuid.UUID) ([]RequestView, error) {
	requests, err := s.requests.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return s.withRiders(ctx, requests)
}

// RideRequests lists the requests on a single ride, driver only.
func (s *RequestService) RideRequests(ctx context.Context, driver *models.User, rideID uuid.UUID) ([]RequestView, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if ride.DriverID != driver.ID {
		return nil, ErrNotRideOwner
	}

	requests, err := s.requests.ListByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	return s.withRiders(ctx, requests)
}

// LiveRideView is the in-progress screen for an ongoing leg.
type LiveRideView struct {
	Request          models.RideRequest `json:"request"`
	Ride             RideView           `json:"ride"`
	Driver           *UserSummary       `json:"driver,omitempty"`
	Rider            *UserSummary       `json:"rider,omitempty"`
	HasActiveSOS     bool               `json:"has_active_sos"`
	EstimatedArrival *time.Time         `json:"estimated_arrival,omitempty"`
}

func (s *RequestService) LiveView(ctx context.Context, user *models.User, requestID uuid.UUID) (*LiveRideView, error) {
	request, ride, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RiderID != user.ID && ride.DriverID != user.ID {
		return nil, ErrNotParticipant
	}
	if request.Status != models.RequestStatusOngoing {
		return nil, ErrRequestNotOngoing
	}

	rideView, err := s.rideSvc.view(ctx, ride)
	if err != nil {
		return nil, err
	}

	hasSOS, err := s.safety.HasActiveSOS(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	view := &LiveRideView{
		Request:      *request,
		Ride:         *rideView,
		Driver:       rideView.Driver,
		HasActiveSOS: hasSOS,
	}
	if rider, err := s.users.GetByID(ctx, request.RiderID); err == nil {
		summary, err := s.rideSvc.userSummary(ctx, rider)
		if err != nil {
			return nil, err
		}
		view.Rider = summary
	}
	if request.RideStartedAt != nil {
		eta := request.RideStartedAt.Add(time.Duration(
			s.rideSvc.trust.cfg.AvgRideDistanceKm / averageSpeedKmh * float64(time.Hour)))
		view.EstimatedArrival = &eta
	}
	return view, nil
}

func (s *RequestService) load(ctx context.Context, requestID uuid.UUID) (*models.RideRequest, *models.Ride, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRequestNotFound
		}
		return nil, nil, err
	}
	ride, err := s.rides.GetByID(ctx, request.RideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRideNotFound
		}
		return nil, nil, err
	}
	return request, ride, nil
}

func (s *RequestService) withRiders(ctx context.Context, requests []models.RideRequest) ([]RequestView, error) {
	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		view := RequestView{RideRequest: requests[i]}
		if rider, err := s.users.GetByID(ctx, requests[i].RiderID); err == nil {
			summary, err := s.rideSvc.userSummary(ctx, rider)
			if err != nil {
				return nil, err
			}
			view.Rider = summary
		}
		views = append(views, view)
	}
	return views, nil
}
