package service

import (
	"context"

	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
)

type SafetyService struct {
	safety     *repository.SafetyRepository
	requestSvc *RequestService
}

func NewSafetyService(safety *repository.SafetyRepository, requestSvc *RequestService) *SafetyService {
	return &SafetyService{safety: safety, requestSvc: requestSvc}
}

type SOSInput struct {
	Latitude     *float64
	Longitude    *float64
	LocationText *string
	Message      *string
}

// TriggerSOS raises an alert on an accepted or ongoing leg. Either
// participant can trigger; repeated triggers stack as separate events.
func (s *SafetyService) TriggerSOS(ctx context.Context, user *models.User, requestID uuid.UUID, in SOSInput) (*models.SOSEvent, error) {
	request, ride, err := s.requestSvc.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if user.ID != request.RiderID && user.ID != ride.DriverID {
		return nil, ErrNotParticipant
	}
	if !request.Status.SeatHolding() {
		return nil, ErrRequestNotOngoing
	}

	event := &models.SOSEvent{
		ID:            uuid.New(),
		RideRequestID: requestID,
		TriggeredBy:   user.ID,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		LocationText:  in.LocationText,
		Message:       in.Message,
		Status:        models.SOSStatusActive,
	}
	if err := s.safety.CreateSOS(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
