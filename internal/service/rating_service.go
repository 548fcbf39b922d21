package service

import (
	"context"

	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
)

type RatingService struct {
	ratings    *repository.RatingRepository
	requestSvc *RequestService
}

func NewRatingService(ratings *repository.RatingRepository, requestSvc *RequestService) *RatingService {
	return &RatingService{ratings: ratings, requestSvc: requestSvc}
}

// Submit rates the other participant of a completed request. One rating per
// (request, rater); the ratee is derived, never supplied by the caller.
func (s *RatingService) Submit(ctx context.Context, rater *models.User, requestID uuid.UUID, value int, feedback *string) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	request, ride, err := s.requestSvc.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusCompleted {
		return nil, ErrRideNotCompleted
	}

	var ratedUserID uuid.UUID
	switch rater.ID {
	case request.RiderID:
		ratedUserID = ride.DriverID
	case ride.DriverID:
		ratedUserID = request.RiderID
	default:
		return nil, ErrNotParticipant
	}

	exists, err := s.ratings.ExistsByRequestAndRater(ctx, requestID, rater.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRated
	}

	rating := &models.Rating{
		ID:            uuid.New(),
		RideRequestID: requestID,
		RaterID:       rater.ID,
		RatedUserID:   ratedUserID,
		Rating:        value,
		Feedback:      feedback,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// CanRate reports whether the user still has a rating to give on the request.
func (s *RatingService) CanRate(ctx context.Context, user *models.User, requestID uuid.UUID) (bool, error) {
	request, ride, err := s.requestSvc.load(ctx, requestID)
	if err != nil {
		return false, err
	}
	if request.Status != models.RequestStatusCompleted {
		return false, nil
	}
	if user.ID != request.RiderID && user.ID != ride.DriverID {
		return false, nil
	}

	exists, err := s.ratings.ExistsByRequestAndRater(ctx, requestID, user.ID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
