package service

import (
	"context"
	"errors"
	"time"

	"campuspool/internal/catalog"
	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	users    *repository.UserRepository
	rides    *repository.RideRepository
	requests *repository.RideRequestRepository
	ratings  *repository.RatingRepository
	trust    *TrustCalculator

	streakLookback time.Duration
}

func NewUserService(
	users *repository.UserRepository,
	rides *repository.RideRepository,
	requests *repository.RideRequestRepository,
	ratings *repository.RatingRepository,
	trust *TrustCalculator,
	streakLookback time.Duration,
) *UserService {
	return &UserService{
		users:          users,
		rides:          rides,
		requests:       requests,
		ratings:        ratings,
		trust:          trust,
		streakLookback: streakLookback,
	}
}

// UserView is the API shape of a user, including the derived trust data.
// Aggregates are recomputed from history on every call rather than cached.
type UserView struct {
	ID                 string                    `json:"id"`
	Email              string                    `json:"email"`
	Name               string                    `json:"name"`
	Role               models.UserRole           `json:"role"`
	IsAdmin            bool                      `json:"is_admin"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	RejectionReason    *string                   `json:"rejection_reason,omitempty"`
	VerifiedAt         *time.Time                `json:"verified_at,omitempty"`

	RideCount          int        `json:"ride_count"`
	AverageRating      *float64   `json:"average_rating"`
	TotalRatings       int        `json:"total_ratings"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	TrustLevel         TrustLabel `json:"trust_level"`
	Badges             []Badge    `json:"badges"`

	Branch           *string `json:"branch,omitempty"`
	BranchName       *string `json:"branch_name,omitempty"`
	AcademicYear     *string `json:"academic_year,omitempty"`
	AcademicYearName *string `json:"academic_year_name,omitempty"`

	VehicleModel  *string `json:"vehicle_model,omitempty"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
	VehicleColor  *string `json:"vehicle_color,omitempty"`

	IsActive     bool      `json:"is_active"`
	IsSuspended  bool      `json:"is_suspended"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`

	MutualInfo *MutualInfo `json:"mutual_info,omitempty"`
}

type MutualInfo struct {
	SameBranch bool `json:"same_branch"`
	SameYear   bool `json:"same_year"`
}

// TrustRideCount is the ride count feeding the trust label: completed rides
// as driver plus accepted-or-completed requests as rider.
func (s *UserService) TrustRideCount(ctx context.Context, userID uuid.UUID) (int, error) {
	asDriver, err := s.rides.CountCompletedByDriver(ctx, userID)
	if err != nil {
		return 0, err
	}
	asRider, err := s.requests.CountByRiderAndStatuses(ctx, userID,
		[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusCompleted})
	if err != nil {
		return 0, err
	}
	return int(asDriver + asRider), nil
}

func (s *UserService) View(ctx context.Context, user *models.User) (*UserView, error) {
	rideCount, err := s.TrustRideCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	values, err := s.ratings.ValuesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	avg := AverageRating(values)

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, v := range values {
		distribution[v]++
	}

	streak, err := s.streaks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	savings := s.trust.Savings(rideCount)

	view := &UserView{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Role:               user.Role,
		IsAdmin:            user.IsAdmin,
		VerificationStatus: user.VerificationStatus,
		RejectionReason:    user.RejectionReason,
		VerifiedAt:         user.VerifiedAt,
		RideCount:          rideCount,
		AverageRating:      avg,
		TotalRatings:       len(values),
		RatingDistribution: distribution,
		TrustLevel:         s.trust.Label(rideCount, avg),
		Badges:             s.trust.Badges(rideCount, savings, streak.Longest),
		Branch:             user.Branch,
		AcademicYear:       user.AcademicYear,
		IsActive:           user.IsActive,
		IsSuspended:        user.IsSuspended,
		WarningCount:       user.WarningCount,
		CreatedAt:          user.CreatedAt,
	}
	if user.Branch != nil {
		if name, ok := catalog.BranchName(*user.Branch); ok {
			view.BranchName = &name
		}
	}
	if user.AcademicYear != nil {
		if name, ok := catalog.AcademicYearName(*user.AcademicYear); ok {
			view.AcademicYearName = &name
		}
	}
	if user.Role == models.RoleDriver {
		view.VehicleModel = user.VehicleModel
		view.VehicleNumber = user.VehicleNumber
		view.VehicleColor = user.VehicleColor
	}
	return view, nil
}

// PublicProfile is View plus the viewer's mutual-community flags.
func (s *UserService) PublicProfile(ctx context.Context, viewer *models.User, userID uuid.UUID) (*UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view, err := s.View(ctx, user)
	if err != nil {
		return nil, err
	}
	view.MutualInfo = &MutualInfo{
		SameBranch: viewer.Branch != nil && user.Branch != nil && *viewer.Branch == *user.Branch,
		SameYear:   viewer.AcademicYear != nil && user.AcademicYear != nil && *viewer.AcademicYear == *user.AcademicYear,
	}
	return view, nil
}

type ProfileUpdateInput struct {
	Name          *string
	Role          *models.UserRole
	VehicleModel  *string
	VehicleNumber *string
	VehicleColor  *string
	Branch        *string
	AcademicYear  *string
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in ProfileUpdateInput) (*models.User, error) {
	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
	}
	if in.Role != nil && (*in.Role == models.RoleRider || *in.Role == models.RoleDriver) {
		user.Role = *in.Role
	}
	if in.VehicleModel != nil {
		user.VehicleModel = in.VehicleModel
	}
	if in.VehicleNumber != nil {
		user.VehicleNumber = in.VehicleNumber
	}
	if in.VehicleColor != nil {
		user.VehicleColor = in.VehicleColor
	}
	if in.Branch != nil {
		if _, ok := catalog.BranchName(*in.Branch); !ok {
			return nil, ErrInvalidBranch
		}
		user.Branch = in.Branch
	}
	if in.AcademicYear != nil {
		if _, ok := catalog.AcademicYearName(*in.AcademicYear); !ok {
			return nil, ErrInvalidAcademicYear
		}
		user.AcademicYear = in.AcademicYear
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SubmitVerification stores the uploaded student-ID image and moves the
// user to pending review.
func (s *UserService) SubmitVerification(ctx context.Context, user *models.User, studentIDImage string) error {
	if user.VerificationStatus == models.VerificationVerified {
		return ErrAlreadyVerified
	}
	user.StudentIDImage = studentIDImage
	user.VerificationStatus = models.VerificationPending
	return s.users.Update(ctx, user)
}

type UserStats struct {
	RidesOffered int     `json:"rides_offered"`
	RidesTaken   int     `json:"rides_taken"`
	TotalRides   int     `json:"total_rides"`
	Savings      Savings `json:"savings"`
	Streak       Streak  `json:"streak"`
	Badges       []Badge `json:"badges"`
}

func (s *UserService) Stats(ctx context.Context, user *models.User) (*UserStats, error) {
	offered, err := s.rides.CountCompletedByDriver(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	taken, err := s.requests.CountCompletedByRider(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	total := int(offered + taken)
	savings := s.trust.Savings(total)

	streak, err := s.streaks(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		RidesOffered: int(offered),
		RidesTaken:   int(taken),
		TotalRides:   total,
		Savings:      savings,
		Streak:       streak,
		Badges:       s.trust.Badges(total, savings, streak.Longest),
	}, nil
}

func (s *UserService) streaks(ctx context.Context, userID uuid.UUID) (Streak, error) {
	now := time.Now().UTC()
	since := now.Add(-s.streakLookback).Format(models.RideDateLayout)

	driverDates, err := s.rides.CompletedDatesForDriver(ctx, userID, since)
	if err != nil {
		return Streak{}, err
	}
	riderDates, err := s.requests.CompletedDatesForRider(ctx, userID, since)
	if err != nil {
		return Streak{}, err
	}

	return s.trust.Streaks(append(driverDates, riderDates...), now), nil
}
