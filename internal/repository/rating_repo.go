package repository

import (
	"context"

	"campuspool/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) ExistsByRequestAndRater(ctx context.Context, requestID, raterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("ride_request_id = ? AND rater_id = ?", requestID, raterID).
		Count(&count).Error
	return count > 0, err
}

// ValuesForUser returns every rating value given to the user.
func (r *RatingRepository) ValuesForUser(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var values []int
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("rated_user_id = ?", userID).
		Pluck("rating", &values).Error
	return values, err
}
