package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vanthang0312/recipe-app/internal/model"
)

// RatingRepository defines rating persistence operations. The at-most-one-
// rating-per-(user, recipe) invariant is carried entirely by the upsert; no
// application-level locking.
type RatingRepository interface {
	Upsert(ctx context.Context, recipeID, userID uint, value int) error
	Aggregate(ctx context.Context, recipeID uint) (avg float64, count int64, err error)
	FindValue(ctx context.Context, recipeID, userID uint) (int, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository builds a GORM-backed repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or, on conflict with the (user, recipe) unique
// index, overwrites the existing value as a single atomic statement.
func (r *ratingRepository) Upsert(ctx context.Context, recipeID, userID uint, value int) error {
	rating := model.Rating{
		RecipeID: recipeID,
		UserID:   userID,
		Value:    value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error
}

// Aggregate returns the arithmetic mean and count over all ratings for the
// recipe. Zero ratings yields (0, 0, nil).
func (r *ratingRepository) Aggregate(ctx context.Context, recipeID uint) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("AVG(rating) AS avg, COUNT(*) AS total").
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, row.Total, nil
	}
	return *row.Avg, row.Total, nil
}

// FindValue returns the user's current rating for the recipe, or 0 when
// none exists.
func (r *ratingRepository) FindValue(ctx context.Context, recipeID, userID uint) (int, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rating.Value, nil
}
