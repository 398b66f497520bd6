package model

import "time"

// Rating holds one user's star rating for a recipe. The unique index over
// (user_id, recipe_id) is the conflict target of the upsert that keeps at
// most one row per pair.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_rating_user_recipe;not null"`
	RecipeID  uint      `json:"recipe_id" gorm:"uniqueIndex:idx_rating_user_recipe;not null"`
	Value     int       `json:"value" gorm:"column:rating;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
