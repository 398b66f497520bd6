package model

import "time"

// Favorite is the (user, recipe) join entity. The composite primary key is
// the uniqueness constraint the idempotent insert relies on.
type Favorite struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	RecipeID  uint      `json:"recipe_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}
