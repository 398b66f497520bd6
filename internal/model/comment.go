package model

import "time"

// Comment is an append-only entry in a recipe's feed. Deletion is an admin
// moderation action only; authors cannot remove their own comments.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecipeID  uint      `json:"recipe_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment joined with its author's display name,
// shaped for the rating/comment JSON endpoints.
type CommentWithAuthor struct {
	ID        uint      `json:"id"`
	RecipeID  uint      `json:"recipe_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}
