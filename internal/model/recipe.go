package model

import "time"

// Status is the moderation state of a recipe. StatusUnset models rows that
// predate moderation (no status ever written); the visibility gate treats
// those as visible to everyone.
type Status string

const (
	StatusUnset    Status = ""
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Recipe represents a user-submitted recipe.
type Recipe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	Image        string    `json:"image" gorm:"size:255;not null"`
	Video        *string   `json:"video,omitempty" gorm:"size:255"`
	Ingredients  string    `json:"ingredients" gorm:"type:text;not null"`
	Instructions string    `json:"instructions" gorm:"type:text;not null"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Status       Status    `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
