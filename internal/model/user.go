package model

import "time"

// User roles. "banned" is a role value rather than a separate flag so the
// login check and the admin toggle operate on the same column.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleBanned = "banned"
)

// User represents a registered account.
type User struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Username           string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash       string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role               string    `json:"role" gorm:"size:20;default:'user'"`
	MustChangePassword bool      `json:"must_change_password" gorm:"column:must_change;default:false"`
	Avatar             *string   `json:"avatar,omitempty" gorm:"size:255"`
	Cover              *string   `json:"cover,omitempty" gorm:"size:255"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
