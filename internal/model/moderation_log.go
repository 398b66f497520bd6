package model

import "time"

// Moderation actions recorded in the audit log.
const (
	ActionApproveRecipe = "approve_recipe"
	ActionRejectRecipe  = "reject_recipe"
	ActionDeleteRecipe  = "delete_recipe"
	ActionDeleteComment = "delete_comment"
	ActionToggleBan     = "toggle_ban"
)

// ModerationLog records one admin action. All moderation actions are logged
// regardless of which admin performed them.
type ModerationLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AdminID    uint      `json:"admin_id" gorm:"index;not null"`
	Action     string    `json:"action" gorm:"size:30;not null;index"`
	TargetType string    `json:"target_type" gorm:"size:20;not null"`
	TargetID   uint      `json:"target_id" gorm:"not null"`
	Note       string    `json:"note,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}
