package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/model"
)

// ModerationLogRepository records admin actions for the audit trail.
type ModerationLogRepository interface {
	Create(ctx context.Context, entry *model.ModerationLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ModerationLog, error)
}

type moderationLogRepository struct {
	db *gorm.DB
}

// NewModerationLogRepository builds a GORM-backed repository.
func NewModerationLogRepository(db *gorm.DB) ModerationLogRepository {
	return &moderationLogRepository{db: db}
}

func (r *moderationLogRepository) Create(ctx context.Context, entry *model.ModerationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moderationLogRepository) ListRecent(ctx context.Context, limit int) ([]model.ModerationLog, error) {
	var entries []model.ModerationLog
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
