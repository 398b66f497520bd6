package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/model"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindWithAuthor(ctx context.Context, id uint) (*model.CommentWithAuthor, error)
	ListByRecipe(ctx context.Context, recipeID uint) ([]model.CommentWithAuthor, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository builds a GORM-backed repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindWithAuthor returns one comment joined with its author's username.
func (r *commentRepository) FindWithAuthor(ctx context.Context, id uint) (*model.CommentWithAuthor, error) {
	var comment model.CommentWithAuthor
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("comments.id, comments.recipe_id, comments.user_id, comments.content, comments.created_at, users.username AS user_name").
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.id = ?", id).
		Scan(&comment).Error
	if err != nil {
		return nil, err
	}
	if comment.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}

// ListByRecipe returns the full feed for a recipe, newest first.
func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]model.CommentWithAuthor, error) {
	comments := make([]model.CommentWithAuthor, 0)
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("comments.id, comments.recipe_id, comments.user_id, comments.content, comments.created_at, users.username AS user_name").
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.recipe_id = ?", recipeID).
		Order("comments.created_at DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}
