package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
)

// minCommentLength is measured in runes after trimming.
const minCommentLength = 5

// CommentService maintains the append-only feed per recipe. Deletion lives
// on the moderation service; authors cannot remove their own comments.
type CommentService interface {
	Add(ctx context.Context, recipeID, userID uint, content string) (*model.CommentWithAuthor, error)
	List(ctx context.Context, recipeID uint) ([]model.CommentWithAuthor, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// Add persists a comment and returns it joined with the author's display name.
func (s *commentService) Add(ctx context.Context, recipeID, userID uint, content string) (*model.CommentWithAuthor, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < minCommentLength {
		return nil, errors.ErrCommentTooShort
	}

	comment := &model.Comment{
		RecipeID: recipeID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	withAuthor, err := s.commentRepo.FindWithAuthor(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("load created comment: %w", err)
	}
	return withAuthor, nil
}

// List returns the full feed, newest first. Consumers re-fetch the whole
// feed after every mutation; there is no pagination or diffing.
func (s *commentService) List(ctx context.Context, recipeID uint) ([]model.CommentWithAuthor, error) {
	comments, err := s.commentRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
