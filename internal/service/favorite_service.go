package service

import (
	"context"
	"fmt"

	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
)

// FavoriteService manages the (user, recipe) favorite join.
type FavoriteService interface {
	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) error
	List(ctx context.Context, userID uint) ([]model.Recipe, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteService builds a FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// Favorite is idempotent: repeating it leaves a single row.
func (s *favoriteService) Favorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.favoriteRepo.Add(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.favoriteRepo.Remove(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID uint) ([]model.Recipe, error) {
	recipes, err := s.favoriteRepo.ListRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return recipes, nil
}
