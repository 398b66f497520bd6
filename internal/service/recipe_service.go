package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/authz"
	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// ListPageSize is the public listing page size.
const ListPageSize = 30

// RecipeInput carries the submitted recipe fields.
type RecipeInput struct {
	Title        string
	Description  string
	Video        string
	Ingredients  string
	Instructions string
}

// RecipeDetail is a gate-checked recipe plus the viewer-relative facts the
// detail page needs.
type RecipeDetail struct {
	Recipe      *model.Recipe `json:"recipe"`
	AuthorName  string        `json:"author_name"`
	IsFavorited bool          `json:"is_favorited"`
	IsOwner     bool          `json:"is_owner"`
	IsAdmin     bool          `json:"is_admin"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
}

// RecipeService handles recipe CRUD with the moderation gate on reads and
// joint (id, owner) filtering on writes.
type RecipeService interface {
	Create(ctx context.Context, ownerID uint, in RecipeInput, imagePath string) (*model.Recipe, error)
	Detail(ctx context.Context, id uint, viewer *authz.Viewer) (*RecipeDetail, error)
	List(ctx context.Context, search string, page int) ([]model.Recipe, Pagination, error)
	Update(ctx context.Context, id, ownerID uint, in RecipeInput, newImagePath *string) (*model.Recipe, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type recipeService struct {
	recipeRepo   repository.RecipeRepository
	favoriteRepo repository.FavoriteRepository
	uploader     upload.Store
	rootAdmin    string
}

// NewRecipeService builds a RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	favoriteRepo repository.FavoriteRepository,
	uploader upload.Store,
	rootAdmin string,
) RecipeService {
	return &recipeService{
		recipeRepo:   recipeRepo,
		favoriteRepo: favoriteRepo,
		uploader:     uploader,
		rootAdmin:    rootAdmin,
	}
}

// Create submits a new recipe. Status always starts pending; only an admin
// action moves it.
func (s *recipeService) Create(ctx context.Context, ownerID uint, in RecipeInput, imagePath string) (*model.Recipe, error) {
	if imagePath == "" {
		return nil, errors.ErrImageRequired
	}
	recipe := &model.Recipe{
		Title:        strings.TrimSpace(in.Title),
		Description:  optional(in.Description),
		Image:        imagePath,
		Video:        optional(in.Video),
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		UserID:       ownerID,
		Status:       model.StatusPending,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

// Detail fetches a recipe through the visibility gate. A gate refusal and a
// missing id are the same outcome, so responses never reveal whether a
// hidden recipe exists.
func (s *recipeService) Detail(ctx context.Context, id uint, viewer *authz.Viewer) (*RecipeDetail, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	if !authz.CanViewRecipe(recipe.Status, recipe.UserID, viewer, s.rootAdmin) {
		return nil, errors.ErrNotFoundOrUnauthorized
	}

	detail := &RecipeDetail{Recipe: recipe}
	if recipe.User != nil {
		detail.AuthorName = recipe.User.Username
	}
	if viewer != nil {
		detail.IsOwner = viewer.ID == recipe.UserID
		detail.IsAdmin = viewer.Admin(s.rootAdmin)
		fav, err := s.favoriteRepo.Exists(ctx, viewer.ID, id)
		if err != nil {
			return nil, fmt.Errorf("check favorite: %w", err)
		}
		detail.IsFavorited = fav
	}
	return detail, nil
}

// List returns one public listing page. Listings show every recipe
// regardless of status; the gate applies to detail content only.
func (s *recipeService) List(ctx context.Context, search string, page int) ([]model.Recipe, Pagination, error) {
	if page < 1 {
		page = 1
	}
	recipes, total, err := s.recipeRepo.List(ctx, strings.TrimSpace(search), page, ListPageSize)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, paginate(page, total, ListPageSize), nil
}

// Update edits an owned recipe. The old image is removed only after the row
// update succeeds, and only when a replacement was stored.
func (s *recipeService) Update(ctx context.Context, id, ownerID uint, in RecipeInput, newImagePath *string) (*model.Recipe, error) {
	existing, err := s.recipeRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	fields := map[string]interface{}{
		"title":        strings.TrimSpace(in.Title),
		"description":  optional(in.Description),
		"video":        optional(in.Video),
		"ingredients":  strings.TrimSpace(in.Ingredients),
		"instructions": strings.TrimSpace(in.Instructions),
	}
	if newImagePath != nil {
		fields["image"] = *newImagePath
	}

	affected, err := s.recipeRepo.UpdateOwned(ctx, id, ownerID, fields)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if affected == 0 {
		return nil, errors.ErrNotFoundOrUnauthorized
	}

	if newImagePath != nil && existing.Image != "" {
		s.uploader.Remove(existing.Image)
	}

	updated, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload recipe: %w", err)
	}
	return updated, nil
}

// Delete removes an owned recipe with its favorites, ratings and comments,
// then removes the stored image. Row deletion is authoritative; a failed
// file removal is logged inside the uploader and never rolls anything back.
func (s *recipeService) Delete(ctx context.Context, id, ownerID uint) error {
	existing, err := s.recipeRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("find recipe: %w", err)
	}

	affected, err := s.recipeRepo.DeleteCascade(ctx, id, &ownerID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if affected == 0 {
		return errors.ErrNotFoundOrUnauthorized
	}

	if existing.Image != "" {
		s.uploader.Remove(existing.Image)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func paginate(page int, total int64, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{CurrentPage: page, TotalPages: totalPages, Total: total}
}
