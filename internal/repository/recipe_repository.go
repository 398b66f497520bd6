package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/model"
)

// RecipeRepository defines recipe persistence operations. Mutations that
// belong to the owner filter on (id, user_id) jointly, so a non-owner
// gets the same zero-rows outcome as a missing id.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Recipe, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Recipe, int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Recipe, error)
	UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.Status) (int64, error)
	DeleteCascade(ctx context.Context, id uint, ownerID *uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository builds a GORM-backed repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("User").First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns one page of recipes, newest first, with authors preloaded.
// A non-empty search term matches title, description or ingredients.
func (r *recipeRepository) List(ctx context.Context, search string, page, limit int) ([]model.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Recipe{})
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR ingredients LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	if err := query.Preload("User").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateOwned applies fields to the recipe only when id and owner match,
// returning the number of rows touched.
func (r *recipeRepository) UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) UpdateStatus(ctx context.Context, id uint, status model.Status) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// DeleteCascade removes the recipe row and its dependent favorites, ratings
// and comments in one transaction. A non-nil ownerID restricts the delete
// to that owner; nil is the admin path. Returns rows affected for the
// recipe row itself; zero means nothing was deleted anywhere.
func (r *recipeRepository) DeleteCascade(ctx context.Context, id uint, ownerID *uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("id = ?", id)
		if ownerID != nil {
			del = del.Where("user_id = ?", *ownerID)
		}
		res := del.Delete(&model.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			// nothing to cascade; keep the transaction a no-op
			return nil
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Where("recipe_id = ?", id).Delete(&model.Comment{}).Error
	})
	return affected, err
}

func (r *recipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error
	return count, err
}

func (r *recipeRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
