package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// DashboardPageSize is the admin recipe listing page size.
const DashboardPageSize = 20

// DashboardStats holds the admin overview counters.
type DashboardStats struct {
	TotalRecipes   int64 `json:"total_recipes"`
	TotalUsers     int64 `json:"total_users"`
	TotalFavorites int64 `json:"total_favorites"`
	TodayRecipes   int64 `json:"today_recipes"`
}

// Dashboard is the admin overview payload.
type Dashboard struct {
	Recipes    []model.Recipe        `json:"recipes"`
	Pagination Pagination            `json:"pagination"`
	Users      []model.User          `json:"users"`
	Stats      DashboardStats        `json:"stats"`
	AuditLog   []model.ModerationLog `json:"audit_log"`
}

// ModerationService carries the admin-only operations: status transitions,
// violation removal, comment deletion and the ban toggle. Every action is
// recorded in the audit log.
type ModerationService interface {
	ApproveRecipe(ctx context.Context, adminID, recipeID uint) error
	RejectRecipe(ctx context.Context, adminID, recipeID uint) error
	DeleteRecipe(ctx context.Context, adminID, recipeID uint) error
	DeleteComment(ctx context.Context, adminID, commentID uint) error
	ToggleBan(ctx context.Context, adminID, userID uint) (string, error)
	Dashboard(ctx context.Context, page int) (*Dashboard, error)
}

type moderationService struct {
	recipeRepo  repository.RecipeRepository
	userRepo    repository.UserRepository
	favRepo     repository.FavoriteRepository
	commentRepo repository.CommentRepository
	logRepo     repository.ModerationLogRepository
	uploader    upload.Store
}

// NewModerationService builds a ModerationService.
func NewModerationService(
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
	favRepo repository.FavoriteRepository,
	commentRepo repository.CommentRepository,
	logRepo repository.ModerationLogRepository,
	uploader upload.Store,
) ModerationService {
	return &moderationService{
		recipeRepo:  recipeRepo,
		userRepo:    userRepo,
		favRepo:     favRepo,
		commentRepo: commentRepo,
		logRepo:     logRepo,
		uploader:    uploader,
	}
}

// ApproveRecipe moves a recipe to approved. Transitions may be repeated and
// reversed at will; there is no terminal state.
func (s *moderationService) ApproveRecipe(ctx context.Context, adminID, recipeID uint) error {
	return s.setStatus(ctx, adminID, recipeID, model.StatusApproved, model.ActionApproveRecipe)
}

// RejectRecipe moves a recipe to rejected.
func (s *moderationService) RejectRecipe(ctx context.Context, adminID, recipeID uint) error {
	return s.setStatus(ctx, adminID, recipeID, model.StatusRejected, model.ActionRejectRecipe)
}

func (s *moderationService) setStatus(ctx context.Context, adminID, recipeID uint, status model.Status, action string) error {
	affected, err := s.recipeRepo.UpdateStatus(ctx, recipeID, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return errors.ErrNotFoundOrUnauthorized
	}
	s.audit(ctx, adminID, action, "recipe", recipeID, string(status))
	return nil
}

// DeleteRecipe removes any recipe and its dependents, authorized by role
// instead of ownership. Same cascade and best-effort image cleanup as the
// owner path.
func (s *moderationService) DeleteRecipe(ctx context.Context, adminID, recipeID uint) error {
	existing, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("find recipe: %w", err)
	}

	affected, err := s.recipeRepo.DeleteCascade(ctx, recipeID, nil)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if affected == 0 {
		return errors.ErrNotFoundOrUnauthorized
	}

	if existing.Image != "" {
		s.uploader.Remove(existing.Image)
	}
	s.audit(ctx, adminID, model.ActionDeleteRecipe, "recipe", recipeID, existing.Title)
	return nil
}

// DeleteComment removes a single comment from a feed.
func (s *moderationService) DeleteComment(ctx context.Context, adminID, commentID uint) error {
	affected, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if affected == 0 {
		return errors.ErrNotFoundOrUnauthorized
	}
	s.audit(ctx, adminID, model.ActionDeleteComment, "comment", commentID, "")
	return nil
}

// ToggleBan flips a user between banned and user, returning the new role.
func (s *moderationService) ToggleBan(ctx context.Context, adminID, userID uint) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrNotFoundOrUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	newRole := model.RoleBanned
	if user.Role == model.RoleBanned {
		newRole = model.RoleUser
	}
	if err := s.userRepo.UpdateRole(ctx, userID, newRole); err != nil {
		return "", fmt.Errorf("update role: %w", err)
	}
	s.audit(ctx, adminID, model.ActionToggleBan, "user", userID, newRole)
	return newRole, nil
}

// Dashboard returns the admin overview: one page of recipes with authors,
// recent users, counters and the recent audit trail.
func (s *moderationService) Dashboard(ctx context.Context, page int) (*Dashboard, error) {
	if page < 1 {
		page = 1
	}

	recipes, total, err := s.recipeRepo.List(ctx, "", page, DashboardPageSize)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	users, err := s.userRepo.List(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var stats DashboardStats
	if stats.TotalRecipes, err = s.recipeRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalFavorites, err = s.favRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodayRecipes, err = s.recipeRepo.CountCreatedSince(ctx, midnight); err != nil {
		return nil, fmt.Errorf("count today's recipes: %w", err)
	}

	auditLog, err := s.logRepo.ListRecent(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}

	return &Dashboard{
		Recipes:    recipes,
		Pagination: paginate(page, total, DashboardPageSize),
		Users:      users,
		Stats:      stats,
		AuditLog:   auditLog,
	}, nil
}

// audit records the action; a failed write is logged, not escalated, so the
// moderation action itself stands.
func (s *moderationService) audit(ctx context.Context, adminID uint, action, targetType string, targetID uint, note string) {
	entry := &model.ModerationLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Note:       note,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("moderation: audit log write failed: %v", err)
	}
}
