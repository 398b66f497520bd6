package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged"; image paths are already-stored upload references.
type ProfileUpdate struct {
	Email       string
	NewPassword string
	AvatarPath  *string
	CoverPath   *string
}

// ProfileService exposes the signed-in user's own page.
type ProfileService interface {
	Profile(ctx context.Context, userID uint) (*model.User, []model.Recipe, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error)
}

type profileService struct {
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
	uploader   upload.Store
}

// NewProfileService builds a ProfileService.
func NewProfileService(userRepo repository.UserRepository, recipeRepo repository.RecipeRepository, uploader upload.Store) ProfileService {
	return &profileService{userRepo: userRepo, recipeRepo: recipeRepo, uploader: uploader}
}

// Profile returns the user and their own recipes, newest first.
func (s *profileService) Profile(ctx context.Context, userID uint) (*model.User, []model.Recipe, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrNotFoundOrUnauthorized
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	recipes, err := s.recipeRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list own recipes: %w", err)
	}
	return user, recipes, nil
}

// UpdateProfile applies the edit: email (checked against other accounts),
// optional password change (clears the forced-change flag), optional new
// avatar/cover images. Replaced images are removed best-effort.
func (s *profileService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	email := strings.TrimSpace(in.Email)
	if email != "" && email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, errors.ErrEmailTaken
		}
		user.Email = email
	}

	var oldAvatar, oldCover string
	if in.AvatarPath != nil {
		if user.Avatar != nil {
			oldAvatar = *user.Avatar
		}
		user.Avatar = in.AvatarPath
	}
	if in.CoverPath != nil {
		if user.Cover != nil {
			oldCover = *user.Cover
		}
		user.Cover = in.CoverPath
	}

	if in.NewPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
		user.MustChangePassword = false
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if oldAvatar != "" {
		s.uploader.Remove(oldAvatar)
	}
	if oldCover != "" {
		s.uploader.Remove(oldCover)
	}
	return user, nil
}
