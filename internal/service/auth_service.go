package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/mail"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
)

const bcryptCost = 12

// AuthService handles registration, login and the credential-reset flow.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, login, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.SessionClaims) error
	ForgotPassword(ctx context.Context, username string) error
	SeedRootAdmin(ctx context.Context) error
}

type authService struct {
	userRepo     repository.UserRepository
	sessions     *auth.SessionService
	sessionStore auth.SessionStoreInterface
	mailer       mail.Mailer

	rootAdminUser  string
	rootAdminPass  string
	rootAdminEmail string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	sessions *auth.SessionService,
	sessionStore auth.SessionStoreInterface,
	mailer mail.Mailer,
	rootAdminUser, rootAdminPass, rootAdminEmail string,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		sessions:       sessions,
		sessionStore:   sessionStore,
		mailer:         mailer,
		rootAdminUser:  rootAdminUser,
		rootAdminPass:  rootAdminPass,
		rootAdminEmail: rootAdminEmail,
	}
}

// Register creates a new account with a hashed password.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, errors.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates by username or email and issues a session token.
// Whether the account is an effective administrator is derived at gate time
// from the username and the configured root admin; the stored role is never
// mutated here.
func (s *authService) Login(ctx context.Context, login, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if strings.EqualFold(user.Role, model.RoleBanned) {
		return "", nil, errors.ErrAccountBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	_, token, err := s.sessions.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return token, user, nil
}

// Logout revokes the session token until its natural expiry.
func (s *authService) Logout(ctx context.Context, claims *auth.SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.sessionStore.RevokeSession(ctx, claims.ID, ttl)
}

// ForgotPassword stores a bcrypt-hashed temporary password, flags the
// account for a forced change, and mails the cleartext to the account's
// address.
func (s *authService) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("find user: %w", err)
	}
	if strings.TrimSpace(user.Email) == "" {
		return errors.ErrNoEmailOnAccount
	}

	tempPass, err := generateTempPassword()
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPass), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed), true); err != nil {
		return fmt.Errorf("store temporary password: %w", err)
	}

	if err := s.mailer.SendTemporaryPassword(user.Email, user.Username, tempPass); err != nil {
		return fmt.Errorf("send temporary password: %w", err)
	}
	return nil
}

// SeedRootAdmin creates the configured admin account when no admin exists
// yet. The seeded account must change its password on first login.
func (s *authService) SeedRootAdmin(ctx context.Context) error {
	if s.rootAdminUser == "" || s.rootAdminPass == "" {
		return nil
	}
	exists, err := s.userRepo.AdminExists(ctx, s.rootAdminUser)
	if err != nil {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.rootAdminPass), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	email := s.rootAdminEmail
	if email == "" {
		email = s.rootAdminUser
	}
	admin := &model.User{
		Username:           s.rootAdminUser,
		Email:              email,
		PasswordHash:       string(hashed),
		Role:               model.RoleAdmin,
		MustChangePassword: true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("seeded admin account %q from environment", s.rootAdminUser)
	return nil
}

// generateTempPassword returns an 8-character hex credential.
func generateTempPassword() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
