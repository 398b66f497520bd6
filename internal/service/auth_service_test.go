package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailTakenByOther(ctx context.Context, email string, userID uint) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string, mustChange bool) error {
	args := m.Called(ctx, id, passwordHash, mustChange)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit int) ([]model.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) AdminExists(ctx context.Context, rootAdminUser string) (bool, error) {
	args := m.Called(ctx, rootAdminUser)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendTemporaryPassword(to, username, tempPassword string) error {
	args := m.Called(to, username, tempPassword)
	return args.Error(0)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func newAuthService(userRepo *MockUserRepository, store *MockSessionStore, mailer *MockMailer, rootUser, rootPass, rootEmail string) AuthService {
	sessions := auth.NewSessionService("test-secret", time.Hour)
	return NewAuthService(userRepo, sessions, store, mailer, rootUser, rootPass, rootEmail)
}

func TestAuthService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	userRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" &&
			u.Email == "alice@example.com" &&
			u.Role == model.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	user, err := svc.Register(ctx, " alice ", " alice@example.com ", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	userRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil)

	_, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")

	assert.ErrorIs(t, err, errors.ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	stored := &model.User{
		ID:           7,
		Username:     "alice",
		Role:         model.RoleUser,
		PasswordHash: hashPassword(t, "secret1"),
	}
	userRepo.On("FindByLogin", ctx, "alice").Return(stored, nil)

	token, user, err := svc.Login(ctx, "alice", "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(7), user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: hashPassword(t, "secret1")}
	userRepo.On("FindByLogin", ctx, "alice").Return(stored, nil)

	_, _, err := svc.Login(ctx, "alice", "wrong")

	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	userRepo.On("FindByLogin", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(ctx, "ghost", "secret1")

	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_BannedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	stored := &model.User{ID: 7, Username: "alice", Role: model.RoleBanned, PasswordHash: hashPassword(t, "secret1")}
	userRepo.On("FindByLogin", ctx, "alice").Return(stored, nil)

	_, _, err := svc.Login(ctx, "alice", "secret1")

	assert.ErrorIs(t, err, errors.ErrAccountBanned)
}

func TestAuthService_Logout_RevokesRemainingTTL(t *testing.T) {
	store := new(MockSessionStore)
	svc := newAuthService(new(MockUserRepository), store, nil, "", "", "")
	ctx := context.Background()

	claims := &auth.SessionClaims{
		UserID:   7,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "session-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	}
	store.On("RevokeSession", ctx, "session-jti", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 29*time.Minute && ttl <= 30*time.Minute
	})).Return(nil)

	err := svc.Logout(ctx, claims)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAuthService_Logout_ExpiredSessionIsNoop(t *testing.T) {
	store := new(MockSessionStore)
	svc := newAuthService(new(MockUserRepository), store, nil, "", "", "")

	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "session-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	err := svc.Logout(context.Background(), claims)

	assert.NoError(t, err)
	store.AssertNotCalled(t, "RevokeSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := newAuthService(userRepo, nil, mailer, "", "", "")
	ctx := context.Background()

	stored := &model.User{ID: 7, Username: "alice", Email: "alice@example.com"}
	userRepo.On("FindByUsername", ctx, "alice").Return(stored, nil)

	var mailedPassword string
	mailer.On("SendTemporaryPassword", "alice@example.com", "alice", mock.MatchedBy(func(p string) bool {
		mailedPassword = p
		return len(p) == 8
	})).Return(nil)

	var storedHash string
	userRepo.On("UpdatePassword", ctx, uint(7), mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return true
	}), true).Return(nil)

	err := svc.ForgotPassword(ctx, "alice")

	assert.NoError(t, err)
	// The mailed cleartext must match the stored hash.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(mailedPassword)))
	mailer.AssertExpectations(t)
}

func TestAuthService_ForgotPassword_NoEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	svc := newAuthService(userRepo, nil, mailer, "", "", "")
	ctx := context.Background()

	stored := &model.User{ID: 7, Username: "alice", Email: "  "}
	userRepo.On("FindByUsername", ctx, "alice").Return(stored, nil)

	err := svc.ForgotPassword(ctx, "alice")

	assert.ErrorIs(t, err, errors.ErrNoEmailOnAccount)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ForgotPassword_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")
	ctx := context.Background()

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ForgotPassword(ctx, "ghost")

	assert.ErrorIs(t, err, errors.ErrNotFoundOrUnauthorized)
}

func TestAuthService_SeedRootAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "superchef", "bootpass", "admin@example.com")
	ctx := context.Background()

	userRepo.On("AdminExists", ctx, "superchef").Return(false, nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "superchef" &&
			u.Email == "admin@example.com" &&
			u.Role == model.RoleAdmin &&
			u.MustChangePassword
	})).Return(nil)

	err := svc.SeedRootAdmin(ctx)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_SeedRootAdmin_AlreadyExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "superchef", "bootpass", "")
	ctx := context.Background()

	userRepo.On("AdminExists", ctx, "superchef").Return(true, nil)

	err := svc.SeedRootAdmin(ctx)

	assert.NoError(t, err)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_SeedRootAdmin_Unconfigured(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, nil, nil, "", "", "")

	err := svc.SeedRootAdmin(context.Background())

	assert.NoError(t, err)
	userRepo.AssertNotCalled(t, "AdminExists", mock.Anything, mock.Anything)
}
