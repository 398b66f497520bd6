package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (string, *model.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.SessionClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockAuthService) SeedRootAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	return e
}

func TestAuthHandler_Login_SetsCookieAndReturnsUser(t *testing.T) {
	authService := new(MockAuthService)
	h := NewAuthHandler(authService, 24*time.Hour)
	e := newTestEcho()

	stored := &model.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
	authService.On("Login", mock.Anything, "alice", "secret1").Return("signed-token", stored, nil)

	body := `{"login":"alice","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookie {
			sessionCookie = cookie
		}
	}
	if assert.NotNil(t, sessionCookie) {
		assert.Equal(t, "signed-token", sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
		assert.Equal(t, int((24 * time.Hour).Seconds()), sessionCookie.MaxAge)
	}

	var resp LoginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if assert.NotNil(t, resp.User) {
		assert.Equal(t, uint(7), resp.User.ID)
		assert.Equal(t, "alice", resp.User.Username)
	}
	assert.False(t, resp.MustChangePassword)
}

func TestAuthHandler_Login_NeverSerializesPasswordHash(t *testing.T) {
	authService := new(MockAuthService)
	h := NewAuthHandler(authService, time.Hour)
	e := newTestEcho()

	stored := &model.User{ID: 7, Username: "alice", PasswordHash: "$2a$12$notforclients"}
	authService.On("Login", mock.Anything, "alice", "secret1").Return("signed-token", stored, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login":"alice","password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.NotContains(t, rec.Body.String(), "notforclients")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestAuthHandler_Register_RejectsBadUsername(t *testing.T) {
	authService := new(MockAuthService)
	h := NewAuthHandler(authService, time.Hour)
	e := newTestEcho()

	body := `{"username":"bad name!","email":"a@example.com","password":"secret1","confirm_password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Register(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	if assert.ErrorAs(t, err, &httpErr) {
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
	authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
