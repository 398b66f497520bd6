package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/config"
	"github.com/vanthang0312/recipe-app/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionService,
	sessionStore auth.SessionStoreInterface,
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	feedbackHandler *handler.FeedbackHandler,
	favoriteHandler *handler.FavoriteHandler,
	profileHandler *handler.ProfileHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served straight from disk.
	e.Static("/uploads", cfg.UploadDir)

	parseSession := func(c echo.Context, token string) (interface{}, error) {
		claims, err := sessions.Validate(token)
		if err != nil {
			return nil, err
		}
		revoked, _ := sessionStore.IsSessionRevoked(c.Request().Context(), claims.ID)
		if revoked {
			return nil, echo.ErrUnauthorized
		}
		return claims, nil
	}

	sessionLookup := "cookie:" + auth.SessionCookie

	// Optional session: anonymous requests pass through, a valid cookie
	// attaches the viewer identity. Used by the gate-checked public pages.
	optionalSession := echojwt.WithConfig(echojwt.Config{
		TokenLookup:    sessionLookup,
		ParseTokenFunc: parseSession,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil // anonymous is fine here
		},
		ContinueOnIgnoredError: true,
	})

	// Required session: missing or revoked cookies are rejected.
	requiredSession := echojwt.WithConfig(echojwt.Config{
		TokenLookup:    sessionLookup,
		ParseTokenFunc: parseSession,
	})

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot", authHandler.Forgot)

	public := api.Group("", optionalSession)
	public.GET("/recipes", recipeHandler.List)
	public.GET("/recipes/:id", recipeHandler.Detail)
	public.GET("/recipes/:id/rating-comments", feedbackHandler.GetRatingComments)

	// Secured routes (require a live session cookie)
	secured := api.Group("", requiredSession)
	secured.POST("/auth/logout", authHandler.Logout)

	secured.POST("/recipes", recipeHandler.Create)
	secured.PUT("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)

	secured.POST("/recipes/:id/rating", feedbackHandler.SubmitRating)
	secured.POST("/recipes/:id/comment", feedbackHandler.AddComment)

	secured.POST("/recipes/:id/favorite", favoriteHandler.Favorite)
	secured.DELETE("/recipes/:id/favorite", favoriteHandler.Unfavorite)
	secured.GET("/favorites", favoriteHandler.List)

	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile", profileHandler.Update)

	// Admin routes: session plus the effective-admin check
	admin := api.Group("/admin", requiredSession, RequireAdmin(cfg.RootAdminUser))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/recipes/:id/approve", adminHandler.ApproveRecipe)
	admin.POST("/recipes/:id/reject", adminHandler.RejectRecipe)
	admin.DELETE("/recipes/:id", adminHandler.DeleteRecipe)
	admin.DELETE("/comments/:id", adminHandler.DeleteComment)
	admin.POST("/users/:id/toggle-ban", adminHandler.ToggleBan)
}

// RequireAdmin aborts with 403 unless the session belongs to an effective
// administrator (stored role or configured root admin username).
func RequireAdmin(rootAdmin string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			viewer := handler.CurrentViewer(c)
			if viewer == nil || !viewer.Admin(rootAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
