package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/vanthang0312/recipe-app/docs" // swagger docs

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/cache"
	"github.com/vanthang0312/recipe-app/internal/config"
	"github.com/vanthang0312/recipe-app/internal/db"
	"github.com/vanthang0312/recipe-app/internal/handler"
	"github.com/vanthang0312/recipe-app/internal/mail"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
	"github.com/vanthang0312/recipe-app/internal/router"
	"github.com/vanthang0312/recipe-app/internal/service"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// @title Recipe App API
// @version 1.0
// @description Recipe sharing API with moderated submissions, ratings, comments and favorites.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Favorite{},
		&model.Rating{},
		&model.Comment{},
		&model.ModerationLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable, running without cache/session revocation: %v", err)
	}

	uploader, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	logRepo := repository.NewModerationLogRepository(gormDB)

	// Initialize auth components
	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour
	sessions := auth.NewSessionService(cfg.JWTSecret, sessionTTL)
	sessionStore := auth.NewSessionStore(cacheClient)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, sessionStore, mailer,
		cfg.RootAdminUser, cfg.RootAdminPass, cfg.RootAdminEmail)
	recipeService := service.NewRecipeService(recipeRepo, favoriteRepo, uploader, cfg.RootAdminUser)
	ratingService := service.NewRatingService(ratingRepo, cacheClient)
	commentService := service.NewCommentService(commentRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	profileService := service.NewProfileService(userRepo, recipeRepo, uploader)
	moderationService := service.NewModerationService(recipeRepo, userRepo, favoriteRepo, commentRepo, logRepo, uploader)

	// Seed the configured admin account when none exists yet.
	if err := authService.SeedRootAdmin(context.Background()); err != nil {
		log.Printf("admin seed: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	recipeHandler := handler.NewRecipeHandler(recipeService, uploader)
	feedbackHandler := handler.NewFeedbackHandler(ratingService, commentService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	profileHandler := handler.NewProfileHandler(profileService, uploader)
	adminHandler := handler.NewAdminHandler(moderationService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		sessionStore,
		authHandler,
		recipeHandler,
		feedbackHandler,
		favoriteHandler,
		profileHandler,
		adminHandler,
	)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Printf("API docs at %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
