package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/config"
	"github.com/vanthang0312/recipe-app/internal/db"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/repository"
	"github.com/vanthang0312/recipe-app/internal/service"
)

// Seeds the admin account named by ADMIN_USER / ADMIN_PASS / ADMIN_EMAIL.
// The server does the same at startup; this command exists for provisioning
// a database ahead of the first deploy.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Favorite{},
		&model.Rating{},
		&model.Comment{},
		&model.ModerationLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if cfg.RootAdminUser == "" || cfg.RootAdminPass == "" {
		log.Println("ADMIN_USER / ADMIN_PASS not set, nothing to seed")
		return
	}

	userRepo := repository.NewUserRepository(gormDB)
	sessions := auth.NewSessionService(cfg.JWTSecret, time.Duration(cfg.SessionTTLHrs)*time.Hour)
	authService := service.NewAuthService(
		userRepo,
		sessions,
		nil, // session revocation is not exercised here
		nil, // no mail is sent during seeding
		cfg.RootAdminUser,
		cfg.RootAdminPass,
		cfg.RootAdminEmail,
	)

	if err := authService.SeedRootAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	log.Printf("Seed completed successfully!")
}
