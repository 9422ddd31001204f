package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"fleetdesk/internal/auth"
	"fleetdesk/internal/config"
	"fleetdesk/internal/db"
	"fleetdesk/internal/model"
	"fleetdesk/internal/repository"
)

// Admin bootstrap. Self-registration never grants the admin role, so the
// first (and any further) admin account is provisioned here from
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
func main() {
	_ = godotenv.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if name == "" {
		name = "Administrator"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	existing, err := userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = name
		existing.PasswordHash = hash
		existing.Role = model.RoleAdmin
		if err := userRepo.Update(ctx, existing); err != nil {
			log.Fatalf("update admin: %v", err)
		}
		log.Printf("admin %s updated", email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin %s created", email)
	default:
		log.Fatalf("lookup admin: %v", err)
	}
}
