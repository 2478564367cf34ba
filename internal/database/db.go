package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"backend/internal/config"
	"backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM and migrates
// the schema.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Database.Type {
	case "sqlite":
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dialector = sqlite.Open(cfg.Database.SQLite.Path)
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.ApiKey{},
		&model.Language{},
		&model.TranslationKey{},
		&model.Translation{},
		&model.ActivityLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Seed creates the bootstrap admin when no admin-role user exists yet, and
// the default language set when the languages table is empty.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}

	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.AdminPassword), cfg.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
		}
		admin := model.User{
			Username: cfg.Bootstrap.AdminUsername,
			Email:    cfg.Bootstrap.AdminEmail,
			Password: string(hashed),
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Printf("Seeded admin user %q", admin.Username)
	}

	var langCount int64
	if err := db.Model(&model.Language{}).Count(&langCount).Error; err != nil {
		return err
	}

	if langCount == 0 {
		defaults := []model.Language{
			{Code: "en", Name: "English", IsSource: true},
			{Code: "de", Name: "Deutsch"},
			{Code: "fr", Name: "Français"},
			{Code: "es", Name: "Español"},
		}
		if err := db.Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to seed languages: %w", err)
		}
		log.Println("Seeded default languages")
	}

	return nil
}
