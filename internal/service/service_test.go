package service

import (
	"context"
	"path/filepath"
	"testing"

	"backend/internal/config"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh sqlite database in a per-test temp directory and
// migrates the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.ApiKey{},
		&model.Language{},
		&model.TranslationKey{},
		&model.Translation{},
		&model.ActivityLog{},
	)
	require.NoError(t, err)

	return db
}

// newTestServices wires the service graph against the given database with no
// websocket hub.
type testServices struct {
	auth         AuthService
	users        UserService
	apiKeys      ApiKeyService
	languages    LanguageService
	translations TranslationService
	activity     ActivityService
}

func newTestServices(db *gorm.DB) testServices {
	userRepo := repository.NewUserRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	txm := repository.NewTransactionManager(db)

	activity := NewActivityService(activityRepo, nil)

	return testServices{
		auth:         NewAuthService(userRepo, activity, testConfig()),
		users:        NewUserService(userRepo, activity, bcrypt.MinCost),
		apiKeys:      NewApiKeyService(apiKeyRepo, activity),
		languages:    NewLanguageService(languageRepo, translationRepo, txm, activity),
		translations: NewTranslationService(translationRepo, languageRepo, txm, activity),
		activity:     activity,
	}
}

// createTestUser inserts a user directly with a hashed password.
func createTestUser(t *testing.T, db *gorm.DB, username, password, role string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@test.local",
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestLanguage inserts a language directly.
func createTestLanguage(t *testing.T, db *gorm.DB, code, name string, isSource bool) *model.Language {
	t.Helper()

	lang := &model.Language{Code: code, Name: name, IsSource: isSource}
	require.NoError(t, db.Create(lang).Error)
	return lang
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret-key-for-testing-only"
	cfg.JWT.ExpiresIn = "24h"
	cfg.Security.BcryptCost = 4
	return cfg
}

func ctx() context.Context {
	return context.Background()
}
