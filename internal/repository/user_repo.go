package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserWithCounts is a user row joined with its contribution counters for the
// admin user listing.
type UserWithCounts struct {
	model.User
	ApiKeyCount      int64 `json:"api_key_count"`
	TranslationCount int64 `json:"translation_count"`
}

// UserStats aggregates a single user's contributions for the detail view.
type UserStats struct {
	TranslationsCreated  int64 `json:"translations_created"`
	TranslationsReviewed int64 `json:"translations_reviewed"`
	KeysCreated          int64 `json:"keys_created"`
	ApiKeysCount         int64 `json:"api_keys_count"`
}

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]UserWithCounts, int64, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]UserWithCounts, int64, error) {
	var rows []UserWithCounts
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Model(&model.User{}).
		Select(`users.*,
			(SELECT COUNT(*) FROM api_keys WHERE api_keys.user_id = users.id) AS api_key_count,
			(SELECT COUNT(*) FROM translations WHERE translations.translated_by = users.id) AS translation_count`).
		Order("users.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return GetDB(ctx, r.db).Model(&model.User{}).Where("id = ?", id).
		Update("last_login", &now).Error
}

// Delete removes the user and their API keys. The keys are removed
// explicitly because sqlite does not enforce the FK cascade.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.ApiKey{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
}

func (r *userRepository) Stats(ctx context.Context, id uuid.UUID) (*UserStats, error) {
	db := GetDB(ctx, r.db)
	var stats UserStats

	if err := db.Model(&model.Translation{}).Where("translated_by = ?", id).Count(&stats.TranslationsCreated).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Translation{}).Where("reviewed_by = ?", id).Count(&stats.TranslationsReviewed).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.TranslationKey{}).Where("created_by = ?", id).Count(&stats.KeysCreated).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.ApiKey{}).Where("user_id = ?", id).Count(&stats.ApiKeysCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
