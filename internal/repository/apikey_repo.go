package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKeyRepository defines data access for API keys. Lookup is a verbatim
// equality match on the stored token.
type ApiKeyRepository interface {
	Create(ctx context.Context, key *model.ApiKey) error
	GetByToken(ctx context.Context, token string) (*model.ApiKey, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ApiKey, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}

type apiKeyRepository struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *model.ApiKey) error {
	return GetDB(ctx, r.db).Create(key).Error
}

func (r *apiKeyRepository) GetByToken(ctx context.Context, token string) (*model.ApiKey, error) {
	var key model.ApiKey
	if err := GetDB(ctx, r.db).Preload("User").First(&key, "key = ?", token).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *apiKeyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ApiKey, error) {
	var keys []model.ApiKey
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteOwned removes a key only when it belongs to userID, returning the
// number of rows removed so the caller can distinguish not-found.
func (r *apiKeyRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.ApiKey{})
	return res.RowsAffected, res.Error
}

func (r *apiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return GetDB(ctx, r.db).Model(&model.ApiKey{}).Where("id = ?", id).
		Update("last_used", &now).Error
}
