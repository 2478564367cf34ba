package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KeyWithCounts is a translation key joined with its creator name and
// translation counters for the key listing.
type KeyWithCounts struct {
	model.TranslationKey
	CreatedByName    string `json:"created_by_name"`
	TranslationCount int64  `json:"translation_count"`
	ApprovedCount    int64  `json:"approved_count"`
}

// TranslationWithNames is a translation row joined with its language code
// and the usernames of the people who touched it.
type TranslationWithNames struct {
	model.Translation
	LangCode         string `json:"lang_code"`
	LangName         string `json:"lang_name"`
	TranslatedByName string `json:"translated_by_name"`
	ReviewedByName   string `json:"reviewed_by_name"`
}

// TranslationWithKey is a translation row joined with its key string, for
// per-language exports.
type TranslationWithKey struct {
	model.Translation
	Key         string `json:"key"`
	Description string `json:"description"`
}

type TranslationRepository interface {
	CreateKey(ctx context.Context, key *model.TranslationKey) error
	GetKeyByID(ctx context.Context, id uuid.UUID) (*model.TranslationKey, error)
	ListKeys(ctx context.Context) ([]KeyWithCounts, error)
	DeleteKey(ctx context.Context, id uuid.UUID) error

	GetPair(ctx context.Context, keyID, languageID uuid.UUID) (*model.Translation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	Create(ctx context.Context, t *model.Translation) error
	Update(ctx context.Context, t *model.Translation) error
	ListForKey(ctx context.Context, keyID uuid.UUID) ([]TranslationWithNames, error)
	ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]TranslationWithKey, error)
	DeleteForKey(ctx context.Context, keyID uuid.UUID) error
	DeleteForLanguage(ctx context.Context, languageID uuid.UUID) error
	CountForKey(ctx context.Context, keyID uuid.UUID) (int64, error)
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) CreateKey(ctx context.Context, key *model.TranslationKey) error {
	return GetDB(ctx, r.db).Create(key).Error
}

func (r *translationRepository) GetKeyByID(ctx context.Context, id uuid.UUID) (*model.TranslationKey, error) {
	var key model.TranslationKey
	if err := GetDB(ctx, r.db).First(&key, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *translationRepository) ListKeys(ctx context.Context) ([]KeyWithCounts, error) {
	var rows []KeyWithCounts
	err := GetDB(ctx, r.db).Model(&model.TranslationKey{}).
		Select(`translation_keys.*,
			COALESCE(users.username, '') AS created_by_name,
			(SELECT COUNT(*) FROM translations t WHERE t.key_id = translation_keys.id) AS translation_count,
			(SELECT COUNT(*) FROM translations t WHERE t.key_id = translation_keys.id AND t.status = 'approved') AS approved_count`).
		Joins("LEFT JOIN users ON translation_keys.created_by = users.id").
		Order("translation_keys.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepository) DeleteKey(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TranslationKey{}).Error
}

func (r *translationRepository) GetPair(ctx context.Context, keyID, languageID uuid.UUID) (*model.Translation, error) {
	var t model.Translation
	if err := GetDB(ctx, r.db).First(&t, "key_id = ? AND language_id = ?", keyID, languageID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	var t model.Translation
	if err := GetDB(ctx, r.db).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) Create(ctx context.Context, t *model.Translation) error {
	return GetDB(ctx, r.db).Create(t).Error
}

func (r *translationRepository) Update(ctx context.Context, t *model.Translation) error {
	return GetDB(ctx, r.db).Save(t).Error
}

func (r *translationRepository) ListForKey(ctx context.Context, keyID uuid.UUID) ([]TranslationWithNames, error) {
	var rows []TranslationWithNames
	err := GetDB(ctx, r.db).Model(&model.Translation{}).
		Select(`translations.*,
			languages.code AS lang_code,
			languages.name AS lang_name,
			COALESCE(u1.username, '') AS translated_by_name,
			COALESCE(u2.username, '') AS reviewed_by_name`).
		Joins("JOIN languages ON translations.language_id = languages.id").
		Joins("LEFT JOIN users u1 ON translations.translated_by = u1.id").
		Joins("LEFT JOIN users u2 ON translations.reviewed_by = u2.id").
		Where("translations.key_id = ?", keyID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepository) ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]TranslationWithKey, error) {
	var rows []TranslationWithKey
	err := GetDB(ctx, r.db).Model(&model.Translation{}).
		Select(`translations.*, translation_keys.key AS key, translation_keys.description AS description`).
		Joins("JOIN translation_keys ON translations.key_id = translation_keys.id").
		Where("translations.language_id = ?", languageID).
		Order("translation_keys.key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepository) DeleteForKey(ctx context.Context, keyID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("key_id = ?", keyID).Delete(&model.Translation{}).Error
}

func (r *translationRepository) DeleteForLanguage(ctx context.Context, languageID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("language_id = ?", languageID).Delete(&model.Translation{}).Error
}

func (r *translationRepository) CountForKey(ctx context.Context, keyID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Translation{}).Where("key_id = ?", keyID).Count(&count).Error
	return count, err
}
