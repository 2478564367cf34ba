package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LanguageRepository interface {
	Create(ctx context.Context, lang *model.Language) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Language, error)
	GetByCode(ctx context.Context, code string) (*model.Language, error)
	List(ctx context.Context) ([]model.Language, error)
	Update(ctx context.Context, lang *model.Language) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type languageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) LanguageRepository {
	return &languageRepository{db: db}
}

func (r *languageRepository) Create(ctx context.Context, lang *model.Language) error {
	return GetDB(ctx, r.db).Create(lang).Error
}

func (r *languageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Language, error) {
	var lang model.Language
	if err := GetDB(ctx, r.db).First(&lang, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *languageRepository) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	var lang model.Language
	if err := GetDB(ctx, r.db).First(&lang, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &lang, nil
}

// List returns languages with the source language first, then by name.
func (r *languageRepository) List(ctx context.Context) ([]model.Language, error) {
	var langs []model.Language
	if err := GetDB(ctx, r.db).Order("is_source DESC, name ASC").Find(&langs).Error; err != nil {
		return nil, err
	}
	return langs, nil
}

func (r *languageRepository) Update(ctx context.Context, lang *model.Language) error {
	return GetDB(ctx, r.db).Save(lang).Error
}

func (r *languageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Language{}).Error
}
