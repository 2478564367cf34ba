package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateKeyRequest struct {
	Key         string `json:"key" binding:"required"`
	Description string `json:"description"`
	Context     string `json:"context"`
}

type TranslateRequest struct {
	LanguageID string `json:"language_id" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

type KeyResponse struct {
	ID               string `json:"id"`
	Key              string `json:"key"`
	Description      string `json:"description"`
	Context          string `json:"context"`
	CreatedByName    string `json:"created_by_name"`
	CreatedAt        string `json:"created_at"`
	TranslationCount int64  `json:"translation_count"`
	ApprovedCount    int64  `json:"approved_count"`
}

type TranslationResponse struct {
	ID               string `json:"id"`
	KeyID            string `json:"key_id"`
	LanguageID       string `json:"language_id"`
	LangCode         string `json:"lang_code"`
	LangName         string `json:"lang_name"`
	Value            string `json:"value"`
	Status           string `json:"status"`
	TranslatedByName string `json:"translated_by_name"`
	ReviewedByName   string `json:"reviewed_by_name"`
	UpdatedAt        string `json:"updated_at"`
}

type KeyDetailResponse struct {
	ID           string                `json:"id"`
	Key          string                `json:"key"`
	Description  string                `json:"description"`
	Context      string                `json:"context"`
	Translations []TranslationResponse `json:"translations"`
}

// APIKeyEntry is a key listing entry for the public API, translations keyed
// by language code.
type APIKeyEntry struct {
	ID           string                    `json:"id"`
	Key          string                    `json:"key"`
	Description  string                    `json:"description"`
	Context      string                    `json:"context"`
	Translations map[string]APITranslation `json:"translations"`
}

type APITranslation struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// --- Interface ---

// TranslationService governs the lifecycle of a (key, language) pair:
// absent → pending on the first write, pending on every re-edit, approved
// only through review. Editing an approved translation demotes it back to
// pending so reviewed content can never change silently.
type TranslationService interface {
	ListKeys(ctx context.Context) ([]KeyResponse, error)
	GetKey(ctx context.Context, id uuid.UUID) (*KeyDetailResponse, error)
	CreateKey(ctx context.Context, actorID uuid.UUID, req CreateKeyRequest) (*KeyResponse, error)
	DeleteKey(ctx context.Context, actorID, id uuid.UUID) error

	Upsert(ctx context.Context, actorID, keyID, languageID uuid.UUID, value string) (*model.Translation, error)
	Approve(ctx context.Context, actorID, translationID uuid.UUID) (*model.Translation, error)

	ExportLanguage(ctx context.Context, langCode string) (map[string]string, error)
	ListKeysWithTranslations(ctx context.Context) ([]APIKeyEntry, error)
}

type translationService struct {
	repo      repository.TranslationRepository
	languages repository.LanguageRepository
	txm       repository.TransactionManager
	activity  ActivityService
}

func NewTranslationService(repo repository.TranslationRepository, languages repository.LanguageRepository, txm repository.TransactionManager, activity ActivityService) TranslationService {
	return &translationService{repo: repo, languages: languages, txm: txm, activity: activity}
}

// --- Implementation ---

func (s *translationService) ListKeys(ctx context.Context) ([]KeyResponse, error) {
	rows, err := s.repo.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]KeyResponse, 0, len(rows))
	for i := range rows {
		res = append(res, KeyResponse{
			ID:               rows[i].ID.String(),
			Key:              rows[i].Key,
			Description:      rows[i].Description,
			Context:          rows[i].Context,
			CreatedByName:    rows[i].CreatedByName,
			CreatedAt:        rows[i].CreatedAt.Format(time.RFC3339),
			TranslationCount: rows[i].TranslationCount,
			ApprovedCount:    rows[i].ApprovedCount,
		})
	}
	return res, nil
}

func (s *translationService) GetKey(ctx context.Context, id uuid.UUID) (*KeyDetailResponse, error) {
	key, err := s.repo.GetKeyByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("translation key not found")
	}

	rows, err := s.repo.ListForKey(ctx, id)
	if err != nil {
		return nil, err
	}

	translations := make([]TranslationResponse, 0, len(rows))
	for i := range rows {
		translations = append(translations, TranslationResponse{
			ID:               rows[i].ID.String(),
			KeyID:            rows[i].KeyID.String(),
			LanguageID:       rows[i].LanguageID.String(),
			LangCode:         rows[i].LangCode,
			LangName:         rows[i].LangName,
			Value:            rows[i].Value,
			Status:           rows[i].Status,
			TranslatedByName: rows[i].TranslatedByName,
			ReviewedByName:   rows[i].ReviewedByName,
			UpdatedAt:        rows[i].UpdatedAt.Format(time.RFC3339),
		})
	}

	return &KeyDetailResponse{
		ID:           key.ID.String(),
		Key:          key.Key,
		Description:  key.Description,
		Context:      key.Context,
		Translations: translations,
	}, nil
}

func (s *translationService) CreateKey(ctx context.Context, actorID uuid.UUID, req CreateKeyRequest) (*KeyResponse, error) {
	key := &model.TranslationKey{
		Key:         req.Key,
		Description: req.Description,
		Context:     req.Context,
		CreatedBy:   &actorID,
	}

	if err := s.repo.CreateKey(ctx, key); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "key already exists or invalid data", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionCreateKey, fmt.Sprintf("Created translation key: %s", key.Key))

	return &KeyResponse{
		ID:          key.ID.String(),
		Key:         key.Key,
		Description: key.Description,
		Context:     key.Context,
		CreatedAt:   key.CreatedAt.Format(time.RFC3339),
	}, nil
}

// DeleteKey removes the key and every translation hanging off it in a
// single transaction.
func (s *translationService) DeleteKey(ctx context.Context, actorID, id uuid.UUID) error {
	key, err := s.repo.GetKeyByID(ctx, id)
	if err != nil {
		return apperror.NotFound("translation key not found")
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteForKey(txCtx, id); err != nil {
			return err
		}
		return s.repo.DeleteKey(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, &actorID, model.ActionDeleteKey, fmt.Sprintf("Deleted translation key: %s", key.Key))
	return nil
}

// Upsert writes the value for a (key, language) pair. A first write creates
// the row as pending; any re-edit overwrites the value, stamps the author,
// and resets the status to pending, including edits to approved rows.
func (s *translationService) Upsert(ctx context.Context, actorID, keyID, languageID uuid.UUID, value string) (*model.Translation, error) {
	if value == "" {
		return nil, apperror.Validation("value is required")
	}

	key, err := s.repo.GetKeyByID(ctx, keyID)
	if err != nil {
		return nil, apperror.NotFound("translation key not found")
	}

	if _, err := s.languages.GetByID(ctx, languageID); err != nil {
		return nil, apperror.NotFound("language not found")
	}

	t, err := s.repo.GetPair(ctx, keyID, languageID)
	if err != nil {
		t = &model.Translation{
			KeyID:        keyID,
			LanguageID:   languageID,
			Value:        value,
			Status:       model.StatusPending,
			TranslatedBy: &actorID,
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return nil, err
		}
	} else {
		t.Value = value
		t.Status = model.StatusPending
		t.TranslatedBy = &actorID
		if err := s.repo.Update(ctx, t); err != nil {
			return nil, err
		}
	}

	s.activity.Record(ctx, &actorID, model.ActionTranslate, fmt.Sprintf("Updated translation for key: %s", key.Key))

	return t, nil
}

// Approve marks a pending translation approved and stamps the reviewer. The
// value is untouched by this transition.
func (s *translationService) Approve(ctx context.Context, actorID, translationID uuid.UUID) (*model.Translation, error) {
	t, err := s.repo.GetByID(ctx, translationID)
	if err != nil {
		return nil, apperror.NotFound("translation not found")
	}

	t.Status = model.StatusApproved
	t.ReviewedBy = &actorID
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &actorID, model.ActionApprove, fmt.Sprintf("Approved translation: %s", t.ID))

	return t, nil
}

// ExportLanguage returns all values for a language as a flat key→value map.
func (s *translationService) ExportLanguage(ctx context.Context, langCode string) (map[string]string, error) {
	lang, err := s.languages.GetByCode(ctx, langCode)
	if err != nil {
		return nil, apperror.NotFound("language not found")
	}

	rows, err := s.repo.ListByLanguage(ctx, lang.ID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(rows))
	for i := range rows {
		result[rows[i].Key] = rows[i].Value
	}
	return result, nil
}

func (s *translationService) ListKeysWithTranslations(ctx context.Context) ([]APIKeyEntry, error) {
	keys, err := s.repo.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]APIKeyEntry, 0, len(keys))
	for i := range keys {
		rows, err := s.repo.ListForKey(ctx, keys[i].ID)
		if err != nil {
			return nil, err
		}

		translations := make(map[string]APITranslation, len(rows))
		for j := range rows {
			translations[rows[j].LangCode] = APITranslation{
				Value:  rows[j].Value,
				Status: rows[j].Status,
			}
		}

		res = append(res, APIKeyEntry{
			ID:           keys[i].ID.String(),
			Key:          keys[i].Key,
			Description:  keys[i].Description,
			Context:      keys[i].Context,
			Translations: translations,
		})
	}
	return res, nil
}
