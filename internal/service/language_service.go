package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

type CreateLanguageRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	IsSource      bool    `json:"is_source"`
	MinecraftHead *string `json:"minecraft_head"`
}

type UpdateLanguageRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	IsSource      bool    `json:"is_source"`
	MinecraftHead *string `json:"minecraft_head"`
}

type LanguageResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	IsSource      bool    `json:"is_source"`
	MinecraftHead *string `json:"minecraft_head"`
}

type LanguageService interface {
	List(ctx context.Context) ([]LanguageResponse, error)
	GetByCode(ctx context.Context, code string) (*LanguageResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req CreateLanguageRequest) (*LanguageResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateLanguageRequest) (*LanguageResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type languageService struct {
	repo         repository.LanguageRepository
	translations repository.TranslationRepository
	txm          repository.TransactionManager
	activity     ActivityService
}

func NewLanguageService(repo repository.LanguageRepository, translations repository.TranslationRepository, txm repository.TransactionManager, activity ActivityService) LanguageService {
	return &languageService{repo: repo, translations: translations, txm: txm, activity: activity}
}

func mapLanguageResponse(lang *model.Language) *LanguageResponse {
	return &LanguageResponse{
		ID:            lang.ID.String(),
		Code:          lang.Code,
		Name:          lang.Name,
		IsSource:      lang.IsSource,
		MinecraftHead: lang.MinecraftHead,
	}
}

func (s *languageService) List(ctx context.Context) ([]LanguageResponse, error) {
	langs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]LanguageResponse, 0, len(langs))
	for i := range langs {
		res = append(res, *mapLanguageResponse(&langs[i]))
	}
	return res, nil
}

func (s *languageService) GetByCode(ctx context.Context, code string) (*LanguageResponse, error) {
	lang, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NotFound("language not found")
	}
	return mapLanguageResponse(lang), nil
}

func (s *languageService) Create(ctx context.Context, actorID uuid.UUID, req CreateLanguageRequest) (*LanguageResponse, error) {
	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, apperror.Conflict("language code already exists")
	}

	lang := &model.Language{
		Code:          req.Code,
		Name:          req.Name,
		IsSource:      req.IsSource,
		MinecraftHead: req.MinecraftHead,
	}

	if err := s.repo.Create(ctx, lang); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "language code already exists", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionCreateLanguage, fmt.Sprintf("Created language: %s (%s)", lang.Name, lang.Code))

	return mapLanguageResponse(lang), nil
}

func (s *languageService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateLanguageRequest) (*LanguageResponse, error) {
	lang, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("language not found")
	}

	if req.Code != "" && req.Code != lang.Code {
		if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
			return nil, apperror.Conflict("language code already exists")
		}
		lang.Code = req.Code
	}
	lang.Name = req.Name
	lang.IsSource = req.IsSource
	lang.MinecraftHead = req.MinecraftHead

	if err := s.repo.Update(ctx, lang); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "language code already exists", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionUpdateLanguage, fmt.Sprintf("Updated language: %s", lang.Name))

	return mapLanguageResponse(lang), nil
}

// Delete removes a language and all of its translations in one transaction.
func (s *languageService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	lang, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("language not found")
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.translations.DeleteForLanguage(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, &actorID, model.ActionDeleteLanguage, fmt.Sprintf("Deleted language: %s", lang.Name))
	return nil
}
