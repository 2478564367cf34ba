package service

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type TranslationStats struct {
	TotalKeys         int64 `json:"total_keys"`
	TotalLanguages    int64 `json:"total_languages"`
	TotalTranslations int64 `json:"total_translations"`
	TotalUsers        int64 `json:"total_users"`
	PendingCount      int64 `json:"pending_count"`
	ApprovedCount     int64 `json:"approved_count"`
}

type AdminStats struct {
	TranslationStats
	ActiveUsers     int64 `json:"active_users"`
	AdminCount      int64 `json:"admin_count"`
	ManagerCount    int64 `json:"manager_count"`
	TranslatorCount int64 `json:"translator_count"`
	ViewerCount     int64 `json:"viewer_count"`
	TotalAPIKeys    int64 `json:"total_api_keys"`
}

type StatsService interface {
	Overview(ctx context.Context) (*TranslationStats, error)
	Admin(ctx context.Context) (*AdminStats, error)
}

type statsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) StatsService {
	return &statsService{db: db}
}

func (s *statsService) Overview(ctx context.Context) (*TranslationStats, error) {
	stats := &TranslationStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.TranslationKey{}).Count(&stats.TotalKeys).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Language{}).Count(&stats.TotalLanguages).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Translation{}).Count(&stats.TotalTranslations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Translation{}).Where("status = ?", model.StatusPending).Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Translation{}).Where("status = ?", model.StatusApproved).Count(&stats.ApprovedCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *statsService) Admin(ctx context.Context) (*AdminStats, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{TranslationStats: *overview}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	roleCounts := map[string]*int64{
		model.RoleAdmin:      &stats.AdminCount,
		model.RoleManager:    &stats.ManagerCount,
		model.RoleTranslator: &stats.TranslatorCount,
		model.RoleViewer:     &stats.ViewerCount,
	}
	for role, count := range roleCounts {
		if err := db.Model(&model.User{}).Where("role = ?", role).Count(count).Error; err != nil {
			return nil, err
		}
	}
	if err := db.Model(&model.ApiKey{}).Count(&stats.TotalAPIKeys).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
