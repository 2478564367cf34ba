package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository is the append-only audit sink. Entries are never
// updated or deleted.
type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	Recent(ctx context.Context, limit int, actorID *uuid.UUID) ([]model.ActivityLog, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *activityRepository) Recent(ctx context.Context, limit int, actorID *uuid.UUID) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	q := GetDB(ctx, r.db).Preload("User").Order("created_at DESC").Limit(limit)
	if actorID != nil {
		q = q.Where("user_id = ?", *actorID)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
