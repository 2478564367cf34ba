package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"

	"github.com/google/uuid"
)

type ActivityEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

// ActivityService is the append-only audit trail. Recording is best-effort:
// a failed write never propagates to the caller, so the primary mutation it
// documents is never rolled back or surfaced as failed.
type ActivityService interface {
	Record(ctx context.Context, actorID *uuid.UUID, action, details string)
	Recent(ctx context.Context, limit int, actorID *uuid.UUID) ([]ActivityEntry, error)
}

type activityService struct {
	repo repository.ActivityRepository
	hub  *websocket.Hub
}

// NewActivityService creates a new ActivityService. The hub may be nil when
// no realtime feed is wanted (tests).
func NewActivityService(repo repository.ActivityRepository, hub *websocket.Hub) ActivityService {
	return &activityService{repo: repo, hub: hub}
}

func (s *activityService) Record(ctx context.Context, actorID *uuid.UUID, action, details string) {
	entry := model.ActivityLog{
		UserID:  actorID,
		Action:  action,
		Details: details,
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		log.Printf("activity: failed to record %s: %v", action, err)
		return
	}

	if s.hub != nil {
		event, err := json.Marshal(map[string]interface{}{
			"action":     action,
			"details":    details,
			"user_id":    actorID,
			"created_at": entry.CreatedAt.Format(time.RFC3339),
		})
		if err == nil {
			s.hub.Publish(event)
		}
	}
}

func (s *activityService) Recent(ctx context.Context, limit int, actorID *uuid.UUID) ([]ActivityEntry, error) {
	entries, err := s.repo.Recent(ctx, limit, actorID)
	if err != nil {
		return nil, err
	}

	res := make([]ActivityEntry, 0, len(entries))
	for _, e := range entries {
		username := "System"
		userID := ""
		if e.User != nil {
			username = e.User.Username
		}
		if e.UserID != nil {
			userID = e.UserID.String()
		}
		res = append(res, ActivityEntry{
			ID:        e.ID.String(),
			UserID:    userID,
			Username:  username,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, nil
}
