package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

type CreateApiKeyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

type ApiKeyResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Key         string   `json:"key"`
	Permissions []string `json:"permissions"`
	LastUsed    *string  `json:"last_used"`
	CreatedAt   string   `json:"created_at"`
}

// ApiKeyService manages API keys. A key's grant must be a subset of the
// permission vocabulary but is intentionally not clamped to the owner's role
// permissions: the grant is the key's own, verbatim.
type ApiKeyService interface {
	List(ctx context.Context, userID uuid.UUID) ([]ApiKeyResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateApiKeyRequest) (*ApiKeyResponse, error)
	Delete(ctx context.Context, userID, keyID uuid.UUID) error
	ResolveAPIKey(ctx context.Context, token string) (*model.ApiKey, error)
}

type apiKeyService struct {
	repo     repository.ApiKeyRepository
	activity ActivityService
}

func NewApiKeyService(repo repository.ApiKeyRepository, activity ActivityService) ApiKeyService {
	return &apiKeyService{repo: repo, activity: activity}
}

func mapApiKeyResponse(key *model.ApiKey) ApiKeyResponse {
	var lastUsed *string
	if key.LastUsed != nil {
		formatted := key.LastUsed.Format(time.RFC3339)
		lastUsed = &formatted
	}
	return ApiKeyResponse{
		ID:          key.ID.String(),
		Name:        key.Name,
		Key:         key.Key,
		Permissions: key.GrantedPermissions(),
		LastUsed:    lastUsed,
		CreatedAt:   key.CreatedAt.Format(time.RFC3339),
	}
}

func (s *apiKeyService) List(ctx context.Context, userID uuid.UUID) ([]ApiKeyResponse, error) {
	keys, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]ApiKeyResponse, 0, len(keys))
	for i := range keys {
		res = append(res, mapApiKeyResponse(&keys[i]))
	}
	return res, nil
}

func (s *apiKeyService) Create(ctx context.Context, userID uuid.UUID, req CreateApiKeyRequest) (*ApiKeyResponse, error) {
	if len(req.Permissions) == 0 {
		return nil, apperror.Validation("at least one permission is required")
	}
	for _, p := range req.Permissions {
		if !model.ValidPermission(p) {
			return nil, apperror.Validation(fmt.Sprintf("unknown permission %q", p))
		}
	}

	key := &model.ApiKey{
		UserID: userID,
		Key:    "tk_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Name:   req.Name,
	}
	if err := key.SetPermissions(req.Permissions); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, key); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &userID, model.ActionCreateAPIKey, fmt.Sprintf("Created API key: %s", key.Name))

	res := mapApiKeyResponse(key)
	return &res, nil
}

// Delete removes a key, but only when it belongs to the calling user.
func (s *apiKeyService) Delete(ctx context.Context, userID, keyID uuid.UUID) error {
	deleted, err := s.repo.DeleteOwned(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("API key not found")
	}

	s.activity.Record(ctx, &userID, model.ActionDeleteAPIKey, fmt.Sprintf("Deleted API key: %s", keyID))
	return nil
}

// ResolveAPIKey looks up a presented token verbatim and refreshes its
// last-used timestamp. The refresh is best-effort; the lookup result stands
// either way.
func (s *apiKeyService) ResolveAPIKey(ctx context.Context, token string) (*model.ApiKey, error) {
	key, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastUsed(ctx, key.ID); err != nil {
		log.Printf("api key: failed to refresh last_used for %s: %v", key.ID, err)
	}

	return key, nil
}
