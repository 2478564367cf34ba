package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/pagination"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// DTO for returning User without exposing sensitive data
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login"`
	CreatedAt string  `json:"created_at"`
}

type UserListItem struct {
	UserResponse
	ApiKeyCount      int64 `json:"api_key_count"`
	TranslationCount int64 `json:"translation_count"`
}

type UserDetailResponse struct {
	User  UserResponse         `json:"user"`
	Stats repository.UserStats `json:"stats"`
}

// UserService defines the business logic for user management. All mutating
// operations take the acting admin's id so the self-protection rule can be
// enforced: an admin must not change their own role, deactivate themselves,
// or delete their own account.
type UserService interface {
	CreateUser(ctx context.Context, actorID uuid.UUID, req CreateUserRequest) (*UserResponse, error)
	ListUsers(ctx context.Context, p pagination.Params) ([]UserListItem, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDetailResponse, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	SetRole(ctx context.Context, actorID, id uuid.UUID, role string) error
	ToggleActive(ctx context.Context, actorID, id uuid.UUID) (bool, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
}

type userService struct {
	repo     repository.UserRepository
	activity ActivityService
	cost     int
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, activity ActivityService, bcryptCost int) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, activity: activity, cost: bcryptCost}
}

func mapUserResponse(user *model.User) *UserResponse {
	var lastLogin *string
	if user.LastLogin != nil {
		formatted := user.LastLogin.Format(time.RFC3339)
		lastLogin = &formatted
	}
	return &UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		LastLogin: lastLogin,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) CreateUser(ctx context.Context, actorID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !model.ValidRole(role) {
		return nil, apperror.Validation("invalid role: must be admin, manager, translator, or viewer")
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Conflict("username or email already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("username or email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "username or email already exists", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionCreateUser, fmt.Sprintf("Created user: %s", user.Username))

	return mapUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, p pagination.Params) ([]UserListItem, int64, error) {
	rows, total, err := s.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]UserListItem, 0, len(rows))
	for i := range rows {
		items = append(items, UserListItem{
			UserResponse:     *mapUserResponse(&rows[i].User),
			ApiKeyCount:      rows[i].ApiKeyCount,
			TranslationCount: rows[i].TranslationCount,
		})
	}
	return items, total, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*UserDetailResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}

	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserDetailResponse{User: *mapUserResponse(user), Stats: *stats}, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}

	// Updating one's own username/email is fine; a role change on oneself is
	// not, to keep admins from locking themselves out.
	if req.Role != "" && req.Role != user.Role {
		if id == actorID {
			return nil, apperror.Forbidden("you cannot change your own role")
		}
		if !model.ValidRole(req.Role) {
			return nil, apperror.Validation("invalid role: must be admin, manager, translator, or viewer")
		}
		user.Role = req.Role
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username or email already exists")
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, apperror.Conflict("username or email already exists")
		}
		user.Email = req.Email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.KindConflict, "username or email already exists", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionUpdateUser, fmt.Sprintf("Updated user: %s", user.Username))

	return mapUserResponse(user), nil
}

func (s *userService) SetRole(ctx context.Context, actorID, id uuid.UUID, role string) error {
	if id == actorID {
		return apperror.Forbidden("you cannot change your own role")
	}
	if !model.ValidRole(role) {
		return apperror.Validation("invalid role: must be admin, manager, translator, or viewer")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.activity.Record(ctx, &actorID, model.ActionUpdateRole, fmt.Sprintf("Changed user %s role to %s", user.Username, role))
	return nil
}

func (s *userService) ToggleActive(ctx context.Context, actorID, id uuid.UUID) (bool, error) {
	if id == actorID {
		return false, apperror.Forbidden("you cannot deactivate your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, apperror.NotFound("user not found")
	}

	user.IsActive = !user.IsActive
	if err := s.repo.Update(ctx, user); err != nil {
		return false, err
	}

	status := "deactivated"
	if user.IsActive {
		status = "activated"
	}
	s.activity.Record(ctx, &actorID, model.ActionToggleUserActive, fmt.Sprintf("%s user: %s", status, user.Username))

	return user.IsActive, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if id == actorID {
		return apperror.Forbidden("you cannot delete your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, &actorID, model.ActionDeleteUser, fmt.Sprintf("Deleted user: %s", user.Username))
	return nil
}
