package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/config"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MeResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	LastLogin   *string  `json:"last_login"`
}

// AuthService implements the session scheme: one successful credential check
// issues a signed token carrying {userId, username, role}; subsequent
// requests are trusted on that token alone.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*MeResponse, error)
}

type authService struct {
	users    repository.UserRepository
	activity ActivityService
	cfg      *config.Config
}

func NewAuthService(users repository.UserRepository, activity ActivityService, cfg *config.Config) AuthService {
	return &authService{users: users, activity: activity, cfg: cfg}
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords fail with the identical message so the endpoint cannot
// be used to enumerate accounts; the deactivation check runs only after the
// credential match so failed attempts learn nothing about account status.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid username or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperror.Unauthenticated("invalid username or password")
	}

	if !user.IsActive {
		return nil, apperror.Unauthenticated("account deactivated, please contact an administrator")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenTTL()).Unix(),
		"iss":      s.cfg.JWT.Issuer,
	})

	tokenString, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err == nil {
		t := now
		user.LastLogin = &t
	}
	s.activity.Record(ctx, &user.ID, model.ActionLogin, "User logged in")

	return &LoginResponse{Token: tokenString, User: *mapUserResponse(user)}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*MeResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}

	var lastLogin *string
	if user.LastLogin != nil {
		formatted := user.LastLogin.Format(time.RFC3339)
		lastLogin = &formatted
	}

	return &MeResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: model.PermissionsFor(user.Role),
		LastLogin:   lastLogin,
	}, nil
}
