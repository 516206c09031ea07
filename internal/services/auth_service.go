package services

import (
	"context"
	"strings"

	"github.com/melvink/api/internal/models"
)

// AuthService validates input then delegates to whichever session store the
// container wired in.
type AuthService struct {
	store models.SessionStore
}

func NewAuthService(store models.SessionStore) *AuthService {
	return &AuthService{store: store}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (as *AuthService) Register(ctx context.Context, input RegisterInput) *models.AuthResult {
	if err := models.Validate.Struct(input); err != nil {
		return &models.AuthResult{Success: false, Error: err.Error()}
	}
	return as.store.Register(ctx, strings.TrimSpace(input.Username), strings.TrimSpace(input.Email), input.Password, nil)
}

func (as *AuthService) Login(ctx context.Context, input LoginInput) *models.AuthResult {
	if err := models.Validate.Struct(input); err != nil {
		return &models.AuthResult{Success: false, Error: err.Error()}
	}
	return as.store.Login(ctx, strings.TrimSpace(input.Username), input.Password)
}

func (as *AuthService) Logout(ctx context.Context, accessToken string) *models.AuthResult {
	return as.store.Logout(ctx, accessToken)
}

func (as *AuthService) CheckCurrentUser(ctx context.Context, accessToken string) *models.AuthResult {
	return as.store.CheckCurrentUser(ctx, accessToken)
}

func (as *AuthService) RefreshSession(ctx context.Context, refreshToken string) *models.AuthResult {
	return as.store.RefreshSession(ctx, refreshToken)
}
