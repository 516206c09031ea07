package models

import (
	"context"
	"time"
)

// AuthUser is the identity shape shared by both session store
// implementations.
type AuthUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AuthResult is the uniform result shape for session operations. Logout and
// CheckCurrentUser never fail: they report Success with a nil User instead.
type AuthResult struct {
	Success      bool      `json:"success"`
	User         *AuthUser `json:"user,omitempty"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresIn    int       `json:"-"`
	Error        string    `json:"error,omitempty"`
}

// SessionStore owns the current authenticated identity. The two
// implementations (hosted sessions and the file-backed demo store) expose
// identical shapes so the rest of the system is implementation-agnostic.
type SessionStore interface {
	Login(ctx context.Context, username, password string) *AuthResult
	Register(ctx context.Context, username, email, password string, extra map[string]interface{}) *AuthResult
	Logout(ctx context.Context, accessToken string) *AuthResult
	CheckCurrentUser(ctx context.Context, accessToken string) *AuthResult
	RefreshSession(ctx context.Context, refreshToken string) *AuthResult
}
