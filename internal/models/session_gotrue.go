package models

import (
	"context"
	"strings"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/melvink/api/internal/helpers"
)

// GotrueStore is the hosted session store: credential checking and session
// token refresh are delegated to the Supabase auth service.
type GotrueStore struct {
	repo *SupabaseRepo
}

func NewGotrueStore(repo *SupabaseRepo) *GotrueStore {
	return &GotrueStore{repo: repo}
}

func authUserFromGotrue(u types.User) *AuthUser {
	user := &AuthUser{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if name, ok := u.UserMetadata["username"].(string); ok {
		user.Username = name
	}
	return user
}

func (gs *GotrueStore) Login(ctx context.Context, username, password string) *AuthResult {
	// the hosted store authenticates by email; the login form's username
	// field carries the email address
	resp, err := gs.repo.supabaseClient.Auth.SignInWithEmailPassword(username, password)
	if err != nil {
		return &AuthResult{Success: false, Error: "Login failed. Please check your credentials."}
	}

	return &AuthResult{
		Success:      true,
		User:         authUserFromGotrue(resp.User),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}
}

func (gs *GotrueStore) Register(ctx context.Context, username, email, password string, extra map[string]interface{}) *AuthResult {
	data := map[string]interface{}{"username": username}
	for k, v := range extra {
		data[k] = v
	}

	resp, err := gs.repo.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     data,
	})
	if err != nil {
		errMsg := err.Error()
		switch {
		case strings.Contains(errMsg, "User already Registered"),
			strings.Contains(errMsg, "unique constraint"):
			return &AuthResult{Success: false, Error: "Email already registered. Please use a different email."}
		case strings.Contains(errMsg, "invalid input syntax"):
			return &AuthResult{Success: false, Error: "Invalid input format."}
		default:
			return &AuthResult{Success: false, Error: "Registration failed. Please try again."}
		}
	}

	return &AuthResult{
		Success: true,
		User:    authUserFromGotrue(resp.User),
	}
}

func (gs *GotrueStore) Logout(ctx context.Context, accessToken string) *AuthResult {
	// session invalidation is cookie clearing at the handler; never fails
	return &AuthResult{Success: true}
}

func (gs *GotrueStore) CheckCurrentUser(ctx context.Context, accessToken string) *AuthResult {
	if accessToken == "" {
		return &AuthResult{Success: true}
	}

	claims, err := helpers.ValidateToken(accessToken)
	if err != nil {
		// an invalid session reads as "no current user", not a failure
		return &AuthResult{Success: true}
	}

	user := &AuthUser{
		ID:    claims.Subject,
		Email: claims.Email,
	}
	if name, ok := claims.UserMetadata["username"].(string); ok {
		user.Username = name
	}
	return &AuthResult{Success: true, User: user}
}

func (gs *GotrueStore) RefreshSession(ctx context.Context, refreshToken string) *AuthResult {
	if refreshToken == "" {
		return &AuthResult{Success: false, Error: "refresh token is required"}
	}

	resp, err := gs.repo.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return &AuthResult{Success: false, Error: "Token refresh failed."}
	}

	return &AuthResult{
		Success:      true,
		User:         authUserFromGotrue(resp.User),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}
}
