package models

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type mockUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

type mockState struct {
	// Users is keyed by lowercased username. Credentials are stored directly,
	// unhashed; demo use only.
	Users       map[string]mockUser `json:"users"`
	CurrentUser *mockUser           `json:"current_user,omitempty"`
}

// MockSessionStore is the locally persisted session store: users and the
// current session live in a JSON file on disk. It exists so the site can run
// without the hosted auth service.
type MockSessionStore struct {
	mu   sync.Mutex
	path string
}

func NewMockSessionStore(path string) *MockSessionStore {
	return &MockSessionStore{path: path}
}

func (ms *MockSessionStore) load() mockState {
	state := mockState{Users: map[string]mockUser{}}
	data, err := os.ReadFile(ms.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return mockState{Users: map[string]mockUser{}}
	}
	if state.Users == nil {
		state.Users = map[string]mockUser{}
	}
	return state
}

func (ms *MockSessionStore) save(state mockState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ms.path, data, 0o600)
}

func (mu *mockUser) toAuthUser() *AuthUser {
	return &AuthUser{
		ID:        mu.ID,
		Username:  mu.Username,
		Email:     mu.Email,
		CreatedAt: mu.CreatedAt,
	}
}

func (ms *MockSessionStore) Login(ctx context.Context, username, password string) *AuthResult {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := ms.load()
	user, ok := state.Users[strings.ToLower(username)]
	if !ok {
		return &AuthResult{Success: false, Error: "User not found. Please register first."}
	}
	if user.Password != password {
		return &AuthResult{Success: false, Error: "Invalid password. Please try again."}
	}

	state.CurrentUser = &user
	if err := ms.save(state); err != nil {
		return &AuthResult{Success: false, Error: "Login failed. Please try again."}
	}

	return &AuthResult{
		Success:     true,
		User:        user.toAuthUser(),
		AccessToken: user.ID,
	}
}

func (ms *MockSessionStore) Register(ctx context.Context, username, email, password string, extra map[string]interface{}) *AuthResult {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := ms.load()
	key := strings.ToLower(username)

	if _, exists := state.Users[key]; exists {
		return &AuthResult{Success: false, Error: "Username already exists. Please choose a different username."}
	}
	for _, u := range state.Users {
		if strings.EqualFold(u.Email, email) {
			return &AuthResult{Success: false, Error: "Email already registered. Please use a different email."}
		}
	}

	user := mockUser{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	state.Users[key] = user
	// auto-login after registration
	state.CurrentUser = &user
	if err := ms.save(state); err != nil {
		return &AuthResult{Success: false, Error: "Registration failed. Please try again."}
	}

	return &AuthResult{
		Success:     true,
		User:        user.toAuthUser(),
		AccessToken: user.ID,
	}
}

func (ms *MockSessionStore) Logout(ctx context.Context, accessToken string) *AuthResult {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := ms.load()
	state.CurrentUser = nil
	_ = ms.save(state)
	return &AuthResult{Success: true}
}

func (ms *MockSessionStore) CheckCurrentUser(ctx context.Context, accessToken string) *AuthResult {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := ms.load()
	if state.CurrentUser == nil {
		return &AuthResult{Success: true}
	}
	if accessToken != "" && accessToken != state.CurrentUser.ID {
		return &AuthResult{Success: true}
	}
	return &AuthResult{Success: true, User: state.CurrentUser.toAuthUser()}
}

func (ms *MockSessionStore) RefreshSession(ctx context.Context, refreshToken string) *AuthResult {
	// the demo store has no token expiry; refresh just re-reads the session
	return ms.CheckCurrentUser(ctx, refreshToken)
}
