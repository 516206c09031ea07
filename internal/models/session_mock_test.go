package models

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *MockSessionStore {
	t.Helper()
	return NewMockSessionStore(filepath.Join(t.TempDir(), "auth.json"))
}

func TestMockRegisterAutoLogsIn(t *testing.T) {
	store := newTestStore(t)

	res := store.Register(context.Background(), "jane", "jane@example.com", "hunter22", nil)
	if !res.Success {
		t.Fatalf("register failed: %s", res.Error)
	}
	if res.User == nil || res.User.Username != "jane" {
		t.Fatalf("register should return the user, got %+v", res.User)
	}
	if res.AccessToken == "" {
		t.Error("register should hand back an access token")
	}

	current := store.CheckCurrentUser(context.Background(), res.AccessToken)
	if !current.Success || current.User == nil || current.User.ID != res.User.ID {
		t.Error("registration should leave the new user logged in")
	}
}

func TestMockRegisterRejectsDuplicates(t *testing.T) {
	store := newTestStore(t)
	_ = store.Register(context.Background(), "jane", "jane@example.com", "hunter22", nil)

	// username collision is case-insensitive
	res := store.Register(context.Background(), "JANE", "other@example.com", "pw", nil)
	if res.Success {
		t.Error("duplicate username should be rejected")
	}

	// so is the email collision
	res = store.Register(context.Background(), "janet", "JANE@EXAMPLE.COM", "pw", nil)
	if res.Success {
		t.Error("duplicate email should be rejected")
	}
}

func TestMockLogin(t *testing.T) {
	store := newTestStore(t)
	_ = store.Register(context.Background(), "jane", "jane@example.com", "hunter22", nil)
	_ = store.Logout(context.Background(), "")

	res := store.Login(context.Background(), "nobody", "pw")
	if res.Success || res.Error == "" {
		t.Error("unknown user should fail with a message")
	}

	res = store.Login(context.Background(), "jane", "wrong")
	if res.Success {
		t.Error("wrong password should fail")
	}

	res = store.Login(context.Background(), "Jane", "hunter22")
	if !res.Success || res.User == nil {
		t.Fatalf("login failed: %s", res.Error)
	}
}

func TestMockLogoutAndCheckNeverFail(t *testing.T) {
	store := newTestStore(t)

	if res := store.Logout(context.Background(), ""); !res.Success {
		t.Error("logout with no session should still report success")
	}

	res := store.CheckCurrentUser(context.Background(), "")
	if !res.Success {
		t.Error("check with no session should report success")
	}
	if res.User != nil {
		t.Error("check with no session should carry no user")
	}

	reg := store.Register(context.Background(), "jane", "jane@example.com", "hunter22", nil)
	_ = store.Logout(context.Background(), reg.AccessToken)
	res = store.CheckCurrentUser(context.Background(), reg.AccessToken)
	if res.User != nil {
		t.Error("logout should clear the current user")
	}
}

func TestMockStateSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	store := NewMockSessionStore(path)
	_ = store.Register(context.Background(), "jane", "jane@example.com", "hunter22", nil)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file should exist: %v", err)
	}

	// a fresh store over the same file sees the registered user
	reopened := NewMockSessionStore(path)
	res := reopened.Login(context.Background(), "jane", "hunter22")
	if !res.Success {
		t.Fatalf("login after reload failed: %s", res.Error)
	}
}
