// ABOUTME: Tests for the persisted session store
// ABOUTME: Verifies round-trips, fail-soft loading, and clearing

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/perftrack/perftrack-cli/internal/client"
)

func testSession() *Session {
	return &Session{
		Token: "token-abc",
		User: client.UserProfile{
			ID:        1,
			Email:     "admin@company.com",
			FirstName: "Admin",
			LastName:  "User",
			Role:      client.RoleAdmin,
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected session, got nil")
	}
	if loaded.Token != "token-abc" {
		t.Errorf("expected token-abc, got %s", loaded.Token)
	}
	if loaded.User.Email != "admin@company.com" {
		t.Errorf("expected email round-trip, got %s", loaded.User.Email)
	}
	if loaded.User.Role != client.RoleAdmin {
		t.Errorf("expected role round-trip, got %s", loaded.User.Role)
	}
}

func TestLoad_NoSession(t *testing.T) {
	store := New(t.TempDir())

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil session, got %+v", loaded)
	}
}

func TestLoad_CorruptProfile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to corrupt profile: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("corrupt profile should read as absent session")
	}
}

func TestLoad_EmptyToken(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("  \n"), 0600); err != nil {
		t.Fatalf("failed to blank token: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("blank token should read as absent session")
	}
}

func TestTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestClear(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save(testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("expected no session after clear")
	}

	// Clearing again is a no-op
	if err := store.Clear(); err != nil {
		t.Errorf("second clear should not fail: %v", err)
	}
}
