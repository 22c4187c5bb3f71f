// ABOUTME: Persisted session store for the PerfTrack client
// ABOUTME: Keeps the bearer token and user profile in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/perftrack/perftrack-cli/internal/client"
)

const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// Session pairs an opaque bearer token with the profile it was issued for
type Session struct {
	Token string
	User  client.UserProfile
}

// Store persists sessions across process restarts
type Store struct {
	configDir string
}

// New creates a store rooted at the given config directory
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "perftrack")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "perftrack")
}

// ConfigDir returns the directory this store writes to
func (s *Store) ConfigDir() string {
	return s.configDir
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.configDir, tokenFile)
}

func (s *Store) profilePath() string {
	return filepath.Join(s.configDir, profileFile)
}

// Save writes the token and serialized profile under their own files.
// The token file is created with user-only permissions.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(s.tokenPath(), []byte(sess.Token), 0600); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess.User, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.profilePath(), data, 0600)
}

// Load reads back a persisted session. A missing token, missing profile, or
// a profile that fails to deserialize all yield (nil, nil) rather than an
// error: a corrupt local record must never break startup.
func (s *Store) Load() (*Session, error) {
	tokenData, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return nil, nil
	}
	token := strings.TrimSpace(string(tokenData))
	if token == "" {
		return nil, nil
	}

	profileData, err := os.ReadFile(s.profilePath())
	if err != nil {
		return nil, nil
	}
	var user client.UserProfile
	if err := json.Unmarshal(profileData, &user); err != nil {
		// Corrupt profile, treat as absent
		return nil, nil
	}
	if user.Role == "" {
		return nil, nil
	}

	return &Session{Token: token, User: user}, nil
}

// Clear removes both files. Safe to call when nothing is stored.
func (s *Store) Clear() error {
	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.profilePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
