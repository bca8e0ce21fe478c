// ABOUTME: Session store holding the current user and bearer token
// ABOUTME: Persists to a JSON file under XDG config and rehydrates at startup

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/access-ed/edassist/internal/api"
)

// ErrNotLoggedIn is returned by operations that need a stored session.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the authenticated state created by a successful login.
// JSON keys match the browser client's storage keys.
type Session struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	Token    string `json:"jwt_token"`
}

// LoginClient is the part of the API client the store needs for login.
type LoginClient interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
}

// Store is the single owner of session state. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
	logger  *slog.Logger
}

// DefaultPath returns the conventional session file location,
// $XDG_CONFIG_HOME/edassist/session.json.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "edassist", "session.json"), nil
}

// NewStore creates a Store backed by the file at path, rehydrating any
// previously persisted session. A missing file starts logged out.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:   path,
		logger: slog.Default().With("component", "session"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is not fatal, it just forces re-login.
		s.logger.Warn("discarding unreadable session file", "path", path, "error", err)
		return s, nil
	}
	if sess.Token != "" {
		s.current = &sess
	}
	return s, nil
}

// Current returns a copy of the stored session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the current bearer token, or "" when logged out. It
// satisfies the API client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// IsAdmin reports whether the current session carries the admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin
}

// Expired reports whether the stored token is missing, unparseable, or
// past its exp claim. The signature is not checked; the client holds no
// secret, and the backend re-validates every request anyway.
func (s *Store) Expired() bool {
	s.mu.RLock()
	token := ""
	if s.current != nil {
		token = s.current.Token
	}
	s.mu.RUnlock()

	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// No exp claim: leave expiry to the backend.
		return false
	}
	return time.Now().After(exp.Time)
}

// Login authenticates against the backend and, on success, replaces the
// stored session in memory and on disk. On failure the prior session is
// left untouched.
func (s *Store) Login(ctx context.Context, client LoginClient, username, password string) (Session, error) {
	result, err := client.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{Username: username, IsAdmin: result.IsAdmin, Token: result.AccessToken}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(&sess); err != nil {
		return Session{}, err
	}
	s.current = &sess
	s.logger.Info("logged in", "username", username, "is_admin", result.IsAdmin)
	return sess, nil
}

// Logout clears the session in memory and on disk.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Invalidate tears the session down after an authentication failure. It
// differs from Logout only in that removal errors are logged, not
// returned; by this point the caller is already on an error path.
func (s *Store) Invalidate() {
	if err := s.Logout(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	} else {
		s.logger.Info("session invalidated")
	}
}

// persistLocked writes the session file with owner-only permissions.
// Callers must hold s.mu.
func (s *Store) persistLocked(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
