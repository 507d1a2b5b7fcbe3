// Package session owns the stored credential and the auth gate.
//
// A Session is created once per process and handed to everything that needs
// to know whether the user is logged in. Auth-state changes are announced
// through Subscribe; nothing else reads the token file directly.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"taskman/internal/service"
)

// Session tracks whether a session token is stored.
// Presence is all that matters: the token is never validated locally.
type Session struct {
	path   string
	logger *zap.Logger
	prompt func(msg string)

	mu          sync.Mutex
	authed      bool
	subscribers map[int]func(authenticated bool)
	nextID      int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrompter sets the function used to tell the user to log in.
func WithPrompter(fn func(msg string)) Option {
	return func(s *Session) {
		if fn != nil {
			s.prompt = fn
		}
	}
}

// New creates a Session backed by the token file at tokenPath.
func New(tokenPath string, opts ...Option) *Session {
	s := &Session{
		path:        tokenPath,
		logger:      zap.NewNop(),
		prompt:      func(string) {},
		subscribers: make(map[int]func(bool)),
	}
	for _, opt := range opts {
		opt(s)
	}
	_, s.authed = s.load()
	return s
}

// IsAuthenticated reports whether a token is stored.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// Token returns the stored token, read fresh from storage.
func (s *Session) Token() (string, bool) {
	return s.load()
}

// RequireAuthOrPrompt runs action only when a token is stored. Otherwise it
// prompts the user to log in and returns service.ErrAuthRequired without
// running anything.
func (s *Session) RequireAuthOrPrompt(action func() error) error {
	if !s.IsAuthenticated() {
		s.logger.Debug("action blocked: no session token")
		s.prompt(service.ErrAuthRequired.Error())
		return service.ErrAuthRequired
	}
	return action()
}

// Login stores token and marks the session authenticated.
func (s *Session) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty session token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := saveToken(s.path, &oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.set(true)
	return nil
}

// Logout removes the stored token. The server is not contacted, so the token
// itself stays valid until it expires server-side.
// Reports whether a token was present.
func (s *Session) Logout() (bool, error) {
	_, had := s.load()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return had, fmt.Errorf("failed to remove token: %w", err)
	}
	s.set(false)
	return had, nil
}

// Subscribe registers fn to be called whenever the auth state flips.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(authenticated bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// TokenSource returns a source that reads the stored token on every call, so
// each request carries whatever is on disk at that moment.
func (s *Session) TokenSource() oauth2.TokenSource {
	return storedTokenSource{s: s}
}

func (s *Session) set(authed bool) {
	s.mu.Lock()
	changed := s.authed != authed
	s.authed = authed
	var subs []func(bool)
	if changed {
		for _, fn := range s.subscribers {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(authed)
	}
}

// load reads the token file. It accepts the JSON token written by Login and,
// for hand-edited files, a bare token string.
func (s *Session) load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err == nil {
		return tok.AccessToken, tok.AccessToken != ""
	}
	raw := strings.TrimSpace(string(data))
	return raw, raw != ""
}

type storedTokenSource struct {
	s *Session
}

func (ts storedTokenSource) Token() (*oauth2.Token, error) {
	tok, ok := ts.s.load()
	if !ok {
		return nil, service.ErrAuthRequired
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// saveToken saves a token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
