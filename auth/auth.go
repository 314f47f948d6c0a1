package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ledger-calendar-bot/assistant/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the ledger spreadsheet and the calendar
var Scopes = []string{sheets.SpreadsheetsScope, gcal.CalendarScope}

var (
	ErrNoToken        = errors.New("no stored token")
	ErrNoRefreshToken = errors.New("token has no refresh token")
	ErrNotAcquired    = errors.New("session has not been acquired")
)

//go:generate mockgen -source=auth.go -destination=../tests/mocks/auth.go -package=mocks
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
}

// Consent runs an interactive authorization and returns the issued token
type Consent interface {
	Obtain(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error)
}

// FileTokenStore keeps the token as JSON on disk
type FileTokenStore struct {
	Path string
}

func (f *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", f.Path, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", f.Path, err)
	}
	return &token, nil
}

func (f *FileTokenStore) Save(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", f.Path, err)
	}
	return nil
}

// LoadClientConfig reads an OAuth client secret file downloaded from the Google console
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret %s: %w", path, err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid client secret %s: %w", path, err)
	}
	return cfg, nil
}

// Session is the authentication context of the process. It is acquired once at
// startup and handed to the Google clients as their token source. The token is only
// replaced by Acquire and Refresh, and every replacement is persisted.
type Session struct {
	mu      sync.Mutex
	config  *oauth2.Config
	store   TokenStore
	consent Consent
	logger  logger.Logger
	token   *oauth2.Token
}

func NewSession(config *oauth2.Config, store TokenStore, consent Consent, log logger.Logger) *Session {
	return &Session{
		config:  config,
		store:   store,
		consent: consent,
		logger:  log,
	}
}

// Acquire loads the stored token, refreshing it when expired and falling back to the
// interactive consent when it is missing or cannot be refreshed.
func (s *Session) Acquire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		s.logger.Info("no stored token found, starting authorization consent")
	case err != nil:
		s.logger.Warn("stored token is unusable, starting authorization consent", "error", err.Error())
		token = nil
	}
	s.token = token

	if token != nil && token.Valid() {
		s.logger.Debug("stored token is valid", "expiry", token.Expiry)
		return nil
	}

	if token != nil && token.RefreshToken != "" {
		err := s.refreshLocked(ctx)
		if err == nil {
			return nil
		}
		s.logger.Warn("token refresh failed, starting authorization consent", "error", err.Error())
	}

	issued, err := s.consent.Obtain(ctx, s.config)
	if err != nil {
		return fmt.Errorf("authorization consent failed: %w", err)
	}
	s.token = issued
	if err := s.store.Save(issued); err != nil {
		return err
	}
	s.logger.Info("authorization granted", "expiry", issued.Expiry)
	return nil
}

// Refresh exchanges the refresh token for a new access token and persists it
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.token == nil {
		return ErrNotAcquired
	}
	if s.token.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	stale := *s.token
	stale.Expiry = time.Unix(1, 0)
	fresh, err := s.config.TokenSource(ctx, &stale).Token()
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.token = fresh
	if err := s.store.Save(fresh); err != nil {
		return err
	}
	s.logger.Info("token refreshed", "expiry", fresh.Expiry)
	return nil
}

// Token implements oauth2.TokenSource. An expired token goes through Refresh first.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return nil, ErrNotAcquired
	}
	if !s.token.Valid() {
		if err := s.refreshLocked(context.Background()); err != nil {
			return nil, err
		}
	}

	token := *s.token
	return &token, nil
}
