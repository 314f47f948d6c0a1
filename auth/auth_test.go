package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ledger-calendar-bot/assistant/logger"
	"github.com/ledger-calendar-bot/assistant/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

type fakeConsent struct {
	calls int
	token *oauth2.Token
	err   error
}

func (f *fakeConsent) Obtain(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	f.calls++
	return f.token, f.err
}

func newTokenServer(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh-1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestFileTokenStore(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "token.json")}

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	token := &oauth2.Token{AccessToken: "abc", RefreshToken: "def", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	require.NoError(t, store.Save(token))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.AccessToken)
	assert.Equal(t, "def", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestSession_Acquire(t *testing.T) {
	valid := &oauth2.Token{AccessToken: "stored", RefreshToken: "refresh-1", Expiry: time.Now().Add(time.Hour)}
	expired := &oauth2.Token{AccessToken: "stale", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Hour)}
	granted := &oauth2.Token{AccessToken: "granted", RefreshToken: "refresh-2", Expiry: time.Now().Add(time.Hour)}

	tests := []struct {
		name           string
		stored         *oauth2.Token
		tokenStatus    int
		consentErr     error
		expectAccess   string
		expectRefresh  int
		expectConsents int
		expectError    bool
	}{
		{
			name:         "Valid stored token is reused",
			stored:       valid,
			tokenStatus:  http.StatusOK,
			expectAccess: "stored",
		},
		{
			name:          "Expired token is refreshed",
			stored:        expired,
			tokenStatus:   http.StatusOK,
			expectAccess:  "fresh-access",
			expectRefresh: 1,
		},
		{
			name:           "Missing token runs consent",
			tokenStatus:    http.StatusOK,
			expectAccess:   "granted",
			expectConsents: 1,
		},
		{
			name:           "Failed refresh falls back to consent",
			stored:         expired,
			tokenStatus:    http.StatusBadRequest,
			expectAccess:   "granted",
			expectRefresh:  1,
			expectConsents: 1,
		},
		{
			name:           "Consent failure is reported",
			tokenStatus:    http.StatusOK,
			consentErr:     errors.New("user closed the browser"),
			expectConsents: 1,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := newTokenServer(t, tt.tokenStatus, &hits)
			store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}
			if tt.stored != nil {
				require.NoError(t, store.Save(tt.stored))
			}
			consent := &fakeConsent{token: granted, err: tt.consentErr}

			session := NewSession(testConfig(srv.URL), store, consent, &logger.NoOpLogger{})
			err := session.Acquire(context.Background())

			assert.Equal(t, tt.expectRefresh, int(hits.Load()))
			assert.Equal(t, tt.expectConsents, consent.calls)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			token, err := session.Token()
			require.NoError(t, err)
			assert.Equal(t, tt.expectAccess, token.AccessToken)

			persisted, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expectAccess, persisted.AccessToken)
		})
	}
}

func TestSession_AcquireWithMockedStore(t *testing.T) {
	granted := &oauth2.Token{AccessToken: "granted", RefreshToken: "refresh-2", Expiry: time.Now().Add(time.Hour)}

	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockTokenStore, *mocks.MockConsent)
		expectError bool
	}{
		{
			name: "Unreadable token falls back to consent",
			setupMocks: func(store *mocks.MockTokenStore, consent *mocks.MockConsent) {
				store.EXPECT().Load().Return(nil, errors.New("invalid token file"))
				consent.EXPECT().Obtain(gomock.Any(), gomock.Any()).Return(granted, nil)
				store.EXPECT().Save(granted).Return(nil)
			},
		},
		{
			name: "Persist failure is reported",
			setupMocks: func(store *mocks.MockTokenStore, consent *mocks.MockConsent) {
				store.EXPECT().Load().Return(nil, ErrNoToken)
				consent.EXPECT().Obtain(gomock.Any(), gomock.Any()).Return(granted, nil)
				store.EXPECT().Save(granted).Return(errors.New("read-only file system"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockTokenStore(ctrl)
			consent := mocks.NewMockConsent(ctrl)
			tt.setupMocks(store, consent)

			session := NewSession(testConfig("http://127.0.0.1:1"), store, consent, &logger.NoOpLogger{})
			err := session.Acquire(context.Background())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSession_TokenBeforeAcquire(t *testing.T) {
	session := NewSession(testConfig("http://127.0.0.1:1"), &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}, &fakeConsent{}, &logger.NoOpLogger{})

	_, err := session.Token()
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.ErrorIs(t, session.Refresh(context.Background()), ErrNotAcquired)
}

func TestSession_RefreshWithoutRefreshToken(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}
	require.NoError(t, store.Save(&oauth2.Token{AccessToken: "only-access", Expiry: time.Now().Add(time.Hour)}))

	session := NewSession(testConfig("http://127.0.0.1:1"), store, &fakeConsent{}, &logger.NoOpLogger{})
	require.NoError(t, session.Acquire(context.Background()))

	assert.ErrorIs(t, session.Refresh(context.Background()), ErrNoRefreshToken)
}

func TestSession_TokenRefreshesExpired(t *testing.T) {
	var hits atomic.Int32
	srv := newTokenServer(t, http.StatusOK, &hits)
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}
	consent := &fakeConsent{token: &oauth2.Token{AccessToken: "short-lived", RefreshToken: "refresh-1", Expiry: time.Now().Add(-time.Minute)}}

	session := NewSession(testConfig(srv.URL), store, consent, &logger.NoOpLogger{})
	require.NoError(t, session.Acquire(context.Background()))
	assert.Equal(t, int32(0), hits.Load())

	token, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", token.AccessToken)
	assert.Equal(t, int32(1), hits.Load())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", persisted.AccessToken)
}

func TestLoopbackConsent_Obtain(t *testing.T) {
	var hits atomic.Int32
	srv := newTokenServer(t, http.StatusOK, &hits)

	consent := &LoopbackConsent{
		Logger: &logger.NoOpLogger{},
		Open: func(authURL string) {
			parsed, err := url.Parse(authURL)
			if err != nil {
				return
			}
			query := parsed.Query()
			callback := query.Get("redirect_uri") + "?code=auth-code&state=" + url.QueryEscape(query.Get("state"))
			resp, err := http.Get(callback)
			if err == nil {
				_ = resp.Body.Close()
			}
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := consent.Obtain(ctx, testConfig(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", token.AccessToken)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoopbackConsent_Denied(t *testing.T) {
	consent := &LoopbackConsent{
		Logger: &logger.NoOpLogger{},
		Open: func(authURL string) {
			parsed, _ := url.Parse(authURL)
			query := parsed.Query()
			resp, err := http.Get(query.Get("redirect_uri") + "?error=access_denied&state=" + url.QueryEscape(query.Get("state")))
			if err == nil {
				_ = resp.Body.Close()
			}
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := consent.Obtain(ctx, testConfig("http://127.0.0.1:1"))
	assert.ErrorContains(t, err, "access_denied")
}

func TestLoopbackConsent_ContextCancelled(t *testing.T) {
	consent := &LoopbackConsent{Logger: &logger.NoOpLogger{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := consent.Obtain(ctx, testConfig("http://127.0.0.1:1"))
	assert.ErrorIs(t, err, context.Canceled)
}
