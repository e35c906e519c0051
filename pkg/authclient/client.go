// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package authclient is the Go client SDK for the admin API's session
lifecycle: it stores the token pair, refreshes the access token proactively,
coalesces concurrent refreshes into a single request, and clears all state
when a refresh fails.

# Trust Boundary

The SDK never verifies token signatures — it only decodes them to read the
expiry instant (see pkg/token). The server remains the sole authority on
whether a token is valid.
*/
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/foureyedgems/admin-api/pkg/token"
)

const (
	refreshPath = "/api/v1/auth/refresh"
	logoutPath  = "/api/v1/auth/logout"

	// refreshLead is how long before expiry the proactive timer fires.
	refreshLead = 5 * time.Minute

	// watchdogInterval is how often the background watchdog re-checks a
	// session that may have expired while the process was idle.
	watchdogInterval = 60 * time.Second

	// refreshKey coalesces all concurrent refresh attempts into one flight.
	refreshKey = "refresh"
)

// ErrNoSession is returned when an operation needs a stored session and
// none exists.
var ErrNoSession = errors.New("authclient: no session")

// Options configures optional Client behavior.
type Options struct {
	// HTTPClient overrides the default http.Client.
	HTTPClient *http.Client

	// Logger receives refresh and watchdog events. Defaults to slog.Default().
	Logger *slog.Logger

	// OnSessionExpired fires (from the watchdog goroutine) when the stored
	// session has expired and could not be re-established by refresh.
	OnSessionExpired func()
}

// Client manages the session snapshot against one API server.
//
// # Concurrency
//
// All methods are safe for concurrent use. Concurrent callers that need a
// refresh share a single in-flight request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      Store
	logger     *slog.Logger
	onExpired  func()

	group singleflight.Group

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a session client for the given API base URL (scheme and
// host, no trailing slash) and starts the expiry watchdog.
func NewClient(baseURL string, store Store, options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		store:      store,
		logger:     logger,
		onExpired:  options.OnSessionExpired,
		done:       make(chan struct{}),
	}

	go client.watchdog()

	return client
}

// Close stops the refresh timer and the watchdog goroutine. The stored
// session is left intact.
func (client *Client) Close() {
	client.closeOnce.Do(func() {
		close(client.done)
		client.stopTimer()
	})
}

// Tokens returns the stored session snapshot, or nil when there is none.
//
// A partial snapshot — missing token, refresh token, or user, or an access
// token whose expiry cannot be decoded — is cleared and reported as absent
// rather than handed to the caller half-broken.
func (client *Client) Tokens() *Snapshot {
	snapshot, err := client.store.Load()
	if err != nil || snapshot == nil {
		return nil
	}

	if snapshot.Token == "" || snapshot.RefreshToken == "" || len(snapshot.User) == 0 {
		_ = client.store.Clear()
		return nil
	}
	if _, ok := token.ExpirationTime(snapshot.Token); !ok {
		_ = client.store.Clear()
		return nil
	}

	return snapshot
}

// SetTokens persists a new session (from a login response) and schedules the
// proactive refresh timer at expiry minus the lead. A token already inside
// the lead window gets no timer; the next ValidToken call refreshes instead.
func (client *Client) SetTokens(accessToken, refreshToken string, user json.RawMessage) error {
	expiresAt, ok := token.ExpirationTime(accessToken)
	if !ok {
		return errors.New("authclient: access token has no decodable expiry")
	}

	snapshot := &Snapshot{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
		ExpiresAt:    expiresAt,
	}
	if err := client.store.Save(snapshot); err != nil {
		return fmt.Errorf("authclient: save session: %w", err)
	}

	client.scheduleRefresh(expiresAt)
	return nil
}

// ValidToken returns an access token that is not structurally expired,
// refreshing if necessary. Concurrent callers share one refresh request.
func (client *Client) ValidToken(ctx context.Context) (string, error) {
	if snapshot := client.Tokens(); snapshot != nil && !token.IsStructurallyExpired(snapshot.Token) {
		return snapshot.Token, nil
	}

	result, err, _ := client.group.Do(refreshKey, func() (any, error) {
		return client.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Do sends the request with a valid bearer token attached.
func (client *Client) Do(request *http.Request) (*http.Response, error) {
	accessToken, err := client.ValidToken(request.Context())
	if err != nil {
		return nil, err
	}

	request.Header.Set("Authorization", "Bearer "+accessToken)
	return client.httpClient.Do(request)
}

// Logout notifies the server on a best-effort basis and unconditionally
// clears local state. Calling it twice in a row is harmless.
func (client *Client) Logout(ctx context.Context) error {
	if snapshot := client.Tokens(); snapshot != nil {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+logoutPath, nil)
		if err == nil {
			request.Header.Set("Authorization", "Bearer "+snapshot.Token)
			if response, doErr := client.httpClient.Do(request); doErr == nil {
				_ = response.Body.Close()
			}
		}
	}

	client.stopTimer()
	return client.store.Clear()
}

// OnSessionExpired registers or replaces the expiry callback.
func (client *Client) OnSessionExpired(callback func()) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.onExpired = callback
}

// refresh exchanges the stored refresh token for a new access token.
//
// Success overwrites ONLY the access token; the refresh token and user copy
// are untouched. Any failure clears the whole session — a client that cannot
// refresh must not keep limping along on stale credentials.
func (client *Client) refresh(ctx context.Context) (string, error) {
	snapshot := client.Tokens()
	if snapshot == nil {
		return "", ErrNoSession
	}

	body, err := json.Marshal(map[string]string{"refreshToken": snapshot.RefreshToken})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+refreshPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.clearSession()
		return "", fmt.Errorf("authclient: refresh request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		client.clearSession()
		return "", fmt.Errorf("authclient: refresh rejected with status %d", response.StatusCode)
	}

	var payload struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil || !payload.Success || payload.Token == "" {
		client.clearSession()
		return "", errors.New("authclient: refresh response malformed")
	}

	expiresAt, ok := token.ExpirationTime(payload.Token)
	if !ok {
		client.clearSession()
		return "", errors.New("authclient: refreshed token has no decodable expiry")
	}

	snapshot.Token = payload.Token
	snapshot.ExpiresAt = expiresAt
	if err := client.store.Save(snapshot); err != nil {
		client.clearSession()
		return "", fmt.Errorf("authclient: save refreshed session: %w", err)
	}

	client.scheduleRefresh(expiresAt)
	client.logger.Debug("session_refreshed", slog.Time("expires_at", expiresAt))

	return payload.Token, nil
}

// clearSession drops local state after a failed refresh.
func (client *Client) clearSession() {
	client.stopTimer()
	_ = client.store.Clear()
}

// scheduleRefresh (re)arms the proactive refresh timer.
func (client *Client) scheduleRefresh(expiresAt time.Time) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.timer != nil {
		client.timer.Stop()
		client.timer = nil
	}

	wait := time.Until(expiresAt.Add(-refreshLead))
	if wait <= 0 {
		return
	}

	client.timer = time.AfterFunc(wait, func() {
		_, err, _ := client.group.Do(refreshKey, func() (any, error) {
			return client.refresh(context.Background())
		})
		if err != nil {
			client.logger.Warn("proactive_refresh_failed", slog.Any("error", err))
		}
	})
}

func (client *Client) stopTimer() {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.timer != nil {
		client.timer.Stop()
		client.timer = nil
	}
}

// watchdog periodically checks for a session that expired while idle. If
// refresh cannot re-establish it, the registered callback fires once per
// detection.
func (client *Client) watchdog() {
	ticker := time.NewTicker(watchdogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			return
		case <-ticker.C:
			snapshot := client.Tokens()
			if snapshot == nil || !token.IsStructurallyExpired(snapshot.Token) {
				continue
			}

			if _, err := client.ValidToken(context.Background()); err != nil {
				client.mu.Lock()
				callback := client.onExpired
				client.mu.Unlock()
				if callback != nil {
					callback()
				}
			}
		}
	}
}
