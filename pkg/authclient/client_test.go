// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = json.RawMessage(`{"id":"u-1","email":"staff@foureyedgems.com"}`)

// mintToken signs a token with an arbitrary secret; the SDK never checks
// signatures, only the exp claim.
func mintToken(t *testing.T, timeToLive time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "u-1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeToLive)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newRefreshServer(t *testing.T, calls *atomic.Int64, delay time.Duration) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/refresh", func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		time.Sleep(delay)

		var payload struct {
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		require.NotEmpty(t, payload.RefreshToken)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"success": true,
			"token":   mintToken(t, time.Hour),
		})
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{"success": true, "message": "Logged out successfully"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestValidTokenReturnsCachedWhenFresh(t *testing.T) {
	var calls atomic.Int64
	server := newRefreshServer(t, &calls, 0)

	client := NewClient(server.URL, NewMemoryStore(), Options{})
	defer client.Close()

	access := mintToken(t, time.Hour)
	require.NoError(t, client.SetTokens(access, mintToken(t, 30*24*time.Hour), testUser))

	got, err := client.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, access, got)
	assert.Zero(t, calls.Load(), "fresh token must not trigger a refresh")
}

func TestValidTokenCoalescesConcurrentRefreshes(t *testing.T) {
	var calls atomic.Int64
	server := newRefreshServer(t, &calls, 50*time.Millisecond)

	client := NewClient(server.URL, NewMemoryStore(), Options{})
	defer client.Close()

	// Expired access token forces every caller onto the refresh path.
	require.NoError(t, client.SetTokens(mintToken(t, -time.Minute), mintToken(t, 30*24*time.Hour), testUser))

	const workers = 10
	results := make([]string, workers)
	errs := make([]error, workers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		go func(index int) {
			defer done.Done()
			start.Wait()
			results[index], errs[index] = client.ValidToken(context.Background())
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i], "all callers share the refreshed token")
	}
	assert.Equal(t, int64(1), calls.Load(), "concurrent callers share one in-flight refresh")
}

func TestRefreshOverwritesAccessTokenOnly(t *testing.T) {
	var calls atomic.Int64
	server := newRefreshServer(t, &calls, 0)

	store := NewMemoryStore()
	client := NewClient(server.URL, store, Options{})
	defer client.Close()

	refreshToken := mintToken(t, 30*24*time.Hour)
	require.NoError(t, client.SetTokens(mintToken(t, -time.Minute), refreshToken, testUser))

	_, err := client.ValidToken(context.Background())
	require.NoError(t, err)

	snapshot := client.Tokens()
	require.NotNil(t, snapshot)
	assert.Equal(t, refreshToken, snapshot.RefreshToken)
	assert.JSONEq(t, string(testUser), string(snapshot.User))
	assert.False(t, snapshot.ExpiresAt.Before(time.Now()))
}

func TestFailedRefreshClearsAllState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, `{"success":false,"error":"Invalid or expired token","code":"UNAUTHORIZED"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewMemoryStore()
	client := NewClient(server.URL, store, Options{})
	defer client.Close()

	require.NoError(t, client.SetTokens(mintToken(t, -time.Minute), mintToken(t, time.Hour), testUser))

	_, err := client.ValidToken(context.Background())
	require.Error(t, err)

	assert.Nil(t, client.Tokens(), "failed refresh must leave no partial session")

	// The next attempt reports the absent session rather than retrying.
	_, err = client.ValidToken(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

// saveFailStore lets a test break Save after the session is established.
type saveFailStore struct {
	*MemoryStore
	failSave atomic.Bool
}

func (store *saveFailStore) Save(snapshot *Snapshot) error {
	if store.failSave.Load() {
		return errors.New("disk full")
	}
	return store.MemoryStore.Save(snapshot)
}

func TestRefreshSaveFailureClearsAllState(t *testing.T) {
	var calls atomic.Int64
	server := newRefreshServer(t, &calls, 0)

	store := &saveFailStore{MemoryStore: NewMemoryStore()}
	client := NewClient(server.URL, store, Options{})
	defer client.Close()

	require.NoError(t, client.SetTokens(mintToken(t, -time.Minute), mintToken(t, time.Hour), testUser))
	store.failSave.Store(true)

	// The server accepts the refresh, but the new token cannot be persisted;
	// the session must not survive half-saved.
	_, err := client.ValidToken(context.Background())
	require.Error(t, err)
	assert.Nil(t, client.Tokens())

	_, err = client.ValidToken(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTokensSelfHealsPartialState(t *testing.T) {
	store := NewMemoryStore()
	client := NewClient("http://127.0.0.1:0", store, Options{})
	defer client.Close()

	tests := []struct {
		name     string
		snapshot Snapshot
	}{
		{name: "missing_refresh_token", snapshot: Snapshot{Token: mintToken(t, time.Hour), User: testUser}},
		{name: "missing_user", snapshot: Snapshot{Token: mintToken(t, time.Hour), RefreshToken: mintToken(t, time.Hour)}},
		{name: "garbage_access_token", snapshot: Snapshot{Token: "not-a-jwt", RefreshToken: mintToken(t, time.Hour), User: testUser}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, store.Save(&test.snapshot))

			assert.Nil(t, client.Tokens())

			stored, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, stored, "partial state must be cleared, not left behind")
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	var calls atomic.Int64
	server := newRefreshServer(t, &calls, 0)

	store := NewMemoryStore()
	client := NewClient(server.URL, store, Options{})
	defer client.Close()

	require.NoError(t, client.SetTokens(mintToken(t, time.Hour), mintToken(t, time.Hour), testUser))

	require.NoError(t, client.Logout(context.Background()))
	assert.Nil(t, client.Tokens())

	// Second logout with no session: still succeeds, state still clear.
	require.NoError(t, client.Logout(context.Background()))
	assert.Nil(t, client.Tokens())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	snapshot := &Snapshot{
		Token:        mintToken(t, time.Hour),
		RefreshToken: mintToken(t, 30*24*time.Hour),
		User:         testUser,
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, store.Save(snapshot))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot.Token, loaded.Token)
	assert.Equal(t, snapshot.RefreshToken, loaded.RefreshToken)
	assert.JSONEq(t, string(snapshot.User), string(loaded.User))

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}
