// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/platform/ctxutil"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/pkg/token"
)

// fakeVerifier resolves known token strings to fixed claims.
type fakeVerifier struct {
	tokens map[string]*token.Claims
}

func (verifier *fakeVerifier) Verify(tokenString string) (*token.Claims, error) {
	claims, found := verifier.tokens[tokenString]
	if !found {
		return nil, errors.New("token is invalid")
	}
	return claims, nil
}

// fakePrincipals serves accounts from memory and records last-login touches.
type fakePrincipals struct {
	mu         sync.Mutex
	accounts   map[string]*middleware.Principal
	touchCalls []string
}

func (source *fakePrincipals) Principal(_ context.Context, userID string) (*middleware.Principal, error) {
	source.mu.Lock()
	defer source.mu.Unlock()

	principal, found := source.accounts[userID]
	if !found {
		return nil, errors.New("account not found")
	}
	return principal, nil
}

func (source *fakePrincipals) TouchLastLogin(_ context.Context, userID string) error {
	source.mu.Lock()
	defer source.mu.Unlock()

	source.touchCalls = append(source.touchCalls, userID)
	return nil
}

func newTestAuthenticator(principals *fakePrincipals) *middleware.Authenticator {
	verifier := &fakeVerifier{tokens: map[string]*token.Claims{
		"valid-staff-token": {UserID: "staff-1", Email: "staff@foureyedgems.com", Role: "staff"},
		"valid-admin-token": {UserID: "admin-1", Email: "admin@foureyedgems.com", Role: "admin"},
		"orphaned-token":    {UserID: "ghost-1", Email: "ghost@foureyedgems.com", Role: "admin"},
		"deactivated-token": {UserID: "inactive-1", Email: "former@foureyedgems.com", Role: "admin"},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return middleware.NewAuthenticator(verifier, principals, logger)
}

func newTestPrincipals() *fakePrincipals {
	recentLogin := time.Now().Add(-5 * time.Minute)
	return &fakePrincipals{accounts: map[string]*middleware.Principal{
		"staff-1":    {ID: "staff-1", Email: "staff@foureyedgems.com", Role: sec.RoleStaff, IsActive: true, LastLoginAt: &recentLogin},
		"admin-1":    {ID: "admin-1", Email: "admin@foureyedgems.com", Role: sec.RoleAdmin, IsActive: true, LastLoginAt: &recentLogin},
		"inactive-1": {ID: "inactive-1", Email: "former@foureyedgems.com", Role: sec.RoleAdmin, IsActive: false, LastLoginAt: &recentLogin},
	}}
}

/*
TestAuthenticator_Require covers the full admission state table: header
presence and shape, token validity, live account state, and role checks.
*/
func TestAuthenticator_Require(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		allowedRoles []sec.Role
		wantStatus   int
		wantBody     string
	}{
		{
			name:       "missing_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "wrong_scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "lowercase_bearer_rejected",
			authHeader: "bearer valid-staff-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "invalid_token",
			authHeader: "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:       "account_no_longer_exists",
			authHeader: "Bearer orphaned-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:       "account_deactivated",
			authHeader: "Bearer deactivated-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired token",
		},
		{
			name:         "role_not_allowed",
			authHeader:   "Bearer valid-staff-token",
			allowedRoles: []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin},
			wantStatus:   http.StatusForbidden,
			wantBody:     "Insufficient permissions",
		},
		{
			name:         "role_allowed",
			authHeader:   "Bearer valid-admin-token",
			allowedRoles: []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin},
			wantStatus:   http.StatusOK,
		},
		{
			name:       "any_role_when_unrestricted",
			authHeader: "Bearer valid-staff-token",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := newTestAuthenticator(newTestPrincipals())

			handler := authenticator.Require(tt.allowedRoles...)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				// Verified claims must be visible to downstream handlers.
				require.NotNil(t, ctxutil.GetAuthUser(request.Context()))
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}

/*
TestAuthenticator_LastLoginTouch verifies the staleness rules: the timestamp
is refreshed when missing or older than the touch interval, and left alone
when recent.
*/
func TestAuthenticator_LastLoginTouch(t *testing.T) {
	tests := []struct {
		name        string
		lastLoginAt *time.Time
		wantTouched bool
	}{
		{
			name:        "never_logged_in",
			lastLoginAt: nil,
			wantTouched: true,
		},
		{
			name:        "stale_timestamp",
			lastLoginAt: timePtr(time.Now().Add(-2 * time.Hour)),
			wantTouched: true,
		},
		{
			name:        "recent_timestamp",
			lastLoginAt: timePtr(time.Now().Add(-10 * time.Minute)),
			wantTouched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principals := newTestPrincipals()
			principals.accounts["staff-1"].LastLoginAt = tt.lastLoginAt

			authenticator := newTestAuthenticator(principals)
			handler := authenticator.Require()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			request.Header.Set("Authorization", "Bearer valid-staff-token")
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusOK, recorder.Code)
			if tt.wantTouched {
				assert.Equal(t, []string{"staff-1"}, principals.touchCalls)
			} else {
				assert.Empty(t, principals.touchCalls)
			}
		})
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
