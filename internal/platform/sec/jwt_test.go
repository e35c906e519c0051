// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/pkg/token"
)

const testSecret = "unit-test-signing-secret"

func testIdentity() sec.Identity {
	return sec.Identity{
		UserID:    "0190a7e2-0000-7000-8000-000000000001",
		Email:     "jordan@foureyedgems.com",
		Role:      sec.RoleAdmin,
		FirstName: "Jordan",
		LastName:  "Reyes",
	}
}

/*
TestTokenService_IssueAndVerify checks that a freshly issued access token
round-trips through Verify with identical identity claims.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 8*time.Hour)
	require.NoError(t, err)

	identity := testIdentity()
	signed, err := service.IssueAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := service.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, identity.UserID, claims.UserID)
	assert.Equal(t, identity.Email, claims.Email)
	assert.Equal(t, string(identity.Role), claims.Role)
	assert.Equal(t, identity.FirstName, claims.FirstName)
	assert.Equal(t, identity.LastName, claims.LastName)
	assert.Equal(t, identity.UserID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_RefreshTokenLifetime checks the fixed 30-day refresh expiry.
*/
func TestTokenService_RefreshTokenLifetime(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 8*time.Hour)
	require.NoError(t, err)

	signed, err := service.IssueRefreshToken(testIdentity())
	require.NoError(t, err)

	claims, err := service.Verify(signed)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_Verify_Failures checks that every invalid input degrades to
an error — wrong secret, tampering, garbage, and expiry.
*/
func TestTokenService_Verify_Failures(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 8*time.Hour)
	require.NoError(t, err)

	otherService, err := sec.NewTokenService("a-different-secret", 8*time.Hour)
	require.NoError(t, err)

	foreign, err := otherService.IssueAccessToken(testIdentity())
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
	}{
		{"empty_string", ""},
		{"not_a_jwt", "definitely-not-a-jwt"},
		{"two_segments_only", "aaaa.bbbb"},
		{"wrong_secret", foreign},
		{"expired", issueExpired(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.tokenString)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

/*
TestTokenService_RejectsNoneAlgorithm ensures an unsigned token is never accepted.
*/
func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 8*time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "intruder",
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.Verify(signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestIsStructurallyExpired checks the fail-closed unverified expiry pre-check:
past exp, missing exp, and undecodable input all count as expired.
*/
func TestIsStructurallyExpired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 8*time.Hour)
	require.NoError(t, err)

	valid, err := service.IssueAccessToken(testIdentity())
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		expired     bool
	}{
		{"valid_token", valid, false},
		{"expired_token", issueExpired(t), true},
		{"malformed_token", "one.two", true},
		{"empty_token", "", true},
		{"missing_exp", issueWithoutExp(t), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, token.IsStructurallyExpired(tt.tokenString))
		})
	}
}

/*
TestExpirationTime checks that the unverified decode extracts the exact exp
instant used to schedule client-side refreshes.
*/
func TestExpirationTime(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 2*time.Hour)
	require.NoError(t, err)

	signed, err := service.IssueAccessToken(testIdentity())
	require.NoError(t, err)

	expiresAt, ok := token.ExpirationTime(signed)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	_, ok = token.ExpirationTime("garbage")
	assert.False(t, ok)
}

// issueExpired signs a structurally valid token whose exp is in the past.
func issueExpired(t *testing.T) string {
	t.Helper()

	past := time.Now().Add(-2 * time.Hour)
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "expired-user",
			IssuedAt:  jwt.NewNumericDate(past.Add(-8 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		UserID: "expired-user",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// issueWithoutExp signs a token lacking any exp claim.
func issueWithoutExp(t *testing.T) string {
	t.Helper()

	claims := token.Claims{UserID: "no-exp-user"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
