// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([TokenIssuer], middleware.TokenVerifier).
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/pkg/token"
)

// Identity is the principal snapshot baked into a token at issuance time.
//
// # Staleness
//
// The payload is NOT re-validated against the database on plain verification;
// only middleware-gated requests re-fetch the principal to check the active
// flag. A role change therefore propagates no faster than the access token
// lifetime.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	FirstName string
	LastName  string
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The server-held HMAC signing secret.
//   - accessTTL: Access token lifetime (defaults upstream to 8h via config).
func NewTokenService(secret string, accessTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	if accessTTL <= 0 {
		accessTTL = constants.DefaultAccessTokenTTL
	}

	return &TokenService{
		secret:    []byte(secret),
		issuer:    constants.AuthIssuer,
		accessTTL: accessTTL,
	}, nil
}

// IssueAccessToken creates a short-lived signed JWT for the given identity.
//
// Two calls with identical claims produce different tokens only when iat
// differs (second granularity); this is expected.
func (service *TokenService) IssueAccessToken(identity Identity) (string, error) {
	return service.sign(identity, service.accessTTL)
}

// IssueRefreshToken creates a long-lived signed JWT for the given identity.
//
// The 30-day lifetime is fixed in code. There is no server-side revocation
// list; a leaked refresh token stays valid until natural expiry unless the
// account itself is deactivated.
func (service *TokenService) IssueRefreshToken(identity Identity) (string, error) {
	return service.sign(identity, constants.RefreshTokenTTL)
}

// sign builds the claim set and produces the compact signed string.
func (service *TokenService) sign(identity Identity, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:    identity.UserID,
		Email:     identity.Email,
		Role:      string(identity.Role),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity (exp, iat) of a JWT string.
//
// Any failure — malformed token, wrong signature, expired exp — is an error.
// Callers must treat an error strictly as "unauthenticated", never as an
// exceptional condition worth surfacing to the client in detail.
func (service *TokenService) Verify(tokenString string) (*token.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &token.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", t.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*token.Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// AccessTokenTTL exposes the configured access token lifetime (used by
// handlers to report expires_in).
func (service *TokenService) AccessTokenTTL() time.Duration {
	return service.accessTTL
}
