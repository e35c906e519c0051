// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package token defines the JWT claim payload shared by the API server and the
client SDK, plus helpers that inspect a token WITHOUT verifying its signature.

# Trust Boundary

Nothing in this package proves a token is authentic. [ExpirationTime] and
[IsStructurallyExpired] decode the payload unverified and exist only for local
expiry pre-checks (e.g. deciding whether a client should refresh before making
a request). Any decode failure is treated as expired — fail-closed. Claims
obtained here must never be used for authorization; that is the job of the
server-side verifier in internal/platform/sec.
*/
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload embedded in both access and refresh tokens.
//
// The custom fields mirror the wire contract consumed by API clients:
// {userId, email, role, firstName, lastName, iat, exp}.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// unverifiedParser skips claims validation so expired tokens can still be decoded.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpirationTime decodes the token without signature verification and returns
// its expiry instant.
//
// The second return value is false when the token is malformed or carries no
// exp claim. Callers needing a boolean check should prefer [IsStructurallyExpired].
func ExpirationTime(tokenString string) (time.Time, bool) {
	claims := &Claims{}
	_, _, err := unverifiedParser.ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// IsStructurallyExpired reports whether the token's exp claim is in the past.
//
// Undecodable tokens and tokens without an exp claim count as expired.
func IsStructurallyExpired(tokenString string) bool {
	expiresAt, ok := ExpirationTime(tokenString)
	if !ok {
		return true
	}
	return !time.Now().Before(expiresAt)
}

// DecodeUnverified returns the claims of a token without verifying the
// signature. Use only for display purposes (e.g. showing the logged-in user's
// name from a cached token), never for authorization.
func DecodeUnverified(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	_, _, err := unverifiedParser.ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, false
	}
	return claims, true
}
