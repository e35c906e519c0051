// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/internal/platform/ctxutil"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/pkg/token"
)

// # Authentication & Authorization

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Principal is the live account state backing a verified token.
//
// Claims inside a JWT are a snapshot from issue time; the Principal reflects
// the database NOW. Deactivating an account must lock the user out before
// their token expires, so every authenticated request re-checks this state.
type Principal struct {
	ID          string
	Email       string
	Role        sec.Role
	IsActive    bool
	LastLoginAt *time.Time
}

// PrincipalSource loads live account state for authenticated requests.
type PrincipalSource interface {
	// Principal returns the account for the given user ID, or an error if
	// the account does not exist.
	Principal(ctx context.Context, userID string) (*Principal, error)

	// TouchLastLogin updates the account's last-login timestamp to now.
	TouchLastLogin(ctx context.Context, userID string) error
}

// Authenticator guards routes with token verification and role checks.
type Authenticator struct {
	verifier   TokenVerifier
	principals PrincipalSource
	logger     *slog.Logger
}

// NewAuthenticator wires the token verifier and account source into a
// reusable route guard.
func NewAuthenticator(verifier TokenVerifier, principals PrincipalSource, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		verifier:   verifier,
		principals: principals,
		logger:     logger,
	}
}

// Require returns a middleware that admits only authenticated requests whose
// account role is in the allowed set. An empty set admits any valid role.
//
// # Flow
//  1. Require a strict 'Authorization: Bearer <token>' header.
//  2. Verify the JWT signature and expiry via [TokenVerifier].
//  3. Load the live [Principal]; missing or deactivated accounts are
//     rejected with the same generic 401 as a bad token.
//  4. Enforce the role allow-list (403 on mismatch).
//  5. Inject verified claims into the context and refresh last-login.
func (authenticator *Authenticator) Require(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Header Extraction ──────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, constants.BearerPrefix) {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}
			tokenString := authHeader[len(constants.BearerPrefix):]

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := authenticator.verifier.Verify(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Live Account Check ─────────────────────────────────────────
			// The same generic message covers missing and deactivated accounts
			// so responses don't leak which accounts exist.
			principal, err := authenticator.principals.Principal(request.Context(), claims.UserID)
			if err != nil || !principal.IsActive {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Authorization Check ────────────────────────────────────────
			// The live role wins over the token snapshot: a demotion takes
			// effect on the next request, not at token expiry.
			if len(allowed) > 0 && !principal.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)

			// Best-effort last-login refresh; never blocks the request.
			authenticator.touchLastLogin(ctx, principal)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// touchLastLogin refreshes the principal's last-login timestamp when it is
// unset or stale. Failures are logged and swallowed.
func (authenticator *Authenticator) touchLastLogin(ctx context.Context, principal *Principal) {
	if principal.LastLoginAt != nil && time.Since(*principal.LastLoginAt) < constants.LastLoginTouchInterval {
		return
	}

	if err := authenticator.principals.TouchLastLogin(ctx, principal.ID); err != nil {
		authenticator.logger.WarnContext(ctx, "last_login_touch_failed",
			slog.String("user_id", principal.ID),
			slog.Any("error", err),
		)
	}
}
