// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Fixed-window sizes and identifier tracking TTLs.
  - Security: JWT issuers and token lifetimes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "admin-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRequests is the number of requests allowed per identifier per window.
	DefaultRateLimitRequests = 100

	// DefaultRateLimitWindow is the fixed window over which requests are counted.
	DefaultRateLimitWindow = 15 * time.Minute

	// RateLimitSweepInterval is how often stale identifier windows are removed from memory.
	RateLimitSweepInterval = 1 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "admin.foureyedgems.com"

	// DefaultAccessTokenTTL is the access token lifetime used when the
	// JWT_EXPIRES_IN environment variable is not set.
	DefaultAccessTokenTTL = 8 * time.Hour

	// RefreshTokenTTL is the refresh token lifetime. Deliberately not
	// configurable; there is no server-side revocation list, so the only
	// kill-switch for a leaked refresh token is deactivating the account.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// BearerPrefix is the exact prefix required in the Authorization header.
	BearerPrefix = "Bearer "

	// LastLoginTouchInterval is how stale a principal's last-login timestamp
	// must be before authenticated middleware refreshes it.
	LastLoginTouchInterval = 1 * time.Hour

	// BcryptCost matches the cost used for all stored password hashes.
	BcryptCost = 12
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldSuccess = "success"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers  = "users"
	SchemaCRM    = "crm"
	SchemaSystem = "system"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSettings = "system:settings"
)

// RedisSettingsTTL bounds staleness of the cached settings document.
const RedisSettingsTTL = 5 * time.Minute
