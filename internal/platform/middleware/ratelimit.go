// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// # Fixed-Window Rate Limiting

// fixedWindow tracks the request count for one identifier within the
// current wall-clock window.
type fixedWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter limits requests per identifier (client IP) using a fixed-window
// counter: the first request opens a window, every request inside it
// increments the counter, and the counter resets only when the window expires.
//
// # Concurrency
//
// All state lives behind a single mutex. The limiter is in-memory and
// single-instance; horizontally scaled deployments would need a shared store.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow

	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing `limit` requests per `window`
// for each distinct identifier.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*fixedWindow),
		limit:   limit,
		window:  window,
	}
}

// Allow records a request for the identifier and reports whether it is
// within the current window's budget.
func (limiter *RateLimiter) Allow(identifier string) bool {
	now := time.Now()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	current, found := limiter.windows[identifier]

	// Open a fresh window when none exists or the previous one has expired.
	if !found || now.After(current.resetAt) {
		limiter.windows[identifier] = &fixedWindow{
			count:   1,
			resetAt: now.Add(limiter.window),
		}
		return true
	}

	current.count++
	return current.count <= limiter.limit
}

// StartSweeper launches a background goroutine that removes expired windows
// so the identifier map does not grow without bound. It stops when the
// context is cancelled.
func (limiter *RateLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				now := time.Now()
				limiter.mu.Lock()
				for identifier, current := range limiter.windows {
					if now.After(current.resetAt) {
						delete(limiter.windows, identifier)
					}
				}
				limiter.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Middleware rejects requests over the budget with 429 Too Many Requests.
func (limiter *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Identify the client by their IP address
			clientIP := RealIP(request)

			if !limiter.Allow(clientIP) {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
