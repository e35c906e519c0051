// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/platform/middleware"
)

/*
TestRateLimiter_Allow verifies the fixed-window counting behavior.
*/
func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(3, time.Minute)

	// First 3 requests pass, the 4th is rejected.
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different identifier has its own budget.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

/*
TestRateLimiter_WindowReset verifies that the counter resets once the
window expires (fixed-window, not sliding).
*/
func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 30*time.Millisecond)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Denied requests do not extend the window.
	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
}

/*
TestRateLimiter_Middleware verifies the HTTP integration: over-budget
requests receive 429 and never reach the handler.
*/
func TestRateLimiter_Middleware(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)

	handlerCalls := 0
	handler := limiter.Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerCalls++
		writer.WriteHeader(http.StatusOK)
	}))

	doRequest := func() *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		request.RemoteAddr = "10.0.0.1:54321"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	require.Equal(t, http.StatusOK, doRequest().Code)
	require.Equal(t, http.StatusOK, doRequest().Code)

	blocked := doRequest()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, 2, handlerCalls)
	assert.Contains(t, blocked.Body.String(), "TOO_MANY_REQUESTS")
}

/*
TestRateLimiter_Middleware_ProxyHeaders verifies that the identifier honors
the X-Forwarded-For header so budgets apply per client, not per proxy.
*/
func TestRateLimiter_Middleware_ProxyHeaders(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)

	handler := limiter.Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	doRequest := func(clientIP string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		request.RemoteAddr = "172.16.0.1:80" // shared proxy
		request.Header.Set("X-Forwarded-For", clientIP)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, doRequest("203.0.113.5").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest("203.0.113.5").Code)

	// Different end-client behind the same proxy is unaffected.
	assert.Equal(t, http.StatusOK, doRequest("203.0.113.9").Code)
}
