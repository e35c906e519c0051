package inquiries

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type fakeRepository struct {
	inquiries map[string]*Inquiry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{inquiries: map[string]*Inquiry{}}
}

func (f *fakeRepository) Create(_ context.Context, inquiry *Inquiry) error {
	f.inquiries[inquiry.ID] = inquiry
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Inquiry, error) {
	inquiry, ok := f.inquiries[id]
	if !ok {
		return nil, apperr.NotFound("Inquiry")
	}
	return inquiry, nil
}

func (f *fakeRepository) List(_ context.Context, _ Filter, _ pagination.Params, _ pagination.Sort) ([]*Inquiry, int, error) {
	result := make([]*Inquiry, 0, len(f.inquiries))
	for _, inquiry := range f.inquiries {
		result = append(result, inquiry)
	}
	return result, len(result), nil
}

func (f *fakeRepository) Update(_ context.Context, inquiry *Inquiry) error {
	f.inquiries[inquiry.ID] = inquiry
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.inquiries, id)
	return nil
}

type fakeActivityRepo struct{}

func (fakeActivityRepo) Insert(context.Context, *activity.Entry) error { return nil }

func (fakeActivityRepo) List(context.Context, activity.Filter, pagination.Params) ([]*activity.Entry, int, error) {
	return nil, 0, nil
}

func newTestHandler() (*Handler, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(repo, logger)
	recorder := activity.NewRecorder(fakeActivityRepo{}, logger)
	return NewHandler(service, recorder), repo
}

// TestPublicCreateNeedsNoToken exercises the contact form exactly the way
// the website does: a bare POST with no Authorization header.
func TestPublicCreateNeedsNoToken(t *testing.T) {
	handler, repo := newTestHandler()

	router := chi.NewRouter()
	router.Route("/api/v1/inquiries", handler.RegisterPublicRoutes)

	body, err := json.Marshal(map[string]string{
		"name":    "Ada Visitor",
		"email":   "Ada.Visitor@Example.COM",
		"subject": "Custom engagement ring",
		"message": "Looking for a quote on a custom piece.",
	})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/inquiries", bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()

	router.ServeHTTP(response, request)

	require.Equal(t, http.StatusCreated, response.Code)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.NotEmpty(t, payload.Message)
	require.NotEmpty(t, payload.ID)

	stored, ok := repo.inquiries[payload.ID]
	require.True(t, ok)
	assert.Equal(t, StatusUnread, stored.Status)
	assert.Equal(t, PriorityMedium, stored.Priority)
	assert.Equal(t, "ada.visitor@example.com", stored.Email)
}

func TestPublicCreateValidation(t *testing.T) {
	handler, repo := newTestHandler()

	router := chi.NewRouter()
	router.Route("/api/v1/inquiries", handler.RegisterPublicRoutes)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{
			name: "missing_email",
			payload: map[string]string{
				"name":    "Ada Visitor",
				"subject": "Hello",
				"message": "No email supplied.",
			},
		},
		{
			name: "missing_message",
			payload: map[string]string{
				"name":    "Ada Visitor",
				"email":   "ada@example.com",
				"subject": "Hello",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			body, err := json.Marshal(test.payload)
			require.NoError(t, err)

			request := httptest.NewRequest(http.MethodPost, "/api/v1/inquiries", bytes.NewReader(body))
			request.Header.Set("Content-Type", "application/json")
			response := httptest.NewRecorder()

			router.ServeHTTP(response, request)

			require.Equal(t, http.StatusBadRequest, response.Code)

			var payload struct {
				Success bool   `json:"success"`
				Code    string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(response.Body.Bytes(), &payload))
			assert.False(t, payload.Success)
			assert.Equal(t, "VALIDATION_ERROR", payload.Code)
			assert.Empty(t, repo.inquiries)
		})
	}
}

func TestUpdateTriagePartial(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newFakeRepository()
	service := NewService(repo, logger)

	inquiry, err := service.Create(context.Background(), CreateInput{
		Name:    "Ada Visitor",
		Email:   "ada@example.com",
		Subject: "Custom engagement ring",
		Message: "Looking for a quote.",
	})
	require.NoError(t, err)

	status := StatusInProgress
	assignee := "0191b9d8-0000-7000-8000-000000000001"
	updated, err := service.Update(context.Background(), inquiry.ID, UpdateInput{
		Status:     &status,
		AssignedTo: &assignee,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, assignee, *updated.AssignedTo)

	// Fields left nil are untouched.
	assert.Equal(t, PriorityMedium, updated.Priority)
	assert.Equal(t, "Custom engagement ring", updated.Subject)
}
