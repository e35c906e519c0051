package activity_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

// fakeRepository captures inserts and can be forced to fail.
type fakeRepository struct {
	entries   []*activity.Entry
	insertErr error
}

func (repository *fakeRepository) Insert(_ context.Context, entry *activity.Entry) error {
	if repository.insertErr != nil {
		return repository.insertErr
	}
	repository.entries = append(repository.entries, entry)
	return nil
}

func (repository *fakeRepository) List(_ context.Context, _ activity.Filter, _ pagination.Params) ([]*activity.Entry, int, error) {
	return repository.entries, len(repository.entries), nil
}

func newTestRecorder(repo *fakeRepository) *activity.Recorder {
	return activity.NewRecorder(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestRecorder_Log verifies that entries are written with defaults applied.
*/
func TestRecorder_Log(t *testing.T) {
	repo := &fakeRepository{}
	recorder := newTestRecorder(repo)

	recorder.Log(context.Background(), "user-1", activity.ActionCreateClient, "client", "Created client Acme Corp", activity.Options{
		ResourceID: "client-9",
		Category:   activity.CategoryClient,
		IPAddress:  "203.0.113.5",
	})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]

	assert.Equal(t, "user-1", entry.ActorID)
	assert.Equal(t, activity.ActionCreateClient, entry.Action)
	assert.Equal(t, activity.CategoryClient, entry.Category)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "client-9", *entry.ResourceID)

	// Unspecified severity defaults to low.
	assert.Equal(t, activity.SeverityLow, entry.Severity)
}

/*
TestRecorder_Log_Defaults verifies fallback category and severity, and that
a call site forgetting its category is reported rather than silently patched.
*/
func TestRecorder_Log_Defaults(t *testing.T) {
	repo := &fakeRepository{}
	var logged bytes.Buffer
	recorder := activity.NewRecorder(repo, slog.New(slog.NewTextHandler(&logged, nil)))

	recorder.Log(context.Background(), "user-1", "CUSTOM_ACTION", "thing", "did a thing", activity.Options{})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, activity.SeverityLow, repo.entries[0].Severity)
	assert.Equal(t, activity.CategorySystem, repo.entries[0].Category)
	assert.Nil(t, repo.entries[0].ResourceID)
	assert.Contains(t, logged.String(), "activity_category_missing")
}

/*
TestRecorder_Log_NonFatal verifies that a failing insert never panics or
propagates; auditing must not break the primary operation.
*/
func TestRecorder_Log_NonFatal(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("connection refused")}
	recorder := newTestRecorder(repo)

	assert.NotPanics(t, func() {
		recorder.Log(context.Background(), "user-1", activity.ActionLogin, "session", "User logged in", activity.Options{
			Category: activity.CategoryAuth,
		})
	})
	assert.Empty(t, repo.entries)
}
