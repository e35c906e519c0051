package settings

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
)

type fakeRepository struct {
	data      []byte
	updatedAt time.Time
	saves     int
}

func (f *fakeRepository) Load(_ context.Context) ([]byte, time.Time, bool, error) {
	if f.data == nil {
		return nil, time.Time{}, false, nil
	}
	return f.data, f.updatedAt, true, nil
}

func (f *fakeRepository) Save(_ context.Context, data []byte, _ string) (time.Time, error) {
	f.data = data
	f.updatedAt = time.Now()
	f.saves++
	return f.updatedAt, nil
}

func newTestService(repo *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, NewCache(nil, logger), logger)
}

func TestGetReturnsDefaultsWhenEmpty(t *testing.T) {
	service := newTestService(&fakeRepository{})

	document, err := service.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Four Eyed Gems", document.General.SiteName)
	assert.Equal(t, ThemeSystem, document.Appearance.Theme)
	assert.Equal(t, 8, document.Security.PasswordPolicy.MinLength)
	assert.Equal(t, BackupDaily, document.Backup.BackupFrequency)
}

func TestGetMergesStoredOverDefaults(t *testing.T) {
	// A document written by an older build may be missing whole sections;
	// every field must still come back populated.
	repo := &fakeRepository{
		data:      []byte(`{"general":{"siteName":"Gem Works"}}`),
		updatedAt: time.Now(),
	}
	service := newTestService(repo)

	document, err := service.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Gem Works", document.General.SiteName)
	assert.Equal(t, "UTC", document.General.Timezone)
	assert.Equal(t, 30, document.Security.SessionTimeout)
	assert.True(t, document.Notifications.EmailNotifications)
}

func TestUpdateSectionPersistsAndValidates(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	payload := json.RawMessage(`{"theme":"dark","primaryColor":"#112233"}`)
	document, err := service.UpdateSection(context.Background(), SectionAppearance, payload, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, ThemeDark, document.Appearance.Theme)
	assert.Equal(t, "#112233", document.Appearance.PrimaryColor)
	assert.Equal(t, 1, repo.saves)

	// Untouched sections survive the write.
	reloaded, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Four Eyed Gems", reloaded.General.SiteName)
	assert.Equal(t, ThemeDark, reloaded.Appearance.Theme)
}

func TestUpdateSectionRejectsInvalidValues(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	tests := []struct {
		name    string
		section string
		payload string
	}{
		{name: "bad_theme", section: SectionAppearance, payload: `{"theme":"neon"}`},
		{name: "bad_color", section: SectionAppearance, payload: `{"primaryColor":"blue"}`},
		{name: "timeout_too_low", section: SectionSecurity, payload: `{"sessionTimeout":1}`},
		{name: "bad_frequency", section: SectionBackup, payload: `{"backupFrequency":"hourly"}`},
		{name: "bad_email", section: SectionGeneral, payload: `{"adminEmail":"nope"}`},
		{name: "unknown_section", section: "plugins", payload: `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := service.UpdateSection(context.Background(), test.section, json.RawMessage(test.payload), "actor-1")
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Zero(t, repo.saves)
		})
	}
}
