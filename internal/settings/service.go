package settings

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
)

type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the settings document with every field populated. The cached
// copy is already merged; on a miss the stored row is merged over Defaults
// and written back to the cache.
func (service *Service) Get(context context.Context) (Document, error) {
	if data, found := service.cache.Get(context); found {
		document := Defaults()
		if err := json.Unmarshal(data, &document); err == nil {
			return document, nil
		}
		// Corrupt cache entry; fall through to the database.
		service.cache.Invalidate(context)
	}

	document, err := service.load(context)
	if err != nil {
		return Document{}, err
	}

	if data, err := json.Marshal(document); err == nil {
		service.cache.Set(context, data)
	}

	return document, nil
}

// UpdateSection validates and replaces one section of the document, then
// persists the whole document and invalidates the cache.
func (service *Service) UpdateSection(context context.Context, section string, payload json.RawMessage, updatedBy string) (Document, error) {
	document, err := service.load(context)
	if err != nil {
		return Document{}, err
	}

	if err := applySection(&document, section, payload); err != nil {
		return Document{}, err
	}
	if err := validateSection(&document, section); err != nil {
		return Document{}, err
	}

	data, err := json.Marshal(document)
	if err != nil {
		return Document{}, apperr.Internal(err)
	}

	updatedAt, err := service.repo.Save(context, data, updatedBy)
	if err != nil {
		return Document{}, err
	}
	document.UpdatedAt = updatedAt

	service.cache.Invalidate(context)

	service.logger.InfoContext(context, "settings_updated",
		slog.String("section", section),
		slog.String("updated_by", updatedBy),
	)

	return document, nil
}

// load reads the stored row and merges it over Defaults. A missing row
// yields the pure defaults.
func (service *Service) load(context context.Context) (Document, error) {
	document := Defaults()

	data, updatedAt, found, err := service.repo.Load(context)
	if err != nil {
		return Document{}, err
	}
	if !found {
		return document, nil
	}

	if err := json.Unmarshal(data, &document); err != nil {
		return Document{}, apperr.Internal(err)
	}
	document.UpdatedAt = updatedAt
	return document, nil
}

// applySection unmarshals the payload onto the current section value, so a
// partial payload keeps the remaining fields intact.
func applySection(document *Document, section string, payload json.RawMessage) error {
	var target any
	switch section {
	case SectionGeneral:
		target = &document.General
	case SectionNotifications:
		target = &document.Notifications
	case SectionSecurity:
		target = &document.Security
	case SectionAppearance:
		target = &document.Appearance
	case SectionIntegrations:
		target = &document.Integrations
	case SectionBackup:
		target = &document.Backup
	default:
		return validate.RequiredError("section", "Must be one of: general, notifications, security, appearance, integrations, backup")
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

func validateSection(document *Document, section string) error {
	validator := &validate.Validator{}

	switch section {
	case SectionGeneral:
		general := document.General
		validator.
			Required("siteName", general.SiteName).MaxLen("siteName", general.SiteName, 100).
			URL("siteUrl", general.SiteURL).
			Required("adminEmail", general.AdminEmail).Email("adminEmail", general.AdminEmail).
			Required("timezone", general.Timezone).
			Required("language", general.Language)
	case SectionSecurity:
		security := document.Security
		validator.
			Range("sessionTimeout", security.SessionTimeout, 5, 480).
			Range("passwordPolicy.minLength", security.PasswordPolicy.MinLength, 6, 32)
	case SectionAppearance:
		appearance := document.Appearance
		validator.
			OneOf("theme", appearance.Theme, ThemeLight, ThemeDark, ThemeSystem).
			HexColor("primaryColor", appearance.PrimaryColor).
			URL("logo", appearance.Logo).
			URL("favicon", appearance.Favicon)
	case SectionIntegrations:
		validator.URL("slackWebhook", document.Integrations.SlackWebhook)
	case SectionBackup:
		backup := document.Backup
		validator.
			OneOf("backupFrequency", backup.BackupFrequency, BackupDaily, BackupWeekly, BackupMonthly).
			Range("backupRetention", backup.BackupRetention, 1, 365)
	}

	return validator.Err()
}
