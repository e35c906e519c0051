package activity

import (
	"context"
	"log/slog"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

// Recorder writes append-only audit trail entries.
//
// Recording is synchronous but never fatal: a failed insert is logged and
// swallowed so the caller's primary operation is never rolled back or
// failed because of auditing.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Log records one audit entry. Errors are logged, never returned.
func (recorder *Recorder) Log(context context.Context, actorID, action, resource, description string, options Options) {
	entry := &Entry{
		ActorID:     actorID,
		Action:      action,
		Resource:    resource,
		Description: description,
		Metadata:    options.Metadata,
		IPAddress:   options.IPAddress,
		UserAgent:   options.UserAgent,
		Severity:    options.Severity,
		Category:    options.Category,
	}

	if options.ResourceID != "" {
		entry.ResourceID = &options.ResourceID
	}
	if entry.Severity == "" {
		entry.Severity = SeverityLow
	}
	if entry.Category == "" {
		// Every call site is supposed to name its category; an empty one is
		// a programming error worth surfacing, not worth failing over.
		recorder.logger.WarnContext(context, "activity_category_missing",
			slog.String("action", action),
			slog.String("resource", resource),
		)
		entry.Category = CategorySystem
	}

	if err := recorder.repo.Insert(context, entry); err != nil {
		recorder.logger.ErrorContext(context, "activity_record_failed",
			slog.String("action", action),
			slog.String("resource", resource),
			slog.String("actor_id", actorID),
			slog.Any("error", err),
		)
	}
}

// ListLogs returns a filtered, paginated page of the audit trail.
func (recorder *Recorder) ListLogs(context context.Context, filter Filter, params pagination.Params) ([]*Entry, int, error) {
	return recorder.repo.List(context, filter, params)
}
