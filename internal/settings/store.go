package settings

import (
	"context"
	"time"
)

// Repository persists the raw settings document.
//
// Load returns the stored JSON and its last update time; found is false when
// the singleton row has never been written.
type Repository interface {
	Load(context context.Context) (data []byte, updatedAt time.Time, found bool, err error)
	Save(context context.Context, data []byte, updatedBy string) (time.Time, error)
}
