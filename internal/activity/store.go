package activity

import (
	"context"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type Repository interface {
	Insert(context context.Context, entry *Entry) error
	List(context context.Context, filter Filter, params pagination.Params) ([]*Entry, int, error)
}
