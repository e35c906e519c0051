package inquiries

import (
	"context"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, inquiry *Inquiry) error
	FindByID(context context.Context, id string) (*Inquiry, error)
	List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Inquiry, int, error)
	Update(context context.Context, inquiry *Inquiry) error
	Delete(context context.Context, id string) error
}
