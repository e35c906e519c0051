package clients

import (
	"context"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, client *Client) error
	FindByID(context context.Context, id string) (*Client, error)
	FindByEmail(context context.Context, email string) (*Client, error)
	List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Client, int, error)
	Update(context context.Context, client *Client) error
	Delete(context context.Context, id string) error
}
