package projects

import (
	"context"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, project *Project) error
	FindByID(context context.Context, id string) (*Project, error)
	List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Project, int, error)
	CountByClient(context context.Context, clientID string) (int, error)
	Update(context context.Context, project *Project) error
	Delete(context context.Context, id string) error
}
