// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package users

import (
	"context"

	"github.com/foureyedgems/admin-api/pkg/pagination"
)

// Repository abstracts account persistence.
type Repository interface {
	Create(context context.Context, user *User) error
	FindByID(context context.Context, id string) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*User, int, error)
	Update(context context.Context, user *User) error
	Delete(context context.Context, id string) error
	UpdatePassword(context context.Context, id, passwordHash string) error
	TouchLastLogin(context context.Context, id string) error
	Count(context context.Context) (int, error)
}
