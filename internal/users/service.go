// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/pkg/pagination"
	"github.com/foureyedgems/admin-api/pkg/uuid"
)

// Service implements account management use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to role rules or
// password handling must be reviewed before merging.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Account Lifecycle

// CreateUserInput holds the data required to enroll a new staff account.
type CreateUserInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Role       sec.Role
	Phone      string
	Department string
}

/*
CreateUser validates, hashes, and persists a brand new staff account.

Only a super admin may hand out the admin or super_admin role; regular
admins can create staff accounts only.
*/
func (service *Service) CreateUser(context context.Context, actorRole sec.Role, input CreateUserInput) (*User, error) {

	// Privileged roles are reserved for super admins to assign.
	if input.Role.In(sec.RoleAdmin, sec.RoleSuperAdmin) && actorRole != sec.RoleSuperAdmin {
		return nil, apperr.Forbidden("Only a super admin can assign this role")
	}

	email := NormalizeEmail(input.Email)

	// Pre-check uniqueness for a friendly Conflict; the DB unique index is
	// the real guarantee under concurrency.
	if _, err := service.repo.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("A user with this email already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		IsActive:     true,
		Phone:        input.Phone,
		Department:   input.Department,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, fmt.Errorf("users_service_create_failed: %w", err)
	}

	return user, nil
}

// UpdateUserInput holds partial account updates; nil fields are untouched.
type UpdateUserInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Role       *sec.Role
	IsActive   *bool
	Phone      *string
	Department *string
	AvatarURL  *string
}

/*
UpdateUser applies a partial update to an existing account.

Role escalation follows the same rule as creation: only a super admin may
grant admin or super_admin. Touching a super admin's account at all also
requires super admin rights.
*/
func (service *Service) UpdateUser(context context.Context, actorRole sec.Role, id string, input UpdateUserInput) (*User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if user.Role == sec.RoleSuperAdmin && actorRole != sec.RoleSuperAdmin {
		return nil, apperr.Forbidden("Only a super admin can modify this account")
	}

	if input.Role != nil {
		if input.Role.In(sec.RoleAdmin, sec.RoleSuperAdmin) && actorRole != sec.RoleSuperAdmin {
			return nil, apperr.Forbidden("Only a super admin can assign this role")
		}
		user.Role = *input.Role
	}

	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != user.Email {
			if _, err := service.repo.FindByEmail(context, email); err == nil {
				return nil, apperr.Conflict("A user with this email already exists")
			}
			user.Email = email
		}
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
DeleteUser removes an account permanently.

Rules:
  - Self-deletion is rejected (an admin locking themselves out by accident
    is worse than the extra hop of asking a colleague).
  - Deleting a super admin requires super admin rights.
*/
func (service *Service) DeleteUser(context context.Context, actorID string, actorRole sec.Role, id string) (*User, error) {
	if id == actorID {
		return nil, apperr.Forbidden("You cannot delete your own account")
	}

	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if user.Role == sec.RoleSuperAdmin && actorRole != sec.RoleSuperAdmin {
		return nil, apperr.Forbidden("Only a super admin can delete this account")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return nil, err
	}

	return user, nil
}

// ResetPassword overwrites the account's password hash with a new one.
func (service *Service) ResetPassword(context context.Context, id, newPassword string) (*User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	if err := service.repo.UpdatePassword(context, id, hashedPassword); err != nil {
		return nil, err
	}

	return user, nil
}

// # Queries

// GetUser returns a single account by ID.
func (service *Service) GetUser(context context.Context, id string) (*User, error) {
	return service.repo.FindByID(context, id)
}

// FindByEmail returns an account by its normalized email.
func (service *Service) FindByEmail(context context.Context, email string) (*User, error) {
	return service.repo.FindByEmail(context, NormalizeEmail(email))
}

// ListUsers returns a filtered, paginated page of accounts.
func (service *Service) ListUsers(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*User, int, error) {
	return service.repo.List(context, filter, params, sort)
}

// CountUsers reports the total number of accounts (used by setup bootstrap).
func (service *Service) CountUsers(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// # Middleware Integration

// Principal implements [middleware.PrincipalSource] by loading live account
// state for every authenticated request.
func (service *Service) Principal(context context.Context, userID string) (*middleware.Principal, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return &middleware.Principal{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
	}, nil
}

// TouchLastLogin implements [middleware.PrincipalSource].
func (service *Service) TouchLastLogin(context context.Context, userID string) error {
	return service.repo.TouchLastLogin(context, userID)
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
