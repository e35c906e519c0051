// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package auth implements session establishment for the admin panel.

It handles credential verification, token issuance (access + refresh pairs),
profile self-service, password changes, and the one-time setup bootstrap
that creates the first super admin account.

Architecture:

  - Service: Orchestrates login, refresh, and bootstrap logic.
  - Token issuance: Delegated to the platform token service (HS256 JWTs).
  - Accounts: Delegated to the users service; this package never touches
    the database directly.
*/
package auth

import (
	"context"
	"log/slog"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/internal/users"
	"github.com/foureyedgems/admin-api/pkg/token"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting session tokens.
type TokenIssuer interface {
	IssueAccessToken(identity sec.Identity) (string, error)
	IssueRefreshToken(identity sec.Identity) (string, error)
	Verify(tokenString string) (*token.Claims, error)
}

// Directory is the slice of the users service that auth depends on.
type Directory interface {
	FindByEmail(context context.Context, email string) (*users.User, error)
	GetUser(context context.Context, id string) (*users.User, error)
	CreateUser(context context.Context, actorRole sec.Role, input users.CreateUserInput) (*users.User, error)
	UpdateUser(context context.Context, actorRole sec.Role, id string, input users.UpdateUserInput) (*users.User, error)
	ResetPassword(context context.Context, id, newPassword string) (*users.User, error)
	TouchLastLogin(context context.Context, id string) error
	CountUsers(context context.Context) (int, error)
}

// BootstrapConfig holds the credentials for the one-time setup routine.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Service implements authentication use cases.
type Service struct {
	directory Directory
	tokens    TokenIssuer
	bootstrap BootstrapConfig
	logger    *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(directory Directory, tokens TokenIssuer, bootstrap BootstrapConfig, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		tokens:    tokens,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// # Login Flow

// Session is a successfully established token pair.
type Session struct {
	Token        string
	RefreshToken string
	User         *users.User
}

/*
Login verifies credentials and mints a fresh token pair.

The "Invalid email or password" message is shared between the unknown-email
and wrong-password branches so responses don't reveal which accounts exist.
A deactivated account with correct credentials gets its own message; that
account's existence is already known to its owner.
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	user, err := service.directory.FindByEmail(context, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	identity := identityOf(user)

	accessToken, err := service.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(identity)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Best-effort; a failed timestamp write must not fail the login.
	if err := service.directory.TouchLastLogin(context, user.ID); err != nil {
		service.logger.WarnContext(context, "login_touch_failed",
			slog.String("user_id", user.ID), slog.Any("error", err))
	}

	return &Session{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

/*
Refresh exchanges a valid refresh token for a new access token.

Only the access token is renewed; the refresh token keeps its original
30-day expiry, bounding the total session length. Claims are rebuilt from
the live account so role or name changes propagate into the new token.
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	claims, err := service.tokens.Verify(refreshToken)
	if err != nil {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, err := service.directory.GetUser(context, claims.UserID)
	if err != nil || !user.IsActive {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}

	accessToken, err := service.tokens.IssueAccessToken(identityOf(user))
	if err != nil {
		return "", apperr.Internal(err)
	}

	return accessToken, nil
}

// # Profile Self-Service

// ProfileInput holds the fields a user may edit on their own account.
type ProfileInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Department *string
	AvatarURL  *string
}

// Profile returns the authenticated user's own account.
func (service *Service) Profile(context context.Context, userID string) (*users.User, error) {
	return service.directory.GetUser(context, userID)
}

// UpdateProfile applies profile-only fields to the caller's own account.
// Role, email, and active status are deliberately not reachable from here.
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*users.User, error) {
	user, err := service.directory.GetUser(context, userID)
	if err != nil {
		return nil, err
	}

	return service.directory.UpdateUser(context, user.Role, userID, users.UpdateUserInput{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		Department: input.Department,
		AvatarURL:  input.AvatarURL,
	})
}

// ChangePassword verifies the current password before setting a new one.
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.directory.GetUser(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	_, err = service.directory.ResetPassword(context, userID, newPassword)
	return err
}

// # Setup Bootstrap

// SetupStatus reports whether the one-time bootstrap is still available.
func (service *Service) SetupStatus(context context.Context) (bool, error) {
	total, err := service.directory.CountUsers(context)
	if err != nil {
		return false, err
	}
	return total == 0, nil
}

/*
RunSetup creates the default super admin account when no users exist.

Once any account exists the routine refuses to run again; the endpoint is
public, so this check is the only thing standing between the internet and
a fresh super admin.
*/
func (service *Service) RunSetup(context context.Context) (*users.User, error) {
	total, err := service.directory.CountUsers(context)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, apperr.Conflict("Setup has already been completed")
	}

	user, err := service.directory.CreateUser(context, sec.RoleSuperAdmin, users.CreateUserInput{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     service.bootstrap.AdminEmail,
		Password:  service.bootstrap.AdminPassword,
		Role:      sec.RoleSuperAdmin,
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "setup_bootstrap_completed",
		slog.String("user_id", user.ID), slog.String("email", user.Email))

	return user, nil
}

// identityOf maps an account to the claim set embedded in its tokens.
func identityOf(user *users.User) sec.Identity {
	return sec.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
