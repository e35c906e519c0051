// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/auth"
	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/internal/platform/dberr"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/internal/users"
	"github.com/foureyedgems/admin-api/pkg/uuid"
)

const testSecret = "unit-test-signing-secret"

// fakeDirectory is an in-memory Directory for service tests.
type fakeDirectory struct {
	byID       map[string]*users.User
	loginTouch []string
	countErr   error
}

func (directory *fakeDirectory) FindByEmail(_ context.Context, email string) (*users.User, error) {
	normalized := users.NormalizeEmail(email)
	for _, user := range directory.byID {
		if user.Email == normalized {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (directory *fakeDirectory) GetUser(_ context.Context, id string) (*users.User, error) {
	user, found := directory.byID[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return user, nil
}

func (directory *fakeDirectory) CreateUser(_ context.Context, _ sec.Role, input users.CreateUserInput) (*users.User, error) {
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &users.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        users.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	directory.byID[user.ID] = user
	return user, nil
}

func (directory *fakeDirectory) UpdateUser(_ context.Context, _ sec.Role, id string, input users.UpdateUserInput) (*users.User, error) {
	user, found := directory.byID[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	return user, nil
}

func (directory *fakeDirectory) ResetPassword(_ context.Context, id, newPassword string) (*users.User, error) {
	user, found := directory.byID[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return user, nil
}

func (directory *fakeDirectory) TouchLastLogin(_ context.Context, id string) error {
	directory.loginTouch = append(directory.loginTouch, id)
	return nil
}

func (directory *fakeDirectory) CountUsers(_ context.Context) (int, error) {
	if directory.countErr != nil {
		return 0, directory.countErr
	}
	return len(directory.byID), nil
}

func newTestService(t *testing.T, directory *fakeDirectory) (*auth.Service, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	service := auth.NewService(directory, tokens, auth.BootstrapConfig{
		AdminEmail:    "admin@foureyedgems.com",
		AdminPassword: "Admin123!",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return service, tokens
}

func seedDirectory(t *testing.T) *fakeDirectory {
	t.Helper()

	hash, err := sec.HashPassword("Correct-Horse-9")
	require.NoError(t, err)

	return &fakeDirectory{byID: map[string]*users.User{
		"user-1": {
			ID: "user-1", FirstName: "Jordan", LastName: "Reyes",
			Email: "jordan@foureyedgems.com", PasswordHash: hash,
			Role: sec.RoleAdmin, IsActive: true,
		},
		"user-2": {
			ID: "user-2", FirstName: "Casey", LastName: "Nguyen",
			Email: "casey@foureyedgems.com", PasswordHash: hash,
			Role: sec.RoleStaff, IsActive: false,
		},
	}}
}

/*
TestService_Login covers the credential verification branches.
*/
func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{name: "success", email: "jordan@foureyedgems.com", password: "Correct-Horse-9"},
		{name: "case_insensitive_email", email: "JORDAN@foureyedgems.com", password: "Correct-Horse-9"},
		{name: "unknown_email", email: "nobody@foureyedgems.com", password: "Correct-Horse-9", wantMsg: "Invalid email or password"},
		{name: "wrong_password", email: "jordan@foureyedgems.com", password: "wrong", wantMsg: "Invalid email or password"},
		{name: "deactivated_account", email: "casey@foureyedgems.com", password: "Correct-Horse-9", wantMsg: "Account is deactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := seedDirectory(t)
			service, tokens := newTestService(t, directory)

			session, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.wantMsg != "" {
				require.Error(t, err)
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "UNAUTHORIZED", appError.Code)
				assert.Equal(t, tt.wantMsg, appError.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", session.User.ID)
			assert.Equal(t, []string{"user-1"}, directory.loginTouch)

			// Both tokens verify and carry the full identity snapshot.
			for _, signed := range []string{session.Token, session.RefreshToken} {
				claims, err := tokens.Verify(signed)
				require.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "jordan@foureyedgems.com", claims.Email)
				assert.Equal(t, "admin", claims.Role)
				assert.Equal(t, "Jordan", claims.FirstName)
				assert.Equal(t, "Reyes", claims.LastName)
			}
		})
	}
}

/*
TestService_Refresh verifies that only the access token is renewed and that
revoked account state blocks the exchange.
*/
func TestService_Refresh(t *testing.T) {
	directory := seedDirectory(t)
	service, tokens := newTestService(t, directory)

	session, err := service.Login(context.Background(), "jordan@foureyedgems.com", "Correct-Horse-9")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		accessToken, err := service.Refresh(context.Background(), session.RefreshToken)
		require.NoError(t, err)

		claims, err := tokens.Verify(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("garbage_token", func(t *testing.T) {
		_, err := service.Refresh(context.Background(), "not-a-token")
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired refresh token", apperr.As(err).Message)
	})

	t.Run("deactivated_after_issue", func(t *testing.T) {
		directory.byID["user-1"].IsActive = false
		defer func() { directory.byID["user-1"].IsActive = true }()

		_, err := service.Refresh(context.Background(), session.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

/*
TestService_ChangePassword verifies current-password gating.
*/
func TestService_ChangePassword(t *testing.T) {
	directory := seedDirectory(t)
	service, _ := newTestService(t, directory)

	err := service.ChangePassword(context.Background(), "user-1", "wrong-password", "New-Password-1")
	require.Error(t, err)
	assert.Equal(t, "Current password is incorrect", apperr.As(err).Message)

	err = service.ChangePassword(context.Background(), "user-1", "Correct-Horse-9", "New-Password-1")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("New-Password-1", directory.byID["user-1"].PasswordHash))
}

/*
TestService_Setup verifies the one-time bootstrap semantics.
*/
func TestService_Setup(t *testing.T) {
	t.Run("creates_super_admin_when_empty", func(t *testing.T) {
		directory := &fakeDirectory{byID: map[string]*users.User{}}
		service, _ := newTestService(t, directory)

		needsSetup, err := service.SetupStatus(context.Background())
		require.NoError(t, err)
		assert.True(t, needsSetup)

		user, err := service.RunSetup(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sec.RoleSuperAdmin, user.Role)
		assert.Equal(t, "admin@foureyedgems.com", user.Email)

		needsSetup, err = service.SetupStatus(context.Background())
		require.NoError(t, err)
		assert.False(t, needsSetup)
	})

	t.Run("refuses_when_users_exist", func(t *testing.T) {
		directory := seedDirectory(t)
		service, _ := newTestService(t, directory)

		_, err := service.RunSetup(context.Background())
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}
