// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	requestutil "github.com/foureyedgems/admin-api/internal/platform/request"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

// listSortColumns whitelists the sortable fields of the user listing.
var listSortColumns = map[string]string{
	"firstName": schema.UserAccount.FirstName,
	"lastName":  schema.UserAccount.LastName,
	"email":     schema.UserAccount.Email,
	"role":      schema.UserAccount.Role,
	"lastLogin": schema.UserAccount.LastLoginAt,
	"createdAt": schema.UserAccount.CreatedAt,
}

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterRoutes mounts the admin-gated account management endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{id}", handler.getUser)
	router.Put("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.deleteUser)
	router.Patch("/{id}/password", handler.resetPassword)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Search:     queryValues.Get("search"),
		Role:       queryValues.Get("role"),
		Department: queryValues.Get("department"),
	}
	if raw := queryValues.Get("isActive"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}

	params := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, listSortColumns, schema.UserAccount.CreatedAt)

	accounts, total, err := handler.service.ListUsers(request.Context(), filter, params, sort)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type createUserRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required(FieldFirstName, payload.FirstName).MaxLen(FieldFirstName, payload.FirstName, 50).
		Required(FieldLastName, payload.LastName).MaxLen(FieldLastName, payload.LastName, 50).
		Required(FieldEmail, payload.Email).Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).MinLen(FieldPassword, payload.Password, MinPasswordLength).
		OneOf(FieldRole, payload.Role, sec.Roles()...).
		Phone(FieldPhone, payload.Phone).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), sec.Role(claims.Role), CreateUserInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Password:   payload.Password,
		Role:       sec.Role(payload.Role),
		Phone:      payload.Phone,
		Department: payload.Department,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionCreateUser, "user",
		"Created user "+user.FullName(), activity.Options{
			ResourceID: user.ID,
			Category:   activity.CategoryUser,
			Severity:   activity.SeverityMedium,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.Created(writer, user)
}

type updateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"isActive"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatarUrl"`
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.FirstName != nil {
		validator.Required(FieldFirstName, *payload.FirstName).MaxLen(FieldFirstName, *payload.FirstName, 50)
	}
	if payload.LastName != nil {
		validator.Required(FieldLastName, *payload.LastName).MaxLen(FieldLastName, *payload.LastName, 50)
	}
	if payload.Email != nil {
		validator.Email(FieldEmail, *payload.Email)
	}
	if payload.Role != nil {
		validator.OneOf(FieldRole, *payload.Role, sec.Roles()...)
	}
	if payload.Phone != nil {
		validator.Phone(FieldPhone, *payload.Phone)
	}
	if payload.AvatarURL != nil {
		validator.URL(FieldAvatarURL, *payload.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateUserInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		IsActive:   payload.IsActive,
		Phone:      payload.Phone,
		Department: payload.Department,
		AvatarURL:  payload.AvatarURL,
	}
	if payload.Role != nil {
		role := sec.Role(*payload.Role)
		input.Role = &role
	}

	user, err := handler.service.UpdateUser(request.Context(), sec.Role(claims.Role), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateUser, "user",
		"Updated user "+user.FullName(), activity.Options{
			ResourceID: user.ID,
			Category:   activity.CategoryUser,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.DeleteUser(request.Context(), claims.UserID, sec.Role(claims.Role), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionDeleteUser, "user",
		"Deleted user "+user.FullName(), activity.Options{
			ResourceID: user.ID,
			Category:   activity.CategoryUser,
			Severity:   activity.SeverityHigh,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.NoContent(writer)
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required("newPassword", payload.NewPassword).
		MinLen("newPassword", payload.NewPassword, MinPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.ResetPassword(request.Context(), requestutil.ID(request, "id"), payload.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionResetPassword, "user",
		"Reset password for "+user.FullName(), activity.Options{
			ResourceID: user.ID,
			Category:   activity.CategoryUser,
			Severity:   activity.SeverityHigh,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, map[string]string{"message": "Password has been reset"})
}
