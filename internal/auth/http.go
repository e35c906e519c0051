// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	requestutil "github.com/foureyedgems/admin-api/internal/platform/request"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
	"github.com/foureyedgems/admin-api/internal/users"
)

// The auth endpoints speak the dashboard's native wire format — a flat
// object with a success flag — instead of the data envelope used by the
// CRUD resources. The SPA's session layer predates the envelope and every
// deployed client binds to these exact shapes.

type sessionResponse struct {
	Success      bool        `json:"success"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         *users.User `json:"user"`
}

type refreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type profileResponse struct {
	Success bool        `json:"success"`
	User    *users.User `json:"user"`
}

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterPublicRoutes mounts the unauthenticated session endpoints.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
}

// RegisterProfileRoutes mounts the authenticated self-service endpoints.
func (handler *Handler) RegisterProfileRoutes(router chi.Router) {
	router.Get("/profile", handler.profile)
	router.Put("/profile", handler.updateProfile)
	router.Put("/profile/password", handler.changePassword)
}

// RegisterSetupRoutes mounts the one-time bootstrap endpoints.
func (handler *Handler) RegisterSetupRoutes(router chi.Router) {
	router.Get("/", handler.setupStatus)
	router.Post("/", handler.runSetup)
}

// # Session Endpoints

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(users.FieldEmail, payload.Email).
		Required(users.FieldPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), session.User.ID, activity.ActionLogin, "session",
		session.User.FullName()+" logged in", activity.Options{
			Category:  activity.CategoryAuth,
			IPAddress: middleware.RealIP(request),
			UserAgent: request.UserAgent(),
		})

	respond.JSON(writer, http.StatusOK, sessionResponse{
		Success:      true,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var payload refreshRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.RefreshToken == "" {
		respond.Error(writer, request, validate.RequiredError("refreshToken", "This field is required"))
		return
	}

	accessToken, err := handler.service.Refresh(request.Context(), payload.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, refreshResponse{Success: true, Token: accessToken})
}

// logout always succeeds. The bearer token, when present and valid, is used
// only to attribute the audit entry; there is no server-side session to
// destroy, so an expired token must not turn logout into an error.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if strings.HasPrefix(authHeader, constants.BearerPrefix) {
		tokenString := authHeader[len(constants.BearerPrefix):]
		if claims, err := handler.service.tokens.Verify(tokenString); err == nil {
			handler.recorder.Log(request.Context(), claims.UserID, activity.ActionLogout, "session",
				claims.FirstName+" "+claims.LastName+" logged out", activity.Options{
					Category:  activity.CategoryAuth,
					IPAddress: middleware.RealIP(request),
					UserAgent: request.UserAgent(),
				})
		}
	}

	respond.JSON(writer, http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// # Profile Endpoints

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, profileResponse{Success: true, User: user})
}

type updateProfileRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatarUrl"`
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.FirstName != nil {
		validator.Required(users.FieldFirstName, *payload.FirstName).MaxLen(users.FieldFirstName, *payload.FirstName, 50)
	}
	if payload.LastName != nil {
		validator.Required(users.FieldLastName, *payload.LastName).MaxLen(users.FieldLastName, *payload.LastName, 50)
	}
	if payload.Phone != nil {
		validator.Phone(users.FieldPhone, *payload.Phone)
	}
	if payload.AvatarURL != nil {
		validator.URL(users.FieldAvatarURL, *payload.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, ProfileInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Phone:      payload.Phone,
		Department: payload.Department,
		AvatarURL:  payload.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, profileResponse{Success: true, User: user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required("currentPassword", payload.CurrentPassword).
		Required("newPassword", payload.NewPassword).
		MinLen("newPassword", payload.NewPassword, users.MinPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), userID, activity.ActionChangePassword, "user",
		"Changed own password", activity.Options{
			ResourceID: userID,
			Category:   activity.CategoryAuth,
			Severity:   activity.SeverityMedium,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.JSON(writer, http.StatusOK, messageResponse{Success: true, Message: "Password updated successfully"})
}

// # Setup Endpoints

func (handler *Handler) setupStatus(writer http.ResponseWriter, request *http.Request) {
	needsSetup, err := handler.service.SetupStatus(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, map[string]any{
		constants.FieldSuccess: true,
		"needsSetup":           needsSetup,
	})
}

func (handler *Handler) runSetup(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.RunSetup(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), user.ID, activity.ActionSetup, "system",
		"Initial super admin account created", activity.Options{
			Category:  activity.CategorySystem,
			Severity:  activity.SeverityCritical,
			IPAddress: middleware.RealIP(request),
			UserAgent: request.UserAgent(),
		})

	respond.JSON(writer, http.StatusCreated, profileResponse{Success: true, User: user})
}
