package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	requestutil "github.com/foureyedgems/admin-api/internal/platform/request"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
)

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterRoutes mounts the settings endpoints. Both reads and writes are
// admin-only; the router gates the whole subtree.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.get)
	router.Put("/", handler.update)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	document, err := handler.service.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, document)
}

type updateRequest struct {
	Section string          `json:"section"`
	Data    json.RawMessage `json:"data"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required("section", payload.Section).
		OneOf("section", payload.Section, Sections()...).
		Custom("data", len(payload.Data) == 0, "This field is required").
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.UpdateSection(request.Context(), payload.Section, payload.Data, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateSettings, "settings",
		"Updated "+payload.Section+" settings", activity.Options{
			Category:  activity.CategorySettings,
			Severity:  activity.SeverityMedium,
			IPAddress: middleware.RealIP(request),
			UserAgent: request.UserAgent(),
		})

	respond.OK(writer, document)
}
