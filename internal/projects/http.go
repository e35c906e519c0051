package projects

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	requestutil "github.com/foureyedgems/admin-api/internal/platform/request"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

var listSortColumns = map[string]string{
	"title":     schema.CRMProject.Title,
	"status":    schema.CRMProject.Status,
	"priority":  schema.CRMProject.Priority,
	"budget":    schema.CRMProject.Budget,
	"deadline":  schema.CRMProject.Deadline,
	"createdAt": schema.CRMProject.CreatedAt,
}

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterRoutes mounts the staff-facing project endpoints.
// Hard deletion is mounted separately by the router under an admin gate.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
}

// RegisterAdminRoutes mounts the destructive project endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Search:     queryValues.Get("search"),
		Status:     queryValues.Get("status"),
		Priority:   queryValues.Get("priority"),
		ClientID:   queryValues.Get("clientId"),
		AssignedTo: queryValues.Get("assignedTo"),
	}

	params := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, listSortColumns, schema.CRMProject.CreatedAt)

	records, total, err := handler.service.List(request.Context(), filter, params, sort)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	project, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

type createRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ClientID       *string  `json:"clientId"`
	AssignedTo     []string `json:"assignedTo"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	Category       string   `json:"category"`
	Services       []string `json:"services"`
	Budget         float64  `json:"budget"`
	EstimatedHours float64  `json:"estimatedHours"`
	StartDate      *string  `json:"startDate"`
	Deadline       *string  `json:"deadline"`
	Tags           []string `json:"tags"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("title", payload.Title).MaxLen("title", payload.Title, 200).
		Custom("budget", payload.Budget < 0, "Must not be negative").
		Custom("estimatedHours", payload.EstimatedHours < 0, "Must not be negative")
	if payload.ClientID != nil {
		validator.UUID("clientId", *payload.ClientID)
	}
	if payload.Status != "" {
		validator.OneOf("status", payload.Status, Statuses()...)
	}
	if payload.Priority != "" {
		validator.OneOf("priority", payload.Priority, Priorities()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Create(request.Context(), CreateInput{
		Title:          payload.Title,
		Description:    payload.Description,
		ClientID:       payload.ClientID,
		AssignedTo:     payload.AssignedTo,
		Status:         payload.Status,
		Priority:       payload.Priority,
		Category:       payload.Category,
		Services:       payload.Services,
		Budget:         payload.Budget,
		EstimatedHours: payload.EstimatedHours,
		StartDate:      payload.StartDate,
		Deadline:       payload.Deadline,
		Tags:           payload.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionCreateProject, "project",
		"Created project "+project.Title, activity.Options{
			ResourceID: project.ID,
			Category:   activity.CategoryProject,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.Created(writer, project)
}

type updateRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	ClientID       *string   `json:"clientId"`
	AssignedTo     *[]string `json:"assignedTo"`
	Status         *string   `json:"status"`
	Priority       *string   `json:"priority"`
	Category       *string   `json:"category"`
	Services       *[]string `json:"services"`
	Budget         *float64  `json:"budget"`
	EstimatedHours *float64  `json:"estimatedHours"`
	StartDate      *string   `json:"startDate"`
	Deadline       *string   `json:"deadline"`
	Tags           *[]string `json:"tags"`
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
	if payload.Title != nil {
		validator.Required("title", *payload.Title).MaxLen("title", *payload.Title, 200)
	}
	if payload.ClientID != nil && *payload.ClientID != "" {
		validator.UUID("clientId", *payload.ClientID)
	}
	if payload.Status != nil {
		validator.OneOf("status", *payload.Status, Statuses()...)
	}
	if payload.Priority != nil {
		validator.OneOf("priority", *payload.Priority, Priorities()...)
	}
	if payload.Budget != nil {
		validator.Custom("budget", *payload.Budget < 0, "Must not be negative")
	}
	if payload.EstimatedHours != nil {
		validator.Custom("estimatedHours", *payload.EstimatedHours < 0, "Must not be negative")
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:          payload.Title,
		Description:    payload.Description,
		ClientID:       payload.ClientID,
		AssignedTo:     payload.AssignedTo,
		Status:         payload.Status,
		Priority:       payload.Priority,
		Category:       payload.Category,
		Services:       payload.Services,
		Budget:         payload.Budget,
		EstimatedHours: payload.EstimatedHours,
		StartDate:      payload.StartDate,
		Deadline:       payload.Deadline,
		Tags:           payload.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateProject, "project",
		"Updated project "+project.Title, activity.Options{
			ResourceID: project.ID,
			Category:   activity.CategoryProject,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, project)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionDeleteProject, "project",
		"Deleted project "+project.Title, activity.Options{
			ResourceID: project.ID,
			Category:   activity.CategoryProject,
			Severity:   activity.SeverityHigh,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.NoContent(writer)
}
