package clients

import (
	"net/http"
	"strconv"
	"strings"

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
	"firstName":    schema.CRMClient.FirstName,
	"lastName":     schema.CRMClient.LastName,
	"company":      schema.CRMClient.Company,
	"status":       schema.CRMClient.Status,
	"totalRevenue": schema.CRMClient.TotalRevenue,
	"lastContact":  schema.CRMClient.LastContact,
	"createdAt":    schema.CRMClient.CreatedAt,
}

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterRoutes mounts the staff-facing client endpoints.
// Hard deletion is mounted separately by the router under an admin gate.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Post("/{id}/archive", handler.archive)
}

// RegisterAdminRoutes mounts the destructive client endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Search:     queryValues.Get("search"),
		Status:     queryValues.Get("status"),
		Industry:   queryValues.Get("industry"),
		AssignedTo: queryValues.Get("assignedTo"),
	}
	if raw := queryValues.Get("archived"); raw != "" {
		if archived, err := strconv.ParseBool(raw); err == nil {
			filter.Archived = &archived
		}
	} else {
		// Archived records stay out of sight unless asked for.
		notArchived := false
		filter.Archived = &notArchived
	}

	params := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, listSortColumns, schema.CRMClient.CreatedAt)

	records, total, err := handler.service.List(request.Context(), filter, params, sort)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	client, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, client)
}

type createRequest struct {
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	Address    Address  `json:"address"`
	Website    string   `json:"website"`
	Industry   string   `json:"industry"`
	Status     string   `json:"status"`
	Source     string   `json:"source"`
	AssignedTo *string  `json:"assignedTo"`
	Tags       string   `json:"tags"` // comma-separated, matching the dashboard form
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
		Required("firstName", payload.FirstName).MaxLen("firstName", payload.FirstName, 50).
		Required("lastName", payload.LastName).MaxLen("lastName", payload.LastName, 50).
		Required("email", payload.Email).Email("email", payload.Email).
		Phone("phone", payload.Phone).
		URL("website", payload.Website)
	if payload.Status != "" {
		validator.OneOf("status", payload.Status, Statuses()...)
	}
	if payload.Source != "" {
		validator.OneOf("source", payload.Source, Sources()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.Create(request.Context(), CreateInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Company:    payload.Company,
		Position:   payload.Position,
		Address:    payload.Address,
		Website:    payload.Website,
		Industry:   payload.Industry,
		Status:     payload.Status,
		Source:     payload.Source,
		AssignedTo: payload.AssignedTo,
		Tags:       splitTags(payload.Tags),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionCreateClient, "client",
		"Created client "+client.FullName(), activity.Options{
			ResourceID: client.ID,
			Category:   activity.CategoryClient,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.Created(writer, client)
}

type updateRequest struct {
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Company      *string   `json:"company"`
	Position     *string   `json:"position"`
	Address      *Address  `json:"address"`
	Website      *string   `json:"website"`
	Industry     *string   `json:"industry"`
	Status       *string   `json:"status"`
	Source       *string   `json:"source"`
	AssignedTo   *string   `json:"assignedTo"`
	Tags         *[]string `json:"tags"`
	TotalRevenue *float64  `json:"totalRevenue"`
	LastContact  *string   `json:"lastContact"`
	NextFollowUp *string   `json:"nextFollowUp"`
	IsArchived   *bool     `json:"isArchived"`
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
	if payload.Email != nil {
		validator.Email("email", *payload.Email)
	}
	if payload.Phone != nil {
		validator.Phone("phone", *payload.Phone)
	}
	if payload.Website != nil {
		validator.URL("website", *payload.Website)
	}
	if payload.Status != nil {
		validator.OneOf("status", *payload.Status, Statuses()...)
	}
	if payload.Source != nil {
		validator.OneOf("source", *payload.Source, Sources()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Company:      payload.Company,
		Position:     payload.Position,
		Address:      payload.Address,
		Website:      payload.Website,
		Industry:     payload.Industry,
		Status:       payload.Status,
		Source:       payload.Source,
		AssignedTo:   payload.AssignedTo,
		Tags:         payload.Tags,
		TotalRevenue: payload.TotalRevenue,
		LastContact:  payload.LastContact,
		NextFollowUp: payload.NextFollowUp,
		IsArchived:   payload.IsArchived,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateClient, "client",
		"Updated client "+client.FullName(), activity.Options{
			ResourceID: client.ID,
			Category:   activity.CategoryClient,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, client)
}

func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.Archive(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateClient, "client",
		"Archived client "+client.FullName(), activity.Options{
			ResourceID: client.ID,
			Category:   activity.CategoryClient,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, client)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	client, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionDeleteClient, "client",
		"Deleted client "+client.FullName(), activity.Options{
			ResourceID: client.ID,
			Category:   activity.CategoryClient,
			Severity:   activity.SeverityHigh,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.NoContent(writer)
}

// splitTags parses the dashboard form's comma-separated tags field into a
// trimmed slice, dropping empty entries.
func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if clean := strings.TrimSpace(tag); clean != "" {
			tags = append(tags, clean)
		}
	}
	return tags
}
