package inquiries

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	requestutil "github.com/foureyedgems/admin-api/internal/platform/request"
	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/internal/platform/validate"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

var listSortColumns = map[string]string{
	"name":      schema.CRMInquiry.Name,
	"subject":   schema.CRMInquiry.Subject,
	"priority":  schema.CRMInquiry.Priority,
	"status":    schema.CRMInquiry.Status,
	"createdAt": schema.CRMInquiry.CreatedAt,
}

type Handler struct {
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(service *Service, recorder *activity.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// RegisterPublicRoutes mounts the unauthenticated contact-form endpoint.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Post("/", handler.create)
}

// RegisterRoutes mounts the staff-facing triage endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
}

// RegisterAdminRoutes mounts the destructive inquiry endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Delete("/{id}", handler.delete)
}

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required("name", payload.Name).MaxLen("name", payload.Name, 100).
		Required("email", payload.Email).Email("email", payload.Email).
		Phone("phone", payload.Phone).
		Required("subject", payload.Subject).MaxLen("subject", payload.Subject, 200).
		Required("message", payload.Message).MaxLen("message", payload.Message, 5000).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	inquiry, err := handler.service.Create(request.Context(), CreateInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Company:  payload.Company,
		Subject:  payload.Subject,
		Message:  payload.Message,
		Category: payload.Category,
		Source:   payload.Source,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The submitter gets a plain acknowledgment, not the full record; the
	// triage fields are none of their business.
	respond.JSON(writer, http.StatusCreated, map[string]any{
		constants.FieldSuccess: true,
		constants.FieldMessage: "Thank you for your inquiry. We will get back to you shortly.",
		"id":                   inquiry.ID,
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Search:     queryValues.Get("search"),
		Status:     queryValues.Get("status"),
		Priority:   queryValues.Get("priority"),
		AssignedTo: queryValues.Get("assignedTo"),
	}

	params := pagination.FromRequest(request)
	sort := pagination.SortFromRequest(request, listSortColumns, schema.CRMInquiry.CreatedAt)

	records, total, err := handler.service.List(request.Context(), filter, params, sort)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	inquiry, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, inquiry)
}

type updateRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	Category   *string `json:"category"`
	AssignedTo *string `json:"assignedTo"`
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
	if payload.Status != nil {
		validator.OneOf("status", *payload.Status, Statuses()...)
	}
	if payload.Priority != nil {
		validator.OneOf("priority", *payload.Priority, Priorities()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	inquiry, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Status:     payload.Status,
		Priority:   payload.Priority,
		Category:   payload.Category,
		AssignedTo: payload.AssignedTo,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionUpdateInquiry, "inquiry",
		"Updated inquiry "+inquiry.Subject, activity.Options{
			ResourceID: inquiry.ID,
			Category:   activity.CategoryInquiry,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.OK(writer, inquiry)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	inquiry, err := handler.service.Delete(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.recorder.Log(request.Context(), claims.UserID, activity.ActionDeleteInquiry, "inquiry",
		"Deleted inquiry "+inquiry.Subject, activity.Options{
			ResourceID: inquiry.ID,
			Category:   activity.CategoryInquiry,
			Severity:   activity.SeverityMedium,
			IPAddress:  middleware.RealIP(request),
			UserAgent:  request.UserAgent(),
		})

	respond.NoContent(writer)
}
