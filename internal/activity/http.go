package activity

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foureyedgems/admin-api/internal/platform/respond"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLogs)
}

func (handler *Handler) listLogs(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	filter := Filter{
		Category: queryValues.Get("category"),
		Severity: queryValues.Get("severity"),
		ActorID:  queryValues.Get("actorId"),
		Action:   queryValues.Get("action"),
	}

	if raw := queryValues.Get("from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = &parsed
		}
	}
	if raw := queryValues.Get("to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = &parsed
		}
	}

	params := pagination.FromRequest(request)

	entries, total, err := handler.recorder.ListLogs(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
