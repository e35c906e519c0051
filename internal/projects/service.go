package projects

import (
	"context"
	"log/slog"
	"time"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/pkg/pagination"
	"github.com/foureyedgems/admin-api/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data for a new project.
type CreateInput struct {
	Title          string
	Description    string
	ClientID       *string
	AssignedTo     []string
	Status         string
	Priority       string
	Category       string
	Services       []string
	Budget         float64
	EstimatedHours float64
	StartDate      *string
	Deadline       *string
	Tags           []string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Project, error) {
	status := input.Status
	if status == "" {
		status = StatusPlanning
	}
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	project := &Project{
		ID:             uuid.New(),
		Title:          input.Title,
		Description:    input.Description,
		ClientID:       input.ClientID,
		AssignedTo:     emptyIfNil(input.AssignedTo),
		Status:         status,
		Priority:       priority,
		Category:       input.Category,
		Services:       emptyIfNil(input.Services),
		Budget:         input.Budget,
		EstimatedHours: input.EstimatedHours,
		Tags:           emptyIfNil(input.Tags),
	}

	if input.StartDate != nil {
		parsed, err := parseDate(*input.StartDate)
		if err != nil {
			return nil, dateError("startDate")
		}
		project.StartDate = parsed
	}
	if input.Deadline != nil {
		parsed, err := parseDate(*input.Deadline)
		if err != nil {
			return nil, dateError("deadline")
		}
		project.Deadline = parsed
	}

	if err := service.repo.Create(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateInput holds partial project updates; nil fields are untouched.
type UpdateInput struct {
	Title          *string
	Description    *string
	ClientID       *string
	AssignedTo     *[]string
	Status         *string
	Priority       *string
	Category       *string
	Services       *[]string
	Budget         *float64
	EstimatedHours *float64
	StartDate      *string
	Deadline       *string
	Tags           *[]string
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Project, error) {
	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	applyString := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	applyString(&project.Title, input.Title)
	applyString(&project.Description, input.Description)
	applyString(&project.Status, input.Status)
	applyString(&project.Priority, input.Priority)
	applyString(&project.Category, input.Category)

	if input.ClientID != nil {
		if *input.ClientID == "" {
			project.ClientID = nil
		} else {
			project.ClientID = input.ClientID
		}
	}
	if input.AssignedTo != nil {
		project.AssignedTo = emptyIfNil(*input.AssignedTo)
	}
	if input.Services != nil {
		project.Services = emptyIfNil(*input.Services)
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.EstimatedHours != nil {
		project.EstimatedHours = *input.EstimatedHours
	}
	if input.StartDate != nil {
		parsed, err := parseDate(*input.StartDate)
		if err != nil {
			return nil, dateError("startDate")
		}
		project.StartDate = parsed
	}
	if input.Deadline != nil {
		parsed, err := parseDate(*input.Deadline)
		if err != nil {
			return nil, dateError("deadline")
		}
		project.Deadline = parsed
	}
	if input.Tags != nil {
		project.Tags = emptyIfNil(*input.Tags)
	}

	if err := service.repo.Update(context, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (service *Service) Delete(context context.Context, id string) (*Project, error) {
	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return nil, err
	}

	return project, nil
}

func (service *Service) Get(context context.Context, id string) (*Project, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Project, int, error) {
	return service.repo.List(context, filter, params, sort)
}

// CountByClient reports how many projects reference a client.
func (service *Service) CountByClient(context context.Context, clientID string) (int, error) {
	return service.repo.CountByClient(context, clientID)
}

// parseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func parseDate(value string) (*time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func dateError(field string) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: "Must be an RFC 3339 timestamp or YYYY-MM-DD date",
	})
}

// emptyIfNil keeps array columns non-null so listings marshal as [] rather
// than null.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
