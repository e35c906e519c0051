package inquiries

import (
	"context"
	"log/slog"
	"strings"

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

// CreateInput holds a contact-form submission.
type CreateInput struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Subject  string
	Message  string
	Category string
	Source   string
}

// Create stores a new public submission. New inquiries always start unread
// with medium priority; triage fields are staff-only.
func (service *Service) Create(context context.Context, input CreateInput) (*Inquiry, error) {
	inquiry := &Inquiry{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    input.Phone,
		Company:  input.Company,
		Subject:  input.Subject,
		Message:  input.Message,
		Category: input.Category,
		Priority: PriorityMedium,
		Status:   StatusUnread,
		Source:   input.Source,
	}

	if err := service.repo.Create(context, inquiry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "inquiry_received",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("subject", inquiry.Subject),
	)

	return inquiry, nil
}

// UpdateInput holds the staff-editable triage fields.
type UpdateInput struct {
	Status     *string
	Priority   *string
	Category   *string
	AssignedTo *string
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Inquiry, error) {
	inquiry, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		inquiry.Status = *input.Status
	}
	if input.Priority != nil {
		inquiry.Priority = *input.Priority
	}
	if input.Category != nil {
		inquiry.Category = *input.Category
	}
	if input.AssignedTo != nil {
		inquiry.AssignedTo = input.AssignedTo
	}

	if err := service.repo.Update(context, inquiry); err != nil {
		return nil, err
	}

	return inquiry, nil
}

func (service *Service) Delete(context context.Context, id string) (*Inquiry, error) {
	inquiry, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return nil, err
	}

	return inquiry, nil
}

func (service *Service) Get(context context.Context, id string) (*Inquiry, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Inquiry, int, error) {
	return service.repo.List(context, filter, params, sort)
}
