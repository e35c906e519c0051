package clients

import (
	"context"
	"log/slog"
	"strings"
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

// CreateInput holds the data for a new client record.
type CreateInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Company    string
	Position   string
	Address    Address
	Website    string
	Industry   string
	Status     string
	Source     string
	AssignedTo *string
	Tags       []string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Client, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := service.repo.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("A client with this email already exists")
	}

	status := input.Status
	if status == "" {
		status = StatusProspect
	}

	client := &Client{
		ID:         uuid.New(),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      email,
		Phone:      input.Phone,
		Company:    input.Company,
		Position:   input.Position,
		Address:    input.Address,
		Website:    input.Website,
		Industry:   input.Industry,
		Status:     status,
		Source:     input.Source,
		AssignedTo: input.AssignedTo,
		Tags:       input.Tags,
	}

	if err := service.repo.Create(context, client); err != nil {
		return nil, err
	}

	return client, nil
}

// UpdateInput holds partial client updates; nil fields are untouched.
type UpdateInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Company      *string
	Position     *string
	Address      *Address
	Website      *string
	Industry     *string
	Status       *string
	Source       *string
	AssignedTo   *string
	Tags         *[]string
	TotalRevenue *float64
	LastContact  *string
	NextFollowUp *string
	IsArchived   *bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Client, error) {
	client, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != client.Email {
			if _, err := service.repo.FindByEmail(context, email); err == nil {
				return nil, apperr.Conflict("A client with this email already exists")
			}
			client.Email = email
		}
	}

	applyString := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	applyString(&client.FirstName, input.FirstName)
	applyString(&client.LastName, input.LastName)
	applyString(&client.Phone, input.Phone)
	applyString(&client.Company, input.Company)
	applyString(&client.Position, input.Position)
	applyString(&client.Website, input.Website)
	applyString(&client.Industry, input.Industry)
	applyString(&client.Status, input.Status)
	applyString(&client.Source, input.Source)

	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.AssignedTo != nil {
		client.AssignedTo = input.AssignedTo
	}
	if input.Tags != nil {
		client.Tags = *input.Tags
	}
	if input.TotalRevenue != nil {
		client.TotalRevenue = *input.TotalRevenue
	}
	if input.LastContact != nil {
		parsed, err := parseDate(*input.LastContact)
		if err != nil {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "lastContact", Message: "Must be an RFC 3339 timestamp"})
		}
		client.LastContact = parsed
	}
	if input.NextFollowUp != nil {
		parsed, err := parseDate(*input.NextFollowUp)
		if err != nil {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "nextFollowUp", Message: "Must be an RFC 3339 timestamp"})
		}
		client.NextFollowUp = parsed
	}
	if input.IsArchived != nil {
		client.IsArchived = *input.IsArchived
	}

	if err := service.repo.Update(context, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Archive soft-hides a client from default listings without deleting data.
func (service *Service) Archive(context context.Context, id string) (*Client, error) {
	archived := true
	return service.Update(context, id, UpdateInput{IsArchived: &archived})
}

func (service *Service) Delete(context context.Context, id string) (*Client, error) {
	client, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return nil, err
	}

	return client, nil
}

func (service *Service) Get(context context.Context, id string) (*Client, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Client, int, error) {
	return service.repo.List(context, filter, params, sort)
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
