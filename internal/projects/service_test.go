package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foureyedgems/admin-api/internal/platform/apperr"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type fakeRepository struct {
	projects map[string]*Project
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{projects: map[string]*Project{}}
}

func (f *fakeRepository) Create(_ context.Context, project *Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperr.NotFound("Project")
	}
	return project, nil
}

func (f *fakeRepository) List(_ context.Context, _ Filter, _ pagination.Params, _ pagination.Sort) ([]*Project, int, error) {
	result := make([]*Project, 0, len(f.projects))
	for _, project := range f.projects {
		result = append(result, project)
	}
	return result, len(result), nil
}

func (f *fakeRepository) CountByClient(_ context.Context, clientID string) (int, error) {
	total := 0
	for _, project := range f.projects {
		if project.ClientID != nil && *project.ClientID == clientID {
			total++
		}
	}
	return total, nil
}

func (f *fakeRepository) Update(_ context.Context, project *Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.projects, id)
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func TestCreateDefaults(t *testing.T) {
	service, _ := newTestService()

	project, err := service.Create(context.Background(), CreateInput{Title: "Site redesign"})
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, StatusPlanning, project.Status)
	assert.Equal(t, PriorityMedium, project.Priority)
	assert.NotNil(t, project.AssignedTo)
	assert.NotNil(t, project.Services)
	assert.NotNil(t, project.Tags)
}

func TestCreateDateParsing(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "rfc3339", date: "2026-09-01T00:00:00Z"},
		{name: "bare_date", date: "2026-09-01"},
		{name: "garbage", date: "next tuesday", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			project, err := service.Create(context.Background(), CreateInput{
				Title:    "Timed",
				Deadline: &test.date,
			})
			if test.wantErr {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, project.Deadline)
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	service, _ := newTestService()

	project, err := service.Create(context.Background(), CreateInput{
		Title:  "Brand refresh",
		Budget: 5000,
	})
	require.NoError(t, err)

	status := StatusInProgress
	updated, err := service.Update(context.Background(), project.ID, UpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, "Brand refresh", updated.Title)
	assert.Equal(t, float64(5000), updated.Budget)
}

func TestUpdateDetachClient(t *testing.T) {
	service, _ := newTestService()

	clientID := "0191b9d8-0000-7000-8000-000000000001"
	project, err := service.Create(context.Background(), CreateInput{
		Title:    "Retainer",
		ClientID: &clientID,
	})
	require.NoError(t, err)

	empty := ""
	updated, err := service.Update(context.Background(), project.ID, UpdateInput{ClientID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.ClientID)
}

func TestDeleteReturnsRecord(t *testing.T) {
	service, repo := newTestService()

	project, err := service.Create(context.Background(), CreateInput{Title: "Doomed"})
	require.NoError(t, err)

	deleted, err := service.Delete(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, deleted.ID)
	assert.Empty(t, repo.projects)

	_, err = service.Delete(context.Background(), project.ID)
	require.Error(t, err)
}
