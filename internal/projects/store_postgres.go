package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/dberr"
	"github.com/foureyedgems/admin-api/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func columnList() string {
	return strings.Join(schema.CRMProject.Columns(), ", ")
}

func scanProject(row interface{ Scan(...any) error }) (*Project, error) {
	project := &Project{}
	err := row.Scan(
		&project.ID, &project.Title, &project.Description,
		&project.ClientID, &project.AssignedTo, &project.Status,
		&project.Priority, &project.Category, &project.Services,
		&project.Budget, &project.EstimatedHours,
		&project.StartDate, &project.Deadline, &project.Tags,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CRMProject.Table, columnList(),
		schema.CRMProject.CreatedAt, schema.CRMProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		project.ID, project.Title, project.Description,
		project.ClientID, project.AssignedTo, project.Status,
		project.Priority, project.Category, project.Services,
		project.Budget, project.EstimatedHours,
		project.StartDate, project.Deadline, project.Tags,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	return dberr.Wrap(err, "create_project")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CRMProject.Table, schema.CRMProject.ID)

	project, err := scanProject(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_project_by_id")
	}
	return project, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Project, int, error) {
	conditions := []string{"1=1"}
	args := []any{}
	next := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			schema.CRMProject.Title, next,
			schema.CRMProject.Description, next,
		))
		args = append(args, "%"+filter.Search+"%")
		next++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMProject.Status, next))
		args = append(args, filter.Status)
		next++
	}
	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMProject.Priority, next))
		args = append(args, filter.Priority)
		next++
	}
	if filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMProject.ClientID, next))
		args = append(args, filter.ClientID)
		next++
	}
	if filter.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(%s)", next, schema.CRMProject.AssignedTo))
		args = append(args, filter.AssignedTo)
		next++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CRMProject.Table, where)
	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_projects")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, columnList(), schema.CRMProject.Table, where, sort.OrderBy(), next, next+1)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	result := make([]*Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		result = append(result, project)
	}

	return result, total, nil
}

func (repository *PostgresRepository) CountByClient(context context.Context, clientID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.CRMProject.Table, schema.CRMProject.ClientID)

	total := 0
	if err := repository.db.QueryRow(context, query, clientID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_projects_by_client")
	}
	return total, nil
}

func (repository *PostgresRepository) Update(context context.Context, project *Project) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13,
			%s = $14, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CRMProject.Table,
		schema.CRMProject.Title, schema.CRMProject.Description,
		schema.CRMProject.ClientID, schema.CRMProject.AssignedTo,
		schema.CRMProject.Status, schema.CRMProject.Priority,
		schema.CRMProject.Category, schema.CRMProject.Services,
		schema.CRMProject.Budget, schema.CRMProject.EstimatedHours,
		schema.CRMProject.StartDate, schema.CRMProject.Deadline,
		schema.CRMProject.Tags,
		schema.CRMProject.UpdatedAt,
		schema.CRMProject.ID,
		schema.CRMProject.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		project.ID, project.Title, project.Description,
		project.ClientID, project.AssignedTo, project.Status,
		project.Priority, project.Category, project.Services,
		project.Budget, project.EstimatedHours,
		project.StartDate, project.Deadline, project.Tags,
	).Scan(&project.UpdatedAt)

	return dberr.Wrap(err, "update_project")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CRMProject.Table, schema.CRMProject.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
