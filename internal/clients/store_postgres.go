package clients

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
	return strings.Join(schema.CRMClient.Columns(), ", ")
}

func scanClient(row interface{ Scan(...any) error }) (*Client, error) {
	client := &Client{}
	err := row.Scan(
		&client.ID, &client.FirstName, &client.LastName, &client.Email,
		&client.Phone, &client.Company, &client.Position,
		&client.Address.Street, &client.Address.City, &client.Address.State,
		&client.Address.Zip, &client.Address.Country,
		&client.Website, &client.Industry, &client.Status, &client.Source,
		&client.AssignedTo, &client.Tags, &client.TotalProjects,
		&client.TotalRevenue, &client.LastContact, &client.NextFollowUp,
		&client.IsArchived, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (repository *PostgresRepository) Create(context context.Context, client *Client) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CRMClient.Table, columnList(),
		schema.CRMClient.CreatedAt, schema.CRMClient.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		client.ID, client.FirstName, client.LastName, client.Email,
		client.Phone, client.Company, client.Position,
		client.Address.Street, client.Address.City, client.Address.State,
		client.Address.Zip, client.Address.Country,
		client.Website, client.Industry, client.Status, client.Source,
		client.AssignedTo, client.Tags, client.TotalProjects,
		client.TotalRevenue, client.LastContact, client.NextFollowUp,
		client.IsArchived,
	).Scan(&client.CreatedAt, &client.UpdatedAt)

	return dberr.Wrap(err, "create_client")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CRMClient.Table, schema.CRMClient.ID)

	client, err := scanClient(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_client_by_id")
	}
	return client, nil
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CRMClient.Table, schema.CRMClient.Email)

	client, err := scanClient(repository.db.QueryRow(context, query, strings.ToLower(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_client_by_email")
	}
	return client, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Client, int, error) {
	conditions := []string{"1=1"}
	args := []any{}
	next := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.CRMClient.FirstName, next,
			schema.CRMClient.LastName, next,
			schema.CRMClient.Email, next,
			schema.CRMClient.Company, next,
		))
		args = append(args, "%"+filter.Search+"%")
		next++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMClient.Status, next))
		args = append(args, filter.Status)
		next++
	}
	if filter.Industry != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMClient.Industry, next))
		args = append(args, filter.Industry)
		next++
	}
	if filter.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMClient.AssignedTo, next))
		args = append(args, filter.AssignedTo)
		next++
	}
	if filter.Archived != nil {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMClient.IsArchived, next))
		args = append(args, *filter.Archived)
		next++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CRMClient.Table, where)
	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_clients")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, columnList(), schema.CRMClient.Table, where, sort.OrderBy(), next, next+1)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_clients")
	}
	defer rows.Close()

	result := make([]*Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_client")
		}
		result = append(result, client)
	}

	return result, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, client *Client) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12,
			%s = $13, %s = $14, %s = $15, %s = $16, %s = $17, %s = $18,
			%s = $19, %s = $20, %s = $21, %s = $22, %s = $23, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CRMClient.Table,
		schema.CRMClient.FirstName, schema.CRMClient.LastName, schema.CRMClient.Email,
		schema.CRMClient.Phone, schema.CRMClient.Company, schema.CRMClient.Position,
		schema.CRMClient.Street, schema.CRMClient.City, schema.CRMClient.State,
		schema.CRMClient.Zip, schema.CRMClient.Country,
		schema.CRMClient.Website, schema.CRMClient.Industry, schema.CRMClient.Status,
		schema.CRMClient.Source, schema.CRMClient.AssignedTo, schema.CRMClient.Tags,
		schema.CRMClient.TotalProjects, schema.CRMClient.TotalRevenue,
		schema.CRMClient.LastContact, schema.CRMClient.NextFollowUp,
		schema.CRMClient.IsArchived, schema.CRMClient.UpdatedAt,
		schema.CRMClient.ID,
		schema.CRMClient.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		client.ID, client.FirstName, client.LastName, client.Email,
		client.Phone, client.Company, client.Position,
		client.Address.Street, client.Address.City, client.Address.State,
		client.Address.Zip, client.Address.Country,
		client.Website, client.Industry, client.Status, client.Source,
		client.AssignedTo, client.Tags, client.TotalProjects,
		client.TotalRevenue, client.LastContact, client.NextFollowUp,
		client.IsArchived,
	).Scan(&client.UpdatedAt)

	return dberr.Wrap(err, "update_client")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CRMClient.Table, schema.CRMClient.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_client")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
