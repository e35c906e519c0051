package inquiries

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
	return strings.Join(schema.CRMInquiry.Columns(), ", ")
}

func scanInquiry(row interface{ Scan(...any) error }) (*Inquiry, error) {
	inquiry := &Inquiry{}
	err := row.Scan(
		&inquiry.ID, &inquiry.Name, &inquiry.Email, &inquiry.Phone,
		&inquiry.Company, &inquiry.Subject, &inquiry.Message,
		&inquiry.Category, &inquiry.Priority, &inquiry.Status,
		&inquiry.Source, &inquiry.AssignedTo,
		&inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (repository *PostgresRepository) Create(context context.Context, inquiry *Inquiry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CRMInquiry.Table, columnList(),
		schema.CRMInquiry.CreatedAt, schema.CRMInquiry.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Phone,
		inquiry.Company, inquiry.Subject, inquiry.Message,
		inquiry.Category, inquiry.Priority, inquiry.Status,
		inquiry.Source, inquiry.AssignedTo,
	).Scan(&inquiry.CreatedAt, &inquiry.UpdatedAt)

	return dberr.Wrap(err, "create_inquiry")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Inquiry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CRMInquiry.Table, schema.CRMInquiry.ID)

	inquiry, err := scanInquiry(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_inquiry_by_id")
	}
	return inquiry, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params, sort pagination.Sort) ([]*Inquiry, int, error) {
	conditions := []string{"1=1"}
	args := []any{}
	next := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.CRMInquiry.Name, next,
			schema.CRMInquiry.Email, next,
			schema.CRMInquiry.Subject, next,
		))
		args = append(args, "%"+filter.Search+"%")
		next++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMInquiry.Status, next))
		args = append(args, filter.Status)
		next++
	}
	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMInquiry.Priority, next))
		args = append(args, filter.Priority)
		next++
	}
	if filter.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CRMInquiry.AssignedTo, next))
		args = append(args, filter.AssignedTo)
		next++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CRMInquiry.Table, where)
	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_inquiries")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, columnList(), schema.CRMInquiry.Table, where, sort.OrderBy(), next, next+1)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_inquiries")
	}
	defer rows.Close()

	result := make([]*Inquiry, 0)
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_inquiry")
		}
		result = append(result, inquiry)
	}

	return result, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, inquiry *Inquiry) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CRMInquiry.Table,
		schema.CRMInquiry.Status, schema.CRMInquiry.Priority,
		schema.CRMInquiry.Category, schema.CRMInquiry.AssignedTo,
		schema.CRMInquiry.UpdatedAt,
		schema.CRMInquiry.ID,
		schema.CRMInquiry.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		inquiry.ID, inquiry.Status, inquiry.Priority,
		inquiry.Category, inquiry.AssignedTo,
	).Scan(&inquiry.UpdatedAt)

	return dberr.Wrap(err, "update_inquiry")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CRMInquiry.Table, schema.CRMInquiry.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_inquiry")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
