package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/dberr"
	"github.com/foureyedgems/admin-api/pkg/pagination"
	"github.com/foureyedgems/admin-api/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(context context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New()
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return dberr.Wrap(err, "marshal_activity_metadata")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`,
		schema.SystemActivityLog.Table,
		schema.SystemActivityLog.ID, schema.SystemActivityLog.ActorID,
		schema.SystemActivityLog.Action, schema.SystemActivityLog.Resource,
		schema.SystemActivityLog.ResourceID, schema.SystemActivityLog.Description,
		schema.SystemActivityLog.Metadata, schema.SystemActivityLog.IPAddress,
		schema.SystemActivityLog.UserAgent, schema.SystemActivityLog.Severity,
		schema.SystemActivityLog.Category,
		schema.SystemActivityLog.CreatedAt,
	)

	err = repository.db.QueryRow(context, query,
		entry.ID, entry.ActorID, entry.Action, entry.Resource,
		entry.ResourceID, entry.Description, metadata, entry.IPAddress,
		entry.UserAgent, entry.Severity, entry.Category,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_activity_entry")
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Entry, int, error) {
	conditions := []string{"1=1"}
	args := []any{}
	next := 1

	appendCondition := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	appendCondition(schema.SystemActivityLog.Category, filter.Category)
	appendCondition(schema.SystemActivityLog.Severity, filter.Severity)
	appendCondition(schema.SystemActivityLog.ActorID, filter.ActorID)
	appendCondition(schema.SystemActivityLog.Action, filter.Action)

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", schema.SystemActivityLog.CreatedAt, next))
		args = append(args, *filter.From)
		next++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", schema.SystemActivityLog.CreatedAt, next))
		args = append(args, *filter.To)
		next++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.SystemActivityLog.Table, where)
	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_activity_entries")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`,
		schema.SystemActivityLog.ID, schema.SystemActivityLog.ActorID,
		schema.SystemActivityLog.Action, schema.SystemActivityLog.Resource,
		schema.SystemActivityLog.ResourceID, schema.SystemActivityLog.Description,
		schema.SystemActivityLog.Metadata, schema.SystemActivityLog.IPAddress,
		schema.SystemActivityLog.UserAgent, schema.SystemActivityLog.Severity,
		schema.SystemActivityLog.Category, schema.SystemActivityLog.CreatedAt,
		schema.SystemActivityLog.Table, where,
		schema.SystemActivityLog.CreatedAt, next, next+1,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_activity_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		var metadata []byte
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.Action, &entry.Resource,
			&entry.ResourceID, &entry.Description, &metadata, &entry.IPAddress,
			&entry.UserAgent, &entry.Severity, &entry.Category, &entry.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_activity_entry")
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &entry.Metadata)
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
