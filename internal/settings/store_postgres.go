package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foureyedgems/admin-api/internal/platform/database/schema"
	"github.com/foureyedgems/admin-api/internal/platform/dberr"
)

// singletonID pins the settings document to a single row.
const singletonID = 1

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Load(context context.Context) ([]byte, time.Time, bool, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.SystemSetting.Data, schema.SystemSetting.UpdatedAt,
		schema.SystemSetting.Table, schema.SystemSetting.ID)

	var data []byte
	var updatedAt time.Time
	err := repository.db.QueryRow(context, query, singletonID).Scan(&data, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, dberr.Wrap(err, "load_settings")
	}
	return data, updatedAt, true, nil
}

func (repository *PostgresRepository) Save(context context.Context, data []byte, updatedBy string) (time.Time, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s
	`,
		schema.SystemSetting.Table,
		schema.SystemSetting.ID, schema.SystemSetting.Data,
		schema.SystemSetting.UpdatedBy, schema.SystemSetting.UpdatedAt,
		schema.SystemSetting.ID,
		schema.SystemSetting.Data, schema.SystemSetting.Data,
		schema.SystemSetting.UpdatedBy, schema.SystemSetting.UpdatedBy,
		schema.SystemSetting.UpdatedAt,
		schema.SystemSetting.UpdatedAt,
	)

	var updatedAt time.Time
	err := repository.db.QueryRow(context, query, singletonID, data, updatedBy).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, dberr.Wrap(err, "save_settings")
	}
	return updatedAt, nil
}
