package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db/models"
)

type ContactBulkInsertRepository struct {
	pool *pgxpool.Pool
}

func NewContactBulkInsertRepository(pool *pgxpool.Pool) *ContactBulkInsertRepository {
	return &ContactBulkInsertRepository{pool: pool}
}

// InsertContacts copies contacts into the contacts table in one transaction.
// Either every row is written or none is.
func (r *ContactBulkInsertRepository) InsertContacts(ctx context.Context, contacts []domain.Contact) (int64, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		var estimate pgtype.Numeric
		if c.Estimate != nil {
			if err := estimate.Scan(c.Estimate.String()); err != nil {
				return 0, fmt.Errorf("encode estimate %s: %w", c.Estimate, err)
			}
		}
		rows = append(rows, []any{
			c.CompanyID,
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.Notes,
			c.Source,
			estimate,
			string(c.Stage),
			c.CreatedAt,
		})
	}

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"contacts"},
		models.ContactColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy contacts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit contact import: %w", err)
	}

	return copied, nil
}
