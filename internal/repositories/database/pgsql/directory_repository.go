package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDirectoryRepository serves the shipment and party directories from delivery_facts and
// directory_entries.
type PgxDirectoryRepository struct {
	BaseRepository
}

func newPgxDirectoryRepository(pool *pgxpool.Pool) *PgxDirectoryRepository {
	return &PgxDirectoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ external.ShipmentDirectory = (*PgxDirectoryRepository)(nil)
	_ external.PartyDirectory    = (*PgxDirectoryRepository)(nil)
)

func (r *PgxDirectoryRepository) FindDeliveredShipments(ctx context.Context, clientID string, start, end time.Time) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT awb_number FROM delivery_facts
		WHERE client_id = $1 AND delivered_at BETWEEN $2 AND $3
		ORDER BY awb_number`, clientID, start, end)
	if err != nil {
		return nil, translateError(err, "failed to find delivered shipments for client "+clientID)
	}
	awbs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError(err, "failed to read delivered shipments")
	}
	return awbs, nil
}

func (r *PgxDirectoryRepository) ResolveName(ctx context.Context, kind external.PartyKind, id string) (string, error) {
	var name string
	err := r.Pool.QueryRow(ctx, `SELECT name FROM directory_entries WHERE kind = $1 AND id = $2`, string(kind), id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
		}
		return "", translateError(err, "failed to resolve name")
	}
	return name, nil
}

// RegisterName upserts a directory entry.
func (r *PgxDirectoryRepository) RegisterName(ctx context.Context, kind external.PartyKind, id, name string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO directory_entries (kind, id, name) VALUES ($1, $2, $3)
		ON CONFLICT (kind, id) DO UPDATE SET name = EXCLUDED.name`, string(kind), id, name)
	if err != nil {
		return translateError(err, "failed to register name")
	}
	return nil
}
