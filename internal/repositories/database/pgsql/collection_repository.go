package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cod_ledger/internal/models"
	"github.com/SscSPs/cod_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const collectionColumns = `collection_id, awb_number, client_id, hub_id, expected_amount, collected_amount,
	payment_mode, collected_by_id, collected_by_name, collection_time, status,
	deposit_id, deposited_at, remittance_id, is_reconciled, reconciled_at,
	dispute_reason, disputed_at, disputed_by,
	created_at, created_by, last_updated_at, last_updated_by`

// remittableCondition matches collections a remittance may still claim.
const remittableCondition = `status = 'DEPOSITED' AND deposit_id IS NOT NULL AND remittance_id IS NULL AND NOT is_reconciled`

type PgxCollectionRepository struct {
	BaseRepository
}

// newPgxCollectionRepository creates a new repository for collection data.
func newPgxCollectionRepository(pool *pgxpool.Pool) portsrepo.CollectionRepositoryFacade {
	return &PgxCollectionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CollectionRepositoryFacade = (*PgxCollectionRepository)(nil)

func scanCollection(row pgx.Row) (models.Collection, error) {
	var m models.Collection
	err := row.Scan(
		&m.CollectionID, &m.AWBNumber, &m.ClientID, &m.HubID, &m.ExpectedAmount, &m.CollectedAmount,
		&m.PaymentMode, &m.CollectedByID, &m.CollectedByName, &m.CollectionTime, &m.Status,
		&m.DepositID, &m.DepositedAt, &m.RemittanceID, &m.IsReconciled, &m.ReconciledAt,
		&m.DisputeReason, &m.DisputedAt, &m.DisputedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// queryCollections runs a query selecting collectionColumns and maps every row.
func queryCollections(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, query string, args ...any) ([]domain.Collection, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query collections")
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		m, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating collection rows")
	}
	return mapping.ToDomainCollections(result), nil
}

// lockCollectionsByIDs fetches and row-locks the collections in a fixed order so concurrent
// claims over overlapping sets queue instead of deadlocking.
func lockCollectionsByIDs(ctx context.Context, tx pgx.Tx, ids []string) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + `
		FROM cod_collections
		WHERE collection_id = ANY($1)
		ORDER BY collection_id
		FOR UPDATE`
	return queryCollections(ctx, tx, query, ids)
}

func collectionIDs(cs []domain.Collection) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.CollectionID
	}
	return ids
}

func (r *PgxCollectionRepository) findOne(ctx context.Context, where string, arg any) (*domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM cod_collections WHERE ` + where + ` = $1`
	m, err := scanCollection(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: collection %v", apperrors.ErrNotFound, arg)
		}
		return nil, translateError(err, "failed to find collection")
	}
	c := mapping.ToDomainCollection(m)
	return &c, nil
}

func (r *PgxCollectionRepository) FindCollectionByID(ctx context.Context, collectionID string) (*domain.Collection, error) {
	return r.findOne(ctx, "collection_id", collectionID)
}

func (r *PgxCollectionRepository) FindCollectionByAWB(ctx context.Context, awbNumber string) (*domain.Collection, error) {
	return r.findOne(ctx, "awb_number", awbNumber)
}

func collectionWhere(f domain.CollectionFilter) *whereClause {
	w := &whereClause{}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	if f.HubID != "" {
		w.add("hub_id = $%d", f.HubID)
	}
	if f.CollectorID != "" {
		w.add("collected_by_id = $%d", f.CollectorID)
	}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.DepositID != "" {
		w.add("deposit_id = $%d", f.DepositID)
	}
	if f.RemittanceID != "" {
		w.add("remittance_id = $%d", f.RemittanceID)
	}
	return w
}

func (r *PgxCollectionRepository) ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error) {
	w := collectionWhere(filter)

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cod_collections`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translateError(err, "failed to count collections")
	}

	query := `SELECT ` + collectionColumns + ` FROM cod_collections` + w.String() +
		` ORDER BY collection_time DESC, collection_id`
	if filter.PageSize > 0 {
		query += ` LIMIT ` + w.next(filter.PageSize) + ` OFFSET ` + w.next(filter.Offset())
	}
	collections, err := queryCollections(ctx, r.Pool, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	if collections == nil {
		collections = []domain.Collection{}
	}
	return collections, total, nil
}

func (r *PgxCollectionRepository) ListRemittableByAWBs(ctx context.Context, clientID string, awbNumbers []string) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + `
		FROM cod_collections
		WHERE client_id = $1 AND awb_number = ANY($2) AND ` + remittableCondition + `
		ORDER BY collection_time DESC, collection_id`
	collections, err := queryCollections(ctx, r.Pool, query, clientID, awbNumbers)
	if err != nil {
		return nil, err
	}
	if collections == nil {
		collections = []domain.Collection{}
	}
	return collections, nil
}

// RecordCollection upserts on awb_number. The update branch only fires for records nothing has
// consumed yet; otherwise no row comes back and the call fails with ErrConflict.
func (r *PgxCollectionRepository) RecordCollection(ctx context.Context, collection domain.Collection, fact domain.DeliveryFact) (*domain.Collection, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCollection(collection)
	upsert := `
		INSERT INTO cod_collections (
			collection_id, awb_number, client_id, hub_id, expected_amount, collected_amount,
			payment_mode, collected_by_id, collected_by_name, collection_time, status,
			is_reconciled, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12, $13, $14, $15)
		ON CONFLICT (awb_number) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			hub_id = EXCLUDED.hub_id,
			expected_amount = EXCLUDED.expected_amount,
			collected_amount = EXCLUDED.collected_amount,
			payment_mode = EXCLUDED.payment_mode,
			collected_by_id = EXCLUDED.collected_by_id,
			collected_by_name = EXCLUDED.collected_by_name,
			collection_time = EXCLUDED.collection_time,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE cod_collections.status = 'COLLECTED'
			AND cod_collections.deposit_id IS NULL
			AND cod_collections.remittance_id IS NULL
		RETURNING ` + collectionColumns
	stored, err := scanCollection(tx.QueryRow(ctx, upsert,
		m.CollectionID, m.AWBNumber, m.ClientID, m.HubID, m.ExpectedAmount, m.CollectedAmount,
		m.PaymentMode, m.CollectedByID, m.CollectedByName, m.CollectionTime, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: awb %s has already been claimed", apperrors.ErrConflict, collection.AWBNumber)
		}
		return nil, translateError(err, "failed to upsert collection "+collection.AWBNumber)
	}

	f := mapping.ToModelDeliveryFact(fact)
	_, err = tx.Exec(ctx, `
		INSERT INTO delivery_facts (awb_number, client_id, hub_id, delivered_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (awb_number) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			hub_id = EXCLUDED.hub_id,
			delivered_at = EXCLUDED.delivered_at`,
		f.AWBNumber, f.ClientID, f.HubID, f.DeliveredAt)
	if err != nil {
		return nil, translateError(err, "failed to record delivery fact "+fact.AWBNumber)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	c := mapping.ToDomainCollection(stored)
	return &c, nil
}

func (r *PgxCollectionRepository) DisputeCollection(ctx context.Context, collectionID, reason, actor string, now time.Time) (*domain.Collection, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockCollectionsByIDs(ctx, tx, []string{collectionID})
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		return nil, fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
	}
	c := locked[0]
	if err := c.Dispute(reason, actor, now); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE cod_collections
		SET status = $2, dispute_reason = $3, disputed_at = $4, disputed_by = $5,
			last_updated_at = $4, last_updated_by = $5
		WHERE collection_id = $1`,
		c.CollectionID, string(c.Status), c.DisputeReason, c.DisputedAt, c.DisputedBy)
	if err != nil {
		return nil, translateError(err, "failed to dispute collection "+collectionID)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &c, nil
}
