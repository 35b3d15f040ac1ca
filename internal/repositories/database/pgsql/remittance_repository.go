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

const remittanceColumns = `remittance_id, remittance_number, client_id, period_start, period_end,
	gross_cod_collected, deductions, deduction_breakdown, net_remittance, shipment_count, status,
	bank_account_number, bank_ifsc, bank_name, payment_reference, approved_at, approved_by, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRemittanceRepository struct {
	BaseRepository
}

// newPgxRemittanceRepository creates a new repository for remittance data.
func newPgxRemittanceRepository(pool *pgxpool.Pool) portsrepo.RemittanceRepositoryFacade {
	return &PgxRemittanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RemittanceRepositoryFacade = (*PgxRemittanceRepository)(nil)

func scanRemittance(row pgx.Row) (models.Remittance, error) {
	var m models.Remittance
	err := row.Scan(
		&m.RemittanceID, &m.RemittanceNumber, &m.ClientID, &m.PeriodStart, &m.PeriodEnd,
		&m.GrossCODCollected, &m.Deductions, &m.DeductionBreakdown, &m.NetRemittance, &m.ShipmentCount, &m.Status,
		&m.BankAccountNumber, &m.BankIFSC, &m.BankName, &m.PaymentReference, &m.ApprovedAt, &m.ApprovedBy, &m.PaidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	m, err := scanRemittance(r.Pool.QueryRow(ctx, `SELECT `+remittanceColumns+` FROM cod_remittances WHERE remittance_id = $1`, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: remittance %s", apperrors.ErrNotFound, remittanceID)
		}
		return nil, translateError(err, "failed to find remittance "+remittanceID)
	}
	rem := mapping.ToDomainRemittance(m)

	rem.Collections, err = queryCollections(ctx, r.Pool, `SELECT `+collectionColumns+`
		FROM cod_collections WHERE remittance_id = $1
		ORDER BY collection_time DESC, collection_id`, remittanceID)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *PgxRemittanceRepository) ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error) {
	w := &whereClause{}
	if filter.Status != "" {
		w.add("status = $%d", string(filter.Status))
	}
	if filter.ClientID != "" {
		w.add("client_id = $%d", filter.ClientID)
	}

	var stats domain.RemittanceStats
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(gross_cod_collected), 0),
			COALESCE(SUM(deductions), 0), COALESCE(SUM(net_remittance), 0)
		FROM cod_remittances`+w.String(), w.args...).Scan(
		&stats.Count, &stats.TotalGross, &stats.TotalDeductions, &stats.TotalNet,
	); err != nil {
		return nil, translateError(err, "failed to aggregate remittances")
	}

	query := `SELECT ` + remittanceColumns + ` FROM cod_remittances` + w.String() +
		` ORDER BY created_at DESC, remittance_number DESC`
	if filter.PageSize > 0 {
		query += ` LIMIT ` + w.next(filter.PageSize) + ` OFFSET ` + w.next(filter.Offset())
	}
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, translateError(err, "failed to list remittances")
	}
	defer rows.Close()

	remittances := []domain.Remittance{}
	for rows.Next() {
		m, err := scanRemittance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remittance row: %w", err)
		}
		remittances = append(remittances, mapping.ToDomainRemittance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating remittance rows")
	}
	return &domain.RemittancePage{Remittances: remittances, Total: stats.Count, Stats: stats}, nil
}

// claimable locks the collections the claim is about. Explicit claims lock exactly the requested ids
// and fail on any that is not remittable for the client; implicit claims lock whatever is remittable
// among the delivered waybills.
func claimable(ctx context.Context, tx pgx.Tx, claim portsrepo.RemittanceClaim) ([]domain.Collection, error) {
	req := claim.Request
	if req.Explicit() {
		locked, err := lockCollectionsByIDs(ctx, tx, req.CollectionIDs)
		if err != nil {
			return nil, err
		}
		if bad := domain.OffendingForRemittance(req.CollectionIDs, locked, req.ClientID); len(bad) > 0 {
			return nil, apperrors.NewInvalidCollectionSetError(len(req.CollectionIDs), bad)
		}
		return locked, nil
	}
	if len(claim.AWBNumbers) == 0 {
		return nil, apperrors.ErrNoEligibleCollections
	}
	return queryCollections(ctx, tx, `SELECT `+collectionColumns+`
		FROM cod_collections
		WHERE client_id = $1 AND awb_number = ANY($2) AND `+remittableCondition+`
		ORDER BY collection_id
		FOR UPDATE`, req.ClientID, claim.AWBNumbers)
}

func insertRemittance(ctx context.Context, tx pgx.Tx, rem domain.Remittance) error {
	m := mapping.ToModelRemittance(rem)
	_, err := tx.Exec(ctx, `
		INSERT INTO cod_remittances (`+remittanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22)`,
		m.RemittanceID, m.RemittanceNumber, m.ClientID, m.PeriodStart, m.PeriodEnd,
		m.GrossCODCollected, m.Deductions, m.DeductionBreakdown, m.NetRemittance, m.ShipmentCount, m.Status,
		m.BankAccountNumber, m.BankIFSC, m.BankName, m.PaymentReference, m.ApprovedAt, m.ApprovedBy, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert remittance "+rem.RemittanceNumber)
	}
	return nil
}

func (r *PgxRemittanceRepository) ClaimRemittance(ctx context.Context, claim portsrepo.RemittanceClaim) (*domain.Remittance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	collections, err := claimable(ctx, tx, claim)
	if err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		return nil, apperrors.ErrNoEligibleCollections
	}

	number, err := nextNumber(ctx, tx, domain.RemittanceNumberPrefix, claim.Now)
	if err != nil {
		return nil, err
	}
	rem, err := domain.BuildRemittance(claim.RemittanceID, number, claim.Request, collections, claim.Now)
	if err != nil {
		return nil, err
	}
	if err := insertRemittance(ctx, tx, rem); err != nil {
		return nil, err
	}

	ids := collectionIDs(collections)
	tag, err := tx.Exec(ctx, `
		UPDATE cod_collections
		SET status = 'RECONCILED', remittance_id = $1, is_reconciled = TRUE, reconciled_at = $2,
			last_updated_at = $2, last_updated_by = $3
		WHERE collection_id = ANY($4) AND `+remittableCondition,
		rem.RemittanceID, claim.Now, claim.Request.CreatedBy, ids)
	if err != nil {
		return nil, translateError(err, "failed to reconcile collections for remittance "+rem.RemittanceNumber)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return nil, fmt.Errorf("%w: reconciled %d of %d collections", apperrors.ErrStorageConflict, tag.RowsAffected(), len(ids))
	}

	if err := insertLedgerEntry(ctx, tx, domain.NewRemittanceEntry(claim.EntryID, rem)); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	for _, c := range collections {
		c.MarkReconciled(rem.RemittanceID, claim.Now)
		c.LastUpdatedBy = claim.Request.CreatedBy
		rem.Collections = append(rem.Collections, c)
	}
	return &rem, nil
}

func (r *PgxRemittanceRepository) AdvanceRemittance(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string, now time.Time) (*domain.Remittance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanRemittance(tx.QueryRow(ctx, `SELECT `+remittanceColumns+` FROM cod_remittances WHERE remittance_id = $1 FOR UPDATE`, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: remittance %s", apperrors.ErrNotFound, remittanceID)
		}
		return nil, translateError(err, "failed to lock remittance "+remittanceID)
	}
	rem := mapping.ToDomainRemittance(m)
	if err := rem.Advance(next, actor, paymentRef, now); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE cod_remittances
		SET status = $2, approved_at = $3, approved_by = $4, paid_at = $5, payment_reference = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE remittance_id = $1`,
		rem.RemittanceID, string(rem.Status), rem.ApprovedAt, rem.ApprovedBy, rem.PaidAt, rem.PaymentReference,
		rem.LastUpdatedAt, rem.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "failed to advance remittance "+remittanceID)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &rem, nil
}
