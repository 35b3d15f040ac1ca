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

const depositColumns = `deposit_id, deposit_number, deposited_by_id, deposited_by_name, deposited_by_type,
	received_by_id, received_by_name, hub_id, expected_amount, deposited_amount, shortage_amount, excess_amount,
	cash_amount, upi_amount, card_amount, cheque_amount, collection_count, status, deposited_at, remarks,
	verified_at, verified_by, verification_note, created_at, created_by, last_updated_at, last_updated_by`

type PgxDepositRepository struct {
	BaseRepository
}

// newPgxDepositRepository creates a new repository for deposit data.
func newPgxDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepositoryFacade {
	return &PgxDepositRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

func scanDeposit(row pgx.Row) (models.Deposit, error) {
	var m models.Deposit
	err := row.Scan(
		&m.DepositID, &m.DepositNumber, &m.DepositedByID, &m.DepositedByName, &m.DepositedByType,
		&m.ReceivedByID, &m.ReceivedByName, &m.HubID, &m.ExpectedAmount, &m.DepositedAmount, &m.ShortageAmount, &m.ExcessAmount,
		&m.CashAmount, &m.UPIAmount, &m.CardAmount, &m.ChequeAmount, &m.CollectionCount, &m.Status, &m.DepositedAt, &m.Remarks,
		&m.VerifiedAt, &m.VerifiedBy, &m.VerificationNote, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	m, err := scanDeposit(r.Pool.QueryRow(ctx, `SELECT `+depositColumns+` FROM cod_deposits WHERE deposit_id = $1`, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: deposit %s", apperrors.ErrNotFound, depositID)
		}
		return nil, translateError(err, "failed to find deposit "+depositID)
	}
	d := mapping.ToDomainDeposit(m)

	d.Collections, err = queryCollections(ctx, r.Pool, `SELECT `+collectionColumns+`
		FROM cod_collections WHERE deposit_id = $1
		ORDER BY collection_time DESC, collection_id`, depositID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func depositWhere(f domain.DepositFilter) *whereClause {
	w := &whereClause{}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	if f.HubID != "" {
		w.add("hub_id = $%d", f.HubID)
	}
	if f.DepositedByID != "" {
		w.add("deposited_by_id = $%d", f.DepositedByID)
	}
	if f.DateFrom != nil {
		w.add("deposited_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("deposited_at <= $%d", *f.DateTo)
	}
	return w
}

func (r *PgxDepositRepository) ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error) {
	w := depositWhere(filter)

	var stats domain.DepositStats
	statsQuery := `SELECT COUNT(*),
			COALESCE(SUM(expected_amount), 0), COALESCE(SUM(deposited_amount), 0),
			COALESCE(SUM(shortage_amount), 0), COALESCE(SUM(excess_amount), 0)
		FROM cod_deposits` + w.String()
	if err := r.Pool.QueryRow(ctx, statsQuery, w.args...).Scan(
		&stats.Count, &stats.TotalExpected, &stats.TotalDeposited, &stats.TotalShortage, &stats.TotalExcess,
	); err != nil {
		return nil, translateError(err, "failed to aggregate deposits")
	}

	query := `SELECT ` + depositColumns + ` FROM cod_deposits` + w.String() +
		` ORDER BY deposited_at DESC, deposit_number DESC`
	if filter.PageSize > 0 {
		query += ` LIMIT ` + w.next(filter.PageSize) + ` OFFSET ` + w.next(filter.Offset())
	}
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, translateError(err, "failed to list deposits")
	}
	defer rows.Close()

	deposits := []domain.Deposit{}
	for rows.Next() {
		m, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit row: %w", err)
		}
		deposits = append(deposits, mapping.ToDomainDeposit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating deposit rows")
	}
	return &domain.DepositPage{Deposits: deposits, Total: stats.Count, Stats: stats}, nil
}

func insertDeposit(ctx context.Context, tx pgx.Tx, d domain.Deposit) error {
	m := mapping.ToModelDeposit(d)
	_, err := tx.Exec(ctx, `
		INSERT INTO cod_deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27)`,
		m.DepositID, m.DepositNumber, m.DepositedByID, m.DepositedByName, m.DepositedByType,
		m.ReceivedByID, m.ReceivedByName, m.HubID, m.ExpectedAmount, m.DepositedAmount, m.ShortageAmount, m.ExcessAmount,
		m.CashAmount, m.UPIAmount, m.CardAmount, m.ChequeAmount, m.CollectionCount, m.Status, m.DepositedAt, m.Remarks,
		m.VerifiedAt, m.VerifiedBy, m.VerificationNote, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert deposit "+d.DepositNumber)
	}
	return nil
}

// ClaimDeposit runs the whole claim in one transaction:
// lock the set, check eligibility, number the deposit, insert it, link the collections with a
// conditional update, append the ledger entry and commit.
func (r *PgxDepositRepository) ClaimDeposit(ctx context.Context, claim portsrepo.DepositClaim) (*domain.Deposit, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	ids := claim.Request.CollectionIDs
	locked, err := lockCollectionsByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if bad := domain.OffendingForDeposit(ids, locked); len(bad) > 0 {
		return nil, apperrors.NewInvalidCollectionSetError(len(ids), bad)
	}

	number, err := nextNumber(ctx, tx, domain.DepositNumberPrefix, claim.Now)
	if err != nil {
		return nil, err
	}
	d, err := domain.BuildDeposit(claim.DepositID, number, claim.Request, locked, claim.Now)
	if err != nil {
		return nil, err
	}
	if err := insertDeposit(ctx, tx, d); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE cod_collections
		SET status = 'DEPOSITED', deposit_id = $1, deposited_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE collection_id = ANY($4) AND status = 'COLLECTED' AND deposit_id IS NULL`,
		d.DepositID, claim.Now, claim.Request.CreatedBy, ids)
	if err != nil {
		return nil, translateError(err, "failed to link collections to deposit "+d.DepositNumber)
	}
	if int(tag.RowsAffected()) != len(ids) {
		// rows moved after the lock; let the caller retry and re-evaluate
		return nil, fmt.Errorf("%w: linked %d of %d collections", apperrors.ErrStorageConflict, tag.RowsAffected(), len(ids))
	}

	if err := insertLedgerEntry(ctx, tx, domain.NewDepositEntry(claim.EntryID, d)); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	for _, c := range locked {
		c.MarkDeposited(d.DepositID, claim.Now)
		c.LastUpdatedBy = claim.Request.CreatedBy
		d.Collections = append(d.Collections, c)
	}
	return &d, nil
}

func (r *PgxDepositRepository) VerifyDeposit(ctx context.Context, depositID, verifierID, note string, now time.Time) (*domain.Deposit, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanDeposit(tx.QueryRow(ctx, `SELECT `+depositColumns+` FROM cod_deposits WHERE deposit_id = $1 FOR UPDATE`, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: deposit %s", apperrors.ErrNotFound, depositID)
		}
		return nil, translateError(err, "failed to lock deposit "+depositID)
	}
	d := mapping.ToDomainDeposit(m)
	if err := d.Verify(verifierID, note, now); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE cod_deposits
		SET verified_at = $2, verified_by = $3, verification_note = $4, last_updated_at = $2, last_updated_by = $3
		WHERE deposit_id = $1`,
		d.DepositID, d.VerifiedAt, d.VerifiedBy, d.VerificationNote)
	if err != nil {
		return nil, translateError(err, "failed to verify deposit "+depositID)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &d, nil
}
