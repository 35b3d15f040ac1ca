package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cod_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// CustodyTotals reads every sum from one snapshot so a claim committing mid-report cannot skew the identity.
func (r *PgxReportingRepository) CustodyTotals(ctx context.Context) (domain.CustodyTotals, error) {
	var t domain.CustodyTotals

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return t, translateError(err, "failed to begin custody snapshot")
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	batch.Queue(`SELECT COALESCE(SUM(collected_amount), 0) FROM cod_collections WHERE deposit_id IS NOT NULL`)
	batch.Queue(`SELECT COALESCE(SUM(net_remittance), 0) FROM cod_remittances`)
	batch.Queue(`SELECT COALESCE(SUM(shortage_amount - excess_amount), 0) FROM cod_deposits`)
	batch.Queue(`SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'DEPOSIT'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'REMITTANCE'), 0)
		FROM ledger_entries`)

	br := tx.SendBatch(ctx, batch)
	if err := br.QueryRow().Scan(&t.CollectedInCustody); err != nil {
		br.Close()
		return t, translateError(err, "failed to sum collections in custody")
	}
	if err := br.QueryRow().Scan(&t.Remitted); err != nil {
		br.Close()
		return t, translateError(err, "failed to sum remittances")
	}
	if err := br.QueryRow().Scan(&t.DepositVariance); err != nil {
		br.Close()
		return t, translateError(err, "failed to sum deposit variance")
	}
	if err := br.QueryRow().Scan(&t.LedgerDeposited, &t.LedgerRemitted); err != nil {
		br.Close()
		return t, translateError(err, "failed to sum ledger")
	}
	if err := br.Close(); err != nil {
		return t, translateError(err, "failed to close custody batch")
	}
	return t, r.Commit(ctx, tx)
}

// Summary narrows collections and deposits in SQL and lets the domain fold the dashboard.
func (r *PgxReportingRepository) Summary(ctx context.Context, filter domain.SummaryFilter, now time.Time) (*domain.Summary, error) {
	cw := &whereClause{}
	if filter.HubID != "" {
		cw.add("hub_id = $%d", filter.HubID)
	}
	if filter.ClientID != "" {
		cw.add("client_id = $%d", filter.ClientID)
	}
	if filter.DriverID != "" {
		cw.add("collected_by_id = $%d", filter.DriverID)
	}
	if filter.DateFrom != nil {
		cw.add("collection_time >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		cw.add("collection_time <= $%d", *filter.DateTo)
	}
	collections, err := queryCollections(ctx, r.Pool, `SELECT `+collectionColumns+` FROM cod_collections`+cw.String(), cw.args...)
	if err != nil {
		return nil, err
	}

	dw := &whereClause{}
	if filter.HubID != "" {
		dw.add("hub_id = $%d", filter.HubID)
	}
	if filter.DriverID != "" {
		dw.add("deposited_by_id = $%d", filter.DriverID)
	}
	dw.add("status = $%d", string(domain.DepositDiscrepancy))
	if filter.DateFrom != nil {
		dw.add("deposited_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		dw.add("deposited_at <= $%d", *filter.DateTo)
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+depositColumns+` FROM cod_deposits`+dw.String(), dw.args...)
	if err != nil {
		return nil, translateError(err, "failed to load deposits for summary")
	}
	defer rows.Close()

	var deposits []domain.Deposit
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

	summary := domain.BuildSummary(collections, deposits, filter, now)
	return &summary, nil
}
