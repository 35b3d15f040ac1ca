package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cod_ledger/internal/models"
	"github.com/SscSPs/cod_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `entry_id, transaction_type, reference_type, reference_id, account_type, account_id,
	hub_id, amount, direction, description, transaction_time, created_by`

// accountCondition matches entries posted against the account, plus deposit entries attributed to a hub.
const accountCondition = `((account_type = $1 AND account_id = $2) OR ($1 = 'HUB' AND hub_id = $2))`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// insertLedgerEntry appends one entry. Claims pass their transaction so the entry commits with the aggregate.
func insertLedgerEntry(ctx context.Context, q execer, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := q.Exec(ctx, `
		INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.EntryID, m.TransactionType, m.ReferenceType, m.ReferenceID, m.AccountType, m.AccountID,
		m.HubID, m.Amount, m.Direction, m.Description, m.TransactionTime, m.CreatedBy,
	)
	if err != nil {
		return translateError(err, "failed to append ledger entry "+entry.EntryID)
	}
	return nil
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID, &m.TransactionType, &m.ReferenceType, &m.ReferenceID, &m.AccountType, &m.AccountID,
		&m.HubID, &m.Amount, &m.Direction, &m.Description, &m.TransactionTime, &m.CreatedBy,
	)
	return m, err
}

func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return insertLedgerEntry(ctx, r.Pool, entry)
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, account domain.Account, limit int, after *domain.LedgerCursor) ([]domain.LedgerEntry, error) {
	args := []any{string(account.Type), account.ID}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE ` + accountCondition
	if after != nil {
		query += ` AND (transaction_time, entry_id) < ($3, $4)`
		args = append(args, after.TransactionTime, after.EntryID)
	}
	query += fmt.Sprintf(` ORDER BY transaction_time DESC, entry_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list ledger entries for "+account.String())
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating ledger entry rows")
	}
	return entries, nil
}

func (r *PgxLedgerRepository) AccountBalance(ctx context.Context, account domain.Account) (decimal.Decimal, int, error) {
	var balance decimal.Decimal
	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN direction = 'DEBIT' THEN -amount ELSE amount END), 0), COUNT(*)
		FROM ledger_entries WHERE `+accountCondition,
		string(account.Type), account.ID,
	).Scan(&balance, &count)
	if err != nil {
		return decimal.Zero, 0, translateError(err, "failed to compute balance for "+account.String())
	}
	return balance, count, nil
}
