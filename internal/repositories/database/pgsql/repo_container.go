package pgsql

import (
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates a new repository provider backed by PostgreSQL.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	directory := newPgxDirectoryRepository(pool)
	return portsrepo.RepositoryProvider{
		CollectionRepo: newPgxCollectionRepository(pool),
		DepositRepo:    newPgxDepositRepository(pool),
		RemittanceRepo: newPgxRemittanceRepository(pool),
		LedgerRepo:     newPgxLedgerRepository(pool),
		ReportingRepo:  newPgxReportingRepository(pool),
		Shipments:      directory,
		Parties:        directory,
	}
}
