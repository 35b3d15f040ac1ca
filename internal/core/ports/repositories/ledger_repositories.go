package repositories

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// ListEntries returns up to limit entries for the account, newest first, strictly after the cursor.
	ListEntries(ctx context.Context, account domain.Account, limit int, after *domain.LedgerCursor) ([]domain.LedgerEntry, error)

	// AccountBalance folds every entry for the account. It also returns the entry count.
	AccountBalance(ctx context.Context, account domain.Account) (decimal.Decimal, int, error)
}

// LedgerWriter defines write operations for ledger entries. Entries are never updated or removed.
type LedgerWriter interface {
	// AppendEntry stores a standalone entry such as an adjustment.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
