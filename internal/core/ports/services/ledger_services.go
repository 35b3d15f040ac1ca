package services

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// LedgerReaderSvc defines read operations over the ledger
type LedgerReaderSvc interface {
	// BalanceFor folds every entry for the account.
	BalanceFor(ctx context.Context, account domain.Account) (*domain.AccountBalance, error)

	// ListLedgerEntries returns entries newest first with a token for the next page.
	ListLedgerEntries(ctx context.Context, account domain.Account, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// CustodyReport checks the cash-in-custody identity against the ledger.
	CustodyReport(ctx context.Context) (*domain.CustodyReport, error)
}

// LedgerWriterSvc defines write operations over the ledger
type LedgerWriterSvc interface {
	// PostAdjustment appends a manual correction entry.
	PostAdjustment(ctx context.Context, req domain.AdjustmentRequest) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
