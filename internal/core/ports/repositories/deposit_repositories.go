package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// DepositClaim carries everything the storage layer needs to claim collections into a deposit
// inside one atomic unit. Identifiers are minted by the caller.
type DepositClaim struct {
	DepositID string
	EntryID   string
	Request   domain.CreateDepositRequest
	Now       time.Time
}

// DepositReader defines read operations for deposit data
type DepositReader interface {
	// FindDepositByID retrieves a deposit together with its linked collections.
	FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)

	// ListDeposits returns one page of deposits with stats over the full filter.
	ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error)
}

// DepositWriter defines write operations for deposit data
type DepositWriter interface {
	// ClaimDeposit fetches and locks the requested collections, verifies every one is COLLECTED and
	// unclaimed, numbers and writes the deposit, links the collections and appends the DEPOSIT ledger
	// entry. Either all of it is stored or none of it is.
	ClaimDeposit(ctx context.Context, claim DepositClaim) (*domain.Deposit, error)

	// VerifyDeposit records a manual verification on a DISCREPANCY deposit.
	VerifyDeposit(ctx context.Context, depositID, verifierID, note string, now time.Time) (*domain.Deposit, error)
}

// DepositRepositoryFacade combines all deposit-related repository interfaces
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}
