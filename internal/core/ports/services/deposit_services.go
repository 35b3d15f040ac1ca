package services

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// DepositReaderSvc defines read operations for deposit data
type DepositReaderSvc interface {
	GetDeposit(ctx context.Context, depositID string) (*domain.Deposit, error)
	ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error)
}

// DepositWriterSvc defines write operations for deposit data
type DepositWriterSvc interface {
	// CreateDeposit claims the collections for one custody transfer, all or nothing.
	CreateDeposit(ctx context.Context, req domain.CreateDepositRequest) (*domain.Deposit, error)

	// VerifyDeposit records a manual verification of a DISCREPANCY deposit.
	VerifyDeposit(ctx context.Context, depositID, verifierID, note string) (*domain.Deposit, error)
}

// DepositSvcFacade combines all deposit-related service interfaces
type DepositSvcFacade interface {
	DepositReaderSvc
	DepositWriterSvc
}
