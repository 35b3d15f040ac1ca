package handlers_test

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock CollectionService ---
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) GetCollection(ctx context.Context, collectionID string) (*domain.Collection, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}
func (m *MockCollectionService) ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Collection), args.Int(1), args.Error(2)
}
func (m *MockCollectionService) ListEligibleForDeposit(ctx context.Context, hubID, collectorID string) ([]domain.Collection, error) {
	args := m.Called(ctx, hubID, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionService) ListEligibleForRemittance(ctx context.Context, clientID string, period domain.Period) ([]domain.Collection, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionService) RecordCollection(ctx context.Context, req domain.RecordCollectionRequest, actor string) (*domain.Collection, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}
func (m *MockCollectionService) RaiseDispute(ctx context.Context, collectionID, reason, actor string) (*domain.Collection, error) {
	args := m.Called(ctx, collectionID, reason, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

var _ portssvc.CollectionSvcFacade = (*MockCollectionService)(nil)

// --- Mock DepositService ---
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) GetDeposit(ctx context.Context, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}
func (m *MockDepositService) ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositPage), args.Error(1)
}
func (m *MockDepositService) CreateDeposit(ctx context.Context, req domain.CreateDepositRequest) (*domain.Deposit, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}
func (m *MockDepositService) VerifyDeposit(ctx context.Context, depositID, verifierID, note string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID, verifierID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

var _ portssvc.DepositSvcFacade = (*MockDepositService)(nil)

// --- Mock RemittanceService ---
type MockRemittanceService struct {
	mock.Mock
}

func (m *MockRemittanceService) GetRemittance(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}
func (m *MockRemittanceService) ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemittancePage), args.Error(1)
}
func (m *MockRemittanceService) ExportRemittanceStatement(ctx context.Context, remittanceID string) ([]byte, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockRemittanceService) CreateRemittance(ctx context.Context, req domain.CreateRemittanceRequest) (*domain.Remittance, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}
func (m *MockRemittanceService) UpdateRemittanceStatus(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID, next, actor, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

var _ portssvc.RemittanceSvcFacade = (*MockRemittanceService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) BalanceFor(ctx context.Context, account domain.Account) (*domain.AccountBalance, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}
func (m *MockLedgerService) ListLedgerEntries(ctx context.Context, account domain.Account, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, account, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}
func (m *MockLedgerService) CustodyReport(ctx context.Context) (*domain.CustodyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustodyReport), args.Error(1)
}
func (m *MockLedgerService) PostAdjustment(ctx context.Context, req domain.AdjustmentRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetSummary(ctx context.Context, filter domain.SummaryFilter) (*domain.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

var _ portssvc.SummarySvc = (*MockSummaryService)(nil)
