package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock ShipmentDirectory ---
type MockShipmentDirectory struct {
	mock.Mock
}

var _ external.ShipmentDirectory = (*MockShipmentDirectory)(nil)

func (m *MockShipmentDirectory) FindDeliveredShipments(ctx context.Context, clientID string, start, end time.Time) ([]string, error) {
	args := m.Called(ctx, clientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock DepositRepository ---
type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepositoryFacade = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositPage), args.Error(1)
}

func (m *MockDepositRepository) ClaimDeposit(ctx context.Context, claim portsrepo.DepositClaim) (*domain.Deposit, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) VerifyDeposit(ctx context.Context, depositID, verifierID, note string, now time.Time) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID, verifierID, note, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

// --- Mock RemittanceRepository ---
type MockRemittanceRepository struct {
	mock.Mock
}

var _ portsrepo.RemittanceRepositoryFacade = (*MockRemittanceRepository)(nil)

func (m *MockRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemittancePage), args.Error(1)
}

func (m *MockRemittanceRepository) ClaimRemittance(ctx context.Context, claim portsrepo.RemittanceClaim) (*domain.Remittance, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) AdvanceRemittance(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string, now time.Time) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID, next, actor, paymentRef, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}
