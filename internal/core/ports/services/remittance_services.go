package services

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// RemittanceReaderSvc defines read operations for remittance data
type RemittanceReaderSvc interface {
	GetRemittance(ctx context.Context, remittanceID string) (*domain.Remittance, error)
	ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error)

	// ExportRemittanceStatement renders the remittance and its shipments as an XLSX workbook.
	ExportRemittanceStatement(ctx context.Context, remittanceID string) ([]byte, error)
}

// RemittanceWriterSvc defines write operations for remittance data
type RemittanceWriterSvc interface {
	// CreateRemittance claims deposited collections into one client payout, all or nothing.
	CreateRemittance(ctx context.Context, req domain.CreateRemittanceRequest) (*domain.Remittance, error)

	// UpdateRemittanceStatus moves a remittance forward toward PAID.
	UpdateRemittanceStatus(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string) (*domain.Remittance, error)
}

// RemittanceSvcFacade combines all remittance-related service interfaces
type RemittanceSvcFacade interface {
	RemittanceReaderSvc
	RemittanceWriterSvc
}
