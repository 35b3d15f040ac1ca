package services

import (
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, extra ...ServiceOption) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithPartyDirectory(repos.Parties),
		WithRetryPolicy(RetryPolicy{MaxRetries: cfg.ClaimMaxRetries, Backoff: cfg.ClaimRetryBackoff}),
		WithPageLimits(PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}),
	}
	options = append(options, extra...)

	return &portssvc.ServiceContainer{
		Collection: NewCollectionService(repos.CollectionRepo, repos.Shipments, options...),
		Deposit:    NewDepositService(repos.DepositRepo, options...),
		Remittance: NewRemittanceService(repos.RemittanceRepo, repos.Shipments, options...),
		Ledger:     NewLedgerService(repos.LedgerRepo, repos.ReportingRepo, options...),
		Summary:    NewSummaryService(repos.ReportingRepo, options...),
	}
}
