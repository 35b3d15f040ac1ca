package repositories

import "github.com/SscSPs/cod_ledger/internal/core/ports/external"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CollectionRepo CollectionRepositoryFacade
	DepositRepo    DepositRepositoryFacade
	RemittanceRepo RemittanceRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	ReportingRepo  ReportingRepositoryFacade

	Shipments external.ShipmentDirectory
	Parties   external.PartyDirectory
}
