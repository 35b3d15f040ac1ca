package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// RemittanceClaim carries one remittance claim. When the request has no explicit collection ids,
// AWBNumbers holds the client's delivered shipments for the period and the claim takes every
// eligible collection among them.
type RemittanceClaim struct {
	RemittanceID string
	EntryID      string
	Request      domain.CreateRemittanceRequest
	AWBNumbers   []string
	Now          time.Time
}

// RemittanceReader defines read operations for remittance data
type RemittanceReader interface {
	// FindRemittanceByID retrieves a remittance together with its linked collections.
	FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error)

	// ListRemittances returns one page of remittances with stats over the full filter.
	ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error)
}

// RemittanceWriter defines write operations for remittance data
type RemittanceWriter interface {
	// ClaimRemittance selects and locks the collections, verifies eligibility, numbers and writes the
	// remittance, reconciles the collections and appends the REMITTANCE ledger entry atomically.
	ClaimRemittance(ctx context.Context, claim RemittanceClaim) (*domain.Remittance, error)

	// AdvanceRemittance moves a remittance one status forward.
	AdvanceRemittance(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string, now time.Time) (*domain.Remittance, error)
}

// RemittanceRepositoryFacade combines all remittance-related repository interfaces
type RemittanceRepositoryFacade interface {
	RemittanceReader
	RemittanceWriter
}
