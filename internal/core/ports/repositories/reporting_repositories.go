package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// ReportingRepositoryFacade exposes read-only aggregates over collections, deposits and the ledger.
type ReportingRepositoryFacade interface {
	// CustodyTotals sums the figures behind the cash-in-custody identity.
	CustodyTotals(ctx context.Context) (domain.CustodyTotals, error)

	// Summary computes the dashboard view for the filter as of now.
	Summary(ctx context.Context, filter domain.SummaryFilter, now time.Time) (*domain.Summary, error)
}
