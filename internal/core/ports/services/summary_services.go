package services

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// SummarySvc defines the read-only dashboard view
type SummarySvc interface {
	GetSummary(ctx context.Context, filter domain.SummaryFilter) (*domain.Summary, error)
}
