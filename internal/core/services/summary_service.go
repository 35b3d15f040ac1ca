package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
)

type summaryService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewSummaryService creates the dashboard service.
func NewSummaryService(reportingRepo portsrepo.ReportingRepositoryFacade, options ...ServiceOption) portssvc.SummarySvc {
	return &summaryService{
		BaseService:   newBaseService(options),
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) GetSummary(ctx context.Context, filter domain.SummaryFilter) (*domain.Summary, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo must not be before dateFrom", apperrors.ErrValidation)
	}
	summary, err := s.reportingRepo.Summary(ctx, filter, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to build summary")
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return summary, nil
}
