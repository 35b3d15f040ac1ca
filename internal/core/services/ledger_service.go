package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/utils/pagination"
)

// ledgerService is the read side of the Ledger Store plus manual adjustments and the
// custody check run by the Reconciliation Coordinator.
type ledgerService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, reportingRepo portsrepo.ReportingRepositoryFacade, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:   newBaseService(options),
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) BalanceFor(ctx context.Context, account domain.Account) (*domain.AccountBalance, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}
	balance, count, err := s.ledgerRepo.AccountBalance(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to fold account balance", slog.String("account", account.String()))
		return nil, fmt.Errorf("failed to compute balance for %s: %w", account, err)
	}
	return &domain.AccountBalance{
		Account:    account,
		Balance:    balance,
		EntryCount: count,
		AsOf:       s.Now(),
	}, nil
}

func (s *ledgerService) ListLedgerEntries(ctx context.Context, account domain.Account, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if err := account.Validate(); err != nil {
		return nil, nil, err
	}
	limit = pagination.ClampPageSize(limit, s.Paging.Default, s.Paging.Max)

	var after *domain.LedgerCursor
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = &domain.LedgerCursor{TransactionTime: at, EntryID: id}
	}

	// one extra row tells us whether another page exists
	entries, err := s.ledgerRepo.ListEntries(ctx, account, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account", account.String()))
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeTimeIDToken(last.TransactionTime, last.EntryID)
		next = &token
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, next, nil
}

func (s *ledgerService) PostAdjustment(ctx context.Context, req domain.AdjustmentRequest) (*domain.LedgerEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entry := domain.NewAdjustmentEntry(uuid.NewString(), req, s.Now())
	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append adjustment", slog.String("account", req.Account.String()))
		return nil, fmt.Errorf("failed to post adjustment: %w", err)
	}
	s.LogInfo(ctx, "Adjustment posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("account", req.Account.String()),
		slog.String("direction", string(entry.Direction)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *ledgerService) CustodyReport(ctx context.Context) (*domain.CustodyReport, error) {
	totals, err := s.reportingRepo.CustodyTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute custody totals")
		return nil, fmt.Errorf("failed to compute custody totals: %w", err)
	}
	report := domain.NewCustodyReport(totals, s.Now())
	if !report.Consistent {
		s.GetLogger(ctx).Error("Custody identity does not hold",
			slog.String("collected_in_custody", totals.CollectedInCustody.String()),
			slog.String("ledger_deposited", totals.LedgerDeposited.String()),
			slog.String("deposit_variance", totals.DepositVariance.String()),
			slog.String("remitted", totals.Remitted.String()),
			slog.String("ledger_remitted", totals.LedgerRemitted.String()))
	}
	return &report, nil
}
