package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
)

// depositService is the Deposit Aggregator.
type depositService struct {
	BaseService
	depositRepo portsrepo.DepositRepositoryFacade
}

// NewDepositService creates a new Deposit Aggregator.
func NewDepositService(depositRepo portsrepo.DepositRepositoryFacade, options ...ServiceOption) portssvc.DepositSvcFacade {
	return &depositService{
		BaseService: newBaseService(options),
		depositRepo: depositRepo,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

func (s *depositService) CreateDeposit(ctx context.Context, req domain.CreateDepositRequest) (*domain.Deposit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Parties.DepositedByName = s.resolveName(ctx, external.PartyUser, req.Parties.DepositedByID, req.Parties.DepositedByName)
	req.Parties.ReceivedByName = s.resolveName(ctx, external.PartyUser, req.Parties.ReceivedByID, req.Parties.ReceivedByName)

	claim := portsrepo.DepositClaim{
		DepositID: uuid.NewString(),
		EntryID:   uuid.NewString(),
		Request:   req,
	}
	deposit, err := retryOnConflict(ctx, s.Retry, "create_deposit", func() (*domain.Deposit, error) {
		claim.Now = s.Now()
		return s.depositRepo.ClaimDeposit(ctx, claim)
	})
	if err != nil {
		var setErr *apperrors.InvalidCollectionSetError
		switch {
		case errors.As(err, &setErr):
			s.LogWarn(ctx, err, "Deposit claim rejected",
				slog.Int("requested", setErr.Requested),
				slog.Int("offending", setErr.Offending()),
				slog.String("hub_id", req.Parties.HubID))
		case errors.Is(err, apperrors.ErrValidation):
			s.LogWarn(ctx, err, "Deposit rejected", slog.String("hub_id", req.Parties.HubID))
		default:
			s.LogError(ctx, err, "Failed to create deposit", slog.String("hub_id", req.Parties.HubID))
		}
		return nil, err
	}

	attrs := []any{
		slog.String("deposit_id", deposit.DepositID),
		slog.String("deposit_number", deposit.DepositNumber),
		slog.String("hub_id", deposit.HubID),
		slog.Int("collection_count", deposit.CollectionCount),
		slog.String("expected_amount", deposit.ExpectedAmount.String()),
		slog.String("deposited_amount", deposit.DepositedAmount.String()),
	}
	if deposit.Status == domain.DepositDiscrepancy {
		s.GetLogger(ctx).Warn("Deposit created with shortage",
			append(attrs, slog.String("shortage_amount", deposit.ShortageAmount.String()))...)
	} else {
		s.LogInfo(ctx, "Deposit created", attrs...)
	}
	return deposit, nil
}

func (s *depositService) GetDeposit(ctx context.Context, depositID string) (*domain.Deposit, error) {
	return s.depositRepo.FindDepositByID(ctx, depositID)
}

func (s *depositService) ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error) {
	if filter.Status != "" && filter.Status != domain.DepositVerified && filter.Status != domain.DepositDiscrepancy {
		return nil, fmt.Errorf("%w: unknown deposit status %q", apperrors.ErrValidation, filter.Status)
	}
	filter.Page = s.clampPage(filter.Page)
	page, err := s.depositRepo.ListDeposits(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deposits")
		return nil, err
	}
	return page, nil
}

func (s *depositService) VerifyDeposit(ctx context.Context, depositID, verifierID, note string) (*domain.Deposit, error) {
	if verifierID == "" {
		return nil, apperrors.NewMissingFieldsError("verifiedBy")
	}
	deposit, err := s.depositRepo.VerifyDeposit(ctx, depositID, verifierID, note, s.Now())
	if err != nil {
		s.LogWarn(ctx, err, "Failed to verify deposit", slog.String("deposit_id", depositID))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit verified",
		slog.String("deposit_id", depositID),
		slog.String("verified_by", verifierID),
		slog.String("shortage_amount", deposit.ShortageAmount.String()))
	return deposit, nil
}
