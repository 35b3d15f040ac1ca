package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/export"
)

// remittanceService is the Remittance Processor.
type remittanceService struct {
	BaseService
	remittanceRepo portsrepo.RemittanceRepositoryFacade
	shipments      external.ShipmentDirectory
}

// NewRemittanceService creates a new Remittance Processor.
func NewRemittanceService(remittanceRepo portsrepo.RemittanceRepositoryFacade, shipments external.ShipmentDirectory, options ...ServiceOption) portssvc.RemittanceSvcFacade {
	return &remittanceService{
		BaseService:    newBaseService(options),
		remittanceRepo: remittanceRepo,
		shipments:      shipments,
	}
}

var _ portssvc.RemittanceSvcFacade = (*remittanceService)(nil)

func (s *remittanceService) CreateRemittance(ctx context.Context, req domain.CreateRemittanceRequest) (*domain.Remittance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claim := portsrepo.RemittanceClaim{
		RemittanceID: uuid.NewString(),
		EntryID:      uuid.NewString(),
		Request:      req,
	}
	if !req.Explicit() {
		awbs, err := s.shipments.FindDeliveredShipments(ctx, req.ClientID, req.Period.Start, req.Period.End)
		if err != nil {
			s.LogError(ctx, err, "Shipment directory lookup failed", slog.String("client_id", req.ClientID), periodLog(req.Period))
			return nil, fmt.Errorf("failed to look up delivered shipments: %w", err)
		}
		if len(awbs) == 0 {
			s.LogInfo(ctx, "No delivered shipments in period", slog.String("client_id", req.ClientID), periodLog(req.Period))
			return nil, apperrors.ErrNoEligibleCollections
		}
		claim.AWBNumbers = awbs
	}

	remittance, err := retryOnConflict(ctx, s.Retry, "create_remittance", func() (*domain.Remittance, error) {
		claim.Now = s.Now()
		return s.remittanceRepo.ClaimRemittance(ctx, claim)
	})
	if err != nil {
		var setErr *apperrors.InvalidCollectionSetError
		switch {
		case errors.As(err, &setErr):
			s.LogWarn(ctx, err, "Remittance claim rejected",
				slog.String("client_id", req.ClientID),
				slog.Int("requested", setErr.Requested),
				slog.Int("offending", setErr.Offending()))
		case errors.Is(err, apperrors.ErrNoEligibleCollections), errors.Is(err, apperrors.ErrValidation):
			s.LogWarn(ctx, err, "Remittance rejected", slog.String("client_id", req.ClientID), periodLog(req.Period))
		default:
			s.LogError(ctx, err, "Failed to create remittance", slog.String("client_id", req.ClientID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Remittance created",
		slog.String("remittance_id", remittance.RemittanceID),
		slog.String("remittance_number", remittance.RemittanceNumber),
		slog.String("client_id", remittance.ClientID),
		slog.Int("shipment_count", remittance.ShipmentCount),
		slog.String("gross", remittance.GrossCODCollected.String()),
		slog.String("net", remittance.NetRemittance.String()))
	return remittance, nil
}

func (s *remittanceService) GetRemittance(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	return s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
}

func (s *remittanceService) ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown remittance status %q", apperrors.ErrValidation, filter.Status)
	}
	filter.Page = s.clampPage(filter.Page)
	page, err := s.remittanceRepo.ListRemittances(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list remittances")
		return nil, err
	}
	return page, nil
}

func (s *remittanceService) UpdateRemittanceStatus(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string) (*domain.Remittance, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown remittance status %q", apperrors.ErrValidation, next)
	}
	r, err := s.remittanceRepo.AdvanceRemittance(ctx, remittanceID, next, actor, paymentRef, s.Now())
	if err != nil {
		s.LogWarn(ctx, err, "Failed to update remittance status",
			slog.String("remittance_id", remittanceID),
			slog.String("next_status", string(next)))
		return nil, err
	}
	s.LogInfo(ctx, "Remittance status updated",
		slog.String("remittance_id", remittanceID),
		slog.String("status", string(r.Status)),
		slog.String("updated_by", actor))
	return r, nil
}

func (s *remittanceService) ExportRemittanceStatement(ctx context.Context, remittanceID string) ([]byte, error) {
	r, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, err
	}
	data, err := export.RemittanceStatement(*r)
	if err != nil {
		s.LogError(ctx, err, "Failed to render remittance statement", slog.String("remittance_id", remittanceID))
		return nil, fmt.Errorf("failed to render statement for %s: %w", r.RemittanceNumber, err)
	}
	return data, nil
}

// periodLog renders a period for structured logs.
func periodLog(p domain.Period) slog.Attr {
	return slog.Group("period",
		slog.String("start", p.Start.Format(time.RFC3339)),
		slog.String("end", p.End.Format(time.RFC3339)))
}
