package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
)

// collectionService is the Collection Registry.
type collectionService struct {
	BaseService
	collectionRepo portsrepo.CollectionRepositoryFacade
	shipments      external.ShipmentDirectory
}

// NewCollectionService creates a new Collection Registry.
func NewCollectionService(collectionRepo portsrepo.CollectionRepositoryFacade, shipments external.ShipmentDirectory, options ...ServiceOption) portssvc.CollectionSvcFacade {
	return &collectionService{
		BaseService:    newBaseService(options),
		collectionRepo: collectionRepo,
		shipments:      shipments,
	}
}

var _ portssvc.CollectionSvcFacade = (*collectionService)(nil)

func (s *collectionService) RecordCollection(ctx context.Context, req domain.RecordCollectionRequest, actor string) (*domain.Collection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := s.Now()
	if req.CollectionTime.IsZero() {
		req.CollectionTime = now
	}
	if req.DeliveredAt.IsZero() {
		req.DeliveredAt = req.CollectionTime
	}
	req.Collector.Name = s.resolveName(ctx, external.PartyUser, req.Collector.ID, req.Collector.Name)

	collection := domain.NewCollection(uuid.NewString(), req, actor, now)
	stored, err := s.collectionRepo.RecordCollection(ctx, collection, req.Fact())
	if err != nil {
		s.LogError(ctx, err, "Failed to record collection", slog.String("awb_number", req.AWBNumber))
		return nil, fmt.Errorf("failed to record collection for awb %s: %w", req.AWBNumber, err)
	}

	s.LogInfo(ctx, "Collection recorded",
		slog.String("collection_id", stored.CollectionID),
		slog.String("awb_number", stored.AWBNumber),
		slog.String("collected_amount", stored.CollectedAmount.String()),
		slog.Bool("rewritten", stored.CollectionID != collection.CollectionID))
	return stored, nil
}

func (s *collectionService) GetCollection(ctx context.Context, collectionID string) (*domain.Collection, error) {
	c, err := s.collectionRepo.FindCollectionByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *collectionService) ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown collection status %q", apperrors.ErrValidation, filter.Status)
	}
	filter.Page = s.clampPage(filter.Page)
	collections, total, err := s.collectionRepo.ListCollections(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collections")
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, total, nil
}

func (s *collectionService) ListEligibleForDeposit(ctx context.Context, hubID, collectorID string) ([]domain.Collection, error) {
	// the eligible set is returned whole; a deposit may claim any of it
	collections, _, err := s.collectionRepo.ListCollections(ctx, domain.CollectionFilter{
		Status:      domain.CollectionCollected,
		HubID:       hubID,
		CollectorID: collectorID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list collections eligible for deposit")
		return nil, fmt.Errorf("failed to list eligible collections: %w", err)
	}
	return collections, nil
}

func (s *collectionService) ListEligibleForRemittance(ctx context.Context, clientID string, period domain.Period) ([]domain.Collection, error) {
	if clientID == "" {
		return nil, apperrors.NewMissingFieldsError("clientId")
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: a valid period is required", apperrors.ErrValidation)
	}
	awbs, err := s.shipments.FindDeliveredShipments(ctx, clientID, period.Start, period.End)
	if err != nil {
		s.LogError(ctx, err, "Shipment directory lookup failed", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to look up delivered shipments: %w", err)
	}
	if len(awbs) == 0 {
		return []domain.Collection{}, nil
	}
	return s.collectionRepo.ListRemittableByAWBs(ctx, clientID, awbs)
}

func (s *collectionService) RaiseDispute(ctx context.Context, collectionID, reason, actor string) (*domain.Collection, error) {
	if reason == "" {
		return nil, apperrors.NewMissingFieldsError("reason")
	}
	c, err := s.collectionRepo.DisputeCollection(ctx, collectionID, reason, actor, s.Now())
	if err != nil {
		s.LogWarn(ctx, err, "Failed to raise dispute", slog.String("collection_id", collectionID))
		return nil, err
	}
	s.LogInfo(ctx, "Collection disputed",
		slog.String("collection_id", collectionID),
		slog.String("awb_number", c.AWBNumber),
		slog.String("disputed_by", actor))
	return c, nil
}
