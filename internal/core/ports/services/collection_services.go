package services

import (
	"context"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// CollectionReaderSvc defines read operations for collection data
type CollectionReaderSvc interface {
	// GetCollection retrieves a collection by ID.
	GetCollection(ctx context.Context, collectionID string) (*domain.Collection, error)

	// ListCollections returns one page of collections and the total match count.
	ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error)

	// ListEligibleForDeposit returns COLLECTED records for the optional hub and collector.
	ListEligibleForDeposit(ctx context.Context, hubID, collectorID string) ([]domain.Collection, error)

	// ListEligibleForRemittance returns the client's DEPOSITED, unreconciled records for shipments
	// delivered within the period.
	ListEligibleForRemittance(ctx context.Context, clientID string, period domain.Period) ([]domain.Collection, error)
}

// CollectionWriterSvc defines write operations for collection data
type CollectionWriterSvc interface {
	// RecordCollection ingests a delivery-completion fact.
	RecordCollection(ctx context.Context, req domain.RecordCollectionRequest, actor string) (*domain.Collection, error)

	// RaiseDispute takes a collection out of further claiming.
	RaiseDispute(ctx context.Context, collectionID, reason, actor string) (*domain.Collection, error)
}

// CollectionSvcFacade combines all collection-related service interfaces
type CollectionSvcFacade interface {
	CollectionReaderSvc
	CollectionWriterSvc
}
