package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

// CollectionReader defines read operations for collection data
type CollectionReader interface {
	// FindCollectionByID retrieves a collection by its unique identifier.
	FindCollectionByID(ctx context.Context, collectionID string) (*domain.Collection, error)

	// FindCollectionByAWB retrieves the collection recorded for a shipment waybill.
	FindCollectionByAWB(ctx context.Context, awbNumber string) (*domain.Collection, error)

	// ListCollections returns one page of collections matching the filter and the total match count.
	ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error)

	// ListRemittableByAWBs returns the client's DEPOSITED, unreconciled collections among the given waybills.
	ListRemittableByAWBs(ctx context.Context, clientID string, awbNumbers []string) ([]domain.Collection, error)
}

// CollectionWriter defines write operations for collection data
type CollectionWriter interface {
	// RecordCollection inserts the collection, or rewrites the existing record for the same awb
	// when nothing has consumed it yet. It returns the stored record. A consumed record yields ErrConflict.
	RecordCollection(ctx context.Context, collection domain.Collection, fact domain.DeliveryFact) (*domain.Collection, error)

	// DisputeCollection moves a collection into DISPUTED under the same lock claims take.
	DisputeCollection(ctx context.Context, collectionID, reason, actor string, now time.Time) (*domain.Collection, error)
}

// CollectionRepositoryFacade combines all collection-related repository interfaces
type CollectionRepositoryFacade interface {
	CollectionReader
	CollectionWriter
}
