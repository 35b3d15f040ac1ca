package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/core/services"
	"github.com/SscSPs/cod_ledger/internal/platform/config"
	"github.com/SscSPs/cod_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		ClaimMaxRetries:   3,
		ClaimRetryBackoff: 0,
		DefaultPageSize:   20,
		MaxPageSize:       100,
	}
}

// newMemoryContainer wires every service to one fresh in-memory store.
func newMemoryContainer() (*portssvc.ServiceContainer, *memory.Store) {
	store := memory.NewStore()
	container := services.NewServiceContainer(testConfig(), memory.NewRepositoryProvider(store),
		services.WithClock(func() time.Time { return fixedNow }))
	return container, store
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func collectionRequest(awb, client string, amount int64) domain.RecordCollectionRequest {
	return domain.RecordCollectionRequest{
		AWBNumber:       awb,
		ClientID:        client,
		HubID:           "hub-1",
		ExpectedAmount:  dec(amount),
		CollectedAmount: dec(amount),
		PaymentMode:     domain.PaymentCash,
		Collector:       domain.Collector{ID: "agent-1"},
		CollectionTime:  fixedNow.Add(-2 * time.Hour),
		DeliveredAt:     fixedNow.Add(-2 * time.Hour),
	}
}

func depositRequest(ids ...string) domain.CreateDepositRequest {
	return domain.CreateDepositRequest{
		CollectionIDs: ids,
		Parties: domain.DepositParties{
			DepositedByID: "agent-1",
			ReceivedByID:  "custodian-1",
			HubID:         "hub-1",
		},
		CreatedBy: "agent-1",
	}
}

func record(ctx context.Context, c *portssvc.ServiceContainer, awb, client string, amount int64) (*domain.Collection, error) {
	return c.Collection.RecordCollection(ctx, collectionRequest(awb, client, amount), "pipeline")
}
