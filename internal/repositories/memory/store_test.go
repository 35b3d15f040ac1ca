package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store, id, awb, client string, amount int64) domain.Collection {
	t.Helper()
	req := domain.RecordCollectionRequest{
		AWBNumber:       awb,
		ClientID:        client,
		HubID:           "hub-1",
		ExpectedAmount:  decimal.NewFromInt(amount),
		CollectedAmount: decimal.NewFromInt(amount),
		PaymentMode:     domain.PaymentCash,
		Collector:       domain.Collector{ID: "agent-1"},
		CollectionTime:  testNow,
		DeliveredAt:     testNow,
	}
	c, err := s.RecordCollection(context.Background(), domain.NewCollection(id, req, "agent-1", testNow), req.Fact())
	require.NoError(t, err)
	return *c
}

func depositClaim(id string, ids ...string) portsrepo.DepositClaim {
	return portsrepo.DepositClaim{
		DepositID: id,
		EntryID:   "entry-" + id,
		Request: domain.CreateDepositRequest{
			CollectionIDs: ids,
			Parties:       domain.DepositParties{DepositedByID: "agent-1", ReceivedByID: "custodian-1", HubID: "hub-1"},
		},
		Now: testNow,
	}
}

func TestRecordCollection_RewritesUntilConsumed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	first := seed(t, s, "c1", "AWB1", "client-1", 500)

	second := seed(t, s, "c-other", "AWB1", "client-1", 450)
	assert.Equal(t, first.CollectionID, second.CollectionID, "same awb keeps its record")
	assert.True(t, second.CollectedAmount.Equal(decimal.NewFromInt(450)))

	_, err := s.ClaimDeposit(ctx, depositClaim("d1", "c1"))
	require.NoError(t, err)

	_, err = s.RecordCollection(ctx, domain.Collection{CollectionID: "c2", AWBNumber: "AWB1"}, domain.DeliveryFact{AWBNumber: "AWB1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := s.FindCollectionByAWB(ctx, "AWB1")
	require.NoError(t, err)
	assert.True(t, stored.CollectedAmount.Equal(decimal.NewFromInt(450)))
}

func TestClaimDeposit_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "c1", "AWB1", "client-1", 500)
	seed(t, s, "c2", "AWB2", "client-1", 300)

	_, err := s.ClaimDeposit(ctx, depositClaim("d1", "c1", "missing"))
	var setErr *apperrors.InvalidCollectionSetError
	require.ErrorAs(t, err, &setErr)
	assert.Equal(t, 1, setErr.Offending())
	assert.Equal(t, []string{"missing"}, setErr.OffendingIDs)

	c1, err := s.FindCollectionByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionCollected, c1.Status, "failed claim leaves no trace")
	assert.Empty(t, s.entries)

	d, err := s.ClaimDeposit(ctx, depositClaim("d1", "c1", "c2"))
	require.NoError(t, err)
	assert.Equal(t, "DEP-20240315-000001", d.DepositNumber)
	assert.Len(t, d.Collections, 2)

	d2, err := s.ClaimDeposit(ctx, depositClaim("d2", "c2"))
	assert.Nil(t, d2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCollectionSet)
}

func TestClaimDeposit_ConcurrentOverlapHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 10; i++ {
		seed(t, s, fmt.Sprintf("c%d", i), fmt.Sprintf("AWB%d", i), "client-1", 100)
	}

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every contender wants c0 plus one private collection
			_, errs[i] = s.ClaimDeposit(ctx, depositClaim(fmt.Sprintf("d%d", i), "c0", fmt.Sprintf("c%d", i+1)))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInvalidCollectionSet)
	}
	assert.Equal(t, 1, wins)
	assert.Len(t, s.deposits, 1)
	assert.Len(t, s.entries, 1)
}

func TestClaimRemittance_ImplicitAndExplicit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "c1", "AWB1", "client-1", 1200)
	seed(t, s, "c2", "AWB2", "client-1", 800)
	seed(t, s, "c3", "AWB3", "client-2", 100)
	_, err := s.ClaimDeposit(ctx, depositClaim("d1", "c1", "c2", "c3"))
	require.NoError(t, err)

	awbs, err := s.FindDeliveredShipments(ctx, "client-1", testNow.Add(-time.Hour), testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"AWB1", "AWB2"}, awbs)

	period := domain.Period{Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour)}
	_, err = s.ClaimRemittance(ctx, portsrepo.RemittanceClaim{
		RemittanceID: "r0",
		Request:      domain.CreateRemittanceRequest{ClientID: "client-1", Period: period, CollectionIDs: []string{"c1", "c3"}},
		Now:          testNow,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCollectionSet, "c3 belongs to another client")

	r, err := s.ClaimRemittance(ctx, portsrepo.RemittanceClaim{
		RemittanceID: "r1",
		EntryID:      "e-r1",
		Request:      domain.CreateRemittanceRequest{ClientID: "client-1", Period: period, Deductions: decimal.NewFromInt(150)},
		AWBNumbers:   awbs,
		Now:          testNow,
	})
	require.NoError(t, err)
	assert.True(t, r.NetRemittance.Equal(decimal.NewFromInt(1850)))
	assert.Equal(t, "REM-20240315-000001", r.RemittanceNumber)

	_, err = s.ClaimRemittance(ctx, portsrepo.RemittanceClaim{
		RemittanceID: "r2",
		Request:      domain.CreateRemittanceRequest{ClientID: "client-1", Period: period},
		AWBNumbers:   awbs,
		Now:          testNow,
	})
	assert.ErrorIs(t, err, apperrors.ErrNoEligibleCollections)

	balance, count, err := s.AccountBalance(ctx, domain.Account{Type: domain.AccountClient, ID: "client-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, balance.Equal(decimal.NewFromInt(-1850)))
}

func TestListEntries_Cursor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	account := domain.Account{Type: domain.AccountHub, ID: "hub-1"}
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendEntry(ctx, domain.LedgerEntry{
			EntryID:         fmt.Sprintf("e%d", i),
			AccountType:     domain.AccountHub,
			AccountID:       "hub-1",
			Amount:          decimal.NewFromInt(1),
			Direction:       domain.Credit,
			TransactionTime: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.ListEntries(ctx, account, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e4", page[0].EntryID)

	last := page[1]
	page, err = s.ListEntries(ctx, account, 10, &domain.LedgerCursor{TransactionTime: last.TransactionTime, EntryID: last.EntryID})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "e2", page[0].EntryID)
}

func TestResolveName(t *testing.T) {
	s := NewStore()
	s.RegisterName(external.PartyHub, "hub-1", "Andheri Hub")

	name, err := s.ResolveName(context.Background(), external.PartyHub, "hub-1")
	require.NoError(t, err)
	assert.Equal(t, "Andheri Hub", name)

	_, err = s.ResolveName(context.Background(), external.PartyUser, "hub-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
