package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary(t *testing.T) {
	now := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	dID := "d1"

	var collections []domain.Collection
	for i := 0; i < 7; i++ {
		collections = append(collections, domain.Collection{
			CollectionID:    fmt.Sprintf("c%d", i),
			HubID:           "hub-1",
			CollectedByID:   fmt.Sprintf("agent-%d", i),
			CollectedAmount: dec(int64(100 * (i + 1))),
			CollectionTime:  now,
			Status:          domain.CollectionCollected,
		})
	}
	collections = append(collections, domain.Collection{
		CollectionID:    "old",
		HubID:           "hub-1",
		CollectedByID:   "agent-0",
		CollectedAmount: dec(1000),
		CollectionTime:  yesterday,
		Status:          domain.CollectionDeposited,
		DepositID:       &dID,
	})
	collections = append(collections, domain.Collection{
		CollectionID:    "other-hub",
		HubID:           "hub-2",
		CollectedAmount: dec(9999),
		CollectionTime:  now,
		Status:          domain.CollectionCollected,
	})
	deposits := []domain.Deposit{
		{DepositParties: domain.DepositParties{HubID: "hub-1"}, Status: domain.DepositDiscrepancy, ShortageAmount: dec(50), DepositedAt: now},
		{DepositParties: domain.DepositParties{HubID: "hub-1"}, Status: domain.DepositVerified, DepositedAt: now},
	}

	s := domain.BuildSummary(collections, deposits, domain.SummaryFilter{HubID: "hub-1"}, now)

	assert.Equal(t, 7, s.TodayCollections.Count)
	assert.True(t, s.TodayCollections.Amount.Equal(dec(2800)))
	assert.Equal(t, 7, s.PendingDeposits.Count)
	assert.Equal(t, 1, s.PendingRemittances.Count)
	assert.True(t, s.PendingRemittances.Amount.Equal(dec(1000)))
	require.Len(t, s.StatusBreakdown, 2)
	assert.Equal(t, domain.CollectionCollected, s.StatusBreakdown[0].Status)
	require.Len(t, s.TopCollectors, domain.TopCollectorsLimit)
	assert.Equal(t, "agent-0", s.TopCollectors[0].CollectorID, "agent-0 has 1100 across two days")
	assert.Equal(t, "agent-6", s.TopCollectors[1].CollectorID)
	assert.Equal(t, 1, s.Discrepancies.Count)
	assert.True(t, s.Discrepancies.Shortage.Equal(dec(50)))
}
