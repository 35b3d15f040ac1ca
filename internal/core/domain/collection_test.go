package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.CollectionStatus
		to   domain.CollectionStatus
		want bool
	}{
		{"collected to deposited", domain.CollectionCollected, domain.CollectionDeposited, true},
		{"deposited to reconciled", domain.CollectionDeposited, domain.CollectionReconciled, true},
		{"skip deposited", domain.CollectionCollected, domain.CollectionReconciled, false},
		{"backward", domain.CollectionDeposited, domain.CollectionCollected, false},
		{"reconciled back to deposited", domain.CollectionReconciled, domain.CollectionDeposited, false},
		{"collected to disputed", domain.CollectionCollected, domain.CollectionDisputed, true},
		{"reconciled to disputed", domain.CollectionReconciled, domain.CollectionDisputed, true},
		{"disputed is terminal", domain.CollectionDisputed, domain.CollectionCollected, false},
		{"disputed to disputed", domain.CollectionDisputed, domain.CollectionDisputed, false},
		{"self loop", domain.CollectionCollected, domain.CollectionCollected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRecordCollectionRequest_Validate(t *testing.T) {
	valid := func() domain.RecordCollectionRequest {
		return domain.RecordCollectionRequest{
			AWBNumber:       "AWB1",
			ClientID:        "client-1",
			HubID:           "hub-1",
			ExpectedAmount:  decimal.NewFromInt(500),
			CollectedAmount: decimal.NewFromInt(500),
			PaymentMode:     domain.PaymentCash,
			Collector:       domain.Collector{ID: "agent-1", Name: "Ravi"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *domain.RecordCollectionRequest)
		wantErr error
	}{
		{"valid", func(r *domain.RecordCollectionRequest) {}, nil},
		{"missing awb", func(r *domain.RecordCollectionRequest) { r.AWBNumber = "" }, apperrors.ErrMissingFields},
		{"missing collector", func(r *domain.RecordCollectionRequest) { r.Collector.ID = "" }, apperrors.ErrMissingFields},
		{"unknown mode", func(r *domain.RecordCollectionRequest) { r.PaymentMode = "BARTER" }, apperrors.ErrValidation},
		{"negative collected", func(r *domain.RecordCollectionRequest) { r.CollectedAmount = decimal.NewFromInt(-1) }, apperrors.ErrInvalidAmount},
		{"negative expected", func(r *domain.RecordCollectionRequest) { r.ExpectedAmount = decimal.NewFromInt(-1) }, apperrors.ErrInvalidAmount},
		{"zero collected is fine", func(r *domain.RecordCollectionRequest) { r.CollectedAmount = decimal.Zero }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCollection_Lifecycle(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	c := domain.NewCollection("c1", domain.RecordCollectionRequest{
		AWBNumber:       "AWB1",
		CollectedAmount: decimal.NewFromInt(400),
		ExpectedAmount:  decimal.NewFromInt(500),
		PaymentMode:     domain.PaymentUPI,
		Collector:       domain.Collector{ID: "agent-1"},
	}, "agent-1", now)

	assert.Equal(t, domain.CollectionCollected, c.Status)
	assert.True(t, c.IsDepositable())
	assert.True(t, c.IsRewritable())
	assert.False(t, c.IsRemittable())
	assert.True(t, c.Variance().Equal(decimal.NewFromInt(-100)))

	c.MarkDeposited("d1", now)
	assert.False(t, c.IsDepositable())
	assert.False(t, c.IsRewritable())
	assert.True(t, c.IsRemittable())
	require.NotNil(t, c.DepositID)
	assert.Equal(t, "d1", *c.DepositID)

	c.MarkReconciled("r1", now)
	assert.Equal(t, domain.CollectionReconciled, c.Status)
	assert.True(t, c.IsReconciled)
	assert.False(t, c.IsRemittable())
	assert.True(t, c.CollectedAmount.Equal(decimal.NewFromInt(400)), "amount never changes through claiming")

	require.NoError(t, c.Dispute("customer complaint", "ops-1", now))
	assert.Equal(t, domain.CollectionDisputed, c.Status)
	assert.Equal(t, "r1", *c.RemittanceID, "links survive a dispute")
	assert.ErrorIs(t, c.Dispute("again", "ops-1", now), apperrors.ErrConflict)
}

func TestCollectionFilter_Matches(t *testing.T) {
	dep := "d1"
	c := domain.Collection{Status: domain.CollectionDeposited, HubID: "hub-1", CollectedByID: "agent-1", ClientID: "client-1", DepositID: &dep}

	assert.True(t, domain.CollectionFilter{}.Matches(c))
	assert.True(t, domain.CollectionFilter{HubID: "hub-1", DepositID: "d1"}.Matches(c))
	assert.False(t, domain.CollectionFilter{Status: domain.CollectionCollected}.Matches(c))
	assert.False(t, domain.CollectionFilter{RemittanceID: "r1"}.Matches(c))
	assert.False(t, domain.CollectionFilter{CollectorID: "agent-2"}.Matches(c))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, domain.UniqueStrings([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, domain.UniqueStrings(nil))
}

func TestOffendingForDeposit(t *testing.T) {
	dep := "d0"
	found := []domain.Collection{
		{CollectionID: "c1", Status: domain.CollectionCollected},
		{CollectionID: "c2", Status: domain.CollectionDeposited, DepositID: &dep},
		{CollectionID: "c3", Status: domain.CollectionDisputed},
	}
	assert.Equal(t, []string{"c2", "c3", "c4"}, domain.OffendingForDeposit([]string{"c1", "c2", "c3", "c4"}, found))
	assert.Empty(t, domain.OffendingForDeposit([]string{"c1"}, found))
}

func TestOffendingForRemittance(t *testing.T) {
	dep := "d0"
	found := []domain.Collection{
		{CollectionID: "c1", ClientID: "client-1", Status: domain.CollectionDeposited, DepositID: &dep},
		{CollectionID: "c2", ClientID: "client-2", Status: domain.CollectionDeposited, DepositID: &dep},
		{CollectionID: "c3", ClientID: "client-1", Status: domain.CollectionCollected},
	}
	assert.Equal(t, []string{"c2", "c3"}, domain.OffendingForRemittance([]string{"c1", "c2", "c3"}, found, "client-1"))
}
