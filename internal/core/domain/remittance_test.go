package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNet(t *testing.T) {
	tests := []struct {
		name       string
		gross      decimal.Decimal
		deductions decimal.Decimal
		want       decimal.Decimal
	}{
		{"no deductions", dec(2000), dec(0), dec(2000)},
		{"with deductions", dec(2000), dec(150), dec(1850)},
		{"deductions equal gross", dec(2000), dec(2000), dec(0)},
		{"deductions exceed gross", dec(2000), dec(2100), dec(-100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeNet(tt.gross, tt.deductions)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.True(t, got.Equal(tt.gross.Sub(tt.deductions)))
		})
	}
}

func TestBuildRemittance(t *testing.T) {
	now := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	period := domain.Period{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	t.Run("net is gross minus deductions", func(t *testing.T) {
		req := domain.CreateRemittanceRequest{ClientID: "client-1", Period: period, Deductions: dec(150)}
		r, err := domain.BuildRemittance("r1", "REM-20240331-000001", req, collectionsOf(1200, 800), now)
		require.NoError(t, err)
		assert.True(t, r.GrossCODCollected.Equal(dec(2000)))
		assert.True(t, r.NetRemittance.Equal(dec(1850)))
		assert.Equal(t, 2, r.ShipmentCount)
		assert.Equal(t, domain.RemittancePending, r.Status)
	})

	t.Run("empty selection", func(t *testing.T) {
		req := domain.CreateRemittanceRequest{ClientID: "client-1", Period: period}
		_, err := domain.BuildRemittance("r1", "n", req, nil, now)
		assert.ErrorIs(t, err, apperrors.ErrNoEligibleCollections)
	})

	t.Run("negative net is rejected", func(t *testing.T) {
		req := domain.CreateRemittanceRequest{ClientID: "client-1", Period: period, Deductions: dec(2500)}
		_, err := domain.BuildRemittance("r1", "n", req, collectionsOf(2000), now)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCreateRemittanceRequest_Validate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     domain.CreateRemittanceRequest
		wantErr error
	}{
		{"valid", domain.CreateRemittanceRequest{ClientID: "c", Period: domain.Period{Start: start, End: end}}, nil},
		{"missing client", domain.CreateRemittanceRequest{Period: domain.Period{Start: start, End: end}}, apperrors.ErrMissingFields},
		{"missing period", domain.CreateRemittanceRequest{ClientID: "c"}, apperrors.ErrMissingFields},
		{"inverted period", domain.CreateRemittanceRequest{ClientID: "c", Period: domain.Period{Start: end, End: start}}, apperrors.ErrValidation},
		{"negative deductions", domain.CreateRemittanceRequest{ClientID: "c", Period: domain.Period{Start: start, End: end}, Deductions: dec(-1)}, apperrors.ErrInvalidAmount},
		{"bad breakdown", domain.CreateRemittanceRequest{ClientID: "c", Period: domain.Period{Start: start, End: end}, DeductionBreakdown: json.RawMessage("{")}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemittance_Advance(t *testing.T) {
	now := time.Now().UTC()
	r := domain.Remittance{Status: domain.RemittancePending}

	assert.ErrorIs(t, r.Advance(domain.RemittancePaid, "ops", "", now), apperrors.ErrConflict, "cannot skip approval")
	require.NoError(t, r.Advance(domain.RemittanceApproved, "ops", "", now))
	require.NotNil(t, r.ApprovedBy)
	require.NoError(t, r.Advance(domain.RemittancePaid, "bank", "UTR123", now))
	assert.Equal(t, "UTR123", *r.PaymentReference)
	assert.ErrorIs(t, r.Advance(domain.RemittanceApproved, "ops", "", now), apperrors.ErrConflict, "never backward")
}

func TestFormatNumber(t *testing.T) {
	day := domain.SequenceDay(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "20240315", day)
	assert.Equal(t, "DEP-20240315-000042", domain.FormatNumber(domain.DepositNumberPrefix, day, 42))
	assert.Equal(t, "REM-20240315-1234567", domain.FormatNumber(domain.RemittanceNumberPrefix, day, 1234567))
}
