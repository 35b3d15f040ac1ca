package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRemittanceStatement(t *testing.T) {
	dep := "d1"
	r := domain.Remittance{
		RemittanceNumber:  "REM-20240331-000001",
		ClientID:          "client-1",
		PeriodStart:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		GrossCODCollected: decimal.NewFromInt(2000),
		Deductions:        decimal.NewFromInt(150),
		NetRemittance:     decimal.NewFromInt(1850),
		ShipmentCount:     2,
		Status:            domain.RemittancePending,
		Collections: []domain.Collection{
			{AWBNumber: "AWB1", CollectionID: "c1", CollectedAmount: decimal.NewFromInt(1200), DepositID: &dep},
			{AWBNumber: "AWB2", CollectionID: "c2", CollectedAmount: decimal.NewFromInt(800), DepositID: &dep},
		},
	}

	data, err := RemittanceStatement(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ShipmentsSheet}, f.GetSheetList())

	net, err := f.GetCellValue(SummarySheet, "B9")
	require.NoError(t, err)
	assert.Equal(t, "1850.00", net)

	rows, err := f.GetRows(ShipmentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "AWB", rows[0][0])
	assert.Equal(t, "AWB2", rows[2][0])
	assert.Equal(t, "800.00", rows[2][6])
}
