package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDepositMapping_FlattensTender(t *testing.T) {
	d := domain.Deposit{
		DepositID:       "d1",
		DepositParties:  domain.DepositParties{HubID: "hub-1", DepositedByID: "agent-1"},
		TenderBreakdown: domain.TenderBreakdown{Cash: decimal.NewFromInt(500), UPI: decimal.NewFromInt(450)},
		Status:          domain.DepositDiscrepancy,
	}
	m := ToModelDeposit(d)
	assert.True(t, m.CashAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "hub-1", m.HubID)
	assert.Equal(t, "DISCREPANCY", m.Status)

	back := ToDomainDeposit(m)
	assert.Equal(t, "agent-1", back.DepositedByID)
	assert.True(t, back.TenderBreakdown.UPI.Equal(decimal.NewFromInt(450)))
}

func TestRemittanceMapping_KeepsBreakdownVerbatim(t *testing.T) {
	r := domain.Remittance{
		RemittanceID:       "r1",
		DeductionBreakdown: json.RawMessage(`{"codFee":100}`),
		BankDetails:        domain.BankDetails{IFSC: "HDFC0001"},
	}
	m := ToModelRemittance(r)
	assert.Equal(t, `{"codFee":100}`, string(m.DeductionBreakdown))
	assert.Equal(t, "HDFC0001", m.BankIFSC)

	empty := ToModelRemittance(domain.Remittance{})
	assert.Nil(t, empty.DeductionBreakdown, "no breakdown is stored as NULL")
	assert.Nil(t, ToDomainRemittance(empty).DeductionBreakdown)
}

func TestLedgerMapping_EmptyReferenceIsNull(t *testing.T) {
	e := domain.LedgerEntry{EntryID: "e1", Direction: domain.Credit, TransactionTime: time.Now()}
	m := ToModelLedgerEntry(e)
	assert.Nil(t, m.ReferenceID)
	assert.Equal(t, "", ToDomainLedgerEntry(m).ReferenceID)

	e.ReferenceID = "d1"
	m = ToModelLedgerEntry(e)
	if assert.NotNil(t, m.ReferenceID) {
		assert.Equal(t, "d1", *m.ReferenceID)
	}
}
