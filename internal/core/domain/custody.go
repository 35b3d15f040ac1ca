package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustodyTotals are the raw sums behind the cash-in-custody identity.
type CustodyTotals struct {
	CollectedInCustody decimal.Decimal `json:"collectedInCustody"`
	Remitted           decimal.Decimal `json:"remitted"`
	LedgerDeposited    decimal.Decimal `json:"ledgerDeposited"`
	LedgerRemitted     decimal.Decimal `json:"ledgerRemitted"`
	DepositVariance    decimal.Decimal `json:"depositVariance"`
}

// CustodyReport checks the cash-in-custody identity against the ledger.
type CustodyReport struct {
	CustodyTotals
	CashInCustody decimal.Decimal `json:"cashInCustody"`
	Consistent    bool            `json:"consistent"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// NewCustodyReport derives custody and consistency from the totals.
// Deposit variance is shortage minus excess, so deposited cash plus variance must equal
// the collected amount claimed by deposits.
func NewCustodyReport(t CustodyTotals, now time.Time) CustodyReport {
	return CustodyReport{
		CustodyTotals: t,
		CashInCustody: t.CollectedInCustody.Sub(t.Remitted),
		Consistent: t.LedgerDeposited.Add(t.DepositVariance).Equal(t.CollectedInCustody) &&
			t.LedgerRemitted.Equal(t.Remitted),
		GeneratedAt: now,
	}
}

// FoldCustodyTotals computes the totals from full record sets.
func FoldCustodyTotals(collections []Collection, deposits []Deposit, remittances []Remittance, entries []LedgerEntry) CustodyTotals {
	t := CustodyTotals{
		CollectedInCustody: decimal.Zero,
		Remitted:           decimal.Zero,
		LedgerDeposited:    decimal.Zero,
		LedgerRemitted:     decimal.Zero,
		DepositVariance:    decimal.Zero,
	}
	for _, c := range collections {
		if c.DepositID != nil {
			t.CollectedInCustody = t.CollectedInCustody.Add(c.CollectedAmount)
		}
	}
	for _, d := range deposits {
		t.DepositVariance = t.DepositVariance.Add(d.ShortageAmount).Sub(d.ExcessAmount)
	}
	for _, r := range remittances {
		t.Remitted = t.Remitted.Add(r.NetRemittance)
	}
	for _, e := range entries {
		switch e.TransactionType {
		case TransactionDeposit:
			t.LedgerDeposited = t.LedgerDeposited.Add(e.Amount)
		case TransactionRemittance:
			t.LedgerRemitted = t.LedgerRemitted.Add(e.Amount)
		}
	}
	return t
}
