package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of ledger_entries. Rows are insert-only.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	TransactionType string          `json:"transactionType"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     *string         `json:"referenceID"` // Nullable for free-standing adjustments
	AccountType     string          `json:"accountType"`
	AccountID       string          `json:"accountID"`
	HubID           *string         `json:"hubID"` // Nullable
	Amount          decimal.Decimal `json:"amount"`
	Direction       string          `json:"direction"`
	Description     string          `json:"description"`
	TransactionTime time.Time       `json:"transactionTime"`
	CreatedBy       string          `json:"createdBy"`
}
