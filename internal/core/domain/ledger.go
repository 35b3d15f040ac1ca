package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry by the flow that produced it.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionRemittance TransactionType = "REMITTANCE"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

// Direction is the side of a ledger entry.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// IsValid reports whether d is DEBIT or CREDIT.
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// AccountType is the kind of party holding custody.
type AccountType string

const (
	AccountAgent  AccountType = "AGENT"
	AccountHub    AccountType = "HUB"
	AccountClient AccountType = "CLIENT"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountAgent, AccountHub, AccountClient:
		return true
	}
	return false
}

// Account identifies a custody holder in the ledger.
type Account struct {
	Type AccountType `json:"accountType"`
	ID   string      `json:"accountId"`
}

func (a Account) String() string {
	return fmt.Sprintf("%s:%s", a.Type, a.ID)
}

// Validate checks the account reference.
func (a Account) Validate() error {
	if a.ID == "" {
		return apperrors.NewMissingFieldsError("accountId")
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, a.Type)
	}
	return nil
}

// ReferenceType names the aggregate a ledger entry points to.
type ReferenceType string

const (
	ReferenceDeposit    ReferenceType = "DEPOSIT"
	ReferenceRemittance ReferenceType = "REMITTANCE"
	ReferenceManual     ReferenceType = "MANUAL"
)

// LedgerEntry is an immutable record of one cash movement.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	TransactionType TransactionType `json:"transactionType"`
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
	AccountType     AccountType     `json:"accountType"`
	AccountID       string          `json:"accountID"`
	HubID           *string         `json:"hubID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       Direction       `json:"direction"`
	Description     string          `json:"description"`
	TransactionTime time.Time       `json:"transactionTime"`
	CreatedBy       string          `json:"createdBy"`
}

// Concerns reports whether the entry moved cash for the account. Deposit entries are
// posted against the depositing agent and also attributed to the receiving hub.
func (e LedgerEntry) Concerns(a Account) bool {
	if e.AccountType == a.Type && e.AccountID == a.ID {
		return true
	}
	return a.Type == AccountHub && e.HubID != nil && *e.HubID == a.ID
}

// Signed returns the entry amount with DEBIT negative.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// NewDepositEntry is the DEBIT posted when an agent hands cash to a hub.
func NewDepositEntry(id string, d Deposit) LedgerEntry {
	hub := d.HubID
	return LedgerEntry{
		EntryID:         id,
		TransactionType: TransactionDeposit,
		ReferenceType:   ReferenceDeposit,
		ReferenceID:     d.DepositID,
		AccountType:     AccountAgent,
		AccountID:       d.DepositedByID,
		HubID:           &hub,
		Amount:          d.DepositedAmount,
		Direction:       Debit,
		Description:     fmt.Sprintf("Deposit %s: %d collections received at hub %s", d.DepositNumber, d.CollectionCount, d.HubID),
		TransactionTime: d.DepositedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// NewRemittanceEntry is the DEBIT posted when net proceeds leave custody toward a client.
func NewRemittanceEntry(id string, r Remittance) LedgerEntry {
	return LedgerEntry{
		EntryID:         id,
		TransactionType: TransactionRemittance,
		ReferenceType:   ReferenceRemittance,
		ReferenceID:     r.RemittanceID,
		AccountType:     AccountClient,
		AccountID:       r.ClientID,
		Amount:          r.NetRemittance,
		Direction:       Debit,
		Description:     fmt.Sprintf("Remittance %s: %d shipments", r.RemittanceNumber, r.ShipmentCount),
		TransactionTime: r.CreatedAt,
		CreatedBy:       r.CreatedBy,
	}
}

// AdjustmentRequest is a manual correction posted by an operator.
type AdjustmentRequest struct {
	Account     Account
	Amount      decimal.Decimal
	Direction   Direction
	Description string
	ReferenceID string
	CreatedBy   string
}

// Validate checks the adjustment before it is appended.
func (r AdjustmentRequest) Validate() error {
	if err := r.Account.Validate(); err != nil {
		return err
	}
	if r.Description == "" {
		return apperrors.NewMissingFieldsError("description")
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%w: direction must be DEBIT or CREDIT", apperrors.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: adjustment amount must be positive", apperrors.ErrInvalidAmount)
	}
	return nil
}

// NewAdjustmentEntry builds the entry for a validated adjustment.
func NewAdjustmentEntry(id string, r AdjustmentRequest, now time.Time) LedgerEntry {
	e := LedgerEntry{
		EntryID:         id,
		TransactionType: TransactionAdjustment,
		ReferenceType:   ReferenceManual,
		ReferenceID:     r.ReferenceID,
		AccountType:     r.Account.Type,
		AccountID:       r.Account.ID,
		Amount:          r.Amount,
		Direction:       r.Direction,
		Description:     r.Description,
		TransactionTime: now,
		CreatedBy:       r.CreatedBy,
	}
	if r.Account.Type == AccountHub {
		hub := r.Account.ID
		e.HubID = &hub
	}
	return e
}

// Balance folds entries for an account: credits add, debits subtract.
func Balance(a Account, entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Concerns(a) {
			total = total.Add(e.Signed())
		}
	}
	return total
}

// AccountBalance is the folded balance of one account.
type AccountBalance struct {
	Account
	Balance    decimal.Decimal `json:"balance"`
	EntryCount int             `json:"entryCount"`
	AsOf       time.Time       `json:"asOf"`
}

// LedgerCursor positions a descending (transactionTime, entryID) scan.
type LedgerCursor struct {
	TransactionTime time.Time
	EntryID         string
}

// Before reports whether e sorts after the cursor in a newest-first scan.
func (c LedgerCursor) Before(e LedgerEntry) bool {
	if e.TransactionTime.Equal(c.TransactionTime) {
		return e.EntryID < c.EntryID
	}
	return e.TransactionTime.Before(c.TransactionTime)
}
