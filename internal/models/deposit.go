package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is a row of cod_deposits. Tender sub-totals are stored flat.
type Deposit struct {
	DepositID        string          `json:"depositID"`
	DepositNumber    string          `json:"depositNumber"`
	DepositedByID    string          `json:"depositedByID"`
	DepositedByName  string          `json:"depositedByName"`
	DepositedByType  string          `json:"depositedByType"`
	ReceivedByID     string          `json:"receivedByID"`
	ReceivedByName   string          `json:"receivedByName"`
	HubID            string          `json:"hubID"`
	ExpectedAmount   decimal.Decimal `json:"expectedAmount"`
	DepositedAmount  decimal.Decimal `json:"depositedAmount"`
	ShortageAmount   decimal.Decimal `json:"shortageAmount"`
	ExcessAmount     decimal.Decimal `json:"excessAmount"`
	CashAmount       decimal.Decimal `json:"cashAmount"`
	UPIAmount        decimal.Decimal `json:"upiAmount"`
	CardAmount       decimal.Decimal `json:"cardAmount"`
	ChequeAmount     decimal.Decimal `json:"chequeAmount"`
	CollectionCount  int             `json:"collectionCount"`
	Status           string          `json:"status"`
	DepositedAt      time.Time       `json:"depositedAt"`
	Remarks          string          `json:"remarks"`
	VerifiedAt       *time.Time      `json:"verifiedAt"`       // Nullable
	VerifiedBy       *string         `json:"verifiedBy"`       // Nullable
	VerificationNote *string         `json:"verificationNote"` // Nullable
	AuditFields
}
