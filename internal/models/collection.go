package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection is a row of cod_collections.
type Collection struct {
	CollectionID    string          `json:"collectionID"`
	AWBNumber       string          `json:"awbNumber"`
	ClientID        string          `json:"clientID"`
	HubID           string          `json:"hubID"`
	ExpectedAmount  decimal.Decimal `json:"expectedAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	PaymentMode     string          `json:"paymentMode"`
	CollectedByID   string          `json:"collectedByID"`
	CollectedByName string          `json:"collectedByName"`
	CollectionTime  time.Time       `json:"collectionTime"`
	Status          string          `json:"status"`
	DepositID       *string         `json:"depositID"`    // Nullable
	DepositedAt     *time.Time      `json:"depositedAt"`  // Nullable
	RemittanceID    *string         `json:"remittanceID"` // Nullable
	IsReconciled    bool            `json:"isReconciled"`
	ReconciledAt    *time.Time      `json:"reconciledAt"`  // Nullable
	DisputeReason   *string         `json:"disputeReason"` // Nullable
	DisputedAt      *time.Time      `json:"disputedAt"`    // Nullable
	DisputedBy      *string         `json:"disputedBy"`    // Nullable
	AuditFields
}

// DeliveryFact is a row of delivery_facts.
type DeliveryFact struct {
	AWBNumber   string    `json:"awbNumber"`
	ClientID    string    `json:"clientID"`
	HubID       string    `json:"hubID"`
	DeliveredAt time.Time `json:"deliveredAt"`
}
