package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CollectionStatus is the custody state of one shipment's COD cash.
type CollectionStatus string

const (
	CollectionCollected  CollectionStatus = "COLLECTED"
	CollectionDeposited  CollectionStatus = "DEPOSITED"
	CollectionReconciled CollectionStatus = "RECONCILED"
	CollectionDisputed   CollectionStatus = "DISPUTED"
)

// collectionRank orders the forward path. DISPUTED is handled separately.
var collectionRank = map[CollectionStatus]int{
	CollectionCollected:  1,
	CollectionDeposited:  2,
	CollectionReconciled: 3,
}

// IsValid reports whether s is a known collection status.
func (s CollectionStatus) IsValid() bool {
	if s == CollectionDisputed {
		return true
	}
	_, ok := collectionRank[s]
	return ok
}

// CanTransitionTo reports whether a collection in status s may move to next.
// The forward path is COLLECTED -> DEPOSITED -> RECONCILED, one step at a time.
// DISPUTED is reachable from every other state and is terminal.
func (s CollectionStatus) CanTransitionTo(next CollectionStatus) bool {
	if s == CollectionDisputed {
		return false
	}
	if next == CollectionDisputed {
		return true
	}
	from, okFrom := collectionRank[s]
	to, okTo := collectionRank[next]
	return okFrom && okTo && to == from+1
}

// PaymentMode is the tender used by the consignee at the doorstep.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "CASH"
	PaymentUPI    PaymentMode = "UPI"
	PaymentCard   PaymentMode = "CARD"
	PaymentCheque PaymentMode = "CHEQUE"
)

// IsValid reports whether m is a known payment mode.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentCheque:
		return true
	}
	return false
}

// Collector identifies the field agent who took the cash.
type Collector struct {
	ID   string `json:"collectedById"`
	Name string `json:"collectedByName"`
}

// Collection is the custody record of one shipment's COD cash.
type Collection struct {
	CollectionID    string           `json:"collectionID"`
	AWBNumber       string           `json:"awbNumber"`
	ClientID        string           `json:"clientID"`
	HubID           string           `json:"hubID"`
	ExpectedAmount  decimal.Decimal  `json:"expectedAmount"`
	CollectedAmount decimal.Decimal  `json:"collectedAmount"`
	PaymentMode     PaymentMode      `json:"paymentMode"`
	CollectedByID   string           `json:"collectedByID"`
	CollectedByName string           `json:"collectedByName"`
	CollectionTime  time.Time        `json:"collectionTime"`
	Status          CollectionStatus `json:"status"`

	DepositID   *string    `json:"depositID,omitempty"`
	DepositedAt *time.Time `json:"depositedAt,omitempty"`

	RemittanceID *string    `json:"remittanceID,omitempty"`
	IsReconciled bool       `json:"isReconciled"`
	ReconciledAt *time.Time `json:"reconciledAt,omitempty"`

	DisputeReason *string    `json:"disputeReason,omitempty"`
	DisputedAt    *time.Time `json:"disputedAt,omitempty"`
	DisputedBy    *string    `json:"disputedBy,omitempty"`

	AuditFields
}

// Variance is collected minus expected. Negative means the agent collected less than due.
func (c Collection) Variance() decimal.Decimal {
	return c.CollectedAmount.Sub(c.ExpectedAmount)
}

// IsDepositable reports whether the collection can be claimed by a deposit.
func (c Collection) IsDepositable() bool {
	return c.Status == CollectionCollected && c.DepositID == nil
}

// IsRemittable reports whether the collection can be claimed by a remittance.
func (c Collection) IsRemittable() bool {
	return c.Status == CollectionDeposited && c.DepositID != nil && c.RemittanceID == nil && !c.IsReconciled
}

// IsRewritable reports whether a repeated delivery event may overwrite the record.
// Only records that nothing has consumed yet qualify.
func (c Collection) IsRewritable() bool {
	return c.Status == CollectionCollected && c.DepositID == nil && c.RemittanceID == nil
}

// RecordCollectionRequest is the delivery-completion fact handed over by the delivery pipeline.
type RecordCollectionRequest struct {
	AWBNumber       string
	ClientID        string
	HubID           string
	ExpectedAmount  decimal.Decimal
	CollectedAmount decimal.Decimal
	PaymentMode     PaymentMode
	Collector       Collector
	CollectionTime  time.Time
	DeliveredAt     time.Time
}

// Validate checks the delivery fact before it is recorded.
func (r RecordCollectionRequest) Validate() error {
	missing := []string{}
	if r.AWBNumber == "" {
		missing = append(missing, "awbNumber")
	}
	if r.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if r.HubID == "" {
		missing = append(missing, "hubId")
	}
	if r.Collector.ID == "" {
		missing = append(missing, "collectedById")
	}
	if r.PaymentMode == "" {
		missing = append(missing, "paymentMode")
	}
	if len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing...)
	}
	if !r.PaymentMode.IsValid() {
		return fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, r.PaymentMode)
	}
	if r.ExpectedAmount.IsNegative() || r.CollectedAmount.IsNegative() {
		return fmt.Errorf("%w: COD amounts must not be negative", apperrors.ErrInvalidAmount)
	}
	return nil
}

// NewCollection builds a fresh COLLECTED record.
func NewCollection(id string, r RecordCollectionRequest, actor string, now time.Time) Collection {
	c := Collection{
		CollectionID: id,
		Status:       CollectionCollected,
		AuditFields: AuditFields{
			CreatedAt: now,
			CreatedBy: actor,
		},
	}
	c.Apply(r, actor, now)
	return c
}

// Apply overwrites the delivery-derived fields of a rewritable record.
func (c *Collection) Apply(r RecordCollectionRequest, actor string, now time.Time) {
	c.AWBNumber = r.AWBNumber
	c.ClientID = r.ClientID
	c.HubID = r.HubID
	c.ExpectedAmount = r.ExpectedAmount
	c.CollectedAmount = r.CollectedAmount
	c.PaymentMode = r.PaymentMode
	c.CollectedByID = r.Collector.ID
	c.CollectedByName = r.Collector.Name
	c.CollectionTime = r.CollectionTime
	c.LastUpdatedAt = now
	c.LastUpdatedBy = actor
}

// MarkDeposited links the collection to its deposit.
func (c *Collection) MarkDeposited(depositID string, now time.Time) {
	c.DepositID = &depositID
	c.DepositedAt = &now
	c.Status = CollectionDeposited
	c.LastUpdatedAt = now
}

// MarkReconciled links the collection to its remittance.
func (c *Collection) MarkReconciled(remittanceID string, now time.Time) {
	c.RemittanceID = &remittanceID
	c.IsReconciled = true
	c.ReconciledAt = &now
	c.Status = CollectionReconciled
	c.LastUpdatedAt = now
}

// Dispute moves the collection into the terminal DISPUTED state. Links are kept.
func (c *Collection) Dispute(reason, actor string, now time.Time) error {
	if !c.Status.CanTransitionTo(CollectionDisputed) {
		return fmt.Errorf("%w: collection %s is already disputed", apperrors.ErrConflict, c.AWBNumber)
	}
	c.Status = CollectionDisputed
	c.DisputeReason = &reason
	c.DisputedAt = &now
	c.DisputedBy = &actor
	c.LastUpdatedAt = now
	c.LastUpdatedBy = actor
	return nil
}

// Fact returns the delivery fact recorded alongside the collection.
func (r RecordCollectionRequest) Fact() DeliveryFact {
	return DeliveryFact{AWBNumber: r.AWBNumber, ClientID: r.ClientID, HubID: r.HubID, DeliveredAt: r.DeliveredAt}
}

// DeliveryFact is the delivered-shipment record that backs period-based remittance selection.
type DeliveryFact struct {
	AWBNumber   string    `json:"awbNumber"`
	ClientID    string    `json:"clientID"`
	HubID       string    `json:"hubID"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

// CollectionFilter narrows collection listings. Empty fields are ignored.
type CollectionFilter struct {
	Status       CollectionStatus
	HubID        string
	CollectorID  string
	ClientID     string
	DepositID    string
	RemittanceID string
	Page
}

// Matches reports whether c satisfies every populated filter field.
func (f CollectionFilter) Matches(c Collection) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.HubID != "" && c.HubID != f.HubID {
		return false
	}
	if f.CollectorID != "" && c.CollectedByID != f.CollectorID {
		return false
	}
	if f.ClientID != "" && c.ClientID != f.ClientID {
		return false
	}
	if f.DepositID != "" && (c.DepositID == nil || *c.DepositID != f.DepositID) {
		return false
	}
	if f.RemittanceID != "" && (c.RemittanceID == nil || *c.RemittanceID != f.RemittanceID) {
		return false
	}
	return true
}

// SumCollected totals CollectedAmount over the given collections.
func SumCollected(collections []Collection) decimal.Decimal {
	total := decimal.Zero
	for _, c := range collections {
		total = total.Add(c.CollectedAmount)
	}
	return total
}
