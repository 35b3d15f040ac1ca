package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RemittanceStatus tracks a payout batch toward the client.
type RemittanceStatus string

const (
	RemittancePending  RemittanceStatus = "PENDING"
	RemittanceApproved RemittanceStatus = "APPROVED"
	RemittancePaid     RemittanceStatus = "PAID"
)

var remittanceRank = map[RemittanceStatus]int{
	RemittancePending:  1,
	RemittanceApproved: 2,
	RemittancePaid:     3,
}

// IsValid reports whether s is a known remittance status.
func (s RemittanceStatus) IsValid() bool {
	_, ok := remittanceRank[s]
	return ok
}

// CanTransitionTo allows only the next forward step.
func (s RemittanceStatus) CanTransitionTo(next RemittanceStatus) bool {
	from, okFrom := remittanceRank[s]
	to, okTo := remittanceRank[next]
	return okFrom && okTo && to == from+1
}

// BankDetails are opaque payout coordinates passed through to the payment collaborator.
type BankDetails struct {
	AccountNumber string `json:"bankAccountNumber,omitempty"`
	IFSC          string `json:"bankIfsc,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

// CreateRemittanceRequest asks for one payout batch to a client for a period.
// When CollectionIDs is empty the eligible collections are resolved from the
// client's delivered shipments within the period.
type CreateRemittanceRequest struct {
	ClientID           string
	Period             Period
	CollectionIDs      []string
	Deductions         decimal.Decimal
	DeductionBreakdown json.RawMessage
	Bank               BankDetails
	CreatedBy          string
}

// Explicit reports whether the caller picked the collections.
func (r CreateRemittanceRequest) Explicit() bool {
	return len(r.CollectionIDs) > 0
}

// Validate checks the request shape before any storage is touched.
func (r *CreateRemittanceRequest) Validate() error {
	missing := []string{}
	if r.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if r.Period.Start.IsZero() {
		missing = append(missing, "periodStart")
	}
	if r.Period.End.IsZero() {
		missing = append(missing, "periodEnd")
	}
	if len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing...)
	}
	if !r.Period.Valid() {
		return fmt.Errorf("%w: periodEnd must not be before periodStart", apperrors.ErrValidation)
	}
	if r.Deductions.IsNegative() {
		return fmt.Errorf("%w: deductions must not be negative", apperrors.ErrInvalidAmount)
	}
	if len(r.DeductionBreakdown) > 0 && !json.Valid(r.DeductionBreakdown) {
		return fmt.Errorf("%w: deductionBreakdown must be valid JSON", apperrors.ErrValidation)
	}
	for _, id := range r.CollectionIDs {
		if id == "" {
			return apperrors.NewMissingFieldsError("collectionIds[]")
		}
	}
	r.CollectionIDs = UniqueStrings(r.CollectionIDs)
	return nil
}

// Remittance is one payout batch to a client for a period.
type Remittance struct {
	RemittanceID       string           `json:"remittanceID"`
	RemittanceNumber   string           `json:"remittanceNumber"`
	ClientID           string           `json:"clientID"`
	PeriodStart        time.Time        `json:"periodStart"`
	PeriodEnd          time.Time        `json:"periodEnd"`
	GrossCODCollected  decimal.Decimal  `json:"grossCodCollected"`
	Deductions         decimal.Decimal  `json:"deductions"`
	DeductionBreakdown json.RawMessage  `json:"deductionBreakdown,omitempty"`
	NetRemittance      decimal.Decimal  `json:"netRemittance"`
	ShipmentCount      int              `json:"shipmentCount"`
	Status             RemittanceStatus `json:"status"`

	BankDetails

	PaymentReference *string    `json:"paymentReference,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy       *string    `json:"approvedBy,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`

	Collections []Collection `json:"collections,omitempty"`
	AuditFields
}

// ComputeNet is gross minus deductions. It is defined for every input, including
// deductions larger than gross.
func ComputeNet(gross, deductions decimal.Decimal) decimal.Decimal {
	return gross.Sub(deductions)
}

// BuildRemittance computes a remittance from the collections claimed inside the transaction.
// A negative net is rejected.
func BuildRemittance(id, number string, req CreateRemittanceRequest, collections []Collection, now time.Time) (Remittance, error) {
	if len(collections) == 0 {
		return Remittance{}, apperrors.ErrNoEligibleCollections
	}
	gross := SumCollected(collections)
	net := ComputeNet(gross, req.Deductions)
	if net.IsNegative() {
		return Remittance{}, fmt.Errorf("%w: deductions %s exceed gross COD %s",
			apperrors.ErrValidation, req.Deductions.String(), gross.String())
	}
	return Remittance{
		RemittanceID:       id,
		RemittanceNumber:   number,
		ClientID:           req.ClientID,
		PeriodStart:        req.Period.Start,
		PeriodEnd:          req.Period.End,
		GrossCODCollected:  gross,
		Deductions:         req.Deductions,
		DeductionBreakdown: req.DeductionBreakdown,
		NetRemittance:      net,
		ShipmentCount:      len(collections),
		Status:             RemittancePending,
		BankDetails:        req.Bank,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}, nil
}

// Advance moves the remittance one step forward and stamps who did it.
func (r *Remittance) Advance(next RemittanceStatus, actor string, paymentRef string, now time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: remittance %s cannot move from %s to %s",
			apperrors.ErrConflict, r.RemittanceNumber, r.Status, next)
	}
	switch next {
	case RemittanceApproved:
		r.ApprovedAt = &now
		r.ApprovedBy = &actor
	case RemittancePaid:
		r.PaidAt = &now
		if paymentRef != "" {
			r.PaymentReference = &paymentRef
		}
	}
	r.Status = next
	r.LastUpdatedAt = now
	r.LastUpdatedBy = actor
	return nil
}

// RemittanceFilter narrows remittance listings.
type RemittanceFilter struct {
	Status   RemittanceStatus
	ClientID string
	Page
}

// Matches reports whether r satisfies every populated filter field.
func (f RemittanceFilter) Matches(r Remittance) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.ClientID != "" && r.ClientID != f.ClientID {
		return false
	}
	return true
}

// RemittanceStats aggregates a filtered remittance listing.
type RemittanceStats struct {
	Count           int             `json:"count"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
}

// Add folds one remittance into the stats.
func (s *RemittanceStats) Add(r Remittance) {
	s.Count++
	s.TotalGross = s.TotalGross.Add(r.GrossCODCollected)
	s.TotalDeductions = s.TotalDeductions.Add(r.Deductions)
	s.TotalNet = s.TotalNet.Add(r.NetRemittance)
}

// RemittancePage is one page of remittances with stats over the whole filter.
type RemittancePage struct {
	Remittances []Remittance
	Total       int
	Stats       RemittanceStats
}
