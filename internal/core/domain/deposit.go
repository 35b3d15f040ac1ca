package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DepositStatus is the verification outcome of a deposit.
type DepositStatus string

const (
	DepositVerified    DepositStatus = "VERIFIED"
	DepositDiscrepancy DepositStatus = "DISCREPANCY"
)

// Tender holds the cash counted at the hub, split by tender type.
// A nil field means the depositor did not report that tender.
type Tender struct {
	Cash   *decimal.Decimal `json:"cashAmount,omitempty"`
	UPI    *decimal.Decimal `json:"upiAmount,omitempty"`
	Card   *decimal.Decimal `json:"cardAmount,omitempty"`
	Cheque *decimal.Decimal `json:"chequeAmount,omitempty"`
}

func (t Tender) parts() []*decimal.Decimal {
	return []*decimal.Decimal{t.Cash, t.UPI, t.Card, t.Cheque}
}

// Supplied reports whether any tender sub-total was reported.
func (t Tender) Supplied() bool {
	for _, p := range t.parts() {
		if p != nil {
			return true
		}
	}
	return false
}

// Total sums the reported sub-totals; unreported tenders count as zero.
func (t Tender) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.parts() {
		if p != nil {
			total = total.Add(*p)
		}
	}
	return total
}

// Breakdown returns the sub-totals with unreported tenders as zero.
func (t Tender) Breakdown() TenderBreakdown {
	val := func(p *decimal.Decimal) decimal.Decimal {
		if p == nil {
			return decimal.Zero
		}
		return *p
	}
	return TenderBreakdown{Cash: val(t.Cash), UPI: val(t.UPI), Card: val(t.Card), Cheque: val(t.Cheque)}
}

// TenderBreakdown is the stored form of Tender.
type TenderBreakdown struct {
	Cash   decimal.Decimal `json:"cashAmount"`
	UPI    decimal.Decimal `json:"upiAmount"`
	Card   decimal.Decimal `json:"cardAmount"`
	Cheque decimal.Decimal `json:"chequeAmount"`
}

// DepositParties names who handed over the cash, who received it and where.
type DepositParties struct {
	DepositedByID   string `json:"depositedByID"`
	DepositedByName string `json:"depositedByName"`
	DepositedByType string `json:"depositedByType"`
	ReceivedByID    string `json:"receivedByID"`
	ReceivedByName  string `json:"receivedByName"`
	HubID           string `json:"hubID"`
}

// CreateDepositRequest is a custody-transfer request from an agent to a hub custodian.
type CreateDepositRequest struct {
	CollectionIDs   []string
	DepositedAmount *decimal.Decimal
	Tender          Tender
	Parties         DepositParties
	Remarks         string
	CreatedBy       string
}

// Validate checks the request shape before any storage is touched.
// It also collapses duplicate collection ids in place.
func (r *CreateDepositRequest) Validate() error {
	missing := []string{}
	if len(r.CollectionIDs) == 0 {
		missing = append(missing, "collectionIds")
	}
	if r.Parties.DepositedByID == "" {
		missing = append(missing, "depositedById")
	}
	if r.Parties.ReceivedByID == "" {
		missing = append(missing, "receivedById")
	}
	if r.Parties.HubID == "" {
		missing = append(missing, "hubId")
	}
	if len(missing) > 0 {
		return apperrors.NewMissingFieldsError(missing...)
	}
	for _, id := range r.CollectionIDs {
		if id == "" {
			return apperrors.NewMissingFieldsError("collectionIds[]")
		}
	}
	r.CollectionIDs = UniqueStrings(r.CollectionIDs)

	if r.DepositedAmount != nil && r.DepositedAmount.IsNegative() {
		return fmt.Errorf("%w: depositedAmount must not be negative", apperrors.ErrInvalidAmount)
	}
	for _, p := range r.Tender.parts() {
		if p != nil && p.IsNegative() {
			return fmt.Errorf("%w: tender amounts must not be negative", apperrors.ErrInvalidAmount)
		}
	}
	if r.Parties.DepositedByType == "" {
		r.Parties.DepositedByType = "AGENT"
	}
	return nil
}

// Deposit is one custody-transfer event from an agent to a hub custodian.
type Deposit struct {
	DepositID     string `json:"depositID"`
	DepositNumber string `json:"depositNumber"`

	DepositParties

	ExpectedAmount  decimal.Decimal `json:"expectedAmount"`
	DepositedAmount decimal.Decimal `json:"depositedAmount"`
	ShortageAmount  decimal.Decimal `json:"shortageAmount"`
	ExcessAmount    decimal.Decimal `json:"excessAmount"`

	TenderBreakdown

	CollectionCount int           `json:"collectionCount"`
	Status          DepositStatus `json:"status"`
	DepositedAt     time.Time     `json:"depositedAt"`
	Remarks         string        `json:"remarks"`

	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
	VerifiedBy       *string    `json:"verifiedBy,omitempty"`
	VerificationNote *string    `json:"verificationNote,omitempty"`

	Collections []Collection `json:"collections,omitempty"`
	AuditFields
}

// Variance returns shortage and excess for an expected/actual pair. At most one is non-zero.
func Variance(expected, actual decimal.Decimal) (shortage, excess decimal.Decimal) {
	diff := expected.Sub(actual)
	if diff.IsPositive() {
		return diff, decimal.Zero
	}
	return decimal.Zero, diff.Neg()
}

// BuildDeposit computes a deposit from the collections fetched inside the claiming transaction.
// The expected amount always comes from the fetched records, never from the caller.
func BuildDeposit(id, number string, req CreateDepositRequest, collections []Collection, now time.Time) (Deposit, error) {
	expected := SumCollected(collections)

	actual := expected
	if req.DepositedAmount != nil {
		actual = *req.DepositedAmount
	}

	if req.Tender.Supplied() && !req.Tender.Total().Equal(actual) {
		return Deposit{}, fmt.Errorf("%w: tender breakdown totals %s but deposited amount is %s",
			apperrors.ErrValidation, req.Tender.Total().String(), actual.String())
	}

	shortage, excess := Variance(expected, actual)

	d := Deposit{
		DepositID:       id,
		DepositNumber:   number,
		DepositParties:  req.Parties,
		ExpectedAmount:  expected,
		DepositedAmount: actual,
		ShortageAmount:  shortage,
		ExcessAmount:    excess,
		TenderBreakdown: req.Tender.Breakdown(),
		CollectionCount: len(collections),
		Status:          DepositVerified,
		DepositedAt:     now,
		Remarks:         req.Remarks,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.CreatedBy,
		},
	}
	if shortage.IsPositive() {
		d.Status = DepositDiscrepancy
	} else {
		verifier := req.Parties.ReceivedByID
		d.VerifiedAt = &now
		d.VerifiedBy = &verifier
	}
	return d, nil
}

// Verify records a manual verification on a deposit left pending by a shortage.
// The status and shortage are left untouched.
func (d *Deposit) Verify(verifierID, note string, now time.Time) error {
	if d.VerifiedAt != nil {
		return fmt.Errorf("%w: deposit %s is already verified", apperrors.ErrConflict, d.DepositNumber)
	}
	d.VerifiedAt = &now
	d.VerifiedBy = &verifierID
	if note != "" {
		d.VerificationNote = &note
	}
	d.LastUpdatedAt = now
	d.LastUpdatedBy = verifierID
	return nil
}

// DepositFilter narrows deposit listings.
type DepositFilter struct {
	Status        DepositStatus
	HubID         string
	DepositedByID string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page
}

// Matches reports whether d satisfies every populated filter field.
func (f DepositFilter) Matches(d Deposit) bool {
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.HubID != "" && d.HubID != f.HubID {
		return false
	}
	if f.DepositedByID != "" && d.DepositedByID != f.DepositedByID {
		return false
	}
	if f.DateFrom != nil && d.DepositedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && d.DepositedAt.After(*f.DateTo) {
		return false
	}
	return true
}

// DepositStats aggregates a filtered deposit listing.
type DepositStats struct {
	Count          int             `json:"count"`
	TotalExpected  decimal.Decimal `json:"totalExpected"`
	TotalDeposited decimal.Decimal `json:"totalDeposited"`
	TotalShortage  decimal.Decimal `json:"totalShortage"`
	TotalExcess    decimal.Decimal `json:"totalExcess"`
}

// Add folds one deposit into the stats.
func (s *DepositStats) Add(d Deposit) {
	s.Count++
	s.TotalExpected = s.TotalExpected.Add(d.ExpectedAmount)
	s.TotalDeposited = s.TotalDeposited.Add(d.DepositedAmount)
	s.TotalShortage = s.TotalShortage.Add(d.ShortageAmount)
	s.TotalExcess = s.TotalExcess.Add(d.ExcessAmount)
}

// DepositPage is one page of deposits with stats over the whole filter.
type DepositPage struct {
	Deposits []Deposit
	Total    int
	Stats    DepositStats
}
