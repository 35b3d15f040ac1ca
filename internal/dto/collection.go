package dto

import (
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCollectionRequest is the delivery-completion event posted by the delivery pipeline.
// Presence checks are left to the domain so the response names every missing field.
type RecordCollectionRequest struct {
	AWBNumber       string             `json:"awbNumber"`
	ClientID        string             `json:"clientId"`
	HubID           string             `json:"hubId"`
	ExpectedAmount  decimal.Decimal    `json:"expectedAmount" binding:"dgte0" swaggertype:"string"`
	CollectedAmount decimal.Decimal    `json:"collectedAmount" binding:"dgte0" swaggertype:"string"`
	PaymentMode     domain.PaymentMode `json:"paymentMode" binding:"omitempty,oneof=CASH UPI CARD CHEQUE"`
	CollectedByID   string             `json:"collectedById"`
	CollectedByName string             `json:"collectedByName"`
	CollectionTime  *time.Time         `json:"collectionTime"` // Optional, defaults to now
	DeliveredAt     *time.Time         `json:"deliveredAt"`    // Optional, defaults to collectionTime
}

// ToDomain converts the request into the domain delivery fact.
func (r RecordCollectionRequest) ToDomain() domain.RecordCollectionRequest {
	req := domain.RecordCollectionRequest{
		AWBNumber:       r.AWBNumber,
		ClientID:        r.ClientID,
		HubID:           r.HubID,
		ExpectedAmount:  r.ExpectedAmount,
		CollectedAmount: r.CollectedAmount,
		PaymentMode:     r.PaymentMode,
		Collector:       domain.Collector{ID: r.CollectedByID, Name: r.CollectedByName},
	}
	if r.CollectionTime != nil {
		req.CollectionTime = *r.CollectionTime
	}
	if r.DeliveredAt != nil {
		req.DeliveredAt = *r.DeliveredAt
	}
	return req
}

// RaiseDisputeRequest takes a collection out of further claiming.
type RaiseDisputeRequest struct {
	Reason string `json:"reason"`
}

// ListCollectionsParams defines query parameters for listing collections.
type ListCollectionsParams struct {
	Status       domain.CollectionStatus `form:"status" binding:"omitempty,oneof=COLLECTED DEPOSITED RECONCILED DISPUTED"`
	HubID        string                  `form:"hubId"`
	CollectorID  string                  `form:"collectorId"`
	ClientID     string                  `form:"clientId"`
	DepositID    string                  `form:"depositId"`
	RemittanceID string                  `form:"remittanceId"`
	Page         int                     `form:"page,default=1" binding:"min=1"`
	PageSize     int                     `form:"pageSize" binding:"min=0"`
}

// ToFilter converts the query into a domain filter.
func (p ListCollectionsParams) ToFilter() domain.CollectionFilter {
	return domain.CollectionFilter{
		Status:       p.Status,
		HubID:        p.HubID,
		CollectorID:  p.CollectorID,
		ClientID:     p.ClientID,
		DepositID:    p.DepositID,
		RemittanceID: p.RemittanceID,
		Page:         domain.Page{Page: p.Page, PageSize: p.PageSize},
	}
}

// ListCollectionsResponse is one page of collections.
type ListCollectionsResponse struct {
	Collections []domain.Collection `json:"collections"`
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"pageSize"`
}

// EligibleForDepositParams scopes the deposit picker.
type EligibleForDepositParams struct {
	HubID       string `form:"hubId"`
	CollectorID string `form:"collectorId"`
}

// EligibleForRemittanceParams scopes the remittance picker. Times are RFC 3339.
type EligibleForRemittanceParams struct {
	ClientID    string     `form:"clientId"`
	PeriodStart *time.Time `form:"periodStart" binding:"required"`
	PeriodEnd   *time.Time `form:"periodEnd" binding:"required"`
}

// EligibleCollectionsResponse lists claimable collections with their total.
type EligibleCollectionsResponse struct {
	Collections []domain.Collection `json:"collections"`
	Count       int                 `json:"count"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
}

// ToEligibleCollectionsResponse totals the collected amounts.
func ToEligibleCollectionsResponse(collections []domain.Collection) EligibleCollectionsResponse {
	if collections == nil {
		collections = []domain.Collection{}
	}
	return EligibleCollectionsResponse{
		Collections: collections,
		Count:       len(collections),
		TotalAmount: domain.SumCollected(collections),
	}
}
