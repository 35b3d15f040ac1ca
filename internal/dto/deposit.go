package dto

import (
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest defines the data needed to hand collections over to a hub.
type CreateDepositRequest struct {
	CollectionIDs   []string         `json:"collectionIds"`
	DepositedAmount *decimal.Decimal `json:"depositedAmount" binding:"omitempty,dgte0" swaggertype:"string"` // Optional, defaults to the expected amount
	CashAmount      *decimal.Decimal `json:"cashAmount" binding:"omitempty,dgte0" swaggertype:"string"`
	UPIAmount       *decimal.Decimal `json:"upiAmount" binding:"omitempty,dgte0" swaggertype:"string"`
	CardAmount      *decimal.Decimal `json:"cardAmount" binding:"omitempty,dgte0" swaggertype:"string"`
	ChequeAmount    *decimal.Decimal `json:"chequeAmount" binding:"omitempty,dgte0" swaggertype:"string"`
	DepositedByID   string           `json:"depositedById"`
	DepositedByName string           `json:"depositedByName"`
	DepositedByType string           `json:"depositedByType"`
	ReceivedByID    string           `json:"receivedById"`
	ReceivedByName  string           `json:"receivedByName"`
	HubID           string           `json:"hubId"`
	Remarks         string           `json:"remarks"`
}

// ToDomain converts the request, stamping the acting operator.
func (r CreateDepositRequest) ToDomain(actor string) domain.CreateDepositRequest {
	return domain.CreateDepositRequest{
		CollectionIDs:   r.CollectionIDs,
		DepositedAmount: r.DepositedAmount,
		Tender: domain.Tender{
			Cash:   r.CashAmount,
			UPI:    r.UPIAmount,
			Card:   r.CardAmount,
			Cheque: r.ChequeAmount,
		},
		Parties: domain.DepositParties{
			DepositedByID:   r.DepositedByID,
			DepositedByName: r.DepositedByName,
			DepositedByType: r.DepositedByType,
			ReceivedByID:    r.ReceivedByID,
			ReceivedByName:  r.ReceivedByName,
			HubID:           r.HubID,
		},
		Remarks:   r.Remarks,
		CreatedBy: actor,
	}
}

// VerifyDepositRequest carries the verifier's note. The verifier is the caller.
type VerifyDepositRequest struct {
	Note string `json:"note"`
}

// ListDepositsParams defines query parameters for listing deposits.
type ListDepositsParams struct {
	Status        domain.DepositStatus `form:"status" binding:"omitempty,oneof=VERIFIED DISCREPANCY"`
	HubID         string               `form:"hubId"`
	DepositedByID string               `form:"depositedById"`
	DateFrom      *time.Time           `form:"dateFrom"`
	DateTo        *time.Time           `form:"dateTo"`
	Page          int                  `form:"page,default=1" binding:"min=1"`
	PageSize      int                  `form:"pageSize" binding:"min=0"`
}

// ToFilter converts the query into a domain filter.
func (p ListDepositsParams) ToFilter() domain.DepositFilter {
	return domain.DepositFilter{
		Status:        p.Status,
		HubID:         p.HubID,
		DepositedByID: p.DepositedByID,
		DateFrom:      p.DateFrom,
		DateTo:        p.DateTo,
		Page:          domain.Page{Page: p.Page, PageSize: p.PageSize},
	}
}

// ListDepositsResponse is one page of deposits with stats over the whole filter.
type ListDepositsResponse struct {
	Deposits []domain.Deposit    `json:"deposits"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
	Stats    domain.DepositStats `json:"stats"`
}

// ToListDepositsResponse wraps a deposit page for the given query.
func ToListDepositsResponse(page *domain.DepositPage, params ListDepositsParams) ListDepositsResponse {
	deposits := page.Deposits
	if deposits == nil {
		deposits = []domain.Deposit{}
	}
	return ListDepositsResponse{
		Deposits: deposits,
		Total:    page.Total,
		Page:     params.Page,
		PageSize: params.PageSize,
		Stats:    page.Stats,
	}
}
