package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRemittanceRequest asks for one payout batch. Leaving collectionIds empty selects every
// eligible collection among the client's shipments delivered within the period.
type CreateRemittanceRequest struct {
	ClientID           string          `json:"clientId"`
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
	CollectionIDs      []string        `json:"collectionIds"`
	Deductions         decimal.Decimal `json:"deductions" binding:"dgte0" swaggertype:"string"`
	DeductionBreakdown json.RawMessage `json:"deductionBreakdown" swaggertype:"object"`
	BankAccountNumber  string          `json:"bankAccountNumber"`
	BankIFSC           string          `json:"bankIfsc"`
	BankName           string          `json:"bankName"`
}

// ToDomain converts the request, stamping the acting operator.
func (r CreateRemittanceRequest) ToDomain(actor string) domain.CreateRemittanceRequest {
	return domain.CreateRemittanceRequest{
		ClientID:           r.ClientID,
		Period:             domain.Period{Start: r.PeriodStart, End: r.PeriodEnd},
		CollectionIDs:      r.CollectionIDs,
		Deductions:         r.Deductions,
		DeductionBreakdown: r.DeductionBreakdown,
		Bank: domain.BankDetails{
			AccountNumber: r.BankAccountNumber,
			IFSC:          r.BankIFSC,
			BankName:      r.BankName,
		},
		CreatedBy: actor,
	}
}

// UpdateRemittanceStatusRequest moves a remittance one step toward PAID.
type UpdateRemittanceStatusRequest struct {
	Status           domain.RemittanceStatus `json:"status" binding:"required,oneof=APPROVED PAID"`
	PaymentReference string                  `json:"paymentReference"`
}

// ListRemittancesParams defines query parameters for listing remittances.
type ListRemittancesParams struct {
	Status   domain.RemittanceStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED PAID"`
	ClientID string                  `form:"clientId"`
	Page     int                     `form:"page,default=1" binding:"min=1"`
	PageSize int                     `form:"pageSize" binding:"min=0"`
}

// ToFilter converts the query into a domain filter.
func (p ListRemittancesParams) ToFilter() domain.RemittanceFilter {
	return domain.RemittanceFilter{
		Status:   p.Status,
		ClientID: p.ClientID,
		Page:     domain.Page{Page: p.Page, PageSize: p.PageSize},
	}
}

// ListRemittancesResponse is one page of remittances with stats over the whole filter.
type ListRemittancesResponse struct {
	Remittances []domain.Remittance    `json:"remittances"`
	Total       int                    `json:"total"`
	Page        int                    `json:"page"`
	PageSize    int                    `json:"pageSize"`
	Stats       domain.RemittanceStats `json:"stats"`
}

// ToListRemittancesResponse wraps a remittance page for the given query.
func ToListRemittancesResponse(page *domain.RemittancePage, params ListRemittancesParams) ListRemittancesResponse {
	remittances := page.Remittances
	if remittances == nil {
		remittances = []domain.Remittance{}
	}
	return ListRemittancesResponse{
		Remittances: remittances,
		Total:       page.Total,
		Page:        params.Page,
		PageSize:    params.PageSize,
		Stats:       page.Stats,
	}
}
