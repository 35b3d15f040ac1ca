package dto

import (
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostAdjustmentRequest defines a manual ledger correction.
type PostAdjustmentRequest struct {
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=AGENT HUB CLIENT"`
	AccountID   string             `json:"accountId" binding:"required"`
	Amount      decimal.Decimal    `json:"amount" binding:"dgte0" swaggertype:"string"`
	Direction   domain.Direction   `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Description string             `json:"description"`
	ReferenceID string             `json:"referenceId"`
}

// ToDomain converts the request, stamping the acting operator.
func (r PostAdjustmentRequest) ToDomain(actor string) domain.AdjustmentRequest {
	return domain.AdjustmentRequest{
		Account:     domain.Account{Type: r.AccountType, ID: r.AccountID},
		Amount:      r.Amount,
		Direction:   r.Direction,
		Description: r.Description,
		ReferenceID: r.ReferenceID,
		CreatedBy:   actor,
	}
}

// ListLedgerEntriesParams defines query parameters for the entry scan.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit" binding:"min=0"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse is one page of entries, newest first.
type ListLedgerEntriesResponse struct {
	Account   domain.Account       `json:"account"`
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}
