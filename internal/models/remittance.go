package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remittance is a row of cod_remittances.
type Remittance struct {
	RemittanceID       string          `json:"remittanceID"`
	RemittanceNumber   string          `json:"remittanceNumber"`
	ClientID           string          `json:"clientID"`
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
	GrossCODCollected  decimal.Decimal `json:"grossCodCollected"`
	Deductions         decimal.Decimal `json:"deductions"`
	DeductionBreakdown []byte          `json:"deductionBreakdown"` // JSONB, nullable
	NetRemittance      decimal.Decimal `json:"netRemittance"`
	ShipmentCount      int             `json:"shipmentCount"`
	Status             string          `json:"status"`
	BankAccountNumber  string          `json:"bankAccountNumber"`
	BankIFSC           string          `json:"bankIfsc"`
	BankName           string          `json:"bankName"`
	PaymentReference   *string         `json:"paymentReference"` // Nullable
	ApprovedAt         *time.Time      `json:"approvedAt"`       // Nullable
	ApprovedBy         *string         `json:"approvedBy"`       // Nullable
	PaidAt             *time.Time      `json:"paidAt"`           // Nullable
	AuditFields
}
