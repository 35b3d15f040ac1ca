package mapping

import (
	"encoding/json"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/models"
)

// ToModelRemittance converts a domain Remittance to a model Remittance
func ToModelRemittance(d domain.Remittance) models.Remittance {
	var breakdown []byte
	if len(d.DeductionBreakdown) > 0 {
		breakdown = []byte(d.DeductionBreakdown)
	}
	return models.Remittance{
		RemittanceID:       d.RemittanceID,
		RemittanceNumber:   d.RemittanceNumber,
		ClientID:           d.ClientID,
		PeriodStart:        d.PeriodStart,
		PeriodEnd:          d.PeriodEnd,
		GrossCODCollected:  d.GrossCODCollected,
		Deductions:         d.Deductions,
		DeductionBreakdown: breakdown,
		NetRemittance:      d.NetRemittance,
		ShipmentCount:      d.ShipmentCount,
		Status:             string(d.Status),
		BankAccountNumber:  d.AccountNumber,
		BankIFSC:           d.IFSC,
		BankName:           d.BankName,
		PaymentReference:   d.PaymentReference,
		ApprovedAt:         d.ApprovedAt,
		ApprovedBy:         d.ApprovedBy,
		PaidAt:             d.PaidAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRemittance converts a model Remittance to a domain Remittance
func ToDomainRemittance(m models.Remittance) domain.Remittance {
	var breakdown json.RawMessage
	if len(m.DeductionBreakdown) > 0 {
		breakdown = json.RawMessage(m.DeductionBreakdown)
	}
	return domain.Remittance{
		RemittanceID:       m.RemittanceID,
		RemittanceNumber:   m.RemittanceNumber,
		ClientID:           m.ClientID,
		PeriodStart:        m.PeriodStart,
		PeriodEnd:          m.PeriodEnd,
		GrossCODCollected:  m.GrossCODCollected,
		Deductions:         m.Deductions,
		DeductionBreakdown: breakdown,
		NetRemittance:      m.NetRemittance,
		ShipmentCount:      m.ShipmentCount,
		Status:             domain.RemittanceStatus(m.Status),
		BankDetails: domain.BankDetails{
			AccountNumber: m.BankAccountNumber,
			IFSC:          m.BankIFSC,
			BankName:      m.BankName,
		},
		PaymentReference: m.PaymentReference,
		ApprovedAt:       m.ApprovedAt,
		ApprovedBy:       m.ApprovedBy,
		PaidAt:           m.PaidAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
