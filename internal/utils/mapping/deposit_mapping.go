package mapping

import (
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/models"
)

// ToModelDeposit converts a domain Deposit to a model Deposit
func ToModelDeposit(d domain.Deposit) models.Deposit {
	return models.Deposit{
		DepositID:        d.DepositID,
		DepositNumber:    d.DepositNumber,
		DepositedByID:    d.DepositedByID,
		DepositedByName:  d.DepositedByName,
		DepositedByType:  d.DepositedByType,
		ReceivedByID:     d.ReceivedByID,
		ReceivedByName:   d.ReceivedByName,
		HubID:            d.HubID,
		ExpectedAmount:   d.ExpectedAmount,
		DepositedAmount:  d.DepositedAmount,
		ShortageAmount:   d.ShortageAmount,
		ExcessAmount:     d.ExcessAmount,
		CashAmount:       d.TenderBreakdown.Cash,
		UPIAmount:        d.TenderBreakdown.UPI,
		CardAmount:       d.TenderBreakdown.Card,
		ChequeAmount:     d.TenderBreakdown.Cheque,
		CollectionCount:  d.CollectionCount,
		Status:           string(d.Status),
		DepositedAt:      d.DepositedAt,
		Remarks:          d.Remarks,
		VerifiedAt:       d.VerifiedAt,
		VerifiedBy:       d.VerifiedBy,
		VerificationNote: d.VerificationNote,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeposit converts a model Deposit to a domain Deposit
func ToDomainDeposit(m models.Deposit) domain.Deposit {
	return domain.Deposit{
		DepositID:     m.DepositID,
		DepositNumber: m.DepositNumber,
		DepositParties: domain.DepositParties{
			DepositedByID:   m.DepositedByID,
			DepositedByName: m.DepositedByName,
			DepositedByType: m.DepositedByType,
			ReceivedByID:    m.ReceivedByID,
			ReceivedByName:  m.ReceivedByName,
			HubID:           m.HubID,
		},
		ExpectedAmount:  m.ExpectedAmount,
		DepositedAmount: m.DepositedAmount,
		ShortageAmount:  m.ShortageAmount,
		ExcessAmount:    m.ExcessAmount,
		TenderBreakdown: domain.TenderBreakdown{
			Cash:   m.CashAmount,
			UPI:    m.UPIAmount,
			Card:   m.CardAmount,
			Cheque: m.ChequeAmount,
		},
		CollectionCount:  m.CollectionCount,
		Status:           domain.DepositStatus(m.Status),
		DepositedAt:      m.DepositedAt,
		Remarks:          m.Remarks,
		VerifiedAt:       m.VerifiedAt,
		VerifiedBy:       m.VerifiedBy,
		VerificationNote: m.VerificationNote,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
