package mapping

import (
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/models"
)

// ToModelCollection converts a domain Collection to a model Collection
func ToModelCollection(d domain.Collection) models.Collection {
	return models.Collection{
		CollectionID:    d.CollectionID,
		AWBNumber:       d.AWBNumber,
		ClientID:        d.ClientID,
		HubID:           d.HubID,
		ExpectedAmount:  d.ExpectedAmount,
		CollectedAmount: d.CollectedAmount,
		PaymentMode:     string(d.PaymentMode),
		CollectedByID:   d.CollectedByID,
		CollectedByName: d.CollectedByName,
		CollectionTime:  d.CollectionTime,
		Status:          string(d.Status),
		DepositID:       d.DepositID,
		DepositedAt:     d.DepositedAt,
		RemittanceID:    d.RemittanceID,
		IsReconciled:    d.IsReconciled,
		ReconciledAt:    d.ReconciledAt,
		DisputeReason:   d.DisputeReason,
		DisputedAt:      d.DisputedAt,
		DisputedBy:      d.DisputedBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCollection converts a model Collection to a domain Collection
func ToDomainCollection(m models.Collection) domain.Collection {
	return domain.Collection{
		CollectionID:    m.CollectionID,
		AWBNumber:       m.AWBNumber,
		ClientID:        m.ClientID,
		HubID:           m.HubID,
		ExpectedAmount:  m.ExpectedAmount,
		CollectedAmount: m.CollectedAmount,
		PaymentMode:     domain.PaymentMode(m.PaymentMode),
		CollectedByID:   m.CollectedByID,
		CollectedByName: m.CollectedByName,
		CollectionTime:  m.CollectionTime,
		Status:          domain.CollectionStatus(m.Status),
		DepositID:       m.DepositID,
		DepositedAt:     m.DepositedAt,
		RemittanceID:    m.RemittanceID,
		IsReconciled:    m.IsReconciled,
		ReconciledAt:    m.ReconciledAt,
		DisputeReason:   m.DisputeReason,
		DisputedAt:      m.DisputedAt,
		DisputedBy:      m.DisputedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCollections converts a slice of model Collections
func ToDomainCollections(ms []models.Collection) []domain.Collection {
	out := make([]domain.Collection, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCollection(m)
	}
	return out
}

// ToModelDeliveryFact converts a domain DeliveryFact to a model DeliveryFact
func ToModelDeliveryFact(d domain.DeliveryFact) models.DeliveryFact {
	return models.DeliveryFact{
		AWBNumber:   d.AWBNumber,
		ClientID:    d.ClientID,
		HubID:       d.HubID,
		DeliveredAt: d.DeliveredAt,
	}
}
