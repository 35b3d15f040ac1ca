package mapping

import (
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
// An empty reference id is stored as NULL.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	var ref *string
	if d.ReferenceID != "" {
		id := d.ReferenceID
		ref = &id
	}
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		TransactionType: string(d.TransactionType),
		ReferenceType:   string(d.ReferenceType),
		ReferenceID:     ref,
		AccountType:     string(d.AccountType),
		AccountID:       d.AccountID,
		HubID:           d.HubID,
		Amount:          d.Amount,
		Direction:       string(d.Direction),
		Description:     d.Description,
		TransactionTime: d.TransactionTime,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	e := domain.LedgerEntry{
		EntryID:         m.EntryID,
		TransactionType: domain.TransactionType(m.TransactionType),
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		AccountType:     domain.AccountType(m.AccountType),
		AccountID:       m.AccountID,
		HubID:           m.HubID,
		Amount:          m.Amount,
		Direction:       domain.Direction(m.Direction),
		Description:     m.Description,
		TransactionTime: m.TransactionTime,
		CreatedBy:       m.CreatedBy,
	}
	if m.ReferenceID != nil {
		e.ReferenceID = *m.ReferenceID
	}
	return e
}
