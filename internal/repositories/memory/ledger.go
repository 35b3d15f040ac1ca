package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) ListEntries(ctx context.Context, account domain.Account, limit int, after *domain.LedgerCursor) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.LedgerEntry
	for _, e := range s.entries {
		if !e.Concerns(account) {
			continue
		}
		if after != nil && !after.Before(e) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].TransactionTime.Equal(matched[j].TransactionTime) {
			return matched[i].TransactionTime.After(matched[j].TransactionTime)
		}
		return matched[i].EntryID > matched[j].EntryID
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) AccountBalance(ctx context.Context, account domain.Account) (decimal.Decimal, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.entries {
		if e.Concerns(account) {
			count++
		}
	}
	return domain.Balance(account, s.entries), count, nil
}
