package memory

import (
	"context"
	"time"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

func (s *Store) CustodyTotals(ctx context.Context) (domain.CustodyTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FoldCustodyTotals(s.allCollections(), s.allDeposits(), s.allRemittances(), s.entries), nil
}

func (s *Store) Summary(ctx context.Context, filter domain.SummaryFilter, now time.Time) (*domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := domain.BuildSummary(s.allCollections(), s.allDeposits(), filter, now)
	return &summary, nil
}

func (s *Store) allCollections() []domain.Collection {
	out := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c)
	}
	return out
}

func (s *Store) allDeposits() []domain.Deposit {
	out := make([]domain.Deposit, 0, len(s.deposits))
	for _, d := range s.deposits {
		out = append(out, d)
	}
	return out
}

func (s *Store) allRemittances() []domain.Remittance {
	out := make([]domain.Remittance, 0, len(s.remittances))
	for _, r := range s.remittances {
		out = append(out, r)
	}
	return out
}
