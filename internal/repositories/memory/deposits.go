package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
)

func (s *Store) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deposits[depositID]
	if !ok {
		return nil, fmt.Errorf("%w: deposit %s", apperrors.ErrNotFound, depositID)
	}
	d.Collections = s.linked(func(c domain.Collection) bool {
		return c.DepositID != nil && *c.DepositID == depositID
	})
	return &d, nil
}

func (s *Store) ListDeposits(ctx context.Context, filter domain.DepositFilter) (*domain.DepositPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Deposit
	var stats domain.DepositStats
	for _, d := range s.deposits {
		if filter.Matches(d) {
			matched = append(matched, d)
			stats.Add(d)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].DepositedAt.Equal(matched[j].DepositedAt) {
			return matched[i].DepositedAt.After(matched[j].DepositedAt)
		}
		return matched[i].DepositNumber > matched[j].DepositNumber
	})
	start, end := pageBounds(filter.Page, len(matched))
	return &domain.DepositPage{Deposits: matched[start:end], Total: len(matched), Stats: stats}, nil
}

// ClaimDeposit checks and claims under the store lock; nothing is written until every check passes.
func (s *Store) ClaimDeposit(ctx context.Context, claim portsrepo.DepositClaim) (*domain.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := claim.Request.CollectionIDs
	found := s.collectionsByIDs(ids)
	if bad := domain.OffendingForDeposit(ids, found); len(bad) > 0 {
		return nil, apperrors.NewInvalidCollectionSetError(len(ids), bad)
	}

	day := domain.SequenceDay(claim.Now)
	key := sequenceKey(domain.DepositNumberPrefix, day)
	seq := s.sequences[key] + 1
	number := domain.FormatNumber(domain.DepositNumberPrefix, day, seq)

	d, err := domain.BuildDeposit(claim.DepositID, number, claim.Request, found, claim.Now)
	if err != nil {
		return nil, err
	}

	s.sequences[key] = seq
	for _, c := range found {
		c.MarkDeposited(d.DepositID, claim.Now)
		c.LastUpdatedBy = claim.Request.CreatedBy
		s.collections[c.CollectionID] = c
	}
	s.deposits[d.DepositID] = d
	s.entries = append(s.entries, domain.NewDepositEntry(claim.EntryID, d))

	d.Collections = s.collectionsByIDs(ids)
	return &d, nil
}

func (s *Store) VerifyDeposit(ctx context.Context, depositID, verifierID, note string, now time.Time) (*domain.Deposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deposits[depositID]
	if !ok {
		return nil, fmt.Errorf("%w: deposit %s", apperrors.ErrNotFound, depositID)
	}
	if err := d.Verify(verifierID, note, now); err != nil {
		return nil, err
	}
	s.deposits[depositID] = d
	return &d, nil
}
