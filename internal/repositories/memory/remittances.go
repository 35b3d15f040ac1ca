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

func (s *Store) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.remittances[remittanceID]
	if !ok {
		return nil, fmt.Errorf("%w: remittance %s", apperrors.ErrNotFound, remittanceID)
	}
	r.Collections = s.linked(func(c domain.Collection) bool {
		return c.RemittanceID != nil && *c.RemittanceID == remittanceID
	})
	return &r, nil
}

func (s *Store) ListRemittances(ctx context.Context, filter domain.RemittanceFilter) (*domain.RemittancePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Remittance
	var stats domain.RemittanceStats
	for _, r := range s.remittances {
		if filter.Matches(r) {
			matched = append(matched, r)
			stats.Add(r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].RemittanceNumber > matched[j].RemittanceNumber
	})
	start, end := pageBounds(filter.Page, len(matched))
	return &domain.RemittancePage{Remittances: matched[start:end], Total: len(matched), Stats: stats}, nil
}

func (s *Store) ClaimRemittance(ctx context.Context, claim portsrepo.RemittanceClaim) (*domain.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := claim.Request
	var selected []domain.Collection
	if req.Explicit() {
		selected = s.collectionsByIDs(req.CollectionIDs)
		if bad := domain.OffendingForRemittance(req.CollectionIDs, selected, req.ClientID); len(bad) > 0 {
			return nil, apperrors.NewInvalidCollectionSetError(len(req.CollectionIDs), bad)
		}
	} else {
		selected = s.remittableByAWBs(req.ClientID, claim.AWBNumbers)
	}

	day := domain.SequenceDay(claim.Now)
	key := sequenceKey(domain.RemittanceNumberPrefix, day)
	seq := s.sequences[key] + 1
	number := domain.FormatNumber(domain.RemittanceNumberPrefix, day, seq)

	r, err := domain.BuildRemittance(claim.RemittanceID, number, req, selected, claim.Now)
	if err != nil {
		return nil, err
	}

	s.sequences[key] = seq
	for _, c := range selected {
		c.MarkReconciled(r.RemittanceID, claim.Now)
		c.LastUpdatedBy = req.CreatedBy
		s.collections[c.CollectionID] = c
		r.Collections = append(r.Collections, c)
	}
	stored := r
	stored.Collections = nil
	s.remittances[r.RemittanceID] = stored
	s.entries = append(s.entries, domain.NewRemittanceEntry(claim.EntryID, r))
	return &r, nil
}

func (s *Store) AdvanceRemittance(ctx context.Context, remittanceID string, next domain.RemittanceStatus, actor, paymentRef string, now time.Time) (*domain.Remittance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.remittances[remittanceID]
	if !ok {
		return nil, fmt.Errorf("%w: remittance %s", apperrors.ErrNotFound, remittanceID)
	}
	if err := r.Advance(next, actor, paymentRef, now); err != nil {
		return nil, err
	}
	s.remittances[remittanceID] = r
	return &r, nil
}
