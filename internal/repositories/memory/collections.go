package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
)

func (s *Store) FindCollectionByID(ctx context.Context, collectionID string) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
	}
	return &c, nil
}

func (s *Store) FindCollectionByAWB(ctx context.Context, awbNumber string) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.awbIndex[awbNumber]
	if !ok {
		return nil, fmt.Errorf("%w: collection for awb %s", apperrors.ErrNotFound, awbNumber)
	}
	c := s.collections[id]
	return &c, nil
}

func (s *Store) ListCollections(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.linked(filter.Matches)
	start, end := pageBounds(filter.Page, len(matched))
	return matched[start:end], len(matched), nil
}

func (s *Store) ListRemittableByAWBs(ctx context.Context, clientID string, awbNumbers []string) ([]domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remittableByAWBs(clientID, awbNumbers), nil
}

// remittableByAWBs must be called with mu held.
func (s *Store) remittableByAWBs(clientID string, awbNumbers []string) []domain.Collection {
	var out []domain.Collection
	for _, awb := range domain.UniqueStrings(awbNumbers) {
		id, ok := s.awbIndex[awb]
		if !ok {
			continue
		}
		c := s.collections[id]
		if c.ClientID == clientID && c.IsRemittable() {
			out = append(out, c)
		}
	}
	sortCollections(out)
	return out
}

func (s *Store) RecordCollection(ctx context.Context, collection domain.Collection, fact domain.DeliveryFact) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.awbIndex[collection.AWBNumber]; ok {
		existing := s.collections[id]
		if !existing.IsRewritable() {
			return nil, fmt.Errorf("%w: awb %s is already %s", apperrors.ErrConflict, existing.AWBNumber, existing.Status)
		}
		collection.CollectionID = existing.CollectionID
		collection.CreatedAt = existing.CreatedAt
		collection.CreatedBy = existing.CreatedBy
	}
	s.collections[collection.CollectionID] = collection
	s.awbIndex[collection.AWBNumber] = collection.CollectionID
	s.facts[fact.AWBNumber] = fact
	return &collection, nil
}

func (s *Store) DisputeCollection(ctx context.Context, collectionID, reason, actor string, now time.Time) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
	}
	if err := c.Dispute(reason, actor, now); err != nil {
		return nil, err
	}
	s.collections[collectionID] = c
	return &c, nil
}
