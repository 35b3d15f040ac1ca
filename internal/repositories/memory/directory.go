package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
)

// FindDeliveredShipments answers from the delivery facts recorded with each collection.
func (s *Store) FindDeliveredShipments(ctx context.Context, clientID string, start, end time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	period := domain.Period{Start: start, End: end}
	var awbs []string
	for _, f := range s.facts {
		if f.ClientID == clientID && period.Contains(f.DeliveredAt) {
			awbs = append(awbs, f.AWBNumber)
		}
	}
	sort.Strings(awbs)
	return awbs, nil
}

// RegisterName seeds the party directory.
func (s *Store) RegisterName(kind external.PartyKind, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names[kind] == nil {
		s.names[kind] = make(map[string]string)
	}
	s.names[kind][id] = name
}

func (s *Store) ResolveName(ctx context.Context, kind external.PartyKind, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.names[kind][id]
	if !ok {
		return "", fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
	}
	return name, nil
}
