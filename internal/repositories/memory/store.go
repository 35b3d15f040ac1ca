// Package memory is an in-process implementation of the storage ports.
//
// Every operation runs under one store-wide lock, so a claim's read-check-write sequence is
// linearizable against every other claim. It backs tests and STORAGE_DRIVER=memory runs.
package memory

import (
	"sort"
	"sync"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
)

// Store holds every aggregate in maps guarded by mu.
type Store struct {
	mu sync.Mutex

	collections map[string]domain.Collection
	awbIndex    map[string]string
	facts       map[string]domain.DeliveryFact
	deposits    map[string]domain.Deposit
	remittances map[string]domain.Remittance
	entries     []domain.LedgerEntry
	sequences   map[string]int64
	names       map[external.PartyKind]map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]domain.Collection),
		awbIndex:    make(map[string]string),
		facts:       make(map[string]domain.DeliveryFact),
		deposits:    make(map[string]domain.Deposit),
		remittances: make(map[string]domain.Remittance),
		sequences:   make(map[string]int64),
		names:       make(map[external.PartyKind]map[string]string),
	}
}

// NewRepositoryProvider wires one store behind every port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CollectionRepo: store,
		DepositRepo:    store,
		RemittanceRepo: store,
		LedgerRepo:     store,
		ReportingRepo:  store,
		Shipments:      store,
		Parties:        store,
	}
}

func sequenceKey(prefix, day string) string {
	return prefix + "-" + day
}

// collectionsByIDs must be called with mu held. Unknown ids are skipped.
func (s *Store) collectionsByIDs(ids []string) []domain.Collection {
	out := make([]domain.Collection, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.collections[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// linked must be called with mu held.
func (s *Store) linked(match func(domain.Collection) bool) []domain.Collection {
	var out []domain.Collection
	for _, c := range s.collections {
		if match(c) {
			out = append(out, c)
		}
	}
	sortCollections(out)
	return out
}

func sortCollections(cs []domain.Collection) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CollectionTime.Equal(cs[j].CollectionTime) {
			return cs[i].CollectionTime.After(cs[j].CollectionTime)
		}
		return cs[i].CollectionID < cs[j].CollectionID
	})
}

// pageBounds returns the slice bounds for a page over total items. PageSize 0 means everything.
func pageBounds(p domain.Page, total int) (int, int) {
	if p.PageSize <= 0 {
		return 0, total
	}
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

var (
	_ portsrepo.CollectionRepositoryFacade = (*Store)(nil)
	_ portsrepo.DepositRepositoryFacade    = (*Store)(nil)
	_ portsrepo.RemittanceRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ReportingRepositoryFacade  = (*Store)(nil)
	_ external.ShipmentDirectory           = (*Store)(nil)
	_ external.PartyDirectory              = (*Store)(nil)
)
