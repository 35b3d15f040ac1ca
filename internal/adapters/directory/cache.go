// Package directory holds PartyDirectory decorators.
package directory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
)

// CachedPartyDirectory memoizes successful name lookups for a bounded time.
// Failed lookups are not cached.
type CachedPartyDirectory struct {
	next  external.PartyDirectory
	cache *expirable.LRU[string, string]
}

var _ external.PartyDirectory = (*CachedPartyDirectory)(nil)

// NewCachedPartyDirectory wraps next with an LRU of at most size names, each kept for ttl.
func NewCachedPartyDirectory(next external.PartyDirectory, size int, ttl time.Duration) *CachedPartyDirectory {
	return &CachedPartyDirectory{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (d *CachedPartyDirectory) ResolveName(ctx context.Context, kind external.PartyKind, id string) (string, error) {
	key := string(kind) + ":" + id
	if name, ok := d.cache.Get(key); ok {
		return name, nil
	}
	name, err := d.next.ResolveName(ctx, kind, id)
	if err != nil {
		return "", err
	}
	d.cache.Add(key, name)
	return name, nil
}

// Purge drops every cached name.
func (d *CachedPartyDirectory) Purge() {
	d.cache.Purge()
}
