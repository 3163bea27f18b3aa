package refdata

import (
	"context"
	"sync"
	"time"
)

// CachingProvider wraps a Provider with a TTL cache. The reference table can
// change between runs, so the cache supports explicit invalidation; a zero
// TTL disables caching entirely.
type CachingProvider struct {
	Source Provider
	TTL    time.Duration

	mu        sync.Mutex
	records   []Record
	fetchedAt time.Time
	// now is swappable for tests.
	now func() time.Time
}

// NewCachingProvider wraps source with a TTL cache.
func NewCachingProvider(source Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{Source: source, TTL: ttl, now: time.Now}
}

// Fetch returns the cached ledger when fresh, otherwise delegates to the
// source. Fetch errors are never cached.
func (p *CachingProvider) Fetch(ctx context.Context) ([]Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.records != nil && p.TTL > 0 && p.now().Sub(p.fetchedAt) < p.TTL {
		return p.records, nil
	}

	records, err := p.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	p.records = records
	p.fetchedAt = p.now()
	return records, nil
}

// Invalidate drops the cached ledger so the next Fetch hits the source.
func (p *CachingProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = nil
}
