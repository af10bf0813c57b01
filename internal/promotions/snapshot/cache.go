package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
	"github.com/angelmondragon/packfinderz-promotions/pkg/metrics"
)

const (
	defaultTTL            = 30 * time.Second
	defaultRefreshTimeout = 2 * time.Second
)

// Source names where a lookup was served from.
type Source string

const (
	SourceLocal   Source = "local"
	SourceRefresh Source = "refresh"
	SourceStale   Source = "stale"
	SourceShared  Source = "shared"
	SourceEmpty   Source = "empty"
)

// Loader fetches the promotions currently configured for a merchant.
type Loader interface {
	ListActive(ctx context.Context, merchantID string) ([]promotions.Promotion, error)
}

// SharedStore is a cross-instance copy of the last good snapshot per merchant.
type SharedStore interface {
	Load(ctx context.Context, merchantID string) (promotions.Snapshot, bool, error)
	Save(ctx context.Context, snapshot promotions.Snapshot) error
	Delete(ctx context.Context, merchantID string) error
}

// Lookup is a snapshot plus how fresh it is.
type Lookup struct {
	Snapshot promotions.Snapshot
	Stale    bool
	Source   Source
}

type Options struct {
	TTL            time.Duration
	RefreshTimeout time.Duration
	Shared         SharedStore
	Metrics        *metrics.PromotionMetrics
	Logger         *logger.Logger
	Now            func() time.Time
}

type entry struct {
	snapshot  promotions.Snapshot
	expiresAt time.Time
}

// Cache keeps one snapshot per merchant in memory. Refreshes are coalesced per
// merchant and run on a context detached from the caller, bounded by
// RefreshTimeout. Expired entries are served stale while a refresh runs.
type Cache struct {
	loader         Loader
	shared         SharedStore
	ttl            time.Duration
	refreshTimeout time.Duration
	metrics        *metrics.PromotionMetrics
	logg           *logger.Logger
	now            func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	entries     map[string]entry
	generations map[string]uint64
}

func NewCache(loader Loader, opts Options) *Cache {
	c := &Cache{
		loader:         loader,
		shared:         opts.Shared,
		ttl:            opts.TTL,
		refreshTimeout: opts.RefreshTimeout,
		metrics:        opts.Metrics,
		logg:           opts.Logger,
		now:            opts.Now,
		entries:        make(map[string]entry),
		generations:    make(map[string]uint64),
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	if c.refreshTimeout <= 0 {
		c.refreshTimeout = defaultRefreshTimeout
	}
	if c.logg == nil {
		c.logg = logger.Nop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Get returns the merchant's snapshot. It never fails: when no snapshot can be
// loaded it falls back to the shared copy and finally to an empty snapshot.
func (c *Cache) Get(ctx context.Context, merchantID string) Lookup {
	c.mu.RLock()
	cached, ok := c.entries[merchantID]
	c.mu.RUnlock()

	if ok && c.now().Before(cached.expiresAt) {
		return c.served(Lookup{Snapshot: cached.snapshot, Source: SourceLocal})
	}
	if ok {
		c.group.DoChan(merchantID, c.refreshFunc(ctx, merchantID))
		return c.served(Lookup{Snapshot: cached.snapshot, Stale: true, Source: SourceStale})
	}

	select {
	case res := <-c.group.DoChan(merchantID, c.refreshFunc(ctx, merchantID)):
		if res.Err == nil {
			return c.served(Lookup{Snapshot: res.Val.(promotions.Snapshot), Source: SourceRefresh})
		}
		c.logg.Warn(c.logg.WithField(ctx, "error", res.Err.Error()), "promotion snapshot refresh failed")
	case <-ctx.Done():
		c.logg.Warn(ctx, "promotion snapshot wait cancelled")
	}
	return c.served(c.fallback(ctx, merchantID))
}

// Invalidate drops the merchant's cached snapshot locally and in the shared
// store. A refresh already in flight is not allowed to repopulate the entry.
func (c *Cache) Invalidate(ctx context.Context, merchantID string) error {
	c.mu.Lock()
	delete(c.entries, merchantID)
	c.generations[merchantID]++
	c.mu.Unlock()
	c.group.Forget(merchantID)

	if c.shared == nil {
		return nil
	}
	if err := c.shared.Delete(ctx, merchantID); err != nil {
		return fmt.Errorf("delete shared snapshot for %s: %w", merchantID, err)
	}
	return nil
}

func (c *Cache) refreshFunc(ctx context.Context, merchantID string) func() (any, error) {
	detached := context.WithoutCancel(ctx)
	return func() (any, error) {
		c.mu.RLock()
		generation := c.generations[merchantID]
		c.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(detached, c.refreshTimeout)
		defer cancel()

		started := c.now()
		promos, err := c.loader.ListActive(loadCtx, merchantID)
		if err != nil {
			c.metrics.ObserveRefresh("error", c.now().Sub(started))
			return nil, fmt.Errorf("load promotions for %s: %w", merchantID, err)
		}
		c.metrics.ObserveRefresh("ok", c.now().Sub(started))

		fetchedAt := c.now()
		snapshot := promotions.Snapshot{MerchantID: merchantID, Promotions: promos, FetchedAt: fetchedAt}

		c.mu.Lock()
		current := c.generations[merchantID] == generation
		if current {
			c.entries[merchantID] = entry{snapshot: snapshot, expiresAt: fetchedAt.Add(c.ttl)}
		}
		c.mu.Unlock()

		if current && c.shared != nil {
			if err := c.shared.Save(loadCtx, snapshot); err != nil {
				c.logg.Warn(c.logg.WithField(detached, "error", err.Error()), "saving shared promotion snapshot failed")
			}
		}
		return snapshot, nil
	}
}

func (c *Cache) fallback(ctx context.Context, merchantID string) Lookup {
	if c.shared != nil {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()
		snapshot, found, err := c.shared.Load(sharedCtx, merchantID)
		switch {
		case err != nil:
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "loading shared promotion snapshot failed")
		case found:
			return Lookup{Snapshot: snapshot, Stale: true, Source: SourceShared}
		}
	}
	c.logg.Warn(ctx, "serving empty promotion snapshot")
	return Lookup{
		Snapshot: promotions.Snapshot{MerchantID: merchantID, FetchedAt: c.now()},
		Stale:    true,
		Source:   SourceEmpty,
	}
}

func (c *Cache) served(lookup Lookup) Lookup {
	c.metrics.IncLookup(string(lookup.Source))
	return lookup
}
