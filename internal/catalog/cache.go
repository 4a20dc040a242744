package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skbags/storefront/pkg/logger"
	"github.com/skbags/storefront/pkg/metrics"
	"github.com/skbags/storefront/pkg/types"
)

// Fetcher loads the product list from the store API.
type Fetcher interface {
	Products(ctx context.Context) ([]Product, error)
}

// Cache holds the catalog for rendering. A failed fetch is not fatal to
// browsing: the cache serves the built-in sample list until the store API
// answers again.
type Cache struct {
	fetcher Fetcher
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	mu       sync.RWMutex
	products []Product
	live     bool
}

// NewCache builds a catalog cache backed by the provided fetcher.
func NewCache(fetcher Fetcher, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Cache, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("catalog fetcher required")
	}
	return &Cache{
		fetcher:  fetcher,
		logg:     logg,
		metrics:  m,
		products: fallbackProducts(),
	}, nil
}

// Refresh reloads the catalog. On failure it keeps the last live snapshot if
// one exists, otherwise it serves the sample list.
func (c *Cache) Refresh(ctx context.Context) error {
	start := time.Now()
	products, err := c.fetcher.Products(ctx)
	c.metrics.ObserveCatalogRefresh(time.Since(start))
	if err != nil {
		c.mu.Lock()
		if !c.live {
			c.products = fallbackProducts()
			c.metrics.IncCatalogFallback()
		}
		c.mu.Unlock()
		if c.logg != nil {
			c.logg.Warn(ctx, "catalog refresh failed, serving previous snapshot")
		}
		return err
	}

	c.mu.Lock()
	c.products = products
	c.live = true
	c.mu.Unlock()
	return nil
}

// Run refreshes the catalog on the given interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && c.logg != nil {
				c.logg.Warn(ctx, "scheduled catalog refresh failed")
			}
		}
	}
}

// List returns a copy of the current snapshot in catalog order.
func (c *Cache) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id in the current snapshot.
func (c *Cache) Get(id types.FlexID) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Live reports whether the snapshot came from the store API rather than the
// built-in sample list.
func (c *Cache) Live() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live
}
