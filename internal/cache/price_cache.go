package cache

import (
	"sync"
	"time"
)

// PriceCache holds the last simulated price per ticker so successive quote
// fetches fluctuate from a consistent basis. It is owned by whoever constructs
// it and lives for the application session; nothing is persisted.
type PriceCache struct {
	mu     sync.RWMutex
	prices map[string]priceEntry
}

type priceEntry struct {
	price     float64
	updatedAt time.Time
}

// NewPriceCache creates an empty price cache
func NewPriceCache() *PriceCache {
	return &PriceCache{
		prices: make(map[string]priceEntry),
	}
}

// Get returns the last-known price for a ticker
func (c *PriceCache) Get(ticker string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.prices[ticker]
	if !exists {
		return 0, false
	}
	return entry.price, true
}

// Set records the latest price for a ticker. Concurrent writers for the same
// ticker race last-write-wins; simulated prices are illustrative, not
// authoritative.
func (c *PriceCache) Set(ticker string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices[ticker] = priceEntry{
		price:     price,
		updatedAt: time.Now(),
	}
}

// Len returns the number of cached tickers
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.prices)
}

// Clear removes all cached prices
func (c *PriceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices = make(map[string]priceEntry)
}
