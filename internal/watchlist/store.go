// Package watchlist holds the in-memory ordered list of tracked assets.
package watchlist

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

// Store is an ordered, symbol-unique collection of watchlist items.
type Store struct {
	mu    sync.RWMutex
	items []models.WatchlistItem
}

// NewStore creates a store holding the given seed items, deduplicated.
func NewStore(seed ...models.WatchlistItem) *Store {
	s := &Store{}
	for _, item := range seed {
		s.AddItem(item)
	}
	return s
}

// NewStoreFromSeeds creates a store from the configured seed watchlist.
func NewStoreFromSeeds(seeds []config.WatchlistSeed) *Store {
	items := make([]models.WatchlistItem, 0, len(seeds))
	for _, seed := range seeds {
		items = append(items, models.WatchlistItem{
			Symbol:    seed.Symbol,
			Name:      seed.Name,
			AssetType: models.AssetType(seed.AssetType),
		})
	}
	return NewStore(items...)
}

// Normalize trims and uppercases a user-entered symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Add appends a stock entry for symbol. It returns false when the symbol is
// empty or already tracked.
func (s *Store) Add(symbol string) (models.WatchlistItem, bool) {
	return s.AddItem(models.WatchlistItem{Symbol: symbol})
}

// AddItem appends item, filling in id, name and asset type when absent.
func (s *Store) AddItem(item models.WatchlistItem) (models.WatchlistItem, bool) {
	item.Symbol = Normalize(item.Symbol)
	if item.Symbol == "" {
		return models.WatchlistItem{}, false
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Name == "" {
		item.Name = item.Symbol
	}
	if !item.AssetType.Valid() {
		item.AssetType = models.AssetStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if strings.EqualFold(existing.Symbol, item.Symbol) {
			return existing, false
		}
	}
	s.items = append(s.items, item)
	return item, true
}

// Remove deletes the item with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the watchlist in insertion order.
func (s *Store) Items() []models.WatchlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WatchlistItem, len(s.items))
	copy(out, s.items)
	return out
}

// Symbols returns the tracked symbols in insertion order.
func (s *Store) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	for i, item := range s.items {
		out[i] = item.Symbol
	}
	return out
}

// Len returns the number of tracked items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
