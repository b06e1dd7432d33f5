package watchlist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

func TestStore_AddDefaults(t *testing.T) {
	s := NewStore()

	item, ok := s.Add("  aapl ")
	if !ok {
		t.Fatal("expected add to succeed")
	}
	if item.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", item.Symbol)
	}
	if item.Name != "AAPL" {
		t.Errorf("expected name to default to symbol, got %q", item.Name)
	}
	if item.AssetType != models.AssetStock {
		t.Errorf("expected asset type stock, got %s", item.AssetType)
	}
	if item.ID == "" {
		t.Error("expected generated id")
	}
}

func TestStore_AddCaseInsensitiveDedupe(t *testing.T) {
	s := NewStore()

	if _, ok := s.Add("TSLA"); !ok {
		t.Fatal("expected first add to succeed")
	}
	if _, ok := s.Add("tsla"); ok {
		t.Error("expected lowercase duplicate to be rejected")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestStore_AddEmpty(t *testing.T) {
	s := NewStore()
	if _, ok := s.Add("   "); ok {
		t.Error("expected empty symbol to be rejected")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s := NewStore()
	a, _ := s.Add("A")
	b, _ := s.Add("B")
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both %s", a.ID)
	}
}

func TestStore_SeedKeepsNameAndType(t *testing.T) {
	s := NewStore(
		models.WatchlistItem{Symbol: "BTC", Name: "Bitcoin", AssetType: models.AssetCrypto},
		models.WatchlistItem{Symbol: "btc", Name: "Dup"},
		models.WatchlistItem{Symbol: "XAU", Name: "Gold", AssetType: models.AssetCommodity},
	)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Bitcoin" || items[0].AssetType != models.AssetCrypto {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].Symbol != "XAU" {
		t.Errorf("expected XAU second, got %s", items[1].Symbol)
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	a, _ := s.Add("A")
	s.Add("B")
	s.Add("C")

	if !s.Remove(a.ID) {
		t.Fatal("expected remove to succeed")
	}
	syms := s.Symbols()
	if len(syms) != 2 || syms[0] != "B" || syms[1] != "C" {
		t.Errorf("expected [B C], got %v", syms)
	}
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore()
	s.Add("A")
	s.Add("B")

	if s.Remove("does-not-exist") {
		t.Error("expected remove of unknown id to report false")
	}
	if s.Len() != 2 {
		t.Errorf("expected length unchanged at 2, got %d", s.Len())
	}
}

func TestStore_ItemsIsCopy(t *testing.T) {
	s := NewStore()
	s.Add("A")

	items := s.Items()
	items[0].Symbol = "MUTATED"

	if s.Symbols()[0] != "A" {
		t.Error("mutating Items() result changed the store")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("SYM%d", n))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Symbols()
		}()
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Errorf("expected 50 items, got %d", s.Len())
	}
}

func TestNewStoreFromSeeds(t *testing.T) {
	s := NewStoreFromSeeds(config.NewDefaultConfig().Dashboard.Watchlist)

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 seed items, got %d", len(items))
	}
	if items[0].Symbol != "BTC" || items[0].AssetType != models.AssetCrypto {
		t.Errorf("unexpected first seed %+v", items[0])
	}
	if items[2].Symbol != "XAU" || items[2].AssetType != models.AssetCommodity {
		t.Errorf("unexpected last seed %+v", items[2])
	}
}

func TestNewStoreFromSeeds_UnknownTypeDefaultsToStock(t *testing.T) {
	s := NewStoreFromSeeds([]config.WatchlistSeed{{Symbol: "spy", AssetType: "etf"}})

	items := s.Items()
	if len(items) != 1 || items[0].Symbol != "SPY" || items[0].AssetType != models.AssetStock {
		t.Errorf("unexpected items %+v", items)
	}
}
