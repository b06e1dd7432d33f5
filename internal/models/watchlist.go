package models

// AssetType classifies a watchlist entry.
type AssetType string

const (
	AssetStock     AssetType = "stock"
	AssetCrypto    AssetType = "crypto"
	AssetForex     AssetType = "forex"
	AssetCommodity AssetType = "commodity"
)

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetStock, AssetCrypto, AssetForex, AssetCommodity:
		return true
	}
	return false
}

// WatchlistItem is one tracked asset.
type WatchlistItem struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	AssetType AssetType `json:"type"`
}
