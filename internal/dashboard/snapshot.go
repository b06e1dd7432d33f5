package dashboard

import (
	"github.com/bobmcallan/briefing-portal/internal/market"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

// TrackState is the lifecycle of one request track.
type TrackState string

const (
	StateIdle    TrackState = "idle"
	StateLoading TrackState = "loading"
	StateSuccess TrackState = "success"
	StateFailed  TrackState = "failed"
)

// Snapshot is a read-only copy of the dashboard state.
type Snapshot struct {
	Watchlist       []models.WatchlistItem `json:"watchlist"`
	Briefing        *models.MarketBriefing `json:"briefing"`
	Sentiment       string                 `json:"sentiment,omitempty"`
	Events          []models.EconomicEvent `json:"events"`
	TodayEvents     []models.EconomicEvent `json:"todayEvents"`
	OtherEvents     []models.EconomicEvent `json:"otherEvents"`
	LoadingBriefing bool                   `json:"loadingBriefing"`
	LoadingEvents   bool                   `json:"loadingEvents"`
	BriefingState   TrackState             `json:"briefingState"`
	EventsState     TrackState             `json:"eventsState"`
	Error           *string                `json:"error"`
	NextSession     market.Session         `json:"nextSession"`
	Quote           string                 `json:"quote"`
	Today           string                 `json:"today"`
}

// HasWatchlist reports whether any asset is tracked.
func (s Snapshot) HasWatchlist() bool {
	return len(s.Watchlist) > 0
}

func copyBriefing(b *models.MarketBriefing) *models.MarketBriefing {
	if b == nil {
		return nil
	}
	out := *b
	out.KeyTakeaways = make([]string, len(b.KeyTakeaways))
	copy(out.KeyTakeaways, b.KeyTakeaways)
	out.Sources = make([]models.Source, len(b.Sources))
	copy(out.Sources, b.Sources)
	return &out
}

func copyEvents(events []models.EconomicEvent) []models.EconomicEvent {
	out := make([]models.EconomicEvent, len(events))
	copy(out, events)
	return out
}
