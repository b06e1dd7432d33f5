package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/briefing-portal/internal/models"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

type fakeService struct {
	mu            sync.Mutex
	briefing      *models.MarketBriefing
	briefingErr   error
	briefingPanic bool
	events        []models.EconomicEvent
	briefingGate  chan struct{}
	eventsGate    chan struct{}
	briefingCalls int
	eventsCalls   int
	ctxErrs       []error
}

func (f *fakeService) RequestBriefing(ctx context.Context, symbols []string) (*models.MarketBriefing, error) {
	f.mu.Lock()
	f.briefingCalls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	gate, b, err, p := f.briefingGate, f.briefing, f.briefingErr, f.briefingPanic
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if p {
		panic("boom")
	}
	return b, err
}

func (f *fakeService) RequestEvents(ctx context.Context, symbols []string) []models.EconomicEvent {
	f.mu.Lock()
	f.eventsCalls++
	gate, events := f.eventsGate, f.events
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return events
}

func (f *fakeService) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.briefingCalls, f.eventsCalls
}

var fixedNow = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newTestController(svc Service, symbols ...string) (*Controller, *watchlist.Store) {
	store := watchlist.NewStore()
	for _, s := range symbols {
		store.Add(s)
	}
	c := NewController(store, svc, nil, WithClock(func() time.Time { return fixedNow }))
	return c, store
}

func sampleBriefing(summary string) *models.MarketBriefing {
	return &models.MarketBriefing{
		Date:           "2024-05-01",
		Summary:        summary,
		KeyTakeaways:   []string{"one"},
		SentimentScore: 65,
		Sources:        []models.Source{},
	}
}

func sampleEvents() []models.EconomicEvent {
	return []models.EconomicEvent{
		{Date: "2024-05-01", Event: "item0", Impact: models.ImpactHigh},
		{Date: "2024-05-02", Event: "item1", Impact: models.ImpactLow},
		{Date: "2024-05-01", Event: "item2", Impact: models.ImpactMedium},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestController_InitialSnapshot(t *testing.T) {
	c, _ := newTestController(&fakeService{}, "BTC")
	snap := c.Snapshot()

	assert.Nil(t, snap.Briefing)
	assert.NotNil(t, snap.Events)
	assert.Empty(t, snap.Events)
	assert.Equal(t, StateIdle, snap.BriefingState)
	assert.Equal(t, StateIdle, snap.EventsState)
	assert.False(t, snap.LoadingBriefing)
	assert.Nil(t, snap.Error)
	assert.Equal(t, "European pre-market", snap.NextSession.Name)
	assert.NotEmpty(t, snap.Quote)
	assert.Equal(t, "2024-05-01", snap.Today)
	assert.True(t, snap.HasWatchlist())
}

func TestController_RefreshSuccess(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok"), events: sampleEvents()}
	c, _ := newTestController(svc, "BTC", "NVDA")

	c.Refresh(context.Background()).Wait()
	snap := c.Snapshot()

	require.NotNil(t, snap.Briefing)
	assert.Equal(t, "ok", snap.Briefing.Summary)
	assert.Equal(t, "bullish", snap.Sentiment)
	assert.Equal(t, StateSuccess, snap.BriefingState)
	assert.Equal(t, StateSuccess, snap.EventsState)
	assert.False(t, snap.LoadingBriefing)
	assert.False(t, snap.LoadingEvents)
	assert.Nil(t, snap.Error)

	require.Len(t, snap.TodayEvents, 2)
	assert.Equal(t, "item0", snap.TodayEvents[0].Event)
	assert.Equal(t, "item2", snap.TodayEvents[1].Event)
	require.Len(t, snap.OtherEvents, 1)
	assert.Equal(t, "item1", snap.OtherEvents[0].Event)
}

func TestController_RefreshEmptyWatchlistIsNoop(t *testing.T) {
	svc := &fakeService{}
	c, _ := newTestController(svc)

	c.Refresh(context.Background()).Wait()

	b, e := svc.calls()
	assert.Equal(t, 0, b)
	assert.Equal(t, 0, e)
	assert.Equal(t, StateIdle, c.Snapshot().BriefingState)
}

func TestController_BriefingFailureKeepsPrevious(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("first"), events: sampleEvents()}
	c, _ := newTestController(svc, "BTC")
	c.Refresh(context.Background()).Wait()

	svc.mu.Lock()
	svc.briefing = nil
	svc.briefingErr = errors.New("service unavailable")
	svc.mu.Unlock()

	c.Refresh(context.Background()).Wait()
	snap := c.Snapshot()

	require.NotNil(t, snap.Briefing, "previous briefing should survive a failure")
	assert.Equal(t, "first", snap.Briefing.Summary)
	assert.Equal(t, StateFailed, snap.BriefingState)
	assert.False(t, snap.LoadingBriefing)
	require.NotNil(t, snap.Error)
	assert.Equal(t, "简报生成失败。请检查 API 密钥或重试。", *snap.Error)
	assert.Equal(t, StateSuccess, snap.EventsState, "events track is independent of briefing failure")
	assert.Len(t, snap.Events, 3)
}

func TestController_BriefingFailureWithoutPrevious(t *testing.T) {
	svc := &fakeService{briefingErr: errors.New("bad key")}
	store := watchlist.NewStore()
	store.Add("BTC")
	c := NewController(store, svc, nil, WithErrorMessage("briefing failed"))

	c.Refresh(context.Background()).Wait()
	snap := c.Snapshot()

	assert.Nil(t, snap.Briefing)
	require.NotNil(t, snap.Error)
	assert.Equal(t, "briefing failed", *snap.Error)
}

func TestController_EventsFailureIsSilent(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok"), events: []models.EconomicEvent{}}
	c, _ := newTestController(svc, "BTC")

	c.Refresh(context.Background()).Wait()
	snap := c.Snapshot()

	assert.Empty(t, snap.Events)
	assert.Nil(t, snap.Error)
	assert.False(t, snap.LoadingEvents)
}

func TestController_RefreshClearsError(t *testing.T) {
	svc := &fakeService{briefingErr: errors.New("fail")}
	c, _ := newTestController(svc, "BTC")
	c.Refresh(context.Background()).Wait()
	require.NotNil(t, c.Snapshot().Error)

	gate := make(chan struct{})
	svc.mu.Lock()
	svc.briefingErr = nil
	svc.briefing = sampleBriefing("ok")
	svc.briefingGate = gate
	svc.mu.Unlock()

	r := c.Refresh(context.Background())
	snap := c.Snapshot()
	assert.Nil(t, snap.Error, "refresh should clear the last error immediately")
	assert.True(t, snap.LoadingBriefing)

	close(gate)
	r.Wait()
	assert.Equal(t, StateSuccess, c.Snapshot().BriefingState)
}

func TestController_TracksResolveIndependently(t *testing.T) {
	gate := make(chan struct{})
	svc := &fakeService{briefing: sampleBriefing("ok"), events: sampleEvents(), briefingGate: gate}
	c, _ := newTestController(svc, "BTC")

	r := c.Refresh(context.Background())
	waitFor(t, func() bool { return c.Snapshot().EventsState == StateSuccess })

	snap := c.Snapshot()
	assert.True(t, snap.LoadingBriefing)
	assert.False(t, snap.LoadingEvents)
	assert.Len(t, snap.Events, 3)

	close(gate)
	r.Wait()
	assert.False(t, c.Snapshot().LoadingBriefing)
}

func TestController_EmptyingWatchlistClearsState(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok"), events: sampleEvents()}
	c, store := newTestController(svc, "BTC", "NVDA")
	c.Refresh(context.Background()).Wait()
	require.NotNil(t, c.Snapshot().Briefing)

	for _, item := range store.Items() {
		require.True(t, c.Remove(item.ID))
	}
	snap := c.Snapshot()

	assert.Nil(t, snap.Briefing)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Watchlist)
	assert.Equal(t, StateIdle, snap.BriefingState)
	assert.Equal(t, StateIdle, snap.EventsState)
	assert.False(t, snap.HasWatchlist())
}

func TestController_PartialRemovalKeepsState(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok"), events: sampleEvents()}
	c, store := newTestController(svc, "BTC", "NVDA")
	c.Refresh(context.Background()).Wait()

	require.True(t, c.Remove(store.Items()[0].ID))
	snap := c.Snapshot()
	assert.NotNil(t, snap.Briefing)
	assert.Len(t, snap.Events, 3)
}

func TestController_StaleResultsDiscarded(t *testing.T) {
	briefingGate := make(chan struct{})
	eventsGate := make(chan struct{})
	svc := &fakeService{
		briefing:     sampleBriefing("stale"),
		events:       sampleEvents(),
		briefingGate: briefingGate,
		eventsGate:   eventsGate,
	}
	c, store := newTestController(svc, "BTC")

	r := c.Refresh(context.Background())
	c.Remove(store.Items()[0].ID)

	close(briefingGate)
	close(eventsGate)
	r.Wait()

	snap := c.Snapshot()
	assert.Nil(t, snap.Briefing, "in-flight briefing must not resurrect state for an empty watchlist")
	assert.Empty(t, snap.Events)
	assert.Equal(t, StateIdle, snap.BriefingState)
	assert.Equal(t, StateIdle, snap.EventsState)
}

func TestController_RemoveUnknownIsNoop(t *testing.T) {
	c, store := newTestController(&fakeService{}, "BTC")
	assert.False(t, c.Remove("missing"))
	assert.Equal(t, 1, store.Len())
}

func TestController_AddDedupe(t *testing.T) {
	c, store := newTestController(&fakeService{})

	_, ok := c.Add("eth")
	assert.True(t, ok)
	_, ok = c.Add("ETH")
	assert.False(t, ok)
	assert.Equal(t, []string{"ETH"}, store.Symbols())
}

func TestController_RefreshEventsOnly(t *testing.T) {
	svc := &fakeService{events: sampleEvents()}
	c, _ := newTestController(svc, "BTC")

	c.RefreshEvents(context.Background()).Wait()

	b, e := svc.calls()
	assert.Equal(t, 0, b)
	assert.Equal(t, 1, e)
	snap := c.Snapshot()
	assert.Len(t, snap.Events, 3)
	assert.Equal(t, StateIdle, snap.BriefingState)
}

func TestController_SurvivesCancelledContext(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok")}
	c, _ := newTestController(svc, "BTC")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Refresh(ctx).Wait()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.ctxErrs, 1)
	assert.NoError(t, svc.ctxErrs[0])
}

func TestController_PanicBecomesFailure(t *testing.T) {
	svc := &fakeService{briefingPanic: true}
	c, _ := newTestController(svc, "BTC")

	c.Refresh(context.Background()).Wait()
	snap := c.Snapshot()

	assert.Equal(t, StateFailed, snap.BriefingState)
	assert.NotNil(t, snap.Error)
	assert.Equal(t, StateSuccess, snap.EventsState)
}

func TestController_Subscribe(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok")}
	c, _ := newTestController(svc, "BTC")

	var mu sync.Mutex
	var states []TrackState
	unsubscribe := c.Subscribe(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.BriefingState)
		mu.Unlock()
	})

	c.Refresh(context.Background()).Wait()

	mu.Lock()
	got := append([]TrackState(nil), states...)
	mu.Unlock()
	require.NotEmpty(t, got)
	assert.Equal(t, StateLoading, got[0])
	assert.Contains(t, got, StateSuccess)

	unsubscribe()
	c.Add("NVDA")

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, states, len(got), "no notifications after unsubscribe")
}

func TestController_SnapshotIsCopy(t *testing.T) {
	svc := &fakeService{briefing: sampleBriefing("ok"), events: sampleEvents()}
	c, _ := newTestController(svc, "BTC")
	c.Refresh(context.Background()).Wait()

	snap := c.Snapshot()
	snap.Briefing.KeyTakeaways[0] = "mutated"
	snap.Events[0].Event = "mutated"

	again := c.Snapshot()
	assert.Equal(t, "one", again.Briefing.KeyTakeaways[0])
	assert.Equal(t, "item0", again.Events[0].Event)
}

func TestController_SnapshotKeepsEmptySlices(t *testing.T) {
	svc := &fakeService{briefing: &models.MarketBriefing{
		Date:           "2024-05-01",
		Summary:        "quiet day",
		KeyTakeaways:   []string{},
		SentimentScore: 50,
		Sources:        []models.Source{},
	}}
	c, _ := newTestController(svc, "BTC")
	c.Refresh(context.Background()).Wait()

	out, err := json.Marshal(c.Snapshot().Briefing)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sources":[]`)
	assert.Contains(t, string(out), `"keyTakeaways":[]`)
}

func TestController_RemoveRacingRefreshNeverRepopulates(t *testing.T) {
	for i := 0; i < 200; i++ {
		svc := &fakeService{briefing: sampleBriefing("late"), events: sampleEvents()}
		c, store := newTestController(svc, "BTC")
		id := store.Items()[0].ID

		var wg sync.WaitGroup
		var r *Refresh
		wg.Add(2)
		go func() {
			defer wg.Done()
			r = c.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			c.Remove(id)
		}()
		wg.Wait()
		r.Wait()

		snap := c.Snapshot()
		require.Empty(t, snap.Watchlist)
		require.Nil(t, snap.Briefing, "iteration %d: briefing landed on an empty watchlist", i)
		require.Empty(t, snap.Events, "iteration %d: events landed on an empty watchlist", i)
		require.Equal(t, StateIdle, snap.BriefingState)
	}
}

