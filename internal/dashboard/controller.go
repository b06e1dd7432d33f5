// Package dashboard coordinates the watchlist, the briefing and calendar
// requests, and the state shown to the presentation layer.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/briefing-portal/internal/briefing"
	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
	"github.com/bobmcallan/briefing-portal/internal/market"
	"github.com/bobmcallan/briefing-portal/internal/models"
	"github.com/bobmcallan/briefing-portal/internal/watchlist"
)

// Service fetches briefings and calendars. *briefing.Client implements it.
type Service interface {
	RequestBriefing(ctx context.Context, symbols []string) (*models.MarketBriefing, error)
	RequestEvents(ctx context.Context, symbols []string) []models.EconomicEvent
}

var _ Service = (*briefing.Client)(nil)

// Controller owns the dashboard state. Briefing and events are independent
// tracks: each has its own state and generation counter, and a result from
// an older generation is dropped.
type Controller struct {
	store        *watchlist.Store
	svc          Service
	logger       *common.Logger
	now          func() time.Time
	errorMessage string

	mu            sync.Mutex
	briefing      *models.MarketBriefing
	events        []models.EconomicEvent
	briefingState TrackState
	eventsState   TrackState
	lastError     string
	briefingGen   uint64
	eventsGen     uint64

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObsID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now for the session label, quote and today's date.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithErrorMessage sets the message shown when a briefing fails.
func WithErrorMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.errorMessage = msg
		}
	}
}

// NewController creates a controller over store and svc.
func NewController(store *watchlist.Store, svc Service, logger *common.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:         store,
		svc:           svc,
		logger:        logger,
		now:           time.Now,
		errorMessage:  config.DefaultBriefingErrorMessage,
		events:        []models.EconomicEvent{},
		briefingState: StateIdle,
		eventsState:   StateIdle,
		observers:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = common.NewSilentLogger()
	}
	return c
}

// Refresh is a handle on dispatched requests.
type Refresh struct {
	g errgroup.Group
}

// Wait blocks until every dispatched request has resolved.
func (r *Refresh) Wait() {
	_ = r.g.Wait()
}

// Refresh clears the last error, moves both tracks to loading and fires the
// briefing and events requests concurrently. It does nothing when the
// watchlist is empty. The requests outlive ctx's cancellation.
func (c *Controller) Refresh(ctx context.Context) *Refresh {
	r := &Refresh{}
	ctx = context.WithoutCancel(ctx)

	// The store read and the generation bump happen under c.mu so a
	// concurrent Remove that empties the watchlist always bumps after us.
	c.mu.Lock()
	symbols := c.store.Symbols()
	if len(symbols) == 0 {
		c.mu.Unlock()
		return r
	}
	c.lastError = ""
	c.briefingState = StateLoading
	c.eventsState = StateLoading
	c.briefingGen++
	c.eventsGen++
	bGen, eGen := c.briefingGen, c.eventsGen
	c.mu.Unlock()

	c.logger.Info().Strs("symbols", symbols).Msg("dashboard refresh started")
	c.notify()

	r.g.Go(func() error {
		c.runBriefing(ctx, bGen, symbols)
		return nil
	})
	r.g.Go(func() error {
		c.runEvents(ctx, eGen, symbols)
		return nil
	})
	return r
}

// RefreshEvents re-fetches the calendar only.
func (c *Controller) RefreshEvents(ctx context.Context) *Refresh {
	r := &Refresh{}
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	symbols := c.store.Symbols()
	if len(symbols) == 0 {
		c.mu.Unlock()
		return r
	}
	c.eventsState = StateLoading
	c.eventsGen++
	eGen := c.eventsGen
	c.mu.Unlock()

	c.notify()

	r.g.Go(func() error {
		c.runEvents(ctx, eGen, symbols)
		return nil
	})
	return r
}

func (c *Controller) runBriefing(ctx context.Context, gen uint64, symbols []string) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error().Str("panic", fmt.Sprint(rec)).Msg("briefing request panicked")
			c.finishBriefing(gen, nil, fmt.Errorf("panic: %v", rec))
		}
	}()
	b, err := c.svc.RequestBriefing(ctx, symbols)
	c.finishBriefing(gen, b, err)
}

func (c *Controller) finishBriefing(gen uint64, b *models.MarketBriefing, err error) {
	c.mu.Lock()
	if gen != c.briefingGen {
		c.mu.Unlock()
		c.logger.Debug().Int64("generation", int64(gen)).Msg("discarding stale briefing result")
		return
	}
	if err != nil || b == nil {
		// Previous briefing stays visible.
		c.briefingState = StateFailed
		c.lastError = c.errorMessage
	} else {
		c.briefing = b
		c.briefingState = StateSuccess
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) runEvents(ctx context.Context, gen uint64, symbols []string) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error().Str("panic", fmt.Sprint(rec)).Msg("events request panicked")
			c.finishEvents(gen, nil, StateFailed)
		}
	}()
	events := c.svc.RequestEvents(ctx, symbols)
	c.finishEvents(gen, events, StateSuccess)
}

func (c *Controller) finishEvents(gen uint64, events []models.EconomicEvent, state TrackState) {
	if events == nil {
		events = []models.EconomicEvent{}
	}
	c.mu.Lock()
	if gen != c.eventsGen {
		c.mu.Unlock()
		c.logger.Debug().Int64("generation", int64(gen)).Msg("discarding stale events result")
		return
	}
	c.events = events
	c.eventsState = state
	c.mu.Unlock()
	c.notify()
}

// Add tracks symbol. It returns false for empty or duplicate symbols.
func (c *Controller) Add(symbol string) (models.WatchlistItem, bool) {
	item, ok := c.store.Add(symbol)
	if ok {
		c.logger.Info().Str("symbol", item.Symbol).Str("id", item.ID).Msg("watchlist item added")
		c.notify()
	}
	return item, ok
}

// Remove untracks the item with id. Emptying the watchlist clears the
// briefing and events and invalidates in-flight requests.
func (c *Controller) Remove(id string) bool {
	c.mu.Lock()
	if !c.store.Remove(id) {
		c.mu.Unlock()
		return false
	}
	if c.store.Len() == 0 {
		c.briefing = nil
		c.events = []models.EconomicEvent{}
		c.briefingState = StateIdle
		c.eventsState = StateIdle
		c.lastError = ""
		c.briefingGen++
		c.eventsGen++
	}
	c.mu.Unlock()

	c.logger.Info().Str("id", id).Msg("watchlist item removed")
	c.notify()
	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	now := c.now()
	today := now.Format(time.DateOnly)

	c.mu.Lock()
	s := Snapshot{
		Briefing:        copyBriefing(c.briefing),
		Events:          copyEvents(c.events),
		BriefingState:   c.briefingState,
		EventsState:     c.eventsState,
		LoadingBriefing: c.briefingState == StateLoading,
		LoadingEvents:   c.eventsState == StateLoading,
	}
	if c.lastError != "" {
		msg := c.lastError
		s.Error = &msg
	}
	c.mu.Unlock()

	s.Watchlist = c.store.Items()
	s.TodayEvents, s.OtherEvents = briefing.Partition(s.Events, today)
	if s.Briefing != nil {
		s.Sentiment = s.Briefing.Sentiment()
	}
	s.NextSession = market.NextSession(now)
	s.Quote = market.QuoteOfDay(now)
	s.Today = today
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.observers, id)
		c.obsMu.Unlock()
	}
}

func (c *Controller) notify() {
	c.obsMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.obsMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := c.Snapshot()
	for _, fn := range fns {
		c.callObserver(fn, snap)
	}
}

func (c *Controller) callObserver(fn func(Snapshot), snap Snapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Warn().Str("panic", fmt.Sprint(rec)).Msg("dashboard observer panicked")
		}
	}()
	fn(snap)
}
