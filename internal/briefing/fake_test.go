package briefing

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/briefing-portal/internal/gemini"
)

// fakeGenerator returns a canned response and records requests.
type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	refs     []gemini.Reference
	err      error
	requests []gemini.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (*gemini.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &gemini.Response{Text: f.text, References: f.refs}, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
}

func newTestClient(gen gemini.Generator) *Client {
	return NewClient(gen, nil, WithClock(fixedClock()))
}
