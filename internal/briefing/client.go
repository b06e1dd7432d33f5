// Package briefing requests the daily market briefing and the weekly
// economic calendar from a generative model, and splits events by date.
package briefing

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/gemini"
)

// Client builds prompts, calls the generator and validates its JSON output.
type Client struct {
	gen      gemini.Generator
	logger   *common.Logger
	locale   language.Tag
	now      func() time.Time
	validate *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithLocale sets the language generated text is written in.
func WithLocale(tag language.Tag) Option {
	return func(c *Client) { c.locale = tag }
}

// WithClock replaces time.Now, which stamps briefing dates and prompts.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a briefing client. The default locale is Simplified Chinese.
func NewClient(gen gemini.Generator, logger *common.Logger, opts ...Option) *Client {
	c := &Client{
		gen:      gen,
		logger:   logger,
		locale:   language.SimplifiedChinese,
		now:      time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = common.NewSilentLogger()
	}
	return c
}

// Today returns the client's current calendar date as YYYY-MM-DD.
func (c *Client) Today() string {
	return c.now().Format(time.DateOnly)
}
