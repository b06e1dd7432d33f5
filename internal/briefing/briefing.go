package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/bobmcallan/briefing-portal/internal/gemini"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

type briefingPayload struct {
	Summary        string   `json:"summary" validate:"required"`
	KeyTakeaways   []string `json:"keyTakeaways" validate:"required"`
	SentimentScore *float64 `json:"sentimentScore" validate:"required"`
}

// RequestBriefing asks the generator for a grounded market briefing on
// symbols. It makes exactly one attempt. Every failure is a *GenerationError.
func (c *Client) RequestBriefing(ctx context.Context, symbols []string) (*models.MarketBriefing, error) {
	if len(symbols) == 0 {
		return nil, &GenerationError{Err: ErrEmptyWatchlist}
	}

	today := c.Today()
	resp, err := c.gen.Generate(ctx, gemini.Request{
		Prompt:   briefingPrompt(today, symbols, c.locale),
		Schema:   briefingSchema(c.locale),
		Grounded: true,
	})
	if err != nil {
		return nil, c.fail(symbols, err)
	}

	var payload briefingPayload
	if err := json.Unmarshal([]byte(resp.Text), &payload); err != nil {
		return nil, c.fail(symbols, fmt.Errorf("decode briefing: %w", err))
	}
	if err := c.validate.Struct(payload); err != nil {
		return nil, c.fail(symbols, fmt.Errorf("invalid briefing: %w", err))
	}

	b := &models.MarketBriefing{
		Date:           today,
		Summary:        payload.Summary,
		KeyTakeaways:   payload.KeyTakeaways,
		SentimentScore: clampScore(*payload.SentimentScore),
		Sources:        sources(resp.References),
	}

	c.logger.Info().
		Strs("symbols", symbols).
		Int("takeaways", len(b.KeyTakeaways)).
		Int("sources", len(b.Sources)).
		Float64("sentiment", b.SentimentScore).
		Msg("briefing generated")

	return b, nil
}

func (c *Client) fail(symbols []string, err error) error {
	c.logger.Error().Err(err).Strs("symbols", symbols).Msg("briefing generation failed")
	return &GenerationError{Symbols: symbols, Err: err}
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// sources keeps references that have both a title and a URI.
func sources(refs []gemini.Reference) []models.Source {
	out := make([]models.Source, 0, len(refs))
	for _, r := range refs {
		if r.Title == "" || r.URI == "" {
			continue
		}
		out = append(out, models.Source{Title: r.Title, URI: r.URI})
	}
	return out
}
