package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobmcallan/briefing-portal/internal/gemini"
	"github.com/bobmcallan/briefing-portal/internal/models"
)

type eventPayload struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Event        string `json:"event"`
	Impact       string `json:"impact" validate:"omitempty,oneof=HIGH MEDIUM LOW"`
	Forecast     string `json:"forecast"`
	Previous     string `json:"previous"`
	RelatedAsset string `json:"relatedAsset"`
}

// RequestEvents asks the generator for this week's events relevant to
// symbols. Failures are logged and reported as an empty list.
func (c *Client) RequestEvents(ctx context.Context, symbols []string) []models.EconomicEvent {
	if len(symbols) == 0 {
		return []models.EconomicEvent{}
	}

	events, err := c.requestEvents(ctx, symbols)
	if err != nil {
		c.logger.Warn().Err(err).Strs("symbols", symbols).Msg("economic calendar unavailable")
		return []models.EconomicEvent{}
	}

	c.logger.Info().Strs("symbols", symbols).Int("events", len(events)).Msg("economic calendar fetched")
	return events
}

func (c *Client) requestEvents(ctx context.Context, symbols []string) ([]models.EconomicEvent, error) {
	resp, err := c.gen.Generate(ctx, gemini.Request{
		Prompt:   eventsPrompt(c.Today(), symbols, c.locale),
		Schema:   eventsSchema(c.locale),
		Grounded: true,
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return []models.EconomicEvent{}, nil
	}

	var payload []eventPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]models.EconomicEvent, 0, len(payload))
	for i, p := range payload {
		if err := c.validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid event %d: %w", i, err)
		}
		events = append(events, models.EconomicEvent{
			Date:         p.Date,
			Time:         p.Time,
			Event:        p.Event,
			Impact:       models.ImpactLevel(p.Impact),
			Forecast:     p.Forecast,
			Previous:     p.Previous,
			RelatedAsset: p.RelatedAsset,
		})
	}
	return events, nil
}
