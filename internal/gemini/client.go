package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/bobmcallan/briefing-portal/internal/common"
	"github.com/bobmcallan/briefing-portal/internal/config"
)

// ErrNoCandidates is returned when the API answers without any candidate.
var ErrNoCandidates = errors.New("gemini returned no candidates")

// Client is a Generator backed by the Gemini API.
type Client struct {
	genai  *genai.Client
	model  string
	logger *common.Logger
}

// NewClient creates a Gemini API client from configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *common.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{genai: gc, model: cfg.Model, logger: logger}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one GenerateContent call.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	gcfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		gcfg.ResponseMIMEType = "application/json"
		gcfg.ResponseSchema = req.Schema
	}
	if req.Grounded {
		gcfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), gcfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	out := &Response{Text: resp.Text()}
	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			out.References = append(out.References, Reference{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("model", c.model).
			Bool("grounded", req.Grounded).
			Int("references", len(out.References)).
			Dur("elapsed", time.Since(start)).
			Msg("gemini generation complete")
	}

	return out, nil
}
