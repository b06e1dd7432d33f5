// Package gemini wraps the Gemini generative-AI API behind a small interface.
package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Generator produces text from a prompt. Implementations may ground the
// answer in live web search and constrain it to a JSON schema.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is a single generation call.
type Request struct {
	Prompt   string
	Schema   *genai.Schema // when set, the response is JSON matching this schema
	Grounded bool          // enable Google Search grounding
}

// Response carries the generated text and any grounding references.
type Response struct {
	Text       string
	References []Reference
}

// Reference is one grounding chunk. Title or URI may be empty.
type Reference struct {
	Title string
	URI   string
}
