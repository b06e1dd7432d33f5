package briefing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyWatchlist is returned when a briefing is requested with no symbols.
	ErrEmptyWatchlist = errors.New("watchlist is empty")

	// ErrBriefingGeneration matches every briefing failure via errors.Is.
	ErrBriefingGeneration = errors.New("briefing generation failed")
)

// GenerationError reports a failed briefing request. It matches both
// ErrBriefingGeneration and the underlying cause.
type GenerationError struct {
	Symbols []string
	Err     error
}

func (e *GenerationError) Error() string {
	if len(e.Symbols) == 0 {
		return fmt.Sprintf("%s: %v", ErrBriefingGeneration, e.Err)
	}
	return fmt.Sprintf("%s for %s: %v", ErrBriefingGeneration, strings.Join(e.Symbols, ","), e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrBriefingGeneration, e.Err}
}
