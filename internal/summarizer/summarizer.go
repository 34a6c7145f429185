package summarizer

import (
	"context"
	"errors"
	"strings"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_summarizer.go -package=mocks docsum/internal/summarizer Summarizer

// ErrEmptyInput is returned for input without any non-space characters.
var ErrEmptyInput = errors.New("input is empty")

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the original plain text to summarise.
	Text string
	// MaxLength is the upper bound of the summary, in words.
	MaxLength int
	// MinLength is the lower bound of the summary, in words.
	MinLength int
}

// Summarizer produces a single summary for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// ClipWords keeps at most n whitespace-separated words of text. Inner
// whitespace is preserved when no clipping is needed.
func ClipWords(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}

	return strings.Join(words[:n], " ")
}
