package summarizer

import (
	"context"
	"strings"
	"unicode"
)

// LeadSummarizer is an extractive summarizer that keeps the leading sentences
// of the input. It needs no network access and is deterministic.
type LeadSummarizer struct{}

func (LeadSummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	var (
		picked []string
		words  int
	)

	for _, sentence := range splitSentences(text) {
		n := len(strings.Fields(sentence))
		if words >= input.MinLength && input.MaxLength > 0 && words+n > input.MaxLength {
			break
		}

		picked = append(picked, sentence)
		words += n
	}

	return ClipWords(strings.Join(picked, " "), input.MaxLength), nil
}

// splitSentences breaks text after '.', '!' or '?' followed by whitespace.
// Whitespace inside a sentence is collapsed to single spaces.
func splitSentences(text string) []string {
	var (
		sentences []string
		current   []string
	)

	for _, word := range strings.Fields(text) {
		current = append(current, word)

		if endsSentence(word) {
			sentences = append(sentences, strings.Join(current, " "))
			current = current[:0]
		}
	}

	if len(current) > 0 {
		sentences = append(sentences, strings.Join(current, " "))
	}

	return sentences
}

func endsSentence(word string) bool {
	trimmed := strings.TrimRightFunc(word, func(r rune) bool {
		return r == '"' || r == '\'' || r == ')' || r == '»' || unicode.Is(unicode.Pf, r)
	})
	if trimmed == "" {
		return false
	}

	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}
