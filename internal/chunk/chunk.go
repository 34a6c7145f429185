// Package chunk splits long text into fixed-size spans.
//
// Splitting is positional: a span boundary may fall inside a word or a
// sentence. Sizes are measured in runes so every span is valid UTF-8.
package chunk

import "unicode/utf8"

// Split returns consecutive, non-overlapping spans of exactly size runes; the
// last span may be shorter. Empty text yields no spans. A non-positive size
// yields the whole text as a single span.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}

	if size <= 0 {
		return []string{text}
	}

	chunks := make([]string, 0, Count(text, size))

	start := 0
	runes := 0
	for i := range text {
		if runes == size {
			chunks = append(chunks, text[start:i])
			start = i
			runes = 0
		}
		runes++
	}
	chunks = append(chunks, text[start:])

	return chunks
}

// Count reports how many spans Split would produce.
func Count(text string, size int) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}

	if size <= 0 {
		return 1
	}

	return (n + size - 1) / size
}
