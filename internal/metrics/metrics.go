package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Metrics describes an original text and its summary. Characters are runes.
type Metrics struct {
	WordCount        int
	CharCount        int
	SummaryWordCount int
	SummaryCharCount int
	// CompressionRatio is CharCount / SummaryCharCount, or 0 for an empty summary.
	CompressionRatio float64
}

func Compute(original string, summary string) Metrics {
	m := Metrics{
		WordCount:        len(strings.Fields(original)),
		CharCount:        utf8.RuneCountInString(original),
		SummaryWordCount: len(strings.Fields(summary)),
		SummaryCharCount: utf8.RuneCountInString(summary),
	}

	if m.SummaryCharCount > 0 {
		m.CompressionRatio = float64(m.CharCount) / float64(m.SummaryCharCount)
	}

	return m
}

func (m Metrics) RatioString() string {
	return fmt.Sprintf("%.1fx", m.CompressionRatio)
}
