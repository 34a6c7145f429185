package bot

import (
	"errors"
	"fmt"
	"strings"

	"docsum/internal/chunk"
	"docsum/internal/domain"
	"docsum/internal/download"
	"docsum/internal/extract"
	"docsum/internal/markdown"
	"docsum/internal/metrics"
	"docsum/internal/orchestrator"
)

const (
	telegramMessageMaxLength = 4096
	summaryHeaderReserve     = 256

	// Escaping at most doubles a piece, so escaped pieces plus a header stay
	// under the Telegram limit.
	summaryPieceLength = (telegramMessageMaxLength - summaryHeaderReserve) / 2
)

func supportedFormatsText() string {
	return markdown.EscapeV2(strings.Join(extract.SupportedExtensions(), ", "))
}

// userErrorText renders err for the user.
func userErrorText(err error) string {
	var (
		unsupported   *extract.UnsupportedFormatError
		extraction    *extract.ExtractionError
		degenerate    *orchestrator.DegenerateInputError
		summarization *orchestrator.SummarizationError
		validation    *domain.ValidationError
	)

	switch {
	case errors.As(err, &unsupported):
		ext := unsupported.Ext
		if ext == "" {
			ext = "without extension"
		}
		return fmt.Sprintf("✖️ Unsupported file format %s\\. Supported formats: %s\\.",
			markdown.Code(ext), supportedFormatsText())
	case errors.Is(err, download.ErrTooLarge):
		return "✖️ The document is too large\\."
	case errors.As(err, &extraction):
		return fmt.Sprintf("❌ The document could not be read\\. It may be corrupt or not a real %s file\\.",
			markdown.Code(extraction.Format.Ext()))
	case errors.As(err, &degenerate):
		return "✖️ No text was found in the document\\."
	case errors.As(err, &summarization):
		return "⚠️ Summarization failed\\. Please try again later\\."
	case errors.As(err, &validation):
		return "❌ Summary length settings are invalid\\. Please pick another value in /settings\\."
	default:
		return "❌ Failed\\."
	}
}

// isUserError reports whether err is caused by the input rather than by the
// service. Such errors are answered but not logged as failures.
func isUserError(err error) bool {
	var (
		unsupported *extract.UnsupportedFormatError
		extraction  *extract.ExtractionError
		degenerate  *orchestrator.DegenerateInputError
	)

	return errors.As(err, &unsupported) ||
		errors.As(err, &extraction) ||
		errors.As(err, &degenerate) ||
		errors.Is(err, download.ErrTooLarge)
}

// summaryMessages splits summary into MarkdownV2 messages. The first one
// carries a header naming the document.
func summaryMessages(name string, summary string) []string {
	pieces := chunk.Split(summary, summaryPieceLength)
	messages := make([]string, 0, len(pieces))

	for i, piece := range pieces {
		text := markdown.EscapeV2(piece)
		if i == 0 {
			text = fmt.Sprintf("📄 *Summary of* %s\n\n%s", markdown.Code(truncateName(name)), text)
		}
		messages = append(messages, text)
	}

	return messages
}

func truncateName(name string) string {
	const maxNameLength = 64

	runes := []rune(name)
	if len(runes) <= maxNameLength {
		return name
	}

	return string(runes[:maxNameLength-1]) + "…"
}

func statisticsText(m metrics.Metrics) string {
	return fmt.Sprintf(
		"📊 *Statistics*\n\n"+
			"Original: %d words, %d characters\n"+
			"Summary: %d words, %d characters\n"+
			"Compression: %s",
		m.WordCount,
		m.CharCount,
		m.SummaryWordCount,
		m.SummaryCharCount,
		markdown.EscapeV2(m.RatioString()),
	)
}
