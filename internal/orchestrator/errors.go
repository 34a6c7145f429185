package orchestrator

import (
	"errors"
	"fmt"
	"path/filepath"
)

var errEmptySummary = errors.New("summarizer returned an empty summary")

// SummarizationError reports a failed capability call. Chunk is 0-based;
// Chunks is 1 when the text was summarized in a single call.
type SummarizationError struct {
	Chunk  int
	Chunks int
	Err    error
}

func (e *SummarizationError) Error() string {
	if e.Chunks <= 1 {
		return fmt.Sprintf("summarize text: %v", e.Err)
	}

	return fmt.Sprintf("summarize chunk %d of %d: %v", e.Chunk+1, e.Chunks, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// DegenerateInputError is returned for empty or whitespace-only text. Path is
// set when the text came from a document.
type DegenerateInputError struct {
	Path string
}

func (e *DegenerateInputError) Error() string {
	if e.Path == "" {
		return "no text to summarize"
	}

	return fmt.Sprintf("no text to summarize in %s", filepath.Base(e.Path))
}
