// Package pipeline runs a document through extraction, summarization and
// metrics.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"docsum/internal/domain"
	"docsum/internal/extract"
	"docsum/internal/metrics"
	"docsum/internal/orchestrator"
)

// Result carries everything a front end renders for one document.
type Result struct {
	Path    string
	Format  extract.Format
	Text    string
	Summary string
	Metrics metrics.Metrics
}

type Pipeline struct {
	orchestrator *orchestrator.Orchestrator
}

func New(o *orchestrator.Orchestrator) *Pipeline {
	return &Pipeline{orchestrator: o}
}

// Process summarizes the document at path. Returned errors keep their types
// (UnsupportedFormatError, ExtractionError, DegenerateInputError,
// SummarizationError, ValidationError) behind stage context.
func (p *Pipeline) Process(ctx context.Context, path string, req domain.SummaryRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := filepath.Base(path)

	extractor, err := extract.Resolve(path)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &orchestrator.DegenerateInputError{Path: path}
	}

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("summarize %s: %w", name, err)
	}

	summary, err := p.orchestrator.Summarize(ctx, text, req)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", name, err)
	}

	return &Result{
		Path:    path,
		Format:  extractor.Format(),
		Text:    text,
		Summary: summary,
		Metrics: metrics.Compute(text, summary),
	}, nil
}
