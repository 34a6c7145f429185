// Package orchestrator summarizes texts of any length with a bounded
// summarization capability. Long texts are split into fixed-size chunks that
// are summarized independently and joined in chunk order.
package orchestrator

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"docsum/internal/chunk"
	"docsum/internal/domain"
	"docsum/internal/summarizer"
)

const (
	DefaultThreshold   = 1000
	DefaultParallelism = 1
)

type Orchestrator struct {
	summarizer  summarizer.Summarizer
	threshold   int
	parallelism int
}

type Option func(*Orchestrator)

// WithThreshold sets the chunk size in characters. Texts at or below it are
// summarized in one call.
func WithThreshold(threshold int) Option {
	return func(o *Orchestrator) {
		if threshold > 0 {
			o.threshold = threshold
		}
	}
}

// WithParallelism caps concurrent capability calls for chunked texts.
func WithParallelism(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

func New(s summarizer.Summarizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		summarizer:  s,
		threshold:   DefaultThreshold,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Summarize returns one summary for text within the bounds of req.
func (o *Orchestrator) Summarize(ctx context.Context, text string, req domain.SummaryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", &DegenerateInputError{}
	}

	if utf8.RuneCountInString(text) <= o.threshold {
		summary, err := o.summarizeOne(ctx, text, req)
		if err != nil {
			return "", &SummarizationError{Chunk: 0, Chunks: 1, Err: err}
		}

		return summary, nil
	}

	return o.summarizeChunks(ctx, chunk.Split(text, o.threshold), req)
}

func (o *Orchestrator) summarizeChunks(ctx context.Context, chunks []string, req domain.SummaryRequest) (string, error) {
	summaries := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &SummarizationError{Chunk: i, Chunks: len(chunks), Err: err}
			}

			summary, err := o.summarizeOne(gctx, c, req)
			if err != nil {
				return &SummarizationError{Chunk: i, Chunks: len(chunks), Err: err}
			}

			summaries[i] = summary

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, " "), nil
}

func (o *Orchestrator) summarizeOne(ctx context.Context, text string, req domain.SummaryRequest) (string, error) {
	summary, err := o.summarizer.Summarize(ctx, summarizer.Input{
		Text:      text,
		MaxLength: req.MaxLength,
		MinLength: req.MinLength,
	})
	if err != nil {
		return "", err
	}

	summary = summarizer.ClipWords(summary, req.MaxLength)
	if summary == "" {
		return "", errEmptySummary
	}

	return summary, nil
}
