// Package app assembles the summarization pipeline from configuration.
package app

import (
	"context"
	"log/slog"
	"strings"

	"docsum/internal/config"
	"docsum/internal/orchestrator"
	"docsum/internal/pipeline"
	"docsum/internal/summarizer"
)

// NewSummarizer returns the OpenAI summarizer when an API key is configured
// and the lead-sentence fallback otherwise. Either one is wrapped in the
// summary cache.
func NewSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer {
	var s summarizer.Summarizer

	apiKey := strings.TrimSpace(cfg.OpenAIAPIKey)
	if apiKey == "" {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so fallback will be used",
			"envVar", "OPENAI_API_KEY")

		s = summarizer.LeadSummarizer{}
	} else {
		s = summarizer.NewOpenAISummarizer(apiKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		log.InfoContext(ctx, "OpenAI summarizer is initialized",
			"provider", "openai",
			"model", cfg.OpenAIModel)
	}

	return summarizer.NewCachedSummarizer(s, cfg.SummaryCacheSize, cfg.SummaryCacheTTL)
}

func NewPipeline(s summarizer.Summarizer, cfg config.Config) *pipeline.Pipeline {
	o := orchestrator.New(s,
		orchestrator.WithThreshold(cfg.ChunkSize),
		orchestrator.WithParallelism(cfg.SummaryParallelism),
	)

	return pipeline.New(o)
}
