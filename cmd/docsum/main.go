package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docsum/internal/app"
	"docsum/internal/config"
	"docsum/internal/domain"
	"docsum/internal/metrics"
	"docsum/internal/summarizer"
)

type summarizerFactory func(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(app.NewSummarizer)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(newSummarizer summarizerFactory) *cobra.Command {
	defaults := domain.DefaultSummaryRequest()

	var (
		maxLength int
		minLength int
		stats     bool
	)

	cmd := &cobra.Command{
		Use:           "docsum <file>",
		Short:         "Summarize a txt, pdf, pptx or docx document",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := cfg.NewLogger(cmd.ErrOrStderr())

			ctx := cmd.Context()
			p := app.NewPipeline(newSummarizer(ctx, cfg, log), cfg)

			req := domain.SummaryRequest{MaxLength: maxLength, MinLength: minLength}

			result, err := p.Process(ctx, args[0], req)
			if err != nil {
				return err
			}
			log.DebugContext(ctx, "Document is summarized",
				"path", result.Path,
				"format", result.Format.String(),
				"wordCount", result.Metrics.WordCount,
				"summaryWordCount", result.Metrics.SummaryWordCount)

			return printResult(cmd.OutOrStdout(), result.Summary, result.Metrics, stats)
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", defaults.MaxLength, "Upper bound on summary words")
	cmd.Flags().IntVar(&minLength, "min-length", defaults.MinLength, "Lower bound on summary words")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print document statistics after the summary")

	return cmd
}

func printResult(w io.Writer, summary string, m metrics.Metrics, stats bool) error {
	if _, err := fmt.Fprintf(w, "\n--- Document Summary ---\n\n%s\n", summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if !stats {
		return nil
	}

	_, err := fmt.Fprintf(w,
		"\n--- Document Statistics ---\n"+
			"Total Words: %d\n"+
			"Total Characters: %d\n"+
			"Summary Words: %d\n"+
			"Compression Ratio: %s\n",
		m.WordCount, m.CharCount, m.SummaryWordCount, m.RatioString())
	if err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}

	return nil
}
