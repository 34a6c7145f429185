package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	baseMaxOutputTokens       int64 = 512
	tokensPerWord             int64 = 4
	maxOutputTokensMultiplier int64 = 8

	systemPrompt = `Summarize the document excerpt provided by the user.

Rules:
- Between %d and %d words.
- Keep the core ideas and critical facts (dates, numbers, names).
- Plain prose, no lists, no headings, no preamble.
- Neutral tone.
- Output only the summary in the same language as the input.`
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer builds a new summarizer instance. An empty baseURL keeps
// the SDK default.
func NewOpenAISummarizer(
	apiKey string,
	model string,
	baseURL string,
	opts ...option.RequestOption,
) *OpenAISummarizer {
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &OpenAISummarizer{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

// Summarize produces one summary within the requested word bounds.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", ErrEmptyInput
	}

	maxOutputTokens, limitMaxOutputTokens := outputTokenBudget(input.MaxLength)
	for {
		params := responses.ResponseNewParams{
			Model:           s.model,
			MaxOutputTokens: openai.Int(maxOutputTokens),
			Instructions:    openai.String(fmt.Sprintf(systemPrompt, input.MinLength, input.MaxLength)),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		}
		if isReasoningModel(s.model) {
			params.Reasoning = responses.ReasoningParam{
				Effort: openai.ReasoningEffortLow,
			}
		}

		resp, err := s.client.Responses.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limitMaxOutputTokens {
				maxOutputTokens = min(maxOutputTokens*2, limitMaxOutputTokens)
				continue
			}
			return "", fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		summary := strings.TrimSpace(resp.OutputText())
		if summary == "" {
			return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}
		return summary, nil
	}
}

// outputTokenBudget returns the initial and the largest MaxOutputTokens for a
// summary of at most maxWords words.
func outputTokenBudget(maxWords int) (int64, int64) {
	base := max(baseMaxOutputTokens, int64(maxWords)*tokensPerWord)

	return base, base * maxOutputTokensMultiplier
}

func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "gpt-5") || strings.HasPrefix(model, "o")
}
