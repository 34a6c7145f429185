package summarizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/openai/openai-go/v3/option"

	"docsum/internal/summarizer"
)

const completedResponse = `{
  "id": "resp_1",
  "object": "response",
  "created_at": 1700000000,
  "status": "completed",
  "model": "gpt-5-mini",
  "output": [{
    "type": "message",
    "id": "msg_1",
    "status": "completed",
    "role": "assistant",
    "content": [{"type": "output_text", "text": "  A short summary.  ", "annotations": []}]
  }],
  "parallel_tool_calls": false,
  "tool_choice": "auto",
  "tools": []
}`

const incompleteResponse = `{
  "id": "resp_0",
  "object": "response",
  "created_at": 1700000000,
  "status": "incomplete",
  "incomplete_details": {"reason": "max_output_tokens"},
  "model": "gpt-5-mini",
  "output": [],
  "parallel_tool_calls": false,
  "tool_choice": "auto",
  "tools": []
}`

type recordedRequest struct {
	Model           string  `json:"model"`
	Instructions    string  `json:"instructions"`
	Input           string  `json:"input"`
	MaxOutputTokens float64 `json:"max_output_tokens"`
}

type responsesStub struct {
	mu       sync.Mutex
	bodies   []string
	requests []recordedRequest
}

func (s *responsesStub) server(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			http.NotFound(w, r)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req recordedRequest
		if err = json.Unmarshal(raw, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		idx := len(s.requests)
		s.requests = append(s.requests, req)
		body := s.bodies[min(idx, len(s.bodies)-1)]
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestOpenAISummarizerSummarize(t *testing.T) {
	stub := &responsesStub{bodies: []string{completedResponse}}
	srv := stub.server(t)

	s := summarizer.NewOpenAISummarizer("test-key", "gpt-5-mini", srv.URL, option.WithMaxRetries(0))

	got, err := s.Summarize(context.Background(), summarizer.Input{
		Text:      "  Some long document text.  ",
		MaxLength: 200,
		MinLength: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "A short summary." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if len(stub.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(stub.requests))
	}

	req := stub.requests[0]
	if req.Model != "gpt-5-mini" {
		t.Fatalf("unexpected model: %q", req.Model)
	}
	if req.Input != "Some long document text." {
		t.Fatalf("unexpected input: %q", req.Input)
	}
	if !strings.Contains(req.Instructions, "Between 50 and 200 words") {
		t.Fatalf("bounds missing from instructions: %q", req.Instructions)
	}
	if req.MaxOutputTokens != 800 {
		t.Fatalf("unexpected max output tokens: %v", req.MaxOutputTokens)
	}
}

func TestOpenAISummarizerRetriesIncomplete(t *testing.T) {
	stub := &responsesStub{bodies: []string{incompleteResponse, completedResponse}}
	srv := stub.server(t)

	s := summarizer.NewOpenAISummarizer("test-key", "gpt-5-mini", srv.URL, option.WithMaxRetries(0))

	got, err := s.Summarize(context.Background(), summarizer.Input{Text: "text", MaxLength: 10, MinLength: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A short summary." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if len(stub.requests) != 2 {
		t.Fatalf("expected two requests, got %d", len(stub.requests))
	}
	if stub.requests[0].MaxOutputTokens != 512 || stub.requests[1].MaxOutputTokens != 1024 {
		t.Fatalf("unexpected token budgets: %v, %v",
			stub.requests[0].MaxOutputTokens, stub.requests[1].MaxOutputTokens)
	}
}

func TestOpenAISummarizerGivesUpAtLimit(t *testing.T) {
	stub := &responsesStub{bodies: []string{incompleteResponse}}
	srv := stub.server(t)

	s := summarizer.NewOpenAISummarizer("test-key", "gpt-5-mini", srv.URL, option.WithMaxRetries(0))

	_, err := s.Summarize(context.Background(), summarizer.Input{Text: "text", MaxLength: 10, MinLength: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "incomplete") {
		t.Fatalf("unexpected error: %v", err)
	}

	// 512, 1024, 2048, 4096
	if len(stub.requests) != 4 {
		t.Fatalf("expected four requests, got %d", len(stub.requests))
	}
}

func TestOpenAISummarizerRejectsEmptyInput(t *testing.T) {
	s := summarizer.NewOpenAISummarizer("test-key", "gpt-5-mini", "http://127.0.0.1:1", option.WithMaxRetries(0))

	_, err := s.Summarize(context.Background(), summarizer.Input{Text: " \n\t ", MaxLength: 10, MinLength: 1})
	if !errors.Is(err, summarizer.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestOpenAISummarizerHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(srv.Close)

	s := summarizer.NewOpenAISummarizer("bad", "gpt-5-mini", srv.URL, option.WithMaxRetries(0))

	_, err := s.Summarize(context.Background(), summarizer.Input{Text: "text", MaxLength: 10, MinLength: 1})
	if err == nil || !strings.Contains(err.Error(), "do request") {
		t.Fatalf("expected wrapped request error, got %v", err)
	}
}
