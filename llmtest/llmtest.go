// Package llmtest provides a canned-response Transport and vendor JSON
// builders for testing code that talks through llmbridge without a live
// LLM service.
package llmtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/HerbHall/llmbridge/pkg/llm"
)

// StubTransport serves queued responses in FIFO order and records every
// request it sees. The last queued response repeats once the queue is
// exhausted, so single-response tests can make several calls. Safe for
// concurrent use.
type StubTransport struct {
	mu        sync.Mutex
	responses []stubResponse
	served    int

	// Err, when set, is returned from Do instead of a response.
	Err error

	// Requests and RequestBodies record each call in order.
	Requests      []*http.Request
	RequestBodies [][]byte
}

type stubResponse struct {
	status int
	body   string
}

// NewStubTransport creates a transport serving the given bodies with
// status 200.
func NewStubTransport(bodies ...string) *StubTransport {
	s := &StubTransport{}
	for _, body := range bodies {
		s.Queue(http.StatusOK, body)
	}
	return s
}

// Queue appends a response with the given status and body.
func (s *StubTransport) Queue(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, stubResponse{status: status, body: body})
}

// Do implements the llmbridge Transport interface.
func (s *StubTransport) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	s.Requests = append(s.Requests, req)
	s.RequestBodies = append(s.RequestBodies, body)

	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.responses) == 0 {
		return nil, fmt.Errorf("llmtest: no responses queued")
	}

	idx := s.served
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.served++
	resp := s.responses[idx]

	return &http.Response{
		StatusCode: resp.status,
		Status:     http.StatusText(resp.status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(resp.body))),
		Request:    req,
	}, nil
}

// AnthropicText returns a canned Anthropic Messages API body with a
// single text block and an end_turn stop reason.
func AnthropicText(model, text string, usage llm.Usage) string {
	return mustJSON(map[string]any{
		"id":          "msg_stub",
		"type":        "message",
		"role":        "assistant",
		"model":       model,
		"content":     []any{map[string]any{"type": "text", "text": text}},
		"stop_reason": "end_turn",
		"usage": map[string]any{
			"input_tokens":  usage.InputTokens,
			"output_tokens": usage.OutputTokens,
		},
	})
}

// AnthropicToolUse returns a canned Anthropic body where the model
// requests one tool call.
func AnthropicToolUse(model, toolName string, input map[string]any, usage llm.Usage) string {
	return mustJSON(map[string]any{
		"id":    "msg_stub",
		"type":  "message",
		"role":  "assistant",
		"model": model,
		"content": []any{map[string]any{
			"type":  "tool_use",
			"id":    "toolu_stub",
			"name":  toolName,
			"input": input,
		}},
		"stop_reason": "tool_use",
		"usage": map[string]any{
			"input_tokens":  usage.InputTokens,
			"output_tokens": usage.OutputTokens,
		},
	})
}

// OpenAIText returns a canned OpenAI chat completions body with a
// single text choice and a stop finish reason.
func OpenAIText(model, text string, usage llm.Usage) string {
	return mustJSON(map[string]any{
		"id":    "chatcmpl-stub",
		"model": model,
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{
			"prompt_tokens":     usage.InputTokens,
			"completion_tokens": usage.OutputTokens,
		},
	})
}

// OpenAIToolCall returns a canned OpenAI body where the model requests
// one tool call.
func OpenAIToolCall(model, toolName string, input map[string]any, usage llm.Usage) string {
	args := mustJSON(input)
	return mustJSON(map[string]any{
		"id":    "chatcmpl-stub",
		"model": model,
		"choices": []any{map[string]any{
			"index": 0,
			"message": map[string]any{
				"role":    "assistant",
				"content": "",
				"tool_calls": []any{map[string]any{
					"id":   "call_stub",
					"type": "function",
					"function": map[string]any{
						"name":      toolName,
						"arguments": args,
					},
				}},
			},
			"finish_reason": "tool_calls",
		}},
		"usage": map[string]any{
			"prompt_tokens":     usage.InputTokens,
			"completion_tokens": usage.OutputTokens,
		},
	})
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("llmtest: marshal canned response: %v", err))
	}
	return string(data)
}
