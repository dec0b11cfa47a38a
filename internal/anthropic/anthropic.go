// Package anthropic maps the unified request model to the Anthropic
// Messages API wire format and back. It performs no I/O itself: it
// builds *http.Request values and parses raw response bodies, leaving
// the round trip to the caller's transport.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/HerbHall/llmbridge/pkg/llm"
)

const (
	baseURL      = "https://api.anthropic.com"
	messagesPath = "/v1/messages"
	modelsPath   = "/v1/models"
	apiVersion   = "2023-06-01"

	// ProviderName tags errors surfaced by this adapter.
	ProviderName = "anthropic"
)

// BuildRequest serializes unified request options into the Messages API
// JSON body. The system prompt becomes the top-level "system" field and
// tools become {name, description, input_schema} entries.
func BuildRequest(opts llm.RequestOptions) ([]byte, error) {
	messages := make([]chatMessage, len(opts.Messages))
	for i, m := range opts.Messages {
		messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	req := messagesRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		System:      opts.SystemPrompt,
	}
	for _, tool := range opts.Tools {
		req.Tools = append(req.Tools, wireTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: buildInputSchema(tool.Parameters),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, llm.NewSerializationError(ProviderName, "marshal messages request", err)
	}
	return body, nil
}

// NewHTTPRequest wraps a serialized body in an authenticated POST to
// the Messages endpoint.
func NewHTTPRequest(ctx context.Context, apiKey string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	return req, nil
}

// NewHeartbeatRequest builds an authenticated GET against the models
// endpoint, used as a cheap reachability probe.
func NewHeartbeatRequest(ctx context.Context, apiKey string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+modelsPath, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	return req, nil
}

// ParseResponse maps a Messages API response body to the unified
// Response. Missing mandatory fields and unrecognized stop reasons are
// decoding errors naming the offending field.
func ParseResponse(data []byte) (*llm.Response, error) {
	var resp messagesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, llm.NewDecodingError(ProviderName, "body", "response is not valid JSON: "+err.Error())
	}

	if resp.Role == "" {
		return nil, llm.NewDecodingError(ProviderName, "role", "missing role")
	}

	stop, err := mapStopReason(resp.StopReason)
	if err != nil {
		return nil, err
	}

	if len(resp.Content) == 0 && !(stop == llm.StopMaxTokens && resp.Usage.OutputTokens == 0) {
		return nil, llm.NewDecodingError(ProviderName, "content", "missing content")
	}

	blocks := make([]llm.ContentBlock, 0, len(resp.Content))
	for i, block := range resp.Content {
		switch block.Type {
		case "text":
			blocks = append(blocks, llm.ContentBlock{Type: llm.BlockText, Text: block.Text})
		case "tool_use":
			var input map[string]any
			if len(block.Input) > 0 {
				if err := json.Unmarshal(block.Input, &input); err != nil {
					return nil, llm.NewDecodingError(ProviderName,
						fmt.Sprintf("content[%d].input", i), "tool input is not a JSON object: "+err.Error())
				}
			}
			blocks = append(blocks, llm.ContentBlock{
				Type: llm.BlockToolUse,
				ToolUse: &llm.ToolUse{
					ID:    block.ID,
					Name:  block.Name,
					Input: input,
				},
			})
		default:
			return nil, llm.NewDecodingError(ProviderName,
				fmt.Sprintf("content[%d].type", i), "unrecognized content block type "+block.Type)
		}
	}

	return &llm.Response{
		ID:         resp.ID,
		Role:       resp.Role,
		Model:      resp.Model,
		Content:    blocks,
		StopReason: stop,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}

// mapStopReason normalizes Anthropic stop_reason tokens. Documented
// tokens outside the unified set map to StopOther; anything else is a
// vendor API change and fails decoding.
func mapStopReason(reason string) (llm.StopReason, error) {
	switch reason {
	case "end_turn":
		return llm.StopEndTurn, nil
	case "tool_use":
		return llm.StopToolUse, nil
	case "max_tokens":
		return llm.StopMaxTokens, nil
	case "stop_sequence", "refusal", "pause_turn":
		return llm.StopOther, nil
	default:
		return "", llm.NewDecodingError(ProviderName, "stop_reason", "unrecognized stop reason "+strconv.Quote(reason))
	}
}

// buildInputSchema converts ordered tool parameters into the
// input_schema object: {type:"object", properties, required}.
func buildInputSchema(params []llm.ToolParameter) inputSchema {
	schema := inputSchema{
		Type:       "object",
		Properties: make(map[string]property, len(params)),
		Required:   make([]string, 0, len(params)),
	}
	for _, p := range params {
		schema.Properties[p.Name] = property{
			Type:        p.Type,
			Description: p.Description,
			Enum:        p.Enum,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// --- Anthropic Messages API types (internal) ---

type messagesRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Tools       []wireTool    `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireTool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema inputSchema `json:"input_schema"`
}

type inputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]property `json:"properties"`
	Required   []string            `json:"required"`
}

type property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type messagesResponse struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}
