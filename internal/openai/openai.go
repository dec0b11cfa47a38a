// Package openai maps the unified request model to the OpenAI chat
// completions wire format and back. Like the anthropic adapter it
// performs no I/O: callers own the transport round trip.
package openai

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
	baseURL         = "https://api.openai.com"
	completionsPath = "/v1/chat/completions"
	modelsPath      = "/v1/models"

	// ProviderName tags errors surfaced by this adapter.
	ProviderName = "openai"
)

// BuildRequest serializes unified request options into the chat
// completions JSON body. The system prompt, when present, is prepended
// to the message list as a role-"system" message; tools become
// {type:"function", function:{...}} entries.
func BuildRequest(opts llm.RequestOptions) ([]byte, error) {
	messages := make([]chatMessage, 0, len(opts.Messages)+1)
	if opts.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: llm.RoleSystem, Content: opts.SystemPrompt})
	}
	for _, m := range opts.Messages {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	req := chatRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	for _, tool := range opts.Tools {
		req.Tools = append(req.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  buildParameters(tool.Parameters),
			},
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, llm.NewSerializationError(ProviderName, "marshal chat request", err)
	}
	return body, nil
}

// NewHTTPRequest wraps a serialized body in an authenticated POST to
// the chat completions endpoint.
func NewHTTPRequest(ctx context.Context, apiKey string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return req, nil
}

// NewHeartbeatRequest builds an authenticated GET against the models
// endpoint, used as a cheap reachability probe.
func NewHeartbeatRequest(ctx context.Context, apiKey string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+modelsPath, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return req, nil
}

// ParseResponse maps a chat completions response body to the unified
// Response, reading the first choice. Missing mandatory fields and
// unrecognized finish reasons are decoding errors naming the offending
// field.
func ParseResponse(data []byte) (*llm.Response, error) {
	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, llm.NewDecodingError(ProviderName, "body", "response is not valid JSON: "+err.Error())
	}

	if len(resp.Choices) == 0 {
		return nil, llm.NewDecodingError(ProviderName, "choices", "missing choices")
	}
	choice := resp.Choices[0]

	if choice.Message.Role == "" {
		return nil, llm.NewDecodingError(ProviderName, "message.role", "missing role")
	}

	stop, err := mapFinishReason(choice.FinishReason)
	if err != nil {
		return nil, err
	}

	var blocks []llm.ContentBlock
	if choice.Message.Content != "" {
		blocks = append(blocks, llm.ContentBlock{Type: llm.BlockText, Text: choice.Message.Content})
	}
	for i, call := range choice.Message.ToolCalls {
		if call.Type != "function" {
			return nil, llm.NewDecodingError(ProviderName,
				fmt.Sprintf("tool_calls[%d].type", i), "unrecognized tool call type "+call.Type)
		}
		var input map[string]any
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &input); err != nil {
				return nil, llm.NewDecodingError(ProviderName,
					fmt.Sprintf("tool_calls[%d].function.arguments", i),
					"arguments are not a JSON object: "+err.Error())
			}
		}
		blocks = append(blocks, llm.ContentBlock{
			Type: llm.BlockToolUse,
			ToolUse: &llm.ToolUse{
				ID:    call.ID,
				Name:  call.Function.Name,
				Input: input,
			},
		})
	}

	if len(blocks) == 0 && !(stop == llm.StopMaxTokens && resp.Usage.CompletionTokens == 0) {
		return nil, llm.NewDecodingError(ProviderName, "message.content", "missing content")
	}

	return &llm.Response{
		ID:         resp.ID,
		Role:       choice.Message.Role,
		Model:      resp.Model,
		Content:    blocks,
		StopReason: stop,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// mapFinishReason normalizes OpenAI finish_reason tokens. Documented
// tokens outside the unified set map to StopOther; anything else is a
// vendor API change and fails decoding.
func mapFinishReason(reason string) (llm.StopReason, error) {
	switch reason {
	case "stop":
		return llm.StopEndTurn, nil
	case "tool_calls":
		return llm.StopToolUse, nil
	case "length":
		return llm.StopMaxTokens, nil
	case "content_filter", "function_call":
		return llm.StopOther, nil
	default:
		return "", llm.NewDecodingError(ProviderName, "finish_reason", "unrecognized finish reason "+strconv.Quote(reason))
	}
}

// buildParameters converts ordered tool parameters into the JSON-schema
// parameters object: {type:"object", properties, required}.
func buildParameters(params []llm.ToolParameter) parameters {
	schema := parameters{
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

// --- OpenAI REST API types (internal) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Tools       []wireTool    `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  parameters `json:"parameters"`
}

type parameters struct {
	Type       string              `json:"type"`
	Properties map[string]property `json:"properties"`
	Required   []string            `json:"required"`
}

type property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role      string     `json:"role"`
			Content   string     `json:"content"`
			ToolCalls []toolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type toolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}
