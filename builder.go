package llmbridge

import (
	"context"

	"github.com/HerbHall/llmbridge/pkg/llm"
)

// Default request values applied when a setter is never called.
const (
	defaultMaxTokens   = 100
	defaultTemperature = 1.0
)

// RequestBuilder accumulates options for a single call. Scalar setters
// are last-write-wins; UserMessage and AddTool append. The builder is
// consumed by Send and must not be shared between goroutines while
// building.
type RequestBuilder struct {
	client *Client
	opts   llm.RequestOptions
	sent   bool
}

// Model overrides the provider's default model.
func (b *RequestBuilder) Model(model string) *RequestBuilder {
	b.opts.Model = model
	return b
}

// UserMessage appends a user turn to the message list.
func (b *RequestBuilder) UserMessage(content string) *RequestBuilder {
	b.opts.Messages = append(b.opts.Messages, llm.Message{Role: llm.RoleUser, Content: content})
	return b
}

// Messages appends prior conversation turns in order, ahead of or
// between UserMessage calls as needed.
func (b *RequestBuilder) Messages(messages ...llm.Message) *RequestBuilder {
	b.opts.Messages = append(b.opts.Messages, messages...)
	return b
}

// MaxTokens sets the generation cap.
func (b *RequestBuilder) MaxTokens(maxTokens int) *RequestBuilder {
	b.opts.MaxTokens = maxTokens
	return b
}

// Temperature sets the sampling temperature, valid within [0.0, 2.0].
func (b *RequestBuilder) Temperature(temperature float64) *RequestBuilder {
	b.opts.Temperature = temperature
	return b
}

// SystemPrompt sets the system prompt. Each vendor adapter encodes it
// in that vendor's position on the wire.
func (b *RequestBuilder) SystemPrompt(prompt string) *RequestBuilder {
	b.opts.SystemPrompt = prompt
	return b
}

// AddTool appends a tool definition the model may invoke.
func (b *RequestBuilder) AddTool(tool llm.ToolDefinition) *RequestBuilder {
	b.opts.Tools = append(b.opts.Tools, tool)
	return b
}

// Send validates the accumulated options and runs the round trip. The
// builder is consumed: a second Send returns a validation error without
// touching the network.
func (b *RequestBuilder) Send(ctx context.Context) (*llm.Response, error) {
	if b.sent {
		return nil, llm.NewValidationError("request builder already sent")
	}
	b.sent = true
	return b.client.send(ctx, b.opts)
}
