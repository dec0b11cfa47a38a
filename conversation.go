package llmbridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/HerbHall/llmbridge/pkg/llm"
)

// Conversation threads prior turns into each new request so that the
// vendor sees the full dialog. The transcript is append-only: a
// successful exchange appends exactly the outgoing user turn and the
// assistant's reply, a failed one appends nothing, and entries are
// never edited afterwards.
//
// Send and Add must not run concurrently with each other; Dialog,
// LastResponse and Last are safe to call from any goroutine once the
// previous exchange has completed.
type Conversation struct {
	client *Client
	id     string

	// Options template re-applied on every exchange.
	model        string
	systemPrompt string
	maxTokens    int
	temperature  float64
	tools        []llm.ToolDefinition

	transcript []llm.Message
	last       *llm.Response
}

// ConversationOption configures the options template of a Conversation.
type ConversationOption func(*Conversation)

// WithModel overrides the provider's default model for every turn.
func WithModel(model string) ConversationOption {
	return func(c *Conversation) { c.model = model }
}

// WithSystemPrompt sets the system prompt sent with every turn.
func WithSystemPrompt(prompt string) ConversationOption {
	return func(c *Conversation) { c.systemPrompt = prompt }
}

// WithMaxTokens sets the per-turn generation cap.
func WithMaxTokens(maxTokens int) ConversationOption {
	return func(c *Conversation) { c.maxTokens = maxTokens }
}

// WithTemperature sets the per-turn sampling temperature.
func WithTemperature(temperature float64) ConversationOption {
	return func(c *Conversation) { c.temperature = temperature }
}

// WithTools attaches tool definitions sent with every turn.
func WithTools(tools ...llm.ToolDefinition) ConversationOption {
	return func(c *Conversation) { c.tools = append([]llm.ToolDefinition(nil), tools...) }
}

// NewConversation creates an empty conversation seeded with the
// provider's defaults, adjusted by the given options.
func (c *Client) NewConversation(opts ...ConversationOption) *Conversation {
	conv := &Conversation{
		client:      c,
		id:          uuid.NewString(),
		model:       c.defaultModel(),
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(conv)
	}
	return conv
}

// ID returns the conversation's unique identifier, useful for log
// correlation.
func (c *Conversation) ID() string {
	return c.id
}

// Send runs the first exchange of the dialog.
func (c *Conversation) Send(ctx context.Context, text string) error {
	return c.exchange(ctx, text)
}

// Add continues the dialog with another user turn, giving the vendor
// the full prior transcript as context.
func (c *Conversation) Add(ctx context.Context, text string) error {
	return c.exchange(ctx, text)
}

func (c *Conversation) exchange(ctx context.Context, text string) error {
	userMsg := llm.Message{Role: llm.RoleUser, Content: text}

	messages := make([]llm.Message, 0, len(c.transcript)+2)
	messages = append(messages, c.transcript...)
	messages = append(messages, userMsg)

	resp, err := c.client.send(ctx, llm.RequestOptions{
		Model:        c.model,
		Messages:     messages,
		MaxTokens:    c.maxTokens,
		Temperature:  c.temperature,
		SystemPrompt: c.systemPrompt,
		Tools:        c.tools,
	})
	if err != nil {
		return err
	}

	assistantMsg := llm.Message{Role: llm.RoleAssistant, Content: resp.FirstText()}
	if resp.StopReason == llm.StopToolUse {
		// Placeholder turn with empty content keeps the pending tool
		// call in context; the caller supplies the tool's result in a
		// follow-up turn (inspect Last for the requested calls).
		assistantMsg.Content = ""
	}

	c.transcript = append(messages, assistantMsg)
	c.last = resp
	return nil
}

// LastResponse returns the most recent assistant text, or "" before the
// first successful exchange.
func (c *Conversation) LastResponse() string {
	if c.last == nil {
		return ""
	}
	return c.last.FirstText()
}

// Last returns the full unified response of the most recent exchange,
// or nil before the first one. This is the hook for tool handling: when
// Last().StopReason is StopToolUse, Last().ToolUses() lists the calls
// the model is waiting on.
func (c *Conversation) Last() *llm.Response {
	return c.last
}

// Dialog returns a copy of the transcript in order. Successive calls
// without an intervening exchange return identical sequences.
func (c *Conversation) Dialog() []llm.Message {
	dialog := make([]llm.Message, len(c.transcript))
	copy(dialog, c.transcript)
	return dialog
}
