package llm

import "fmt"

// Temperature bounds accepted by both vendors.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// RequestOptions is the unified request for a single LLM call. It is
// constructed per call, validated, handed to a vendor adapter, and
// discarded.
type RequestOptions struct {
	Model        string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
	Tools        []ToolDefinition
}

// Validate checks the invariants required before dispatch: positive
// MaxTokens, Temperature within [MinTemperature, MaxTemperature], and a
// non-empty message list containing at least one user turn.
func (o RequestOptions) Validate() error {
	if o.Model == "" {
		return NewValidationError("model is required")
	}
	if o.MaxTokens <= 0 {
		return NewValidationError(fmt.Sprintf("max_tokens must be positive, got %d", o.MaxTokens))
	}
	if o.Temperature < MinTemperature || o.Temperature > MaxTemperature {
		return NewValidationError(fmt.Sprintf("temperature must be in [%.1f, %.1f], got %g",
			MinTemperature, MaxTemperature, o.Temperature))
	}
	if len(o.Messages) == 0 {
		return NewValidationError("messages must not be empty")
	}
	hasUser := false
	for _, m := range o.Messages {
		if m.Role == "" {
			return NewValidationError("message role must not be empty")
		}
		if m.Role == RoleUser {
			hasUser = true
		}
	}
	if !hasUser {
		return NewValidationError("at least one message must have the user role")
	}
	return nil
}
