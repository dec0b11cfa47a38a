package llm

// Role constants for the Message.Role field.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn in a conversation. Content may be
// empty only for a tool-use placeholder turn appended by a Conversation
// when the model stopped to call a tool.
type Message struct {
	Role    string `json:"role"` // One of RoleSystem, RoleUser, RoleAssistant.
	Content string `json:"content"`
}

// Usage tracks token consumption for a single LLM call. Vendor field
// names differ (Anthropic input_tokens/output_tokens, OpenAI
// prompt_tokens/completion_tokens); adapters normalize both here.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// StopReason is the normalized cause for ending generation.
type StopReason string

// Normalized stop reasons. Vendor tokens outside the unified set that
// the vendor documents (e.g. Anthropic "stop_sequence", OpenAI
// "content_filter") map to StopOther; undocumented tokens are decoding
// errors.
const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
	StopOther     StopReason = "other"
)

// ToolUse is the model's request to invoke a named tool with structured
// arguments. Produced by response parsing, never constructed by callers.
// ID is the vendor-assigned call identifier, needed when feeding the
// tool's result back to the vendor.
type ToolUse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// Content block type constants for ContentBlock.Type.
const (
	BlockText    = "text"
	BlockToolUse = "tool_use"
)

// ContentBlock is one ordered element of a response: either generated
// text or a tool-use request.
type ContentBlock struct {
	Type    string   `json:"type"` // BlockText or BlockToolUse.
	Text    string   `json:"text,omitempty"`
	ToolUse *ToolUse `json:"tool_use,omitempty"`
}

// Response is the unified result of one LLM call, normalized from
// either vendor's wire shape.
type Response struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"` // Expected RoleAssistant.
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason StopReason     `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// FirstText returns the text of the first text block, or "" if the
// response contains no text (e.g. a pure tool-use reply).
func (r *Response) FirstText() string {
	for _, block := range r.Content {
		if block.Type == BlockText {
			return block.Text
		}
	}
	return ""
}

// ToolUses returns all tool-use blocks in response order, or nil if the
// model did not request any tool calls.
func (r *Response) ToolUses() []ToolUse {
	var uses []ToolUse
	for _, block := range r.Content {
		if block.Type == BlockToolUse && block.ToolUse != nil {
			uses = append(uses, *block.ToolUse)
		}
	}
	return uses
}
