package anthropic

// DefaultModel is used when the caller does not set a model.
const DefaultModel = "claude-3-haiku-20240307"
