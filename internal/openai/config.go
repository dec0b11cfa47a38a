package openai

// DefaultModel is used when the caller does not set a model.
const DefaultModel = "gpt-4o"
