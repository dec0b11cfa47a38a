// Package llmbridge dispatches one logical chat request to either the
// Anthropic or OpenAI HTTP API without vendor-specific request or
// response code on the caller's side.
//
// A Client is bound to one Provider and one API key. Client.Request
// returns a fluent builder seeded with that provider's defaults;
// Client.NewConversation wraps the builder in an append-only multi-turn
// transcript. The HTTP round trip goes through a caller-replaceable
// Transport, so tests run against canned responses (see the llmtest
// package) and production callers control timeouts and proxies.
//
//	client, err := llmbridge.New(llmbridge.Anthropic, apiKey)
//	if err != nil { ... }
//	resp, err := client.Request().
//		UserMessage("Hello, Claude!").
//		MaxTokens(100).
//		SystemPrompt("You are a haiku assistant.").
//		Send(ctx)
package llmbridge
