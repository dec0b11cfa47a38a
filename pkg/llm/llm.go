// Package llm provides the vendor-neutral data model shared by all
// LLM provider adapters: messages, tool definitions, request options,
// the unified response, and the typed errors the adapters surface.
//
// The types here are pure values. Validation is confined to
// construction (ToolBuilder.Build, RequestOptions.Validate) so that a
// bad request fails before any network activity. Dispatch, transport,
// and per-vendor wire mapping live in the llmbridge root package and
// the internal vendor adapters.
package llm
