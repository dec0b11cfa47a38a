package llmbridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/llmbridge/internal/anthropic"
	"github.com/HerbHall/llmbridge/internal/openai"
	"github.com/HerbHall/llmbridge/pkg/llm"
)

// Provider selects which vendor a Client talks to. The set is closed:
// dispatch is an exhaustive switch, so adding a vendor means adding a
// constant and extending every switch.
type Provider int

const (
	// Anthropic targets the Anthropic Messages API.
	Anthropic Provider = iota
	// OpenAI targets the OpenAI chat completions API.
	OpenAI
)

func (p Provider) String() string {
	switch p {
	case Anthropic:
		return anthropic.ProviderName
	case OpenAI:
		return openai.ProviderName
	default:
		return fmt.Sprintf("provider(%d)", int(p))
	}
}

// Transport performs the HTTP round trip for a Client. *http.Client
// satisfies it; tests substitute a stub. Timeout and cancellation
// policy belong to the Transport (or the request context), not the
// core.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultTimeout = 2 * time.Minute

	// Responses larger than this are cut off during decoding.
	maxResponseBody = 1 << 22
)

// Client is the entry point for one vendor. It holds the credential and
// transport; per-call state lives in RequestBuilder and Conversation
// values. A Client is safe for concurrent use as long as its Transport
// is.
type Client struct {
	provider  Provider
	apiKey    string
	transport Transport
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given provider. The API key is an opaque
// credential passed through to the vendor; the client never reads
// environment variables itself.
func New(provider Provider, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key is required", provider)
	}
	if provider != Anthropic && provider != OpenAI {
		return nil, fmt.Errorf("unsupported provider %s", provider)
	}

	c := &Client{
		provider:  provider,
		apiKey:    apiKey,
		transport: &http.Client{Timeout: defaultTimeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Provider returns the vendor this client is bound to.
func (c *Client) Provider() Provider {
	return c.provider
}

// Request returns a builder seeded with the provider's defaults: the
// vendor default model, max tokens defaultMaxTokens, temperature
// defaultTemperature, no system prompt, no tools.
func (c *Client) Request() *RequestBuilder {
	return &RequestBuilder{
		client: c,
		opts: llm.RequestOptions{
			Model:       c.defaultModel(),
			MaxTokens:   defaultMaxTokens,
			Temperature: defaultTemperature,
		},
	}
}

// Heartbeat checks whether the vendor API is reachable with the
// configured credential.
func (c *Client) Heartbeat(ctx context.Context) error {
	var (
		req *http.Request
		err error
	)
	switch c.provider {
	case Anthropic:
		req, err = anthropic.NewHeartbeatRequest(ctx, c.apiKey)
	case OpenAI:
		req, err = openai.NewHeartbeatRequest(ctx, c.apiKey)
	default:
		return fmt.Errorf("unsupported provider %s", c.provider)
	}
	if err != nil {
		return llm.NewTransportError(c.provider.String(), "build heartbeat request", err)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return llm.NewTransportError(c.provider.String(), "heartbeat failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	return nil
}

// send runs one validated request/response cycle: serialize through the
// provider's adapter, POST via the transport, parse the body back into
// the unified response. No retries, no partial-result recovery.
func (c *Client) send(ctx context.Context, opts llm.RequestOptions) (*llm.Response, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var (
		body []byte
		err  error
	)
	switch c.provider {
	case Anthropic:
		body, err = anthropic.BuildRequest(opts)
	case OpenAI:
		body, err = openai.BuildRequest(opts)
	default:
		return nil, fmt.Errorf("unsupported provider %s", c.provider)
	}
	if err != nil {
		return nil, err
	}

	var req *http.Request
	switch c.provider {
	case Anthropic:
		req, err = anthropic.NewHTTPRequest(ctx, c.apiKey, body)
	case OpenAI:
		req, err = openai.NewHTTPRequest(ctx, c.apiKey, body)
	}
	if err != nil {
		return nil, llm.NewTransportError(c.provider.String(), "build request", err)
	}

	requestID := uuid.NewString()
	c.logger.Debug("dispatching request",
		zap.String("provider", c.provider.String()),
		zap.String("request_id", requestID),
		zap.String("model", opts.Model),
		zap.Int("messages", len(opts.Messages)),
		zap.Int("tools", len(opts.Tools)),
	)

	httpResp, err := c.transport.Do(req)
	if err != nil {
		return nil, llm.NewTransportError(c.provider.String(), "request failed", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return nil, c.statusError(httpResp)
	}

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, llm.NewTransportError(c.provider.String(), "read response body", err)
	}

	var resp *llm.Response
	switch c.provider {
	case Anthropic:
		resp, err = anthropic.ParseResponse(data)
	case OpenAI:
		resp, err = openai.ParseResponse(data)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug("response received",
		zap.String("provider", c.provider.String()),
		zap.String("request_id", requestID),
		zap.String("model", resp.Model),
		zap.String("stop_reason", string(resp.StopReason)),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}

func (c *Client) statusError(resp *http.Response) error {
	switch c.provider {
	case OpenAI:
		return openai.ParseStatusError(resp)
	default:
		return anthropic.ParseStatusError(resp)
	}
}

func (c *Client) defaultModel() string {
	switch c.provider {
	case OpenAI:
		return openai.DefaultModel
	default:
		return anthropic.DefaultModel
	}
}
