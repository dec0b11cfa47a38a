package llmbridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/llmbridge/llmtest"
	"github.com/HerbHall/llmbridge/pkg/llm"
)

func testClient(t *testing.T, provider Provider, stub *llmtest.StubTransport) *Client {
	t.Helper()
	client, err := New(provider, "sk-test", WithTransport(stub))
	require.NoError(t, err)
	return client
}

func TestRequestBuilder_Defaults(t *testing.T) {
	stub := llmtest.NewStubTransport(
		llmtest.AnthropicText("claude-3-haiku-20240307", "hi", llm.Usage{}),
	)
	client := testClient(t, Anthropic, stub)

	_, err := client.Request().UserMessage("Hello").Send(context.Background())
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(stub.RequestBodies[0], &sent))

	assert.Equal(t, "claude-3-haiku-20240307", sent["model"])
	assert.Equal(t, float64(100), sent["max_tokens"])
	assert.Equal(t, float64(1.0), sent["temperature"])
	assert.NotContains(t, sent, "system")
	assert.NotContains(t, sent, "tools")
}

func TestRequestBuilder_DefaultsOpenAI(t *testing.T) {
	stub := llmtest.NewStubTransport(llmtest.OpenAIText("gpt-4o", "hi", llm.Usage{}))
	client := testClient(t, OpenAI, stub)

	_, err := client.Request().UserMessage("Hello").Send(context.Background())
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(stub.RequestBodies[0], &sent))
	assert.Equal(t, "gpt-4o", sent["model"])
}

func TestRequestBuilder_LastWriteWins(t *testing.T) {
	stub := llmtest.NewStubTransport(
		llmtest.AnthropicText("claude-3-haiku-20240307", "hi", llm.Usage{}),
	)
	client := testClient(t, Anthropic, stub)

	_, err := client.Request().
		Model("claude-3-opus-20240229").
		Model("claude-3-haiku-20240307").
		Temperature(0.2).
		Temperature(0.7).
		MaxTokens(50).
		MaxTokens(200).
		SystemPrompt("first").
		SystemPrompt("second").
		UserMessage("Hello").
		Send(context.Background())
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(stub.RequestBodies[0], &sent))
	assert.Equal(t, "claude-3-haiku-20240307", sent["model"])
	assert.Equal(t, 0.7, sent["temperature"])
	assert.Equal(t, float64(200), sent["max_tokens"])
	assert.Equal(t, "second", sent["system"])
}

func TestRequestBuilder_MessagesAndToolsAppend(t *testing.T) {
	stub := llmtest.NewStubTransport(
		llmtest.AnthropicText("claude-3-haiku-20240307", "hi", llm.Usage{}),
	)
	client := testClient(t, Anthropic, stub)

	weather, err := llm.NewTool().Name("get_weather").Description("weather").Build()
	require.NoError(t, err)
	clock, err := llm.NewTool().Name("get_time").Description("time").Build()
	require.NoError(t, err)

	_, err = client.Request().
		UserMessage("first").
		UserMessage("second").
		AddTool(weather).
		AddTool(clock).
		Send(context.Background())
	require.NoError(t, err)

	var sent struct {
		Messages []llm.Message `json:"messages"`
		Tools    []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(stub.RequestBodies[0], &sent))
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "first", sent.Messages[0].Content)
	assert.Equal(t, "second", sent.Messages[1].Content)
	require.Len(t, sent.Tools, 2)
	assert.Equal(t, "get_weather", sent.Tools[0].Name)
	assert.Equal(t, "get_time", sent.Tools[1].Name)
}

func TestRequestBuilder_ValidatesBeforeDispatch(t *testing.T) {
	stub := &llmtest.StubTransport{}
	client := testClient(t, Anthropic, stub)

	_, err := client.Request().Send(context.Background())
	require.Error(t, err)
	assert.True(t, llm.IsValidationError(err))
	assert.Empty(t, stub.Requests, "invalid request must not reach the transport")

	_, err = client.Request().UserMessage("Hi").Temperature(3.0).Send(context.Background())
	require.Error(t, err)
	assert.True(t, llm.IsValidationError(err))
	assert.Empty(t, stub.Requests)
}

func TestRequestBuilder_ConsumedOnSend(t *testing.T) {
	stub := llmtest.NewStubTransport(
		llmtest.AnthropicText("claude-3-haiku-20240307", "hi", llm.Usage{}),
	)
	client := testClient(t, Anthropic, stub)

	builder := client.Request().UserMessage("Hello")
	_, err := builder.Send(context.Background())
	require.NoError(t, err)

	_, err = builder.Send(context.Background())
	require.Error(t, err)
	assert.True(t, llm.IsValidationError(err))
	assert.Len(t, stub.Requests, 1, "consumed builder must not dispatch again")
}
