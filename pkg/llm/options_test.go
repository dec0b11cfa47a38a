package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() RequestOptions {
	return RequestOptions{
		Model:       "claude-3-haiku-20240307",
		Messages:    []Message{{Role: RoleUser, Content: "Hello"}},
		MaxTokens:   100,
		Temperature: 1.0,
	}
}

func TestRequestOptions_Validate(t *testing.T) {
	assert.NoError(t, validOptions().Validate())
}

func TestRequestOptions_Validate_TemperatureBounds(t *testing.T) {
	opts := validOptions()
	opts.Temperature = 0.0
	assert.NoError(t, opts.Validate())

	opts.Temperature = 2.0
	assert.NoError(t, opts.Validate())

	opts.Temperature = -0.1
	err := opts.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	opts.Temperature = 2.1
	err = opts.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRequestOptions_Validate_MaxTokens(t *testing.T) {
	opts := validOptions()
	opts.MaxTokens = 0
	err := opts.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "max_tokens")

	opts.MaxTokens = -5
	assert.Error(t, opts.Validate())
}

func TestRequestOptions_Validate_Messages(t *testing.T) {
	opts := validOptions()
	opts.Messages = nil
	err := opts.Validate()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// A system-only conversation has no user turn to answer.
	opts.Messages = []Message{{Role: RoleSystem, Content: "Be brief."}}
	err = opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}

func TestRequestOptions_Validate_MissingModel(t *testing.T) {
	opts := validOptions()
	opts.Model = ""
	assert.Error(t, opts.Validate())
}

func TestResponse_FirstText(t *testing.T) {
	resp := &Response{Content: []ContentBlock{
		{Type: BlockToolUse, ToolUse: &ToolUse{Name: "get_weather"}},
		{Type: BlockText, Text: "Here you go."},
	}}
	assert.Equal(t, "Here you go.", resp.FirstText())

	empty := &Response{}
	assert.Equal(t, "", empty.FirstText())
}

func TestResponse_ToolUses(t *testing.T) {
	resp := &Response{Content: []ContentBlock{
		{Type: BlockText, Text: "Checking the weather."},
		{Type: BlockToolUse, ToolUse: &ToolUse{ID: "toolu_1", Name: "get_weather"}},
	}}
	uses := resp.ToolUses()
	require.Len(t, uses, 1)
	assert.Equal(t, "get_weather", uses[0].Name)

	assert.Nil(t, (&Response{}).ToolUses())
}
